package tokenizer

import "fmt"

// EncodeOptions controls truncation and padding. MaxLength <= 0 disables
// truncation.
type EncodeOptions struct {
	Padding   bool
	MaxLength int
}

// TokensFor segments one word with the trained vocabulary.
func (t *Tokenizer) TokensFor(word string) ([]string, error) {
	if t.st.vocab == nil {
		return nil, ErrUntrained
	}
	return t.st.vocab.Segment(word), nil
}

// TextTokens splits text into words, segments every word and keeps at most
// maxLength tokens of the result.
func (t *Tokenizer) TextTokens(text string, maxLength int) ([]string, error) {
	vocab := t.st.vocab
	if vocab == nil {
		return nil, ErrUntrained
	}
	var tokens []string
	for _, w := range t.strategy.SplitWords(text) {
		tokens = append(tokens, vocab.Segment(w)...)
	}
	if maxLength > 0 && len(tokens) > maxLength {
		tokens = tokens[:maxLength]
	}
	return tokens, nil
}

// Encode returns the token IDs of a single text. Unknown tokens map to
// UnknownID. Padding has no effect on a single sequence.
func (t *Tokenizer) Encode(text string, opts EncodeOptions) ([]int, error) {
	out, err := t.EncodeBatch([]string{text}, opts)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EncodeBatch encodes every text. With opts.Padding every sequence is
// right-padded with the pad ID to the longest sequence after truncation.
func (t *Tokenizer) EncodeBatch(texts []string, opts EncodeOptions) ([][]int, error) {
	tokens, err := t.TokenizeBatch(texts, opts)
	if err != nil {
		return nil, err
	}
	vocab := t.st.vocab
	out := make([][]int, len(tokens))
	for i, seq := range tokens {
		ids := make([]int, len(seq))
		for j, tok := range seq {
			ids[j] = vocab.TokenID(tok)
		}
		out[i] = ids
	}
	if opts.Padding {
		padIDs(out, vocab.PadID())
	}
	return out, nil
}

// TokenizeBatch is EncodeBatch before ID mapping. Padding slots hold PadToken.
func (t *Tokenizer) TokenizeBatch(texts []string, opts EncodeOptions) ([][]string, error) {
	if t.st.vocab == nil {
		return nil, ErrUntrained
	}
	out := make([][]string, len(texts))
	for i, text := range texts {
		seq, err := t.TextTokens(text, opts.MaxLength)
		if err != nil {
			return nil, err
		}
		out[i] = seq
	}
	if opts.Padding {
		padTokens(out)
	}
	return out, nil
}

// EncodeInput encodes dynamically typed input and mirrors its shape: a
// string yields []int, a list yields [][]int.
func (t *Tokenizer) EncodeInput(v any, opts EncodeOptions) (any, error) {
	texts, single, err := TextsFromInput(v)
	if err != nil {
		return nil, err
	}
	out, err := t.EncodeBatch(texts, opts)
	if err != nil {
		return nil, err
	}
	if single {
		return out[0], nil
	}
	return out, nil
}

// IDsToTokens maps IDs back to token strings.
func (t *Tokenizer) IDsToTokens(ids []int) ([]string, error) {
	if t.st.vocab == nil {
		return nil, ErrUntrained
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		tok, err := t.st.vocab.IDToToken(id)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out[i] = tok
	}
	return out, nil
}

func maxLen[T any](seqs [][]T) int {
	n := 0
	for _, s := range seqs {
		n = max(n, len(s))
	}
	return n
}

func padIDs(seqs [][]int, padID int) {
	target := maxLen(seqs)
	for i := range seqs {
		for len(seqs[i]) < target {
			seqs[i] = append(seqs[i], padID)
		}
	}
}

func padTokens(seqs [][]string) {
	target := maxLen(seqs)
	for i := range seqs {
		for len(seqs[i]) < target {
			seqs[i] = append(seqs[i], PadToken)
		}
	}
}
