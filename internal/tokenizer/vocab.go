package tokenizer

import "fmt"

const (
	// PadToken is the reserved padding entry, always the last vocabulary token.
	PadToken = "*"
	// UnknownID is the ID reported for tokens absent from the vocabulary.
	UnknownID = -1
)

// Vocabulary is an ordered set of tokens. A token's ID is its position.
// It is immutable once built.
type Vocabulary struct {
	tokens []string
	ids    map[string]int
}

// NewVocabulary builds a vocabulary from tokens in order, dropping
// duplicates and any early PadToken, and appends PadToken last.
func NewVocabulary(tokens []string) *Vocabulary {
	v := &Vocabulary{
		tokens: make([]string, 0, len(tokens)+1),
		ids:    make(map[string]int, len(tokens)+1),
	}
	for _, tok := range tokens {
		if tok == PadToken {
			continue
		}
		if _, ok := v.ids[tok]; ok {
			continue
		}
		v.ids[tok] = len(v.tokens)
		v.tokens = append(v.tokens, tok)
	}
	v.ids[PadToken] = len(v.tokens)
	v.tokens = append(v.tokens, PadToken)
	return v
}

func (v *Vocabulary) Len() int { return len(v.tokens) }

// PadID is the ID of PadToken, always Len()-1.
func (v *Vocabulary) PadID() int { return len(v.tokens) - 1 }

func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.ids[token]
	return ok
}

// TokenID returns the ID of token or UnknownID.
func (v *Vocabulary) TokenID(token string) int {
	if id, ok := v.ids[token]; ok {
		return id
	}
	return UnknownID
}

// IDToToken is the inverse of TokenID for IDs in [0, Len()).
func (v *Vocabulary) IDToToken(id int) (string, error) {
	if id < 0 || id >= len(v.tokens) {
		return "", fmt.Errorf("%w: %d (vocabulary size %d)", ErrTokenIDOutOfRange, id, len(v.tokens))
	}
	return v.tokens[id], nil
}

// Tokens returns a copy of the ordered token list.
func (v *Vocabulary) Tokens() []string {
	return append([]string(nil), v.tokens...)
}

// Segment splits word greedily: the running candidate grows one character
// at a time while the grown string is a known token. When growing would
// leave the vocabulary, the candidate is emitted and a new one starts at the
// current character. The last candidate is emitted even when unknown.
func (v *Vocabulary) Segment(word string) []string {
	var out []string
	cur := ""
	for _, r := range word {
		next := cur + string(r)
		if cur != "" && !v.Contains(next) {
			out = append(out, cur)
			cur = string(r)
			continue
		}
		cur = next
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
