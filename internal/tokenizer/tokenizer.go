// Package tokenizer trains byte-pair-encoding and word vocabularies from an
// accumulated corpus and encodes text into token IDs.
//
// A Tokenizer is not safe for concurrent use. Callers sharing one instance
// must serialize Add and Train against each other and against encoding.
package tokenizer

import (
	"fmt"

	"github.com/samcharles93/subword/internal/logger"
)

// state is everything a Tokenizer owns. vocab is nil until Train succeeds.
// version increases on every successful mutation.
type state struct {
	version    uint64
	corpus     *CorpusIndex
	vocab      *Vocabulary
	iterations int
}

// Tokenizer is the shared add/train/encode pipeline over a Strategy.
type Tokenizer struct {
	strategy Strategy
	log      logger.Logger
	st       state
}

// New returns an untrained tokenizer. Any corpus texts are added immediately.
func New(s Strategy, opts Options, corpus ...string) *Tokenizer {
	opts = opts.withDefaults()
	t := &Tokenizer{
		strategy: s,
		log:      opts.Logger,
		st:       state{corpus: NewCorpusIndex()},
	}
	if len(corpus) > 0 {
		t.Add(corpus...)
	}
	return t
}

// NewBPE is New with a BPEStrategy sharing opts.
func NewBPE(opts Options, corpus ...string) *Tokenizer {
	return New(NewBPEStrategy(opts), opts, corpus...)
}

// NewWord is New with a WordStrategy sharing opts.
func NewWord(opts Options, corpus ...string) *Tokenizer {
	return New(NewWordStrategy(opts), opts, corpus...)
}

func (t *Tokenizer) Strategy() Strategy { return t.strategy }

// Version counts successful Add and Train calls.
func (t *Tokenizer) Version() uint64 { return t.st.version }

func (t *Tokenizer) Trained() bool { return t.st.vocab != nil }

// Vocabulary returns the trained vocabulary, or nil before training.
func (t *Tokenizer) Vocabulary() *Vocabulary { return t.st.vocab }

// Iterations is the iteration count of the last successful Train.
func (t *Tokenizer) Iterations() int { return t.st.iterations }

// Corpus exposes the accumulated corpus for reading.
func (t *Tokenizer) Corpus() *CorpusIndex { return t.st.corpus }

// WordsFor splits text the way the strategy does for both training and encoding.
func (t *Tokenizer) WordsFor(text string) []string {
	return t.strategy.SplitWords(text)
}

// Add appends texts to the corpus and counts their words.
func (t *Tokenizer) Add(texts ...string) {
	if len(texts) == 0 {
		return
	}
	split := make([][]string, len(texts))
	for i, text := range texts {
		split[i] = t.strategy.SplitWords(text)
	}
	for i, text := range texts {
		t.st.corpus.add(text, split[i])
	}
	t.st.version++
	t.log.Debug("corpus updated",
		"texts", len(texts),
		"distinct_words", t.st.corpus.Len(),
		"total_words", t.st.corpus.TotalWords(),
	)
}

// AddInput is Add for dynamically typed input: a string, []string or []any
// holding only strings. Anything else fails with ErrInvalidInput and leaves
// the corpus untouched. nil is a no-op.
func (t *Tokenizer) AddInput(v any) error {
	if v == nil {
		return nil
	}
	texts, _, err := TextsFromInput(v)
	if err != nil {
		return err
	}
	t.Add(texts...)
	return nil
}

// Train rebuilds the vocabulary from the corpus as it stands now. The corpus
// itself is not modified. On error the previous vocabulary is kept.
func (t *Tokenizer) Train(nIter int) error {
	if nIter < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, nIter)
	}
	vocab, err := t.strategy.Train(t.st.corpus.WordFreq(), nIter)
	if err != nil {
		return fmt.Errorf("train %s: %w", t.strategy.Name(), err)
	}
	t.st.vocab = vocab
	t.st.iterations = nIter
	t.st.version++
	return nil
}
