package tokenizer

import (
	"fmt"
	"strings"

	"github.com/samcharles93/subword/internal/logger"
	"github.com/samcharles93/subword/internal/normalize"
)

const (
	StrategyBPE  = "bpe"
	StrategyWord = "word"
)

// Strategy is the variant-specific half of a Tokenizer: how text becomes
// words and how a frequency table becomes a vocabulary. The set is closed;
// BPEStrategy and WordStrategy are the only implementations.
type Strategy interface {
	Name() string
	SplitWords(text string) []string
	Train(table []WordCount, nIter int) (*Vocabulary, error)

	sealed()
}

// Options configures strategies and tokenizers. The zero value is usable.
type Options struct {
	Logger     logger.Logger
	Normalizer *normalize.Normalizer
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
	if o.Normalizer == nil {
		o.Normalizer = normalize.New(normalize.Options{Logger: o.Logger})
	}
	return o
}

// NewStrategy returns the strategy registered under name ("bpe" or "word").
func NewStrategy(name string, opts Options) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyBPE, "":
		return NewBPEStrategy(opts), nil
	case StrategyWord:
		return NewWordStrategy(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// BPEStrategy learns subword merges. Words come from
// Normalizer.SplitWithRules, so each text ends with the end marker word.
type BPEStrategy struct {
	norm *normalize.Normalizer
	log  logger.Logger
}

func NewBPEStrategy(opts Options) *BPEStrategy {
	opts = opts.withDefaults()
	return &BPEStrategy{norm: opts.Normalizer, log: opts.Logger.With("strategy", StrategyBPE)}
}

func (s *BPEStrategy) Name() string { return StrategyBPE }

func (s *BPEStrategy) SplitWords(text string) []string {
	return s.norm.SplitWithRules(text)
}

// Train re-expresses every word as its characters and performs up to nIter
// merges. The vocabulary lists every symbol left in the table in first-seen
// order, followed by PadToken.
func (s *BPEStrategy) Train(table []WordCount, nIter int) (*Vocabulary, error) {
	if nIter < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, nIter)
	}
	e := newMergeEngine(table, s.log)
	e.run(nIter)
	vocab := NewVocabulary(e.symbols())
	s.log.Info("bpe training finished",
		"words", len(table),
		"requested", nIter,
		"merges", len(e.merges),
		"vocab_size", vocab.Len(),
	)
	return vocab, nil
}

func (*BPEStrategy) sealed() {}

// WordStrategy treats every distinct word as a token. Frequencies and the
// iteration count are ignored.
type WordStrategy struct {
	norm *normalize.Normalizer
	log  logger.Logger
}

func NewWordStrategy(opts Options) *WordStrategy {
	opts = opts.withDefaults()
	return &WordStrategy{norm: opts.Normalizer, log: opts.Logger.With("strategy", StrategyWord)}
}

func (s *WordStrategy) Name() string { return StrategyWord }

func (s *WordStrategy) SplitWords(text string) []string {
	return s.norm.Split(text)
}

// Train returns the table's words in insertion order followed by PadToken.
func (s *WordStrategy) Train(table []WordCount, _ int) (*Vocabulary, error) {
	words := make([]string, len(table))
	for i, wc := range table {
		words[i] = wc.Word
	}
	vocab := NewVocabulary(words)
	s.log.Info("word vocabulary built", "vocab_size", vocab.Len())
	return vocab, nil
}

func (*WordStrategy) sealed() {}
