package tokenizer

import (
	"errors"
	"fmt"
)

// Snapshot is the persistable part of a Tokenizer. The raw corpus log is not
// included; the frequency table is enough to retrain.
type Snapshot struct {
	Strategy   string
	Iterations int
	WordFreq   []WordCount
	// Tokens is nil for an untrained tokenizer.
	Tokens []string
}

func (t *Tokenizer) Snapshot() Snapshot {
	snap := Snapshot{
		Strategy:   t.strategy.Name(),
		Iterations: t.st.iterations,
		WordFreq:   t.st.corpus.WordFreq(),
	}
	if t.st.vocab != nil {
		snap.Tokens = t.st.vocab.Tokens()
	}
	return snap
}

// Restore rebuilds a Tokenizer from a snapshot.
func Restore(snap Snapshot, opts Options) (*Tokenizer, error) {
	s, err := NewStrategy(snap.Strategy, opts)
	if err != nil {
		return nil, err
	}
	t := New(s, opts)
	for i, wc := range snap.WordFreq {
		if wc.Count < 1 {
			return nil, fmt.Errorf("restore: word %d (%q) has count %d", i, wc.Word, wc.Count)
		}
		t.st.corpus.addCount(wc.Word, wc.Count)
	}
	if snap.Tokens != nil {
		if len(snap.Tokens) == 0 || snap.Tokens[len(snap.Tokens)-1] != PadToken {
			return nil, errors.New("restore: vocabulary must end with the padding token")
		}
		vocab := NewVocabulary(snap.Tokens)
		if vocab.Len() != len(snap.Tokens) {
			return nil, errors.New("restore: vocabulary contains duplicate tokens")
		}
		t.st.vocab = vocab
		t.st.iterations = snap.Iterations
	}
	return t, nil
}
