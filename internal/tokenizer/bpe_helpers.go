package tokenizer

// Pair is two adjacent symbols inside a word.
type Pair struct {
	A string
	B string
}

func (p Pair) merged() string { return p.A + p.B }

// Location is one occurrence of a pair: the index of the word in the
// training table and the position of the pair's first symbol in it.
type Location struct {
	Word int
	Pos  int
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// mergeAt rebuilds word with pair merged at every position in positions.
// positions must be ascending. A position that overlaps a merge already made
// in this pass is skipped, so "a a a" with (a, a) becomes "aa a".
func mergeAt(word []string, pair Pair, positions []int) []string {
	out := make([]string, 0, len(word))
	next := 0
	for _, pos := range positions {
		if pos < next {
			continue
		}
		out = append(out, word[next:pos]...)
		out = append(out, pair.merged())
		next = pos + 2
	}
	return append(out, word[next:]...)
}
