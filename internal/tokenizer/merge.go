package tokenizer

import "github.com/samcharles93/subword/internal/logger"

// pairStat accumulates one candidate pair during a counting pass.
type pairStat struct {
	pair Pair
	freq int
	locs []Location
}

// mergeRecord is a pair chosen during training and its frequency at the time.
type mergeRecord struct {
	Pair Pair
	Freq int
}

// mergeEngine runs BPE training over an arena of symbol sequences. Word i
// of the arena keeps the index it had in the frequency table, and its
// frequency never changes, so total frequency mass is conserved.
type mergeEngine struct {
	words  [][]string
	freqs  []int
	merges []mergeRecord
	log    logger.Logger
}

func newMergeEngine(table []WordCount, log logger.Logger) *mergeEngine {
	e := &mergeEngine{
		words: make([][]string, len(table)),
		freqs: make([]int, len(table)),
		log:   log,
	}
	for i, wc := range table {
		e.words[i] = splitRunes(wc.Word)
		e.freqs[i] = wc.Count
	}
	return e
}

// countPairs scans every word and returns pair statistics in the order each
// pair was first encountered. A pair occurring twice in one word counts twice.
func (e *mergeEngine) countPairs() []*pairStat {
	var stats []*pairStat
	index := make(map[Pair]int)
	for wi, syms := range e.words {
		for j := 0; j+1 < len(syms); j++ {
			p := Pair{A: syms[j], B: syms[j+1]}
			k, ok := index[p]
			if !ok {
				k = len(stats)
				index[p] = k
				stats = append(stats, &pairStat{pair: p})
			}
			st := stats[k]
			st.freq += e.freqs[wi]
			st.locs = append(st.locs, Location{Word: wi, Pos: j})
		}
	}
	return stats
}

// selectPair returns the pair with the highest frequency. On ties the pair
// encountered first wins. It returns nil for no candidates.
func selectPair(stats []*pairStat) *pairStat {
	var best *pairStat
	for _, st := range stats {
		if best == nil || st.freq > best.freq {
			best = st
		}
	}
	return best
}

// apply merges st.pair at each recorded location. Locations arrive grouped
// by word with ascending positions, which is the order countPairs emits.
func (e *mergeEngine) apply(st *pairStat) {
	locs := st.locs
	positions := make([]int, 0, 4)
	for i := 0; i < len(locs); {
		wi := locs[i].Word
		positions = positions[:0]
		for ; i < len(locs) && locs[i].Word == wi; i++ {
			positions = append(positions, locs[i].Pos)
		}
		e.words[wi] = mergeAt(e.words[wi], st.pair, positions)
	}
}

// run performs up to nIter merges, stopping early once no word has two
// symbols left.
func (e *mergeEngine) run(nIter int) {
	for iter := 0; iter < nIter; iter++ {
		best := selectPair(e.countPairs())
		if best == nil {
			e.log.Debug("no pairs left", "iteration", iter)
			return
		}
		e.apply(best)
		e.merges = append(e.merges, mergeRecord{Pair: best.pair, Freq: best.freq})
		e.log.Debug("merged pair",
			"iteration", iter+1,
			"left", best.pair.A,
			"right", best.pair.B,
			"freq", best.freq,
			"occurrences", len(best.locs),
		)
	}
}

// symbols lists every distinct symbol in first-seen order across the arena.
func (e *mergeEngine) symbols() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, syms := range e.words {
		for _, s := range syms {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
