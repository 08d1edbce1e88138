package tokenizer

import "github.com/emirpasic/gods/maps/linkedhashmap"

// WordCount is one entry of the word frequency table.
type WordCount struct {
	Word  string `json:"word" cbor:"word"`
	Count int    `json:"count" cbor:"count"`
}

// CorpusIndex accumulates raw texts and the frequency of every word they
// produced. It only grows. Iteration order is the order in which each
// distinct word was first added, and training depends on that order.
type CorpusIndex struct {
	texts []string
	freq  *linkedhashmap.Map // string -> int
	total int
}

func NewCorpusIndex() *CorpusIndex {
	return &CorpusIndex{freq: linkedhashmap.New()}
}

// add records text in the corpus log and counts every word once.
func (c *CorpusIndex) add(text string, words []string) {
	c.texts = append(c.texts, text)
	for _, w := range words {
		c.addCount(w, 1)
	}
}

func (c *CorpusIndex) addCount(word string, n int) {
	if v, ok := c.freq.Get(word); ok {
		c.freq.Put(word, v.(int)+n)
	} else {
		c.freq.Put(word, n)
	}
	c.total += n
}

// Texts returns the raw texts in the order they were added.
func (c *CorpusIndex) Texts() []string {
	return append([]string(nil), c.texts...)
}

// Len is the number of distinct words.
func (c *CorpusIndex) Len() int { return c.freq.Size() }

// TotalWords is the sum of all word frequencies.
func (c *CorpusIndex) TotalWords() int { return c.total }

// Freq returns the count for word, zero when absent.
func (c *CorpusIndex) Freq(word string) int {
	if v, ok := c.freq.Get(word); ok {
		return v.(int)
	}
	return 0
}

// WordFreq returns the frequency table in insertion order.
func (c *CorpusIndex) WordFreq() []WordCount {
	out := make([]WordCount, 0, c.freq.Size())
	it := c.freq.Iterator()
	for it.Next() {
		out = append(out, WordCount{Word: it.Key().(string), Count: it.Value().(int)})
	}
	return out
}
