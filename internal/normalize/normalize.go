// Package normalize turns raw text into the word sequences consumed by the
// tokenizer: lower-cased, split on whitespace and a fixed punctuation set,
// and optionally split around apostrophes.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/samcharles93/subword/internal/logger"
)

// DefaultPunctuation is the set of characters that separate words in
// addition to whitespace. The apostrophe is deliberately absent so that
// contractions survive until SplitQuote sees them.
const DefaultPunctuation = "`\\-=[];,./~!@#$%^&*()_+{}|:\"<>?"

// EndMarker is appended once per text by SplitWithRules.
const EndMarker = `<\w>`

type Options struct {
	// Punctuation overrides DefaultPunctuation when non-empty.
	Punctuation string
	// Logger receives notes about apostrophe patterns SplitQuote cannot classify.
	Logger logger.Logger
}

type Normalizer struct {
	punct string
	log   logger.Logger
}

func New(opts Options) *Normalizer {
	n := &Normalizer{
		punct: opts.Punctuation,
		log:   opts.Logger,
	}
	if n.punct == "" {
		n.punct = DefaultPunctuation
	}
	if n.log == nil {
		n.log = logger.Discard()
	}
	return n
}

// Split lower-cases text and splits it on whitespace and punctuation.
// Empty fragments are dropped.
func (n *Normalizer) Split(text string) []string {
	// Casers carry state and are not safe to share, so build one per call.
	lower := cases.Lower(language.Und).String(text)
	return strings.FieldsFunc(lower, n.isSeparator)
}

// SplitWithRules is Split followed by apostrophe handling on every word,
// with EndMarker appended as a final word.
func (n *Normalizer) SplitWithRules(text string) []string {
	words := n.Split(text)
	out := make([]string, 0, len(words)+1)
	for _, w := range words {
		if !strings.Contains(w, "'") {
			out = append(out, w)
			continue
		}
		first, second, ok := SplitQuote(w)
		if !ok {
			n.log.Warn("unclassified apostrophe pattern", "word", w)
		}
		if first != "" {
			out = append(out, first)
		}
		if second != "" {
			out = append(out, second)
		}
	}
	return append(out, EndMarker)
}

func (n *Normalizer) isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(n.punct, r)
}

var (
	longSuffixes  = []string{"n't", "'ve", "'ll", "'re"}
	shortSuffixes = []string{"'d", "'m", "'s", "s'"}
)

// SplitQuote splits an apostrophe-bearing word into a stem and a
// contraction or possessive suffix. Quoting apostrophes are stripped first:
// every leading one, and trailing ones unless the word ends in "s'".
//
// second is empty when the word has no suffix left to split. ok is false
// when an apostrophe remains that matches no known suffix; first is then the
// word exactly as given.
func SplitQuote(word string) (first, second string, ok bool) {
	s := word
	for strings.Contains(s, "'") {
		if strings.HasPrefix(s, "'") {
			s = s[1:]
		} else if strings.HasSuffix(s, "'") && !strings.HasSuffix(s, "s'") {
			s = s[:len(s)-1]
		} else {
			break
		}
	}

	if !strings.Contains(s, "'") {
		return s, "", true
	}
	for _, suf := range longSuffixes {
		if strings.HasSuffix(s, suf) {
			return s[:len(s)-3], s[len(s)-3:], true
		}
	}
	for _, suf := range shortSuffixes {
		if strings.HasSuffix(s, suf) {
			return s[:len(s)-2], s[len(s)-2:], true
		}
	}
	return word, "", false
}
