package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// MaxWordCloudSize caps the number of words the word cloud returns.
const MaxWordCloudSize = 50

// minTokenLength: tokens of this length or shorter are dropped.
const minTokenLength = 3

// WordCount is one word-cloud item. Serialized as ["word", count].
type WordCount struct {
	Word  string
	Count int
}

// Tokenize lower-cases the text, strips every rune that is not a letter,
// digit or whitespace, and splits on whitespace. Punctuation is removed,
// not replaced, so "don't" yields "dont".
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Fields(b.String())
}

// TopWords counts token frequency across all texts and returns at most
// MaxWordCloudSize words ordered by descending count. Tokens shorter than
// three characters and stop words are excluded. Ties keep first-encountered
// order: the sort is stable over the sequence in which words first appeared.
func TopWords(texts []string) []WordCount {
	counts := make(map[string]int)
	var firstSeen []string

	for _, text := range texts {
		for _, token := range Tokenize(text) {
			if len(token) < minTokenLength || IsStopWord(token) {
				continue
			}
			if _, seen := counts[token]; !seen {
				firstSeen = append(firstSeen, token)
			}
			counts[token]++
		}
	}

	out := make([]WordCount, 0, len(firstSeen))
	for _, word := range firstSeen {
		out = append(out, WordCount{Word: word, Count: counts[word]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > MaxWordCloudSize {
		out = out[:MaxWordCloudSize]
	}
	return out
}
