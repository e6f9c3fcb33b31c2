// Package tokenizer turns raw feed titles into filtered word tokens.
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// minWordLength is the shortest token kept, exclusive ("ai" is out, "llm" is in).
const minWordLength = 3

// DefaultStopwords is the fixed set of common function words and
// forum-specific noise words excluded from every tally. Membership is part
// of the stored-data contract: changing it changes what past and future
// snapshots are comparable on.
var DefaultStopwords = []string{
	"the", "to", "of", "and", "a", "in", "is", "for", "on", "with",
	"it", "this", "that", "are", "be", "at", "as", "from", "or", "by",
	"an", "we", "show", "hn", "ask", "new", "how", "why", "what", "who",
	"your", "my", "i", "you",
}

// Tokenizer splits title text into normalized word tokens.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// New creates a Tokenizer with the given stopword list.
func New(stopwords []string) *Tokenizer {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: set}
}

// Tokenize concatenates the titles, lowercases the text, and segments it at
// Unicode word boundaries (UAX #29). A token survives when it is entirely
// alphabetic, at least minWordLength runes long, and not a stopword.
// Empty input yields an empty (non-nil) slice.
func (t *Tokenizer) Tokenize(titles []string) []string {
	text := strings.ToLower(strings.Join(titles, " "))

	tokens := []string{}
	iter := words.FromString(text)
	for iter.Next() {
		word := iter.Value()
		if !t.keep(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// keep reports whether a segmented token passes the filter.
func (t *Tokenizer) keep(word string) bool {
	if !isAlphabetic(word) {
		return false
	}
	if runeLen(word) < minWordLength {
		return false
	}
	_, stopped := t.stopwords[word]
	return !stopped
}

// isAlphabetic reports whether the token consists solely of letters.
// Segmentation emits whitespace and punctuation runs as their own tokens,
// so this also discards separators.
func isAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func runeLen(word string) int {
	n := 0
	for range word {
		n++
	}
	return n
}
