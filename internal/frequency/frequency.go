// Package frequency tallies word tokens and selects the top entries.
package frequency

import (
	"sort"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
)

// Business constants carried over from the original collection policy.
const (
	// TopWordsPerSnapshot caps how many word counts are persisted per
	// snapshot, keeping per-run storage bounded.
	TopWordsPerSnapshot = 50

	// TopWordsSummary is the number of words included in the collect
	// response summary.
	TopWordsSummary = 5
)

// Count tallies tokens by distinct word and returns the counts ordered by
// count descending. Words with equal counts keep their first-occurrence
// order in the token stream, so the result is deterministic for a given
// input sequence.
func Count(tokens []string) []domain.WordCount {
	tally := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if _, seen := tally[token]; !seen {
			order = append(order, token)
		}
		tally[token]++
	}

	counts := make([]domain.WordCount, 0, len(order))
	for _, word := range order {
		counts = append(counts, domain.WordCount{Word: word, Count: tally[word]})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts
}

// TopN returns the first n entries of an already-ordered count list.
// It never copies; callers must not mutate the shared backing array.
func TopN(counts []domain.WordCount, n int) []domain.WordCount {
	if n < 0 {
		n = 0
	}
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}
