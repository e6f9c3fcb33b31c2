package frequency_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/frequency"
)

func TestCount(t *testing.T) {
	testCases := []struct {
		name   string
		tokens []string
		want   []domain.WordCount
	}{
		{
			name:   "empty input",
			tokens: nil,
			want:   []domain.WordCount{},
		},
		{
			name:   "single word",
			tokens: []string{"rust"},
			want:   []domain.WordCount{{Word: "rust", Count: 1}},
		},
		{
			name:   "ordered by count descending",
			tokens: []string{"rust", "database", "rust", "engine", "rust", "database"},
			want: []domain.WordCount{
				{Word: "rust", Count: 3},
				{Word: "database", Count: 2},
				{Word: "engine", Count: 1},
			},
		},
		{
			name:   "equal counts keep first-occurrence order",
			tokens: []string{"zebra", "apple", "mango", "zebra", "apple", "mango"},
			want: []domain.WordCount{
				{Word: "zebra", Count: 2},
				{Word: "apple", Count: 2},
				{Word: "mango", Count: 2},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := frequency.Count(tc.tokens)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTopN(t *testing.T) {
	counts := frequency.Count([]string{"aaa", "aaa", "aaa", "bbb", "bbb", "ccc", "ddd"})

	testCases := []struct {
		n       int
		wantLen int
	}{
		{n: 0, wantLen: 0},
		{n: -1, wantLen: 0},
		{n: 2, wantLen: 2},
		{n: 4, wantLen: 4},
		{n: 100, wantLen: 4},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			got := frequency.TopN(counts, tc.n)
			require.Len(t, got, tc.wantLen)

			// The prefix must still be ordered by count descending.
			for i := 1; i < len(got); i++ {
				assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
			}
		})
	}
}

// The persisted cap and summary size are fixed business constants; a change
// here changes what gets stored and returned.
func TestBusinessConstants(t *testing.T) {
	assert.Equal(t, 50, frequency.TopWordsPerSnapshot)
	assert.Equal(t, 5, frequency.TopWordsSummary)
}
