package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePages(t *testing.T) {
	cases := []struct {
		name       string
		start, end int
		chars      int
		pages      int
		want       PageRange
	}{
		{"first page", 0, 100, 1000, 10, PageRange{1, 1}},
		{"tail clamps to last page", 950, 1000, 1000, 10, PageRange{10, 10}},
		{"second page", 100, 200, 1000, 10, PageRange{2, 2}},
		{"spans three pages", 50, 250, 1000, 10, PageRange{1, 3}},
		{"single page document", 0, 1000, 1000, 1, PageRange{1, 1}},
		{"more pages than chars", 2, 3, 3, 10, PageRange{7, 7}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EstimatePages(tc.start, tc.end, tc.chars, tc.pages)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEstimatePages_StaysInRange(t *testing.T) {
	for pages := 1; pages <= 7; pages++ {
		for _, chars := range []int{1, 5, 13, 100, 997} {
			for start := 0; start <= chars; start += max(1, chars/17) {
				for end := start; end <= chars; end += max(1, chars/11) {
					got, err := EstimatePages(start, end, chars, pages)
					require.NoError(t, err)
					require.GreaterOrEqual(t, got.Start, 1)
					require.LessOrEqual(t, got.Start, got.End)
					require.LessOrEqual(t, got.End, pages)
				}
			}
		}
	}
}

func TestEstimatePages_InvalidDocument(t *testing.T) {
	_, err := EstimatePages(0, 10, 100, 0)
	require.ErrorIs(t, err, ErrInvalidDocument)

	_, err = EstimatePages(0, 0, 0, 3)
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestPageRange_String(t *testing.T) {
	assert.Equal(t, "3 a 5", PageRange{Start: 3, End: 5}.String())
}
