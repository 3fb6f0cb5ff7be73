package ingest

import (
	"fmt"
	"math"
)

// PageRange is an inclusive, 1-based page span.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String renders the persisted form, e.g. "3 a 5".
func (r PageRange) String() string {
	return fmt.Sprintf("%d a %d", r.Start, r.End)
}

// EstimatePages maps the half-open character range [startChar, endChar) to
// the pages it most likely covers, assuming characters are spread evenly
// across pages. The result is always inside [1, totalPages].
func EstimatePages(startChar, endChar, totalChars, totalPages int) (PageRange, error) {
	if totalPages <= 0 || totalChars <= 0 {
		return PageRange{}, ErrInvalidDocument
	}

	density := float64(totalChars) / float64(totalPages)
	last := max(endChar-1, startChar)

	return PageRange{
		Start: pageAt(startChar, density, totalPages),
		End:   pageAt(last, density, totalPages),
	}, nil
}

func pageAt(offset int, density float64, totalPages int) int {
	page := int(math.Floor(float64(offset)/density)) + 1
	return max(1, min(page, totalPages))
}
