package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceBounds(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		total      int
		start, end int
	}{
		{"first page", 1, 10, 25, 0, 10},
		{"middle page", 2, 10, 25, 10, 20},
		{"short last page", 3, 10, 25, 20, 25},
		{"page past the end clamps to last page", 5, 10, 25, 20, 25},
		{"empty set", 1, 10, 0, 0, 0},
		{"invalid page defaults to first", 0, 10, 25, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := SliceBounds(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage(25, 2, 10)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalItems)

	// Page clamped to the last page when it overshoots.
	p = NewPage(25, 9, 10)
	assert.Equal(t, 3, p.CurrentPage)

	// Empty result still reports one page.
	p = NewPage(0, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
}

// An overshooting page request must yield metadata and slice bounds that
// agree: the reported page carries that page's data, never an empty slice.
func TestOvershootPageMetadataMatchesBounds(t *testing.T) {
	p := NewPage(25, 9, 10)
	start, end := SliceBounds(9, 10, 25)

	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
	assert.Equal(t, (p.CurrentPage-1)*p.PageSize, start)
}
