package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1
)

// Page describes one page of a result set. Listing endpoints attach it
// alongside the data slice.
type Page struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// ParsePageParams reads 1-based page/size query parameters, falling back
// to defaults on anything unparseable.
func ParsePageParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// NewPage builds page metadata for a filtered total.
func NewPage(totalItems int64, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	return Page{CurrentPage: page, TotalPages: totalPages, PageSize: size, TotalItems: totalItems}
}

// SliceBounds converts a 1-based page into [start, end) indices over an
// in-memory filtered slice. Filtering on derived fields happens before
// pagination, so paging is always applied to the already-filtered set.
// An out-of-range page is clamped to the last page, matching NewPage.
func SliceBounds(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	if totalItems <= 0 {
		return 0, 0
	}

	totalPages := (totalItems + size - 1) / size
	if page > totalPages {
		page = totalPages
	}

	start = (page - 1) * size
	end = start + size
	if end > totalItems {
		end = totalItems
	}
	return start, end
}
