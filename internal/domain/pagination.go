package domain

import "math"

// Pagination describes where a page sits within the full result set.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination computes page metadata. page and limit must be at least 1.
// A page past the last one is not clamped: it reports HasNext == false.
// HasNext compares page numbers so no product of page and limit is formed.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Skip returns the store offset of the first entry on page.
func Skip(page, limit int) int {
	return (page - 1) * limit
}

// PageFits reports whether the offset of page at limit is representable.
// limit must be at least 1.
func PageFits(page, limit int) bool {
	return page >= 1 && page-1 <= math.MaxInt/limit
}
