package model

// Pagination describes one page of a list response.
// TotalPages is always ceil(Total/Limit).
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the page envelope for a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PageRequest holds normalized page/limit query parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit to sane values, applying the defaults
// used across all list endpoints.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset returns the row offset for the normalized page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}
