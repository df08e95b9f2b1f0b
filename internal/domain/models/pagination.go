package models

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginationQuery struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps page and limit to sane values
func (q PaginationQuery) Normalize() PaginationQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

// Offset returns the row offset of the page
func (q PaginationQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type PaginationResult struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPaginationResult builds the pagination block for a normalized query
func NewPaginationResult(q PaginationQuery, total int64) PaginationResult {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return PaginationResult{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    q.Page < totalPages,
		HasPrev:    q.Page > 1,
	}
}
