package services

import (
	"math"
	"net/http"

	"pos-backoffice/dtos"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Paginate normalizes page and limit and returns the row offset. Pages past
// the point where the offset would leave int32 range are clamped.
func Paginate(page, limit int) (int, int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit, (page - 1) * limit
}

// NewPage builds a paginated envelope around data.
func NewPage(message string, data any, total int64, page, limit int) *dtos.PaginatedResponse {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &dtos.PaginatedResponse{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
