package pagination

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 40
	MaxLimit     = 100
)

// Params is the boundary-clamped page/limit pair. Construct it with Parse
// or FromQuery; the zero value is not usable.
type Params struct {
	Page  int
	Limit int
}

// Parse applies the boundary clamp: page floors at 1, limit caps at 100,
// and unparsable input falls back to the defaults instead of erroring.
func Parse(pageStr, limitStr string) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// FromQuery reads page/limit from the request query string.
func FromQuery(c *gin.Context) Params {
	return Parse(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "40"))
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the uniform list envelope returned by every list endpoint.
type Page[T any] struct {
	Data        []T   `json:"data"`
	TotalItems  int64 `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

// NewPage wraps one page of rows. TotalPages is ceil(total/limit), so an
// empty result set yields 0 pages, and a page past the end simply carries
// an empty Data slice.
func NewPage[T any](data []T, totalItems int64, p Params) *Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := int((totalItems + int64(p.Limit) - 1) / int64(p.Limit))
	return &Page[T]{
		Data:        data,
		TotalItems:  totalItems,
		CurrentPage: p.Page,
		TotalPages:  totalPages,
	}
}

// Map converts an envelope's rows while preserving the page bookkeeping.
func Map[T, U any](src *Page[T], convert func(T) U) *Page[U] {
	out := &Page[U]{
		Data:        make([]U, 0, len(src.Data)),
		TotalItems:  src.TotalItems,
		CurrentPage: src.CurrentPage,
		TotalPages:  src.TotalPages,
	}
	for _, item := range src.Data {
		out.Data = append(out.Data, convert(item))
	}
	return out
}

// Find runs the count+fetch pair for a prepared query. tx must already
// carry its model and predicates; order must be a stable key so pages do
// not shuffle between requests.
func Find[T any](ctx context.Context, tx *gorm.DB, p Params, order string) (*Page[T], error) {
	var total int64
	if err := tx.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, err
	}

	rows := make([]T, 0, p.Limit)
	err := tx.Session(&gorm.Session{}).WithContext(ctx).
		Order(order).
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return NewPage(rows, total, p), nil
}
