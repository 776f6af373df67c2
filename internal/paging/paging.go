package paging

import (
	"net/url"
	"strconv"

	"github.com/hugh/scoutzos/internal/apperr"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Params struct {
	Page     int
	PageSize int
}

// Page is one slice of a tenant's records. Total counts every matching
// record, independent of the slice.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func Default() Params {
	return Params{Page: 1, PageSize: DefaultPageSize}
}

// Validate rejects out-of-range values instead of clamping them.
func (p Params) Validate() error {
	fields := make(map[string]string)
	if p.Page < 1 {
		fields["page"] = "must be greater than or equal to 1"
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		fields["page_size"] = "must be between 1 and " + strconv.Itoa(MaxPageSize)
	}
	if len(fields) > 0 {
		return apperr.Validation("Invalid pagination parameters", fields)
	}
	return nil
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// FromQuery reads page and page_size, falling back to defaults when a
// parameter is absent.
func FromQuery(q url.Values) (Params, error) {
	p := Default()
	fields := make(map[string]string)

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields["page"] = "must be an integer"
		}
		p.Page = n
	}
	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields["page_size"] = "must be an integer"
		}
		p.PageSize = n
	}
	if len(fields) > 0 {
		return p, apperr.Validation("Invalid pagination parameters", fields)
	}

	return p, p.Validate()
}
