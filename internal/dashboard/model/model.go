// Package model holds the entities served by the SSM backend together with the filter, sort and
// pagination shapes used to query them.
package model

import "time"

type SortDirection string

const (
	DirectionAsc  SortDirection = "asc"
	DirectionDesc SortDirection = "desc"
)

type SortParams struct {
	SortBy        string        `json:"sortBy"`
	SortDirection SortDirection `json:"sortDirection"`
}

type PaginationParams struct {
	PageNumber int `json:"pageNumber"`
	PerPage    int `json:"perPage"`
}

// Collection is one page of a collection endpoint's result set.
type Collection[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// Timestamp is an instant in milliseconds since the Unix epoch, as sent by the backend.
type Timestamp int64

func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

func (t Timestamp) String() string {
	if t == 0 {
		return "-"
	}
	return t.Time().Format(time.RFC3339)
}
