// Package query derives backend query parameters from table filter, sort and pagination state.
package query

import (
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/daterange"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

const (
	sortByKey    = "sortBy"
	sortOrderKey = "sortOrder"
	offsetKey    = "offset"
	limitKey     = "limit"
	fromSuffix   = "From"
	toSuffix     = "To"
)

// Params is a flat set of query parameters. Values are scalars, slices (multi-valued keys) or
// nested Params (bracket-encoded objects).
type Params map[string]interface{}

// Merge copies every entry of others into p, later entries winning, and returns p.
func (p Params) Merge(others ...Params) Params {
	for _, other := range others {
		for k, v := range other {
			p[k] = v
		}
	}
	return p
}

// DateRangeFields is implemented by filters whose date ranges are sent under their own keys
// rather than as plain filter fields.
type DateRangeFields interface {
	DateRangeFields() map[string]*daterange.DateRange
}

// ClearFilter converts a filter into Params, omitting fields whose value is an empty string, an
// empty or nil slice, or nil. Every other field is kept as-is. Struct filters are keyed by their
// mapstructure tags; fields tagged "-" are skipped.
func ClearFilter(filter interface{}) Params {
	params := Params{}
	if filter == nil {
		return params
	}

	var raw map[string]interface{}
	switch f := filter.(type) {
	case Params:
		raw = f
	case map[string]interface{}:
		raw = f
	default:
		if err := mapstructure.Decode(filter, &raw); err != nil {
			log.WithError(err).Errorf("unable to convert filter of type %T to query parameters", filter)
			return params
		}
	}
	for k, v := range raw {
		if isEmpty(v) {
			continue
		}
		params[k] = v
	}
	return params
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// PrepareNamedDateRange flattens r into {name}From and {name}To in epoch seconds. Dynamic
// ranges are resolved against now. A nil range yields no parameters.
func PrepareNamedDateRange(r *daterange.DateRange, name string, now time.Time) Params {
	if r == nil {
		return Params{}
	}
	// A tag that doesn't resolve becomes the empty window [now, now]; see daterange.ToStatic.
	from, to := daterange.Stringify(daterange.ToStatic(*r, now)).Bounds()
	return Params{
		name + fromSuffix: from,
		name + toSuffix:   to,
	}
}

// PrepareNestedDateRange is PrepareNamedDateRange for endpoints that expect the bounds as an
// object under name, i.e. name[nameFrom]=..&name[nameTo]=..
func PrepareNestedDateRange(r *daterange.DateRange, name string, now time.Time) Params {
	if r == nil {
		return Params{}
	}
	return Params{name: PrepareNamedDateRange(r, name, now)}
}

func PrepareSorting(sort model.SortParams) Params {
	return Params{
		sortByKey:    sort.SortBy,
		sortOrderKey: strings.ToUpper(string(sort.SortDirection)),
	}
}

// PrepareLimitOffset converts a page into an offset/limit pair. Out-of-range pages are left for
// the server to handle.
func PrepareLimitOffset(pagination model.PaginationParams) Params {
	return Params{
		offsetKey: pagination.PageNumber * pagination.PerPage,
		limitKey:  pagination.PerPage,
	}
}

// PrepareQueryParams merges the cleared filter, sorting and pagination, in that order.
// Any argument may be nil.
func PrepareQueryParams(filter interface{}, sort *model.SortParams, pagination *model.PaginationParams) Params {
	params := ClearFilter(filter)
	if sort != nil {
		params.Merge(PrepareSorting(*sort))
	}
	if pagination != nil {
		params.Merge(PrepareLimitOffset(*pagination))
	}
	return params
}
