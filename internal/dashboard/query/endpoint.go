package query

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

// ArrayFormat controls how multi-valued parameters are encoded.
type ArrayFormat int

const (
	// Repeat encodes key=v1&key=v2.
	Repeat ArrayFormat = iota
	// Indices encodes key[0]=v1&key[1]=v2.
	Indices
)

// DateRangeStyle controls how date-range filter fields are encoded.
type DateRangeStyle int

const (
	// Flat encodes {name}From={from}&{name}To={to}.
	Flat DateRangeStyle = iota
	// Nested encodes {name}[{name}From]={from}&{name}[{name}To]={to}.
	Nested
)

// Endpoint describes the query-string contract of one collection endpoint.
type Endpoint struct {
	Path           string
	DateRangeStyle DateRangeStyle
	ArrayFormat    ArrayFormat
}

// Params builds the complete parameter set for a request against e: the cleared filter, its
// date ranges in e's style, then sorting and pagination.
func (e Endpoint) Params(filter interface{}, sort *model.SortParams, pagination *model.PaginationParams, now time.Time) Params {
	params := ClearFilter(filter)
	if ranged, ok := filter.(DateRangeFields); ok {
		for name, r := range ranged.DateRangeFields() {
			if e.DateRangeStyle == Nested {
				params.Merge(PrepareNestedDateRange(r, name, now))
			} else {
				params.Merge(PrepareNamedDateRange(r, name, now))
			}
		}
	}
	return params.Merge(PrepareQueryParams(nil, sort, pagination))
}

// Values encodes p for use in a URL.
func (p Params) Values(format ArrayFormat) url.Values {
	values := url.Values{}
	for _, k := range sortedKeys(p) {
		addValue(values, k, p[k], format)
	}
	return values
}

// Encode is Values(format).Encode().
func (p Params) Encode(format ArrayFormat) string {
	return p.Values(format).Encode()
}

func addValue(values url.Values, key string, v interface{}, format ArrayFormat) {
	switch x := v.(type) {
	case nil:
		return
	case Params:
		for _, k := range sortedKeys(x) {
			addValue(values, fmt.Sprintf("%s[%s]", key, k), x[k], format)
		}
		return
	case map[string]interface{}:
		addValue(values, key, Params(x), format)
		return
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			elemKey := key
			if format == Indices {
				elemKey = fmt.Sprintf("%s[%d]", key, i)
			}
			addValue(values, elemKey, rv.Index(i).Interface(), format)
		}
		return
	}
	values.Add(key, fmt.Sprint(v))
}

func sortedKeys(p Params) []string {
	keys := maps.Keys(p)
	slices.Sort(keys)
	return keys
}
