package slices

import (
	"github.com/pkg/errors"
	goslices "golang.org/x/exp/slices"
)

// Map returns a new slice holding f applied to every element of s.
func Map[S ~[]E, E any, V any](s S, f func(E) V) []V {
	rv := make([]V, len(s))
	for i, e := range s {
		rv[i] = f(e)
	}
	return rv
}

// Unique returns a copy of s with duplicate elements removed, keeping only the first occurrence.
func Unique[S ~[]E, E comparable](s S) S {
	if s == nil {
		return nil
	}
	rv := make(S, 0)
	seen := make(map[E]bool)
	for _, v := range s {
		if !seen[v] {
			rv = append(rv, v)
			seen[v] = true
		}
	}
	return rv
}

// GroupByFunc groups the elements e_1, ..., e_n of s into separate slices by keyFunc(e).
func GroupByFunc[S ~[]E, E any, K comparable](s S, keyFunc func(E) K) map[K]S {
	rv := make(map[K]S)
	for _, e := range s {
		k := keyFunc(e)
		rv[k] = append(rv[k], e)
	}
	return rv
}

// ParseEnums converts raw values into the string-based enum type T, failing on the first value
// not contained in allowed. Duplicates are dropped.
func ParseEnums[T ~string](values []string, allowed []T) ([]T, error) {
	if len(values) == 0 {
		return nil, nil
	}
	rv := make([]T, 0, len(values))
	for _, v := range values {
		parsed := T(v)
		if !goslices.Contains(allowed, parsed) {
			return nil, errors.Errorf("unknown value %q, expected one of %v", v, allowed)
		}
		rv = append(rv, parsed)
	}
	return Unique(rv), nil
}
