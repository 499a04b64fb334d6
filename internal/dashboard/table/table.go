// Package table implements the state machine behind every paginated table: a filter, sort
// parameters, pagination and a polling frequency, mutated only through a fixed set of
// transitions. Each transition replaces the affected part of the state wholesale under a lock,
// so readers always observe a consistent State.
package table

import (
	"sync"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

type State[F any] struct {
	Filter           F                      `json:"filter"`
	SortParams       model.SortParams       `json:"sortParams"`
	PaginationParams model.PaginationParams `json:"paginationParams"`
	// RequestFrequency is the polling interval in seconds; 0 disables polling.
	RequestFrequency int `json:"requestFrequency"`
}

// Table owns the State of one table view. The zero value is not usable; call New.
type Table[F any] struct {
	name     string
	defaults State[F]

	mu             sync.RWMutex
	state          State[F]
	listeners      map[int]func(State[F])
	nextListenerId int
}

// New creates a table in its default state.
func New[F any](name string, defaults State[F]) *Table[F] {
	return &Table[F]{
		name:      name,
		defaults:  defaults,
		state:     defaults,
		listeners: map[int]func(State[F]){},
	}
}

func (t *Table[F]) Name() string {
	return t.name
}

// State returns a copy of the current state. Slices inside the filter are shared with the table
// and must not be modified; transitions never modify them either.
func (t *Table[F]) State() State[F] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Defaults returns the state the table resets to.
func (t *Table[F]) Defaults() State[F] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.defaults
}

// SetDefaults replaces the defaults that the reset transitions restore and resets the table to them.
func (t *Table[F]) SetDefaults(defaults State[F]) State[F] {
	return t.apply(func(s *State[F]) {
		t.defaults = defaults
		*s = defaults
	})
}

// OnChange registers fn to be called with the new state after every transition. Calling the
// returned function unregisters it.
func (t *Table[F]) OnChange(fn func(State[F])) (cancel func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextListenerId
	t.nextListenerId++
	t.listeners[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners, id)
	}
}

// SetFilter replaces the filter and returns to the first page.
func (t *Table[F]) SetFilter(filter F) State[F] {
	return t.apply(func(s *State[F]) {
		s.Filter = filter
		s.PaginationParams.PageNumber = 0
	})
}

// ResetFilter restores the default filter and returns to the first page.
func (t *Table[F]) ResetFilter() State[F] {
	return t.apply(func(s *State[F]) {
		s.Filter = t.defaults.Filter
		s.PaginationParams.PageNumber = 0
	})
}

// SetSortParams replaces the sort parameters. Pagination is left untouched.
func (t *Table[F]) SetSortParams(sort model.SortParams) State[F] {
	return t.apply(func(s *State[F]) {
		s.SortParams = sort
	})
}

func (t *Table[F]) ResetSortParams() State[F] {
	return t.apply(func(s *State[F]) {
		s.SortParams = t.defaults.SortParams
	})
}

func (t *Table[F]) SetPaginationParams(pagination model.PaginationParams) State[F] {
	return t.apply(func(s *State[F]) {
		s.PaginationParams = pagination
	})
}

// SetRequestFrequency sets the polling interval in seconds. Negative values disable polling.
func (t *Table[F]) SetRequestFrequency(seconds int) State[F] {
	if seconds < 0 {
		seconds = 0
	}
	return t.apply(func(s *State[F]) {
		s.RequestFrequency = seconds
	})
}

// ResetSettings restores default sorting and pagination but keeps the filter.
func (t *Table[F]) ResetSettings() State[F] {
	return t.apply(func(s *State[F]) {
		s.SortParams = t.defaults.SortParams
		s.PaginationParams = t.defaults.PaginationParams
	})
}

// CleanupTable resets the whole state to the defaults.
func (t *Table[F]) CleanupTable() State[F] {
	return t.apply(func(s *State[F]) {
		*s = t.defaults
	})
}

func (t *Table[F]) apply(transition func(*State[F])) State[F] {
	t.mu.Lock()
	next := t.state
	transition(&next)
	t.state = next
	listeners := make([]func(State[F]), 0, len(t.listeners))
	for _, listener := range t.listeners {
		listeners = append(listeners, listener)
	}
	t.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
	return next
}
