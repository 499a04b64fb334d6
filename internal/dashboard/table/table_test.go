package table

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

type testFilter struct {
	Hosts []string
	Like  string
}

var defaults = State[testFilter]{
	SortParams:       model.SortParams{SortBy: "id", SortDirection: model.DirectionAsc},
	PaginationParams: model.PaginationParams{PageNumber: 0, PerPage: 10},
}

func TestNew(t *testing.T) {
	table := New("hosts", defaults)
	assert.Equal(t, "hosts", table.Name())
	assert.Equal(t, defaults, table.State())
	assert.Equal(t, defaults, table.Defaults())
}

func TestSetFilter_ResetsPageNumber(t *testing.T) {
	tests := map[string]int{
		"from first page": 0,
		"from third page": 2,
		"from far page":   1000,
	}
	for name, page := range tests {
		t.Run(name, func(t *testing.T) {
			table := New("hosts", defaults)
			table.SetPaginationParams(model.PaginationParams{PageNumber: page, PerPage: 25})

			state := table.SetFilter(testFilter{Like: "node"})

			assert.Equal(t, testFilter{Like: "node"}, state.Filter)
			assert.Equal(t, model.PaginationParams{PageNumber: 0, PerPage: 25}, state.PaginationParams)
			assert.Equal(t, state, table.State())
		})
	}
}

func TestSetFilter_ReplacesWholesale(t *testing.T) {
	table := New("hosts", defaults)
	table.SetFilter(testFilter{Hosts: []string{"a"}, Like: "x"})

	state := table.SetFilter(testFilter{Like: "y"})

	assert.Nil(t, state.Filter.Hosts)
	assert.Equal(t, "y", state.Filter.Like)
}

func TestResetFilter(t *testing.T) {
	withDefaultFilter := defaults
	withDefaultFilter.Filter = testFilter{Hosts: []string{"localhost"}}
	table := New("hosts", withDefaultFilter)
	table.SetFilter(testFilter{Like: "x"})
	table.SetPaginationParams(model.PaginationParams{PageNumber: 4, PerPage: 10})

	state := table.ResetFilter()

	assert.Equal(t, withDefaultFilter.Filter, state.Filter)
	assert.Equal(t, 0, state.PaginationParams.PageNumber)
}

func TestSetSortParams_KeepsPagination(t *testing.T) {
	table := New("hosts", defaults)
	table.SetPaginationParams(model.PaginationParams{PageNumber: 3, PerPage: 10})

	sort := model.SortParams{SortBy: "host", SortDirection: model.DirectionDesc}
	state := table.SetSortParams(sort)

	assert.Equal(t, sort, state.SortParams)
	assert.Equal(t, 3, state.PaginationParams.PageNumber)

	state = table.ResetSortParams()
	assert.Equal(t, defaults.SortParams, state.SortParams)
	assert.Equal(t, 3, state.PaginationParams.PageNumber)
}

func TestSetRequestFrequency(t *testing.T) {
	table := New("hosts", defaults)
	assert.Equal(t, 5, table.SetRequestFrequency(5).RequestFrequency)
	assert.Equal(t, 0, table.SetRequestFrequency(-3).RequestFrequency)
}

func TestResetSettings_KeepsFilter(t *testing.T) {
	table := New("hosts", defaults)
	table.SetFilter(testFilter{Like: "x"})
	table.SetSortParams(model.SortParams{SortBy: "host", SortDirection: model.DirectionDesc})
	table.SetPaginationParams(model.PaginationParams{PageNumber: 2, PerPage: 50})

	state := table.ResetSettings()

	assert.Equal(t, testFilter{Like: "x"}, state.Filter)
	assert.Equal(t, defaults.SortParams, state.SortParams)
	assert.Equal(t, defaults.PaginationParams, state.PaginationParams)
}

func TestCleanupTable(t *testing.T) {
	table := New("hosts", defaults)
	table.SetFilter(testFilter{Like: "x"})
	table.SetSortParams(model.SortParams{SortBy: "host", SortDirection: model.DirectionDesc})
	table.SetPaginationParams(model.PaginationParams{PageNumber: 2, PerPage: 50})
	table.SetRequestFrequency(10)

	assert.Equal(t, defaults, table.CleanupTable())
	assert.Equal(t, defaults, table.State())
}

func TestSetDefaults(t *testing.T) {
	table := New("hosts", defaults)
	configured := defaults
	configured.SortParams = model.SortParams{SortBy: "host", SortDirection: model.DirectionDesc}
	configured.PaginationParams.PerPage = 25
	configured.RequestFrequency = 5

	assert.Equal(t, configured, table.SetDefaults(configured))
	assert.Equal(t, configured, table.Defaults())

	table.SetSortParams(model.SortParams{SortBy: "id", SortDirection: model.DirectionAsc})
	table.SetPaginationParams(model.PaginationParams{PageNumber: 3, PerPage: 50})
	assert.Equal(t, configured.SortParams, table.ResetSortParams().SortParams)
	assert.Equal(t, configured.PaginationParams, table.ResetSettings().PaginationParams)

	table.SetFilter(testFilter{Like: "x"})
	assert.Equal(t, configured, table.CleanupTable())
}

func TestOnChange(t *testing.T) {
	table := New("hosts", defaults)
	var seen []State[testFilter]
	cancel := table.OnChange(func(s State[testFilter]) {
		seen = append(seen, s)
	})

	table.SetRequestFrequency(3)
	table.SetFilter(testFilter{Like: "x"})

	assert.Len(t, seen, 2)
	assert.Equal(t, 3, seen[0].RequestFrequency)
	assert.Equal(t, table.State(), seen[1])

	cancel()
	table.ResetFilter()
	assert.Len(t, seen, 2)
}

func TestConcurrentTransitions(t *testing.T) {
	table := New("hosts", defaults)
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			table.SetPaginationParams(model.PaginationParams{PageNumber: i, PerPage: 10})
		}(i)
		go func() {
			defer wg.Done()
			state := table.State()
			assert.Equal(t, 10, state.PaginationParams.PerPage)
		}()
	}
	wg.Wait()
}
