package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/table"
)

type hostFilter struct {
	Host string
}

var testDefaults = table.State[hostFilter]{
	SortParams:       model.SortParams{SortBy: "id", SortDirection: model.DirectionAsc},
	PaginationParams: model.PaginationParams{PerPage: 10},
}

type recorder struct {
	mu       sync.Mutex
	fetched  []table.State[hostFilter]
	received []string
}

func (r *recorder) fetch(_ context.Context, state table.State[hostFilter]) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetched = append(r.fetched, state)
	return state.Filter.Host, nil
}

func (r *recorder) deliver(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, result)
}

func (r *recorder) fetchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fetched)
}

func (r *recorder) results() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.received...)
}

func TestRun_PollingDisabled(t *testing.T) {
	tbl := table.New("nodes", testDefaults)
	rec := &recorder{}
	fakeClock := clocktesting.NewFakeClock(time.Now())

	err := New(tbl, rec.fetch, rec.deliver, fakeClock).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, rec.fetchCount())
	assert.Equal(t, []string{""}, rec.results())
}

func TestRun_PollsAtRequestFrequency(t *testing.T) {
	tbl := table.New("nodes", testDefaults)
	tbl.SetFilter(hostFilter{Host: "agent-1"})
	tbl.SetRequestFrequency(5)
	rec := &recorder{}
	fakeClock := clocktesting.NewFakeClock(time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- New(tbl, rec.fetch, rec.deliver, fakeClock).Run(ctx)
	}()

	require.Eventually(t, fakeClock.HasWaiters, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return len(rec.results()) == 1 }, time.Second, time.Millisecond)

	fakeClock.Step(5 * time.Second)
	require.Eventually(t, func() bool { return len(rec.results()) == 2 }, time.Second, time.Millisecond)

	fakeClock.Step(5 * time.Second)
	require.Eventually(t, func() bool { return len(rec.results()) == 3 }, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
	assert.Equal(t, []string{"agent-1", "agent-1", "agent-1"}, rec.results())
}

func TestRun_RefetchesOnStateChange(t *testing.T) {
	tbl := table.New("nodes", testDefaults)
	tbl.SetRequestFrequency(60)
	rec := &recorder{}
	fakeClock := clocktesting.NewFakeClock(time.Now())

	done := make(chan error)
	go func() {
		done <- New(tbl, rec.fetch, rec.deliver, fakeClock).Run(context.Background())
	}()
	require.Eventually(t, fakeClock.HasWaiters, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return len(rec.results()) == 1 }, time.Second, time.Millisecond)

	tbl.SetFilter(hostFilter{Host: "agent-2"})
	require.Eventually(t, func() bool { return len(rec.results()) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, 2, rec.fetchCount())

	// Disabling polling ends the run.
	tbl.SetRequestFrequency(0)
	assert.NoError(t, <-done)
	assert.Equal(t, []string{"", "agent-2"}, rec.results())
}

func TestRun_NewestResultWins(t *testing.T) {
	tbl := table.New("nodes", testDefaults)
	tbl.SetRequestFrequency(60)
	fakeClock := clocktesting.NewFakeClock(time.Now())

	release := make(chan struct{})
	started := make(chan string, 2)
	var mu sync.Mutex
	var received []string

	fetch := func(ctx context.Context, state table.State[hostFilter]) (string, error) {
		started <- state.Filter.Host
		if state.Filter.Host == "" {
			<-release
			return "stale", nil
		}
		return state.Filter.Host, nil
	}
	deliver := func(result string) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, result)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- New(tbl, fetch, deliver, fakeClock).Run(ctx)
	}()

	assert.Equal(t, "", <-started)
	require.Eventually(t, fakeClock.HasWaiters, time.Second, time.Millisecond)

	tbl.SetFilter(hostFilter{Host: "fresh"})
	assert.Equal(t, "fresh", <-started)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, time.Millisecond)

	close(release)
	cancel()
	assert.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"fresh"}, received)
}

func TestRun_FetchErrorsAreNotDelivered(t *testing.T) {
	tbl := table.New("nodes", testDefaults)
	delivered := false
	fetch := func(ctx context.Context, state table.State[hostFilter]) (string, error) {
		return "", errors.New("server unavailable")
	}

	err := New(tbl, fetch, func(string) { delivered = true }, clocktesting.NewFakeClock(time.Now())).Run(context.Background())

	assert.NoError(t, err)
	assert.False(t, delivered)
}

func TestRun_ResultsAfterCancelAreDropped(t *testing.T) {
	tbl := table.New("nodes", testDefaults)
	tbl.SetRequestFrequency(60)
	fakeClock := clocktesting.NewFakeClock(time.Now())

	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, state table.State[hostFilter]) (string, error) {
		close(started)
		<-release
		return "late", nil
	}
	var mu sync.Mutex
	var received []string
	deliver := func(result string) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, result)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- New(tbl, fetch, deliver, fakeClock).Run(ctx)
	}()

	<-started
	cancel()
	close(release)
	assert.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, received)
}
