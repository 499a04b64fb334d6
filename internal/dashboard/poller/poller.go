// Package poller re-fetches a table's data every RequestFrequency seconds, and immediately
// whenever the table's state changes.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/smartdata/ssm-dashboard/internal/common/logging"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/table"
)

const metricsPrefix = "ssm_poller_"

var (
	fetchLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    metricsPrefix + "tick_latency_seconds",
			Help:    "Latency of a single table refresh in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 15),
		},
		[]string{"table"})

	fetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricsPrefix + "fetch_failures_total",
			Help: "Table refreshes that returned an error",
		},
		[]string{"table"})

	staleResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricsPrefix + "stale_results_total",
			Help: "Results discarded because a newer refresh had already completed",
		},
		[]string{"table"})
)

// FetchFunc loads the data the given table state selects.
type FetchFunc[F any, R any] func(ctx context.Context, state table.State[F]) (R, error)

// Poller refreshes one table. Fetches may overlap, since a state change does not wait for an
// in-flight tick. The newest result wins: a result is dropped if a fetch started after it has
// already been delivered.
type Poller[F any, R any] struct {
	table   *table.Table[F]
	fetch   FetchFunc[F, R]
	deliver func(R)
	clock   clock.WithTicker

	mu            sync.Mutex
	started       uint64
	lastDelivered uint64
	wg            sync.WaitGroup
}

func New[F any, R any](t *table.Table[F], fetch FetchFunc[F, R], deliver func(R), clock clock.WithTicker) *Poller[F, R] {
	return &Poller[F, R]{
		table:   t,
		fetch:   fetch,
		deliver: deliver,
		clock:   clock,
	}
}

// Run fetches once and then, while the table's RequestFrequency is positive, on every tick and
// on every state change. It returns when ctx is cancelled or polling is disabled, after all
// in-flight fetches have finished. Results of fetches that finish after ctx is cancelled are
// dropped.
func (p *Poller[F, R]) Run(ctx context.Context) error {
	defer p.wg.Wait()

	changes := make(chan table.State[F], 1)
	unsubscribe := p.table.OnChange(func(s table.State[F]) {
		// Keep only the newest state if the loop is busy.
		for {
			select {
			case changes <- s:
				return
			default:
			}
			select {
			case <-changes:
			default:
			}
		}
	})
	defer unsubscribe()

	state := p.table.State()
	p.startFetch(ctx, state)
	if state.RequestFrequency <= 0 {
		return nil
	}

	frequency := state.RequestFrequency
	ticker := p.clock.NewTicker(interval(frequency))
	defer func() { ticker.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			p.startFetch(ctx, p.table.State())
		case next := <-changes:
			if next.RequestFrequency <= 0 {
				log.Infof("polling of table %s disabled", p.table.Name())
				return nil
			}
			if next.RequestFrequency != frequency {
				frequency = next.RequestFrequency
				ticker.Stop()
				ticker = p.clock.NewTicker(interval(frequency))
			}
			p.startFetch(ctx, next)
		}
	}
}

func (p *Poller[F, R]) startFetch(ctx context.Context, state table.State[F]) {
	p.mu.Lock()
	p.started++
	seq := p.started
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		start := p.clock.Now()
		result, err := p.fetch(ctx, state)
		fetchLatency.WithLabelValues(p.table.Name()).Observe(p.clock.Since(start).Seconds())
		if err != nil {
			if ctx.Err() == nil {
				fetchFailures.WithLabelValues(p.table.Name()).Inc()
				logging.WithStacktrace(log.WithField("table", p.table.Name()), err).Error("error refreshing table")
			}
			return
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		if seq < p.lastDelivered {
			staleResults.WithLabelValues(p.table.Name()).Inc()
			return
		}
		p.lastDelivered = seq
		p.deliver(result)
	}()
}

func interval(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
