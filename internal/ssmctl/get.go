package ssmctl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/smartdata/ssm-dashboard/internal/common/health"
	"github.com/smartdata/ssm-dashboard/internal/common/serve"
	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/poller"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/table"
)

const defaultWatchFrequency = 5

// ListOptions controls a get command. Nil sort or pagination keep the table's current values, as
// do empty SortBy, SortDirection and PerPage fields.
type ListOptions struct {
	Sort       *model.SortParams
	Pagination *model.PaginationParams
	Output     OutputFormat
	// Restore replaces the given filter with the one last saved for the table.
	Restore bool
	// Save stores the filter used for the table.
	Save bool
	// Watch keeps refreshing the output every Frequency seconds until ctx is cancelled.
	Watch bool
	// Frequency in seconds. Zero falls back to the table's configured frequency, then to 5.
	Frequency int
	// MetricsPort, if positive, serves /metrics and /health while watching.
	MetricsPort int
}

func (a *App) GetNodes(ctx context.Context, filter model.ClusterNodeFilter, opts ListOptions) error {
	return getTable(ctx, a, a.State.Nodes, filter, opts, a.Params.NodeAPI.List, nodeView)
}

func (a *App) GetRules(ctx context.Context, filter model.RuleFilter, opts ListOptions) error {
	return getTable(ctx, a, a.State.Rules, filter, opts, a.Params.RuleAPI.List, ruleView)
}

func (a *App) GetActions(ctx context.Context, filter model.ActionFilter, opts ListOptions) error {
	return getTable(ctx, a, a.State.Actions, filter, opts, a.Params.ActionAPI.List, actionView)
}

func (a *App) GetAuditEvents(ctx context.Context, filter model.AuditEventFilter, opts ListOptions) error {
	return getTable(ctx, a, a.State.AuditEvents, filter, opts, a.Params.AuditAPI.List, auditView)
}

func (a *App) GetCachedFiles(ctx context.Context, filter model.CachedFileFilter, opts ListOptions) error {
	return getTable(ctx, a, a.State.CachedFiles, filter, opts, a.Params.FileAPI.ListCached, cachedFileView)
}

func (a *App) GetHotFiles(ctx context.Context, filter model.HotFileFilter, opts ListOptions) error {
	return getTable(ctx, a, a.State.HotFiles, filter, opts, a.Params.FileAPI.ListHot, hotFileView)
}

func getTable[F any, T any](
	ctx context.Context,
	a *App,
	t *table.Table[F],
	filter F,
	opts ListOptions,
	list ListFunc[F, T],
	v view[T],
) error {
	if opts.Restore {
		var restored F
		if err := a.Params.FilterStore.Load(t.Name(), &restored); err != nil {
			if ssmerrors.IsNotFound(err) {
				return errors.Errorf("no saved filter for table %s", t.Name())
			}
			return errors.WithMessagef(err, "restoring filter for table %s", t.Name())
		}
		filter = restored
	}
	if opts.Save {
		if err := a.Params.FilterStore.Save(t.Name(), filter); err != nil {
			return errors.WithMessagef(err, "saving filter for table %s", t.Name())
		}
	}

	t.SetFilter(filter)
	if opts.Sort != nil {
		sort := t.State().SortParams
		if opts.Sort.SortBy != "" {
			sort.SortBy = opts.Sort.SortBy
		}
		if opts.Sort.SortDirection != "" {
			sort.SortDirection = opts.Sort.SortDirection
		}
		t.SetSortParams(sort)
	}
	if opts.Pagination != nil {
		pagination := *opts.Pagination
		if pagination.PerPage <= 0 {
			pagination.PerPage = t.State().PaginationParams.PerPage
		}
		t.SetPaginationParams(pagination)
	}

	fetch := func(ctx context.Context, state table.State[F]) (tableResult[T], error) {
		c, err := list(ctx, state.Filter, &state.SortParams, &state.PaginationParams)
		return tableResult[T]{collection: c, pagination: state.PaginationParams}, err
	}

	if !opts.Watch {
		result, err := fetch(ctx, t.State())
		if err != nil {
			return err
		}
		return printCollection(a, result.collection, opts.Output, v, result.pagination)
	}

	frequency := opts.Frequency
	if frequency <= 0 {
		frequency = t.State().RequestFrequency
	}
	if frequency <= 0 {
		frequency = defaultWatchFrequency
	}
	t.SetRequestFrequency(frequency)
	log.Infof("watching table %s every %ds", t.Name(), frequency)

	// Healthy while refreshes keep arriving; a few missed ticks are tolerated.
	recency := health.NewRecencyChecker("table "+t.Name(), 3*time.Duration(frequency)*time.Second, a.Clock)
	deliver := func(result tableResult[T]) {
		recency.MarkSuccess()
		if err := printCollection(a, result.collection, opts.Output, v, result.pagination); err != nil {
			log.WithError(err).Errorf("error printing table %s", t.Name())
		}
	}
	p := poller.New[F, tableResult[T]](t, fetch, deliver, a.Clock)
	if opts.MetricsPort <= 0 {
		return p.Run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mux := http.NewServeMux()
		health.SetupHttpMux(mux, recency)
		return serve.ListenAndServe(ctx, &http.Server{Addr: fmt.Sprintf(":%d", opts.MetricsPort), Handler: mux})
	})
	g.Go(func() error {
		// Stop serving once polling ends.
		defer cancel()
		return p.Run(ctx)
	})
	return g.Wait()
}

type tableResult[T any] struct {
	collection model.Collection[T]
	pagination model.PaginationParams
}
