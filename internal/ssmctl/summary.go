package ssmctl

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	goslices "golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/smartdata/ssm-dashboard/internal/common/slices"
	"github.com/smartdata/ssm-dashboard/internal/common/util"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

// Summary prints an overview of the cluster: rule counts, running actions and nodes per executor
// type. The three requests are made concurrently.
func (a *App) Summary(ctx context.Context) error {
	var (
		info    model.RulesInfo
		running model.Collection[model.Action]
		nodes   model.Collection[model.ClusterNode]
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = a.Params.RuleAPI.Info(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		running, err = a.Params.ActionAPI.List(
			ctx,
			model.ActionFilter{States: []model.ActionState{model.ActionRunning}},
			nil,
			&model.PaginationParams{PageNumber: 0, PerPage: 1},
		)
		return err
	})
	g.Go(func() error {
		var err error
		nodes, err = a.Params.NodeAPI.List(ctx, model.ClusterNodeFilter{}, nil, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.Errorf("[ssmctl.Summary] error getting cluster summary: %s", err)
	}

	byType := slices.GroupByFunc(nodes.Items, func(n model.ClusterNode) model.ExecutorType { return n.ExecutorType })
	executorTypes := maps.Keys(byType)
	goslices.Sort(executorTypes)

	w := util.NewTabbedStringBuilder(1, 1, 1, ' ', 0)
	w.Writef("Rules:\t%d (%d active)\n", info.TotalRules, info.ActiveRules)
	w.Writef("Running actions:\t%d\n", running.Total)
	w.Writef("Nodes:\t%d\n", nodes.Total)
	for _, t := range executorTypes {
		w.Writef("  %s:\t%d\n", t, len(byType[t]))
	}
	fmt.Fprint(a.Out, w.String())
	return nil
}
