package ssmctl

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/smartdata/ssm-dashboard/internal/common/util"
)

// CreateRule submits a new rule and prints its id.
func (a *App) CreateRule(ctx context.Context, text string) error {
	rule, err := a.Params.RuleAPI.Create(ctx, text)
	if err != nil {
		return errors.Errorf("[ssmctl.CreateRule] error creating rule: %s", err)
	}
	fmt.Fprintf(a.Out, "Created rule %d\n", rule.Id)
	return nil
}

func (a *App) DeleteRule(ctx context.Context, id int64) error {
	if err := a.Params.RuleAPI.Delete(ctx, id); err != nil {
		return errors.Errorf("[ssmctl.DeleteRule] error deleting rule %d: %s", id, err)
	}
	fmt.Fprintf(a.Out, "Deleted rule %d\n", id)
	return nil
}

func (a *App) StartRule(ctx context.Context, id int64) error {
	if err := a.Params.RuleAPI.Start(ctx, id); err != nil {
		return errors.Errorf("[ssmctl.StartRule] error starting rule %d: %s", id, err)
	}
	fmt.Fprintf(a.Out, "Started rule %d\n", id)
	return nil
}

func (a *App) StopRule(ctx context.Context, id int64) error {
	if err := a.Params.RuleAPI.Stop(ctx, id); err != nil {
		return errors.Errorf("[ssmctl.StopRule] error stopping rule %d: %s", id, err)
	}
	fmt.Fprintf(a.Out, "Stopped rule %d\n", id)
	return nil
}

// RulesInfo prints the total and active rule counts.
func (a *App) RulesInfo(ctx context.Context) error {
	info, err := a.Params.RuleAPI.Info(ctx)
	if err != nil {
		return errors.Errorf("[ssmctl.RulesInfo] error getting rules info: %s", err)
	}
	w := util.NewTabbedStringBuilder(1, 1, 1, ' ', 0)
	w.Writef("Total rules:\t%d\n", info.TotalRules)
	w.Writef("Active rules:\t%d\n", info.ActiveRules)
	fmt.Fprint(a.Out, w.String())
	return nil
}
