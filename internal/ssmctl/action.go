package ssmctl

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/smartdata/ssm-dashboard/internal/common/util"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

// SubmitAction runs an action on host, or on a host chosen by the server if host is empty.
func (a *App) SubmitAction(ctx context.Context, text string, host string) error {
	action, err := a.Params.ActionAPI.Submit(ctx, text, host)
	if err != nil {
		return errors.Errorf("[ssmctl.SubmitAction] error submitting action: %s", err)
	}
	fmt.Fprintf(a.Out, "Submitted action %d\n", action.Id)
	return nil
}

// RepeatAction resubmits an existing action with the same text and host.
func (a *App) RepeatAction(ctx context.Context, id int64) error {
	action, err := a.Params.ActionAPI.Repeat(ctx, id)
	if err != nil {
		return errors.Errorf("[ssmctl.RepeatAction] error repeating action %d: %s", id, err)
	}
	fmt.Fprintf(a.Out, "Submitted action %d as a repeat of action %d\n", action.Id, id)
	return nil
}

// ShowAction prints a single action including its log.
func (a *App) ShowAction(ctx context.Context, id int64, format OutputFormat) error {
	action, err := a.Params.ActionAPI.Get(ctx, id)
	if err != nil {
		return errors.Errorf("[ssmctl.ShowAction] error getting action %d: %s", id, err)
	}
	if format == OutputYaml {
		return a.printYaml(action)
	}
	fmt.Fprint(a.Out, describeAction(action))
	return nil
}

func describeAction(action model.Action) string {
	w := util.NewTabbedStringBuilder(1, 1, 1, ' ', 0)
	w.Writef("Action:\t%d\n", action.Id)
	w.Writef("Cmdlet:\t%d\n", action.CmdletId)
	w.Writef("Text:\t%s\n", action.TextRepresentation)
	w.Writef("Host:\t%s\n", orDash(action.ExecHost))
	w.Writef("State:\t%s\n", action.State)
	w.Writef("Source:\t%s\n", action.Source)
	w.Writef("Submitted:\t%s\n", action.SubmissionTime)
	w.Writef("Completed:\t%s\n", action.CompletionTime)
	out := w.String()
	if action.Log != "" {
		out += "Log:\n" + action.Log
		if action.Log[len(action.Log)-1] != '\n' {
			out += "\n"
		}
	}
	return out
}
