package ssmctl

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/smartdata/ssm-dashboard/internal/common/slices"
	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
	"github.com/smartdata/ssm-dashboard/internal/common/util"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputYaml  OutputFormat = "yaml"
)

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputTable, OutputYaml:
		return f, nil
	default:
		return "", &ssmerrors.ErrInvalidArgument{Name: "output", Value: s, Message: "expected table or yaml"}
	}
}

// view describes how one entity type is rendered as a table.
type view[T any] struct {
	headers []string
	row     func(T) []string
}

var (
	nodeView = view[model.ClusterNode]{
		headers: []string{"ID", "HOST", "PORT", "EXECUTOR", "REGISTERED", "EXECUTORS", "CMDLETS"},
		row: func(n model.ClusterNode) []string {
			return []string{
				n.Id, n.Host, strconv.Itoa(n.Port), string(n.ExecutorType), n.RegistrationTime.String(),
				strconv.Itoa(n.ExecutorsCount), formatInt(n.CmdletsExecuted),
			}
		},
	}
	ruleView = view[model.Rule]{
		headers: []string{"ID", "STATE", "SUBMITTED", "LAST ACTIVATED", "ACTIVATIONS", "CMDLETS", "RULE"},
		row: func(r model.Rule) []string {
			return []string{
				formatInt(r.Id), string(r.State), r.SubmitTime.String(), r.LastActivationTime.String(),
				formatInt(r.ActivationCount), formatInt(r.CmdletsGenerated), r.TextRepresentation,
			}
		},
	}
	actionView = view[model.Action]{
		headers: []string{"ID", "CMDLET", "STATE", "SOURCE", "HOST", "SUBMITTED", "COMPLETED", "ACTION"},
		row: func(a model.Action) []string {
			return []string{
				formatInt(a.Id), formatInt(a.CmdletId), string(a.State), string(a.Source), orDash(a.ExecHost),
				a.SubmissionTime.String(), a.CompletionTime.String(), a.TextRepresentation,
			}
		},
	}
	auditView = view[model.AuditEvent]{
		headers: []string{"ID", "TIME", "USER", "OBJECT", "OBJECT ID", "OPERATION", "RESULT"},
		row: func(e model.AuditEvent) []string {
			return []string{
				formatInt(e.Id), e.Timestamp.String(), e.Username, string(e.ObjectType), formatInt(e.ObjectId),
				string(e.Operation), string(e.Result),
			}
		},
	}
	cachedFileView = view[model.CachedFile]{
		headers: []string{"ID", "PATH", "ACCESSES", "CACHED", "LAST ACCESSED"},
		row: func(f model.CachedFile) []string {
			return []string{
				formatInt(f.Id), f.Path, strconv.Itoa(f.AccessCount), f.CachedTime.String(), f.LastAccessTime.String(),
			}
		},
	}
	hotFileView = view[model.HotFile]{
		headers: []string{"ID", "PATH", "ACCESSES", "LAST ACCESSED"},
		row: func(f model.HotFile) []string {
			return []string{formatInt(f.Id), f.Path, strconv.Itoa(f.AccessCount), f.LastAccessTime.String()}
		},
	}
)

func printCollection[T any](a *App, c model.Collection[T], format OutputFormat, v view[T], pagination model.PaginationParams) error {
	if format == OutputYaml {
		return a.printYaml(c)
	}
	w := util.NewTabbedStringBuilder(1, 1, 2, ' ', 0)
	w.WriteRow(v.headers...)
	for _, row := range slices.Map(c.Items, v.row) {
		w.WriteRow(row...)
	}
	fmt.Fprint(a.Out, w.String())
	fmt.Fprintln(a.Out, pageSummary(len(c.Items), c.Total, pagination))
	return nil
}

func pageSummary(shown int, total int64, pagination model.PaginationParams) string {
	if shown == 0 {
		return fmt.Sprintf("No results (total %d)", total)
	}
	first := int64(pagination.PageNumber*pagination.PerPage) + 1
	last := first + int64(shown) - 1
	return fmt.Sprintf("Showing %d-%d of %d", first, last, total)
}

func (a *App) printYaml(v interface{}) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshalling %T to yaml", v)
	}
	fmt.Fprint(a.Out, headerYaml()+string(b))
	return nil
}

func headerYaml() string {
	return "---\n"
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
