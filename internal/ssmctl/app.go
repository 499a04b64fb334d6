// Package ssmctl contains the logic behind the ssmctl commands. Every command is a method on App;
// the cobra layer in cmd/ssmctl only parses flags and arguments.
package ssmctl

import (
	"context"
	"io"
	"os"

	"k8s.io/utils/clock"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/appstate"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/filterstore"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
	"github.com/smartdata/ssm-dashboard/pkg/client"
)

type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
	// State holds the table views the commands operate on.
	State *appstate.State
	// Clock drives watch mode. Tests substitute a fake clock.
	Clock clock.WithTicker
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between command runs.
type Params struct {
	ApiConnectionDetails *client.ApiConnectionDetails
	Config               Config

	// The API structs hold the functions used to talk to the SSM server. They are set from a
	// client.Client by WireClient and replaced in tests.
	NodeAPI   *NodeAPI
	RuleAPI   *RuleAPI
	ActionAPI *ActionAPI
	AuditAPI  *AuditAPI
	FileAPI   *FileAPI

	FilterStore filterstore.Store
}

// ListFunc fetches one page of a collection.
type ListFunc[F any, T any] func(
	ctx context.Context,
	filter F,
	sort *model.SortParams,
	pagination *model.PaginationParams,
) (model.Collection[T], error)

type NodeAPI struct {
	List ListFunc[model.ClusterNodeFilter, model.ClusterNode]
}

type RuleAPI struct {
	List   ListFunc[model.RuleFilter, model.Rule]
	Info   func(ctx context.Context) (model.RulesInfo, error)
	Create func(ctx context.Context, text string) (model.Rule, error)
	Delete func(ctx context.Context, id int64) error
	Start  func(ctx context.Context, id int64) error
	Stop   func(ctx context.Context, id int64) error
}

type ActionAPI struct {
	List   ListFunc[model.ActionFilter, model.Action]
	Get    func(ctx context.Context, id int64) (model.Action, error)
	Submit func(ctx context.Context, text string, host string) (model.Action, error)
	Repeat func(ctx context.Context, id int64) (model.Action, error)
}

type AuditAPI struct {
	List ListFunc[model.AuditEventFilter, model.AuditEvent]
}

type FileAPI struct {
	ListCached ListFunc[model.CachedFileFilter, model.CachedFile]
	ListHot    ListFunc[model.HotFileFilter, model.HotFile]
}

// New instantiates an App with default parameters, writing to standard output and using the real
// clock.
func New() *App {
	return &App{
		Params: &Params{
			NodeAPI:   &NodeAPI{},
			RuleAPI:   &RuleAPI{},
			ActionAPI: &ActionAPI{},
			AuditAPI:  &AuditAPI{},
			FileAPI:   &FileAPI{},
		},
		Out:   os.Stdout,
		State: appstate.New(),
		Clock: clock.RealClock{},
	}
}

// WireClient points every API function at c.
func (p *Params) WireClient(c *client.Client) {
	p.NodeAPI = &NodeAPI{List: c.ListNodes}
	p.RuleAPI = &RuleAPI{
		List:   c.ListRules,
		Info:   c.GetRulesInfo,
		Create: c.CreateRule,
		Delete: c.DeleteRule,
		Start:  c.StartRule,
		Stop:   c.StopRule,
	}
	p.ActionAPI = &ActionAPI{
		List:   c.ListActions,
		Get:    c.GetAction,
		Submit: c.SubmitAction,
		Repeat: c.RepeatAction,
	}
	p.AuditAPI = &AuditAPI{List: c.ListAuditEvents}
	p.FileAPI = &FileAPI{
		ListCached: c.ListCachedFiles,
		ListHot:    c.ListHotFiles,
	}
}
