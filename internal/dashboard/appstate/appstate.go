// Package appstate owns the state of every table view in the dashboard.
package appstate

import (
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/table"
)

const (
	TableNodes       = "nodes"
	TableRules       = "rules"
	TableActions     = "actions"
	TableAuditEvents = "audit"
	TableCachedFiles = "cached"
	TableHotFiles    = "hottest"

	defaultPerPage = 10
)

// Tables lists every table name in display order.
var Tables = []string{TableNodes, TableRules, TableActions, TableAuditEvents, TableCachedFiles, TableHotFiles}

type State struct {
	Nodes       *table.Table[model.ClusterNodeFilter]
	Rules       *table.Table[model.RuleFilter]
	Actions     *table.Table[model.ActionFilter]
	AuditEvents *table.Table[model.AuditEventFilter]
	CachedFiles *table.Table[model.CachedFileFilter]
	HotFiles    *table.Table[model.HotFileFilter]
}

// New creates every table in its default state.
func New() *State {
	return &State{
		Nodes:       table.New(TableNodes, defaults[model.ClusterNodeFilter]("id", model.DirectionAsc)),
		Rules:       table.New(TableRules, defaults[model.RuleFilter]("id", model.DirectionAsc)),
		Actions:     table.New(TableActions, defaults[model.ActionFilter]("id", model.DirectionDesc)),
		AuditEvents: table.New(TableAuditEvents, defaults[model.AuditEventFilter]("timestamp", model.DirectionDesc)),
		CachedFiles: table.New(TableCachedFiles, defaults[model.CachedFileFilter]("lastAccessTime", model.DirectionDesc)),
		HotFiles:    table.New(TableHotFiles, defaults[model.HotFileFilter]("accessCount", model.DirectionDesc)),
	}
}

// Cleanup resets every table to its defaults.
func (s *State) Cleanup() {
	s.Nodes.CleanupTable()
	s.Rules.CleanupTable()
	s.Actions.CleanupTable()
	s.AuditEvents.CleanupTable()
	s.CachedFiles.CleanupTable()
	s.HotFiles.CleanupTable()
}

func defaults[F any](sortBy string, direction model.SortDirection) table.State[F] {
	return table.State[F]{
		SortParams:       model.SortParams{SortBy: sortBy, SortDirection: direction},
		PaginationParams: model.PaginationParams{PageNumber: 0, PerPage: defaultPerPage},
	}
}
