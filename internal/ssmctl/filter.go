package ssmctl

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	goslices "golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"

	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/appstate"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/filterstore"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

// newFilter returns a pointer to an empty filter of the type used by the named table.
func newFilter(table string) (interface{}, error) {
	switch table {
	case appstate.TableNodes:
		return &model.ClusterNodeFilter{}, nil
	case appstate.TableRules:
		return &model.RuleFilter{}, nil
	case appstate.TableActions:
		return &model.ActionFilter{}, nil
	case appstate.TableAuditEvents:
		return &model.AuditEventFilter{}, nil
	case appstate.TableCachedFiles:
		return &model.CachedFileFilter{}, nil
	case appstate.TableHotFiles:
		return &model.HotFileFilter{}, nil
	default:
		return nil, unknownTable(table)
	}
}

func unknownTable(table string) error {
	return &ssmerrors.ErrInvalidArgument{
		Name:    "table",
		Value:   table,
		Message: "expected one of " + strings.Join(appstate.Tables, ", "),
	}
}

// SaveFilterFromFile reads a filter for table from a YAML or JSON file and stores it.
func (a *App) SaveFilterFromFile(table string, fileName string) error {
	filter, err := newFilter(table)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		return errors.Wrapf(err, "reading filter file %s", fileName)
	}
	if err := yaml.UnmarshalStrict(data, filter); err != nil {
		return errors.Errorf("file %s error: %s", fileName, err)
	}
	if err := a.Params.FilterStore.Save(table, filter); err != nil {
		return errors.Errorf("[ssmctl.SaveFilterFromFile] error saving filter for table %s: %s", table, err)
	}
	fmt.Fprintf(a.Out, "Saved filter for table %s\n", table)
	return nil
}

// ShowFilter prints the filter stored for table as YAML.
func (a *App) ShowFilter(table string) error {
	filter, err := newFilter(table)
	if err != nil {
		return err
	}
	if err := a.Params.FilterStore.Load(table, filter); err != nil {
		if ssmerrors.IsNotFound(err) {
			fmt.Fprintf(a.Out, "No filter saved for table %s\n", table)
			return nil
		}
		return errors.Errorf("[ssmctl.ShowFilter] error loading filter for table %s: %s", table, err)
	}
	return a.printYaml(filter)
}

// ResetFilters deletes the stored filters of the given tables, or of every table if none are given.
func (a *App) ResetFilters(tables []string) error {
	if len(tables) == 0 {
		tables = appstate.Tables
	}
	for _, table := range tables {
		if !goslices.Contains(appstate.Tables, table) {
			return unknownTable(table)
		}
	}
	if err := filterstore.DeleteAll(a.Params.FilterStore, tables); err != nil {
		return errors.Errorf("[ssmctl.ResetFilters] error resetting filters: %s", err)
	}
	fmt.Fprintf(a.Out, "Reset filters for %s\n", strings.Join(tables, ", "))
	return nil
}
