package ssmctl

import (
	"path/filepath"

	"github.com/go-redis/redis"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	commonconfig "github.com/smartdata/ssm-dashboard/internal/common/config"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/appstate"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/filterstore"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/table"
)

const (
	FilterStoreFile   = "file"
	FilterStoreRedis  = "redis"
	FilterStoreMemory = "memory"

	defaultFilterDirectory = ".ssmctl/filters"
)

// Config is read from the ssmctl config file alongside the connection details.
//
//	filterStore:
//	  type: redis
//	  redis:
//	    addrs: ["localhost:6379"]
//	tables:
//	  actions:
//	    sortBy: submissionTime
//	    sortDirection: desc
//	    perPage: 25
//	    requestFrequency: 5
type Config struct {
	FilterStore FilterStoreConfig
	Tables      map[string]TableConfig `validate:"dive,keys,oneof=nodes rules actions audit cached hottest,endkeys"`
}

// Validate checks every table override. The validate tags on Tables only reach the map keys.
func (c Config) Validate() error {
	var result *multierror.Error
	names := maps.Keys(c.Tables)
	slices.Sort(names)
	for _, name := range names {
		if err := commonconfig.Validate(c.Tables[name]); err != nil {
			result = multierror.Append(result, errors.WithMessagef(err, "tables.%s", name))
		}
	}
	return result.ErrorOrNil()
}

type FilterStoreConfig struct {
	// Type is one of file, redis or memory. Defaults to file.
	Type string `validate:"omitempty,oneof=file redis memory"`
	// Directory used by the file store. Defaults to ~/.ssmctl/filters.
	Directory string
	// Namespace separates the redis entries of different users. Defaults to the username.
	Namespace string
	Redis     commonconfig.RedisConfig
}

// TableConfig overrides the built-in defaults of one table. Zero values keep the default.
type TableConfig struct {
	SortBy           string
	SortDirection    model.SortDirection
	PerPage          int `validate:"gte=0"`
	RequestFrequency int `validate:"gte=0"`
}

// NewStore creates the filter store the config selects.
func (c FilterStoreConfig) NewStore(username string) (filterstore.Store, error) {
	switch c.Type {
	case "", FilterStoreFile:
		dir := c.Directory
		if dir == "" {
			home, err := homedir.Dir()
			if err != nil {
				return nil, errors.Wrap(err, "locating home directory for the filter store")
			}
			dir = filepath.Join(home, defaultFilterDirectory)
		}
		return filterstore.NewFileStore(dir), nil
	case FilterStoreRedis:
		if !c.Redis.Enabled() {
			return nil, errors.New("redis filter store selected but no redis addresses configured")
		}
		namespace := c.Namespace
		if namespace == "" {
			namespace = username
		}
		db := redis.NewUniversalClient(c.Redis.AsUniversalOptions())
		return filterstore.NewRedisStore(db, namespace), nil
	case FilterStoreMemory:
		log.Warn("filters saved to the memory store are lost when ssmctl exits")
		return filterstore.NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unknown filter store type %q", c.Type)
	}
}

// ApplyTableConfig replaces the defaults of the app's tables with the configured overrides.
func (a *App) ApplyTableConfig() {
	for name, c := range a.Params.Config.Tables {
		switch name {
		case appstate.TableNodes:
			applyTableConfig(a.State.Nodes, c)
		case appstate.TableRules:
			applyTableConfig(a.State.Rules, c)
		case appstate.TableActions:
			applyTableConfig(a.State.Actions, c)
		case appstate.TableAuditEvents:
			applyTableConfig(a.State.AuditEvents, c)
		case appstate.TableCachedFiles:
			applyTableConfig(a.State.CachedFiles, c)
		case appstate.TableHotFiles:
			applyTableConfig(a.State.HotFiles, c)
		default:
			log.Warnf("ignoring config for unknown table %s", name)
		}
	}
}

// applyTableConfig folds c into the table's defaults, so the reset transitions restore the
// configured values.
func applyTableConfig[F any](t *table.Table[F], c TableConfig) {
	defaults := t.Defaults()
	if c.SortBy != "" {
		defaults.SortParams.SortBy = c.SortBy
	}
	if c.SortDirection != "" {
		defaults.SortParams.SortDirection = c.SortDirection
	}
	if c.PerPage > 0 {
		defaults.PaginationParams.PerPage = c.PerPage
	}
	if c.RequestFrequency > 0 {
		defaults.RequestFrequency = c.RequestFrequency
	}
	t.SetDefaults(defaults)
}
