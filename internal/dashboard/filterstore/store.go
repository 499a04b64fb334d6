// Package filterstore remembers the last filter applied to each table.
//
// Filters are stored as JSON. Date ranges always encode to their serialized form (a relative tag
// or epoch seconds), so stored values never contain calendar instants.
package filterstore

import (
	"encoding/json"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
)

type Store interface {
	// Save stores filter as the last filter used for table.
	Save(table string, filter interface{}) error
	// Load decodes the stored filter for table into filter. It returns an ErrNotFound if nothing
	// has been stored.
	Load(table string, filter interface{}) error
	Delete(table string) error
}

// DeleteAll removes the stored filter of every table, collecting all failures.
func DeleteAll(store Store, tables []string) error {
	var result *multierror.Error
	for _, table := range tables {
		if err := store.Delete(table); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func encode(filter interface{}) ([]byte, error) {
	data, err := json.Marshal(filter)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding filter of type %T", filter)
	}
	return data, nil
}

func decode(table string, data []byte, filter interface{}) error {
	if err := json.Unmarshal(data, filter); err != nil {
		return errors.Wrapf(err, "decoding stored filter for table %s", table)
	}
	return nil
}

func notFound(table string) error {
	return errors.WithStack(&ssmerrors.ErrNotFound{Type: "filter", Value: table})
}
