package filterstore

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileStore keeps one JSON file per table in a directory, by default ~/.ssmctl/filters.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Save(table string, filter interface{}) error {
	data, err := encode(filter)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return errors.Wrapf(err, "creating filter directory %s", f.dir)
	}
	if err := os.WriteFile(f.path(table), data, 0o600); err != nil {
		return errors.Wrapf(err, "saving filter for table %s", table)
	}
	return nil
}

func (f *FileStore) Load(table string, filter interface{}) error {
	data, err := os.ReadFile(f.path(table))
	if os.IsNotExist(err) {
		return notFound(table)
	}
	if err != nil {
		return errors.Wrapf(err, "loading filter for table %s", table)
	}
	return decode(table, data, filter)
}

func (f *FileStore) Delete(table string) error {
	if err := os.Remove(f.path(table)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting filter for table %s", table)
	}
	return nil
}

func (f *FileStore) path(table string) string {
	return filepath.Join(f.dir, table+".json")
}
