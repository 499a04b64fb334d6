package filterstore

import (
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps filters for the lifetime of the process, e.g. across iterations of a watch.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (m *MemoryStore) Save(table string, filter interface{}) error {
	data, err := encode(filter)
	if err != nil {
		return err
	}
	m.cache.Set(table, data, cache.NoExpiration)
	return nil
}

func (m *MemoryStore) Load(table string, filter interface{}) error {
	data, ok := m.cache.Get(table)
	if !ok {
		return notFound(table)
	}
	return decode(table, data.([]byte), filter)
}

func (m *MemoryStore) Delete(table string) error {
	m.cache.Delete(table)
	return nil
}
