package filterstore

import (
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

const keyPrefix = "ssmctl:filter:"

// RedisStore shares stored filters between machines. Keys are scoped by namespace, which is
// normally the user name.
type RedisStore struct {
	db        redis.UniversalClient
	namespace string
}

func NewRedisStore(db redis.UniversalClient, namespace string) *RedisStore {
	return &RedisStore{db: db, namespace: namespace}
}

func (r *RedisStore) Save(table string, filter interface{}) error {
	data, err := encode(filter)
	if err != nil {
		return err
	}
	if err := r.db.Set(r.key(table), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "saving filter for table %s", table)
	}
	return nil
}

func (r *RedisStore) Load(table string, filter interface{}) error {
	data, err := r.db.Get(r.key(table)).Bytes()
	if err == redis.Nil {
		return notFound(table)
	}
	if err != nil {
		return errors.Wrapf(err, "loading filter for table %s", table)
	}
	return decode(table, data, filter)
}

func (r *RedisStore) Delete(table string) error {
	if err := r.db.Del(r.key(table)).Err(); err != nil {
		return errors.Wrapf(err, "deleting filter for table %s", table)
	}
	return nil
}

func (r *RedisStore) key(table string) string {
	return keyPrefix + r.namespace + ":" + table
}
