package filterstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/daterange"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T, action func(s Store)){
		"redis":  withRedisStore,
		"memory": withMemoryStore,
		"file":   withFileStore,
	}
	for name, with := range stores {
		t.Run(name+"/round trip", func(t *testing.T) {
			with(t, func(s Store) {
				submission := daterange.Static(daterange.Seconds(1000).Time(), daterange.Seconds(2000).Time())
				completion := daterange.Dynamic[time.Time](daterange.Last24Hours)
				filter := model.ActionFilter{
					TextRepresentationLike: "cache",
					SubmissionTime:         &submission,
					CompletionTime:         &completion,
					Hosts:                  []string{"agent-1"},
					States:                 []model.ActionState{model.ActionFailed},
				}

				require.NoError(t, s.Save("actions", filter))

				loaded := model.ActionFilter{}
				require.NoError(t, s.Load("actions", &loaded))
				assert.Equal(t, filter, loaded)
			})
		})
		t.Run(name+"/missing", func(t *testing.T) {
			with(t, func(s Store) {
				err := s.Load("rules", &model.RuleFilter{})
				assert.True(t, ssmerrors.IsNotFound(err))
			})
		})
		t.Run(name+"/delete", func(t *testing.T) {
			with(t, func(s Store) {
				require.NoError(t, s.Save("rules", model.RuleFilter{TextRepresentationLike: "x"}))
				require.NoError(t, s.Save("audit", model.AuditEventFilter{UsernameLike: "admin"}))

				require.NoError(t, s.Delete("rules"))
				assert.True(t, ssmerrors.IsNotFound(s.Load("rules", &model.RuleFilter{})))
				assert.NoError(t, s.Load("audit", &model.AuditEventFilter{}))

				require.NoError(t, DeleteAll(s, []string{"rules", "audit", "nodes"}))
				assert.True(t, ssmerrors.IsNotFound(s.Load("audit", &model.AuditEventFilter{})))
			})
		})
	}
}

func TestRedisStore_StoresSerializedForm(t *testing.T) {
	db, err := miniredis.Run()
	require.NoError(t, err)
	defer db.Close()

	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{db.Addr()}})
	defer client.Close()
	store := NewRedisStore(client, "alice")

	eventTime := daterange.Static(daterange.Seconds(1000).Time(), daterange.Seconds(2000).Time())
	require.NoError(t, store.Save("audit", model.AuditEventFilter{EventTime: &eventTime}))

	raw, err := db.Get("ssmctl:filter:alice:audit")
	require.NoError(t, err)

	stored := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, map[string]interface{}{
		"eventTime": map[string]interface{}{"from": float64(1000), "to": float64(2000)},
	}, stored)
}

func TestRedisStore_NamespacesAreIsolated(t *testing.T) {
	db, err := miniredis.Run()
	require.NoError(t, err)
	defer db.Close()

	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{db.Addr()}})
	defer client.Close()

	require.NoError(t, NewRedisStore(client, "alice").Save("rules", model.RuleFilter{TextRepresentationLike: "x"}))
	assert.True(t, ssmerrors.IsNotFound(NewRedisStore(client, "bob").Load("rules", &model.RuleFilter{})))
}

func withRedisStore(t *testing.T, action func(s Store)) {
	db, err := miniredis.Run()
	require.NoError(t, err)
	defer db.Close()

	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{db.Addr()}})
	defer client.Close()

	action(NewRedisStore(client, "test"))
}

func withMemoryStore(_ *testing.T, action func(s Store)) {
	action(NewMemoryStore())
}

func withFileStore(t *testing.T, action func(s Store)) {
	action(NewFileStore(t.TempDir()))
}
