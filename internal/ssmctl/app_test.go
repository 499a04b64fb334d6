package ssmctl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/appstate"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/daterange"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/filterstore"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

// syncBuffer guards a bytes.Buffer written from poller goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func newTestApp() (*App, *syncBuffer, *clocktesting.FakeClock) {
	out := &syncBuffer{}
	fakeClock := clocktesting.NewFakeClock(time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC))
	a := New()
	a.Out = out
	a.Clock = fakeClock
	a.Params.FilterStore = filterstore.NewMemoryStore()
	return a, out, fakeClock
}

var testRules = []model.Rule{
	{Id: 1, State: model.RuleActive, TextRepresentation: "file: path matches \"/a/*\" | cache", SubmitTime: 1677672000000},
	{Id: 2, State: model.RuleDisabled, TextRepresentation: "file: path matches \"/b/*\" | archive", SubmitTime: 1677672060000},
}

type listCall[F any] struct {
	filter     F
	sort       model.SortParams
	pagination model.PaginationParams
}

func TestVersion(t *testing.T) {
	a, out, _ := newTestApp()

	err := a.Version()
	require.NoError(t, err)

	for _, s := range []string{"Version", "Commit", "Go version", "Built"} {
		assert.Contains(t, out.String(), s)
	}
}

func TestGetRules_UsesTableState(t *testing.T) {
	a, out, _ := newTestApp()
	var calls []listCall[model.RuleFilter]
	a.Params.RuleAPI.List = func(
		_ context.Context, filter model.RuleFilter, sort *model.SortParams, pagination *model.PaginationParams,
	) (model.Collection[model.Rule], error) {
		calls = append(calls, listCall[model.RuleFilter]{filter, *sort, *pagination})
		return model.Collection[model.Rule]{Items: testRules, Total: 12}, nil
	}

	filter := model.RuleFilter{RuleStates: []model.RuleState{model.RuleActive, model.RuleDisabled}}
	err := a.GetRules(context.Background(), filter, ListOptions{
		Pagination: &model.PaginationParams{PageNumber: 1, PerPage: 2},
		Output:     OutputTable,
	})
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, filter, calls[0].filter)
	assert.Equal(t, model.SortParams{SortBy: "id", SortDirection: model.DirectionAsc}, calls[0].sort)
	assert.Equal(t, model.PaginationParams{PageNumber: 1, PerPage: 2}, calls[0].pagination)
	assert.Equal(t, filter, a.State.Rules.State().Filter)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "ACTIVE")
	assert.Contains(t, lines[2], "archive")
	assert.Equal(t, "Showing 3-4 of 12", lines[3])
}

func TestGetRules_SortOverride(t *testing.T) {
	a, _, _ := newTestApp()
	var sort model.SortParams
	a.Params.RuleAPI.List = func(
		_ context.Context, _ model.RuleFilter, s *model.SortParams, _ *model.PaginationParams,
	) (model.Collection[model.Rule], error) {
		sort = *s
		return model.Collection[model.Rule]{}, nil
	}

	want := model.SortParams{SortBy: "submitTime", SortDirection: model.DirectionDesc}
	err := a.GetRules(context.Background(), model.RuleFilter{}, ListOptions{Sort: &want, Output: OutputTable})

	require.NoError(t, err)
	assert.Equal(t, want, sort)
}

func TestGetActions_Yaml(t *testing.T) {
	a, out, _ := newTestApp()
	a.Params.ActionAPI.List = func(
		context.Context, model.ActionFilter, *model.SortParams, *model.PaginationParams,
	) (model.Collection[model.Action], error) {
		return model.Collection[model.Action]{
			Items: []model.Action{{Id: 7, TextRepresentation: "cache -file /a", State: model.ActionSuccessful, Source: model.SourceUser}},
			Total: 1,
		}, nil
	}

	err := a.GetActions(context.Background(), model.ActionFilter{}, ListOptions{Output: OutputYaml})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "---\n"))
	assert.Contains(t, out.String(), "textRepresentation: cache -file /a")
	assert.Contains(t, out.String(), "total: 1")
}

func TestGetAuditEvents_Empty(t *testing.T) {
	a, out, _ := newTestApp()
	a.Params.AuditAPI.List = func(
		context.Context, model.AuditEventFilter, *model.SortParams, *model.PaginationParams,
	) (model.Collection[model.AuditEvent], error) {
		return model.Collection[model.AuditEvent]{Items: []model.AuditEvent{}}, nil
	}

	err := a.GetAuditEvents(context.Background(), model.AuditEventFilter{}, ListOptions{Output: OutputTable})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "No results (total 0)")
}

func TestGetCachedFiles_Error(t *testing.T) {
	a, _, _ := newTestApp()
	a.Params.FileAPI.ListCached = func(
		context.Context, model.CachedFileFilter, *model.SortParams, *model.PaginationParams,
	) (model.Collection[model.CachedFile], error) {
		return model.Collection[model.CachedFile]{}, errors.New("boom")
	}

	err := a.GetCachedFiles(context.Background(), model.CachedFileFilter{}, ListOptions{Output: OutputTable})

	assert.EqualError(t, err, "boom")
}

func TestGetRules_SaveAndRestore(t *testing.T) {
	a, _, _ := newTestApp()
	var filters []model.RuleFilter
	a.Params.RuleAPI.List = func(
		_ context.Context, filter model.RuleFilter, _ *model.SortParams, _ *model.PaginationParams,
	) (model.Collection[model.Rule], error) {
		filters = append(filters, filter)
		return model.Collection[model.Rule]{}, nil
	}

	lastDay := daterange.Dynamic[time.Time](daterange.Last24Hours)
	saved := model.RuleFilter{TextRepresentationLike: "cache", SubmissionTime: &lastDay}
	err := a.GetRules(context.Background(), saved, ListOptions{Save: true, Output: OutputTable})
	require.NoError(t, err)

	err = a.GetRules(context.Background(), model.RuleFilter{}, ListOptions{Restore: true, Output: OutputTable})
	require.NoError(t, err)

	require.Len(t, filters, 2)
	assert.Equal(t, "cache", filters[1].TextRepresentationLike)
	require.NotNil(t, filters[1].SubmissionTime)
	assert.True(t, lastDay.Equal(*filters[1].SubmissionTime))
}

func TestGetRules_RestoreReplacesFlagFilter(t *testing.T) {
	a, _, _ := newTestApp()
	var filters []model.RuleFilter
	a.Params.RuleAPI.List = func(
		_ context.Context, filter model.RuleFilter, _ *model.SortParams, _ *model.PaginationParams,
	) (model.Collection[model.Rule], error) {
		filters = append(filters, filter)
		return model.Collection[model.Rule]{}, nil
	}
	saved := model.RuleFilter{RuleStates: []model.RuleState{model.RuleActive}}
	require.NoError(t, a.Params.FilterStore.Save("rules", saved))

	lastHour := daterange.Dynamic[time.Time](daterange.LastHour)
	fromFlags := model.RuleFilter{TextRepresentationLike: "flagtext", LastActivationTime: &lastHour}
	err := a.GetRules(context.Background(), fromFlags, ListOptions{Restore: true, Output: OutputTable})
	require.NoError(t, err)

	require.Len(t, filters, 1)
	assert.Equal(t, saved, filters[0])
	assert.Equal(t, saved, a.State.Rules.State().Filter)
}

func TestGetRules_RestoreWithoutSavedFilter(t *testing.T) {
	a, _, _ := newTestApp()
	a.Params.RuleAPI.List = func(
		context.Context, model.RuleFilter, *model.SortParams, *model.PaginationParams,
	) (model.Collection[model.Rule], error) {
		t.Fatal("list should not be called")
		return model.Collection[model.Rule]{}, nil
	}

	err := a.GetRules(context.Background(), model.RuleFilter{}, ListOptions{Restore: true})

	assert.EqualError(t, err, "no saved filter for table rules")
}

func TestGetNodes_Watch(t *testing.T) {
	a, out, fakeClock := newTestApp()
	var mu sync.Mutex
	fetches := 0
	a.Params.NodeAPI.List = func(
		context.Context, model.ClusterNodeFilter, *model.SortParams, *model.PaginationParams,
	) (model.Collection[model.ClusterNode], error) {
		mu.Lock()
		defer mu.Unlock()
		fetches++
		return model.Collection[model.ClusterNode]{
			Items: []model.ClusterNode{{Id: "node-1", Host: "agent-1", ExecutorType: model.ExecutorAgent}},
			Total: 1,
		}, nil
	}
	fetchCount := func() int {
		mu.Lock()
		defer mu.Unlock()
		return fetches
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- a.GetNodes(ctx, model.ClusterNodeFilter{}, ListOptions{Watch: true, Frequency: 2, Output: OutputTable})
	}()

	require.Eventually(t, fakeClock.HasWaiters, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return strings.Count(out.String(), "agent-1") == 1 }, time.Second, time.Millisecond)

	fakeClock.Step(2 * time.Second)
	require.Eventually(t, func() bool { return strings.Count(out.String(), "agent-1") == 2 }, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
	assert.Equal(t, 2, fetchCount())
	assert.Equal(t, 2, a.State.Nodes.State().RequestFrequency)
}

func TestRuleCommands(t *testing.T) {
	a, out, _ := newTestApp()
	var called []string
	record := func(verb string) func(context.Context, int64) error {
		return func(_ context.Context, id int64) error {
			called = append(called, verb)
			if id == 404 {
				return &ssmerrors.ErrNotFound{Type: "rule", Value: "404"}
			}
			return nil
		}
	}
	a.Params.RuleAPI.Delete = record("delete")
	a.Params.RuleAPI.Start = record("start")
	a.Params.RuleAPI.Stop = record("stop")
	a.Params.RuleAPI.Create = func(_ context.Context, text string) (model.Rule, error) {
		called = append(called, "create")
		return model.Rule{Id: 42, TextRepresentation: text}, nil
	}

	tests := map[string]struct {
		run      func() error
		expected string
	}{
		"create": {func() error { return a.CreateRule(context.Background(), "file: path matches \"/a/*\" | cache") }, "Created rule 42\n"},
		"delete": {func() error { return a.DeleteRule(context.Background(), 3) }, "Deleted rule 3\n"},
		"start":  {func() error { return a.StartRule(context.Background(), 3) }, "Started rule 3\n"},
		"stop":   {func() error { return a.StopRule(context.Background(), 3) }, "Stopped rule 3\n"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out.Reset()
			require.NoError(t, tc.run())
			assert.Equal(t, tc.expected, out.String())
		})
	}
	assert.ElementsMatch(t, []string{"create", "delete", "start", "stop"}, called)

	out.Reset()
	err := a.StartRule(context.Background(), 404)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error starting rule 404")
	assert.Empty(t, out.String())
}

func TestRulesInfo(t *testing.T) {
	a, out, _ := newTestApp()
	a.Params.RuleAPI.Info = func(context.Context) (model.RulesInfo, error) {
		return model.RulesInfo{TotalRules: 10, ActiveRules: 4}, nil
	}

	require.NoError(t, a.RulesInfo(context.Background()))

	assert.Equal(t, "Total rules:  10\nActive rules: 4\n", out.String())
}

func TestActionCommands(t *testing.T) {
	a, out, _ := newTestApp()
	action := model.Action{
		Id:                 9,
		CmdletId:           3,
		TextRepresentation: "uncache -file /a",
		ExecHost:           "agent-1",
		State:              model.ActionFailed,
		Source:             model.SourceUser,
		Log:                "file not cached",
	}
	a.Params.ActionAPI.Submit = func(_ context.Context, text string, host string) (model.Action, error) {
		assert.Equal(t, "uncache -file /a", text)
		assert.Equal(t, "agent-1", host)
		return action, nil
	}
	a.Params.ActionAPI.Repeat = func(_ context.Context, id int64) (model.Action, error) {
		assert.Equal(t, int64(9), id)
		return model.Action{Id: 10}, nil
	}
	a.Params.ActionAPI.Get = func(_ context.Context, id int64) (model.Action, error) {
		if id != 9 {
			return model.Action{}, &ssmerrors.ErrNotFound{Type: "action", Value: "1"}
		}
		return action, nil
	}

	t.Run("submit", func(t *testing.T) {
		out.Reset()
		require.NoError(t, a.SubmitAction(context.Background(), "uncache -file /a", "agent-1"))
		assert.Equal(t, "Submitted action 9\n", out.String())
	})

	t.Run("repeat", func(t *testing.T) {
		out.Reset()
		require.NoError(t, a.RepeatAction(context.Background(), 9))
		assert.Equal(t, "Submitted action 10 as a repeat of action 9\n", out.String())
	})

	t.Run("show", func(t *testing.T) {
		out.Reset()
		require.NoError(t, a.ShowAction(context.Background(), 9, OutputTable))
		assert.Contains(t, out.String(), "State:     FAILED\n")
		assert.Contains(t, out.String(), "Completed: -\n")
		assert.True(t, strings.HasSuffix(out.String(), "Log:\nfile not cached\n"))
	})

	t.Run("show missing", func(t *testing.T) {
		err := a.ShowAction(context.Background(), 1, OutputTable)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error getting action 1")
	})
}

func TestFilterCommands(t *testing.T) {
	a, out, _ := newTestApp()
	fileName := filepath.Join(t.TempDir(), "filter.yaml")
	err := os.WriteFile(fileName, []byte("ruleStates:\n- ACTIVE\nsubmissionTime: now-24h\n"), 0o644)
	require.NoError(t, err)

	require.NoError(t, a.SaveFilterFromFile(appstate.TableRules, fileName))
	assert.Equal(t, "Saved filter for table rules\n", out.String())

	out.Reset()
	require.NoError(t, a.ShowFilter(appstate.TableRules))
	assert.Equal(t, "---\nruleStates:\n- ACTIVE\nsubmissionTime: now-24h\n", out.String())

	out.Reset()
	require.NoError(t, a.ResetFilters(nil))
	assert.Equal(t, "Reset filters for nodes, rules, actions, audit, cached, hottest\n", out.String())

	out.Reset()
	require.NoError(t, a.ShowFilter(appstate.TableRules))
	assert.Equal(t, "No filter saved for table rules\n", out.String())
}

func TestFilterCommands_InvalidInput(t *testing.T) {
	a, _, _ := newTestApp()
	dir := t.TempDir()

	err := a.ShowFilter("jobs")
	assert.EqualError(t, err, `value "jobs" is invalid for field "table"; expected one of nodes, rules, actions, audit, cached, hottest`)

	err = a.ResetFilters([]string{"rules", "jobs"})
	assert.Error(t, err)

	badTag := filepath.Join(dir, "bad-tag.yaml")
	require.NoError(t, os.WriteFile(badTag, []byte("eventTime: yesterday\n"), 0o644))
	assert.Error(t, a.SaveFilterFromFile(appstate.TableAuditEvents, badTag))

	unknownField := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknownField, []byte("owner: alice\n"), 0o644))
	assert.Error(t, a.SaveFilterFromFile(appstate.TableHotFiles, unknownField))
}

func TestSummary(t *testing.T) {
	a, out, _ := newTestApp()
	a.Params.RuleAPI.Info = func(context.Context) (model.RulesInfo, error) {
		return model.RulesInfo{TotalRules: 5, ActiveRules: 2}, nil
	}
	a.Params.ActionAPI.List = func(
		_ context.Context, filter model.ActionFilter, _ *model.SortParams, pagination *model.PaginationParams,
	) (model.Collection[model.Action], error) {
		assert.Equal(t, []model.ActionState{model.ActionRunning}, filter.States)
		assert.Equal(t, 1, pagination.PerPage)
		return model.Collection[model.Action]{Items: []model.Action{{Id: 1}}, Total: 3}, nil
	}
	a.Params.NodeAPI.List = func(
		context.Context, model.ClusterNodeFilter, *model.SortParams, *model.PaginationParams,
	) (model.Collection[model.ClusterNode], error) {
		return model.Collection[model.ClusterNode]{
			Items: []model.ClusterNode{
				{Id: "a", ExecutorType: model.ExecutorAgent},
				{Id: "b", ExecutorType: model.ExecutorLocal},
				{Id: "c", ExecutorType: model.ExecutorAgent},
			},
			Total: 3,
		}, nil
	}

	require.NoError(t, a.Summary(context.Background()))

	expected := "Rules:           5 (2 active)\n" +
		"Running actions: 3\n" +
		"Nodes:           3\n" +
		"  AGENT:         2\n" +
		"  LOCAL:         1\n"
	assert.Equal(t, expected, out.String())
}

func TestSummary_Error(t *testing.T) {
	a, _, _ := newTestApp()
	a.Params.RuleAPI.Info = func(context.Context) (model.RulesInfo, error) {
		return model.RulesInfo{}, &ssmerrors.ErrServer{Status: 503, Message: "unavailable"}
	}
	a.Params.ActionAPI.List = func(
		context.Context, model.ActionFilter, *model.SortParams, *model.PaginationParams,
	) (model.Collection[model.Action], error) {
		return model.Collection[model.Action]{}, nil
	}
	a.Params.NodeAPI.List = func(
		context.Context, model.ClusterNodeFilter, *model.SortParams, *model.PaginationParams,
	) (model.Collection[model.ClusterNode], error) {
		return model.Collection[model.ClusterNode]{}, nil
	}

	err := a.Summary(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting cluster summary")
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, OutputYaml, f)

	_, err = ParseOutputFormat("json")
	assert.Error(t, err)
}

func TestGetHotFiles_PartialOverrides(t *testing.T) {
	a, _, _ := newTestApp()
	var call listCall[model.HotFileFilter]
	a.Params.FileAPI.ListHot = func(
		_ context.Context, filter model.HotFileFilter, sort *model.SortParams, pagination *model.PaginationParams,
	) (model.Collection[model.HotFile], error) {
		call = listCall[model.HotFileFilter]{filter, *sort, *pagination}
		return model.Collection[model.HotFile]{}, nil
	}

	err := a.GetHotFiles(context.Background(), model.HotFileFilter{PathLike: "/logs"}, ListOptions{
		Sort:       &model.SortParams{SortDirection: model.DirectionAsc},
		Pagination: &model.PaginationParams{PageNumber: 2},
		Output:     OutputTable,
	})

	require.NoError(t, err)
	assert.Equal(t, model.SortParams{SortBy: "accessCount", SortDirection: model.DirectionAsc}, call.sort)
	assert.Equal(t, model.PaginationParams{PageNumber: 2, PerPage: 10}, call.pagination)
}
