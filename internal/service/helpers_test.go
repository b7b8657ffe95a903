package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/metrics"
	"github.com/roksva123/go-taskboard-backend/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    *testutil.MemStore
	metrics  *metrics.Metrics
	updater  *CompletionUpdater
	tasks    *TaskService
	projects *ProjectService
	leaders  *LeaderService
	access   *AccessService
	users    *UserService
}

func newFixture() *fixture {
	store := testutil.NewMemStore()
	m := metrics.New()
	log := zap.NewNop()

	updater := NewCompletionUpdater(store, store, store, m, log)
	updater.now = func() time.Time { return fixedNow }
	tasks := NewTaskService(store, store, store, updater, log)
	tasks.now = func() time.Time { return fixedNow }
	leaders := NewLeaderService(store, store, store, store, log)
	leaders.now = func() time.Time { return fixedNow }

	return &fixture{
		store:    store,
		metrics:  m,
		updater:  updater,
		tasks:    tasks,
		projects: NewProjectService(store, store, store, store, updater, log),
		leaders:  leaders,
		access:   NewAccessService(store, store, store, m, log),
		users:    NewUserService(store, store, log),
	}
}

func intp(v int) *int { return &v }
