package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/completion"
	"github.com/roksva123/go-taskboard-backend/internal/metrics"
	"github.com/roksva123/go-taskboard-backend/internal/model"
)

// CompletionUpdater keeps stored task rates and project statuses in step
// with their to-dos.
type CompletionUpdater struct {
	tasks    TaskStore
	projects ProjectStore
	logs     LogWriter
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewCompletionUpdater(tasks TaskStore, projects ProjectStore, logs LogWriter, m *metrics.Metrics, log *zap.Logger) *CompletionUpdater {
	return &CompletionUpdater{tasks: tasks, projects: projects, logs: logs, metrics: m, log: log, now: time.Now}
}

// RefreshTask recomputes the task rate from its stored to-dos. A task whose
// to-dos carry no weight keeps its stored rate.
func (u *CompletionUpdater) RefreshTask(ctx context.Context, taskID int) (int, error) {
	task, err := u.tasks.GetTask(ctx, taskID)
	if err != nil {
		return 0, err
	}
	todos, err := u.tasks.ListTodos(ctx, []int{taskID})
	if err != nil {
		return 0, err
	}
	u.metrics.IncRecompute("task")
	if !completion.Derivable(todos) {
		return task.CompletionRate, nil
	}

	rate := completion.TaskCompletion(todos)
	if rate == task.CompletionRate {
		return rate, nil
	}
	if err := u.tasks.SetTaskCompletion(ctx, taskID, rate); err != nil {
		return 0, err
	}
	if err := u.logCompleted(ctx, taskID, task.CompletionRate, rate); err != nil {
		return 0, err
	}
	return rate, nil
}

// RefreshProject stores the mean of the project's task rates.
func (u *CompletionUpdater) RefreshProject(ctx context.Context, pnumber int) (int, error) {
	rates, err := u.tasks.ListTaskRates(ctx, pnumber)
	if err != nil {
		return 0, err
	}
	status := completion.ProjectCompletion(rates)
	if err := u.projects.SetProjectCompletion(ctx, pnumber, status); err != nil {
		return 0, err
	}
	u.metrics.IncRecompute("project")
	u.log.Debug("project completion refreshed",
		zap.Int("pnumber", pnumber), zap.Int("tasks", len(rates)), zap.Int("status", status))
	return status, nil
}

// logCompleted records the transition of a task to 100.
func (u *CompletionUpdater) logCompleted(ctx context.Context, taskID, before, after int) error {
	if before >= 100 || after < 100 {
		return nil
	}
	return u.logs.CreateCompletionLog(ctx, &model.TaskCompletionLog{
		TaskID:         taskID,
		CompletionDate: u.now().UTC(),
	})
}
