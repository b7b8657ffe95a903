package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/repository"
)

func taskInput(pnumber int, todos ...model.TodoInput) model.TaskInput {
	return model.TaskInput{TaskName: "Write docs", Pnumber: pnumber, Todos: todos}
}

func todo(importance int, done bool) model.TodoInput {
	return model.TodoInput{Description: "step", Importance: intp(importance), IsCompleted: done}
}

func TestTaskService_CreateDerivesCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddEmployee("111", "Ann", "Lee")

	in := taskInput(10, todo(1, true), todo(2, false), todo(0, true))
	in.CompletionRate = intp(90)
	in.Assignments = [][]string{{"111", " ", "111"}, {}, {"111"}}

	got, err := f.tasks.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, 1, got.TaskID)
	assert.Equal(t, 33, got.CompletionRate)
	assert.Equal(t, []int{0, 1, 2}, []int{got.Todos[0].TodoIndex, got.Todos[1].TodoIndex, got.Todos[2].TodoIndex})
	assert.Equal(t, [][]string{{"111"}, {}, {"111"}}, got.Assignments)
	assert.Equal(t, 33, f.store.Projects[10].CompletionStatus)
	assert.Len(t, f.store.AssignmentLogs, 1)
	assert.Empty(t, f.store.CompletionLogs)
}

func TestTaskService_CreateUsesSuppliedRateWithoutWeights(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")

	in := taskInput(10, model.TodoInput{Description: "no weight"})
	in.CompletionRate = intp(100)

	got, err := f.tasks.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, 100, got.CompletionRate)
	assert.Len(t, f.store.CompletionLogs, 1)
	assert.Equal(t, 100, f.store.Projects[10].CompletionStatus)
}

func TestTaskService_CreateAllocatesID(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.Tasks[7] = model.Task{TaskID: 7, TaskName: "existing", Pnumber: 10}

	in := taskInput(10)
	in.TaskID = 7
	got, err := f.tasks.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 8, got.TaskID)

	in.TaskID = 42
	got, err = f.tasks.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 42, got.TaskID)
}

func TestTaskService_CreateRetriesOnceOnConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.FailCreateTaskOnce = true

	got, err := f.tasks.Create(ctx, taskInput(10))
	require.NoError(t, err)

	assert.Equal(t, 2, got.TaskID)
	assert.Equal(t, "Write docs", got.TaskName)
}

func TestTaskService_CreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")

	dup := taskInput(10, model.TodoInput{TodoIndex: intp(1)}, model.TodoInput{TodoIndex: intp(1)})
	tooMany := taskInput(10, todo(1, false))
	tooMany.Assignments = [][]string{{"a"}, {"b"}}
	badRate := taskInput(10)
	badRate.CompletionRate = intp(101)

	tests := []struct {
		name string
		in   model.TaskInput
	}{
		{"blank name", model.TaskInput{TaskName: " ", Pnumber: 10}},
		{"unknown project", taskInput(99)},
		{"negative importance", taskInput(10, todo(-1, false))},
		{"duplicate index", dup},
		{"more groups than todos", tooMany},
		{"rate out of range", badRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tasks.Create(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, f.store.Tasks)
}

func TestTaskService_UpdateReplacesChildrenAndRefreshesBothProjects(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddProject(20, "Gemini")
	f.store.AddEmployee("111", "Ann", "Lee")
	f.store.AddEmployee("222", "Bo", "Kim")

	first := taskInput(10, todo(1, true), todo(1, false))
	first.Assignments = [][]string{{"111"}}
	created, err := f.tasks.Create(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 50, f.store.Projects[10].CompletionStatus)

	next := taskInput(20, todo(3, true))
	next.Assignments = [][]string{{"111", "222"}}
	got, err := f.tasks.Update(ctx, created.TaskID, next)
	require.NoError(t, err)

	assert.Equal(t, 100, got.CompletionRate)
	assert.Len(t, got.Todos, 1)
	assert.Equal(t, [][]string{{"111", "222"}}, got.Assignments)
	assert.Equal(t, 0, f.store.Projects[10].CompletionStatus)
	assert.Equal(t, 100, f.store.Projects[20].CompletionStatus)
	assert.Len(t, f.store.CompletionLogs, 1)
	assert.Len(t, f.store.AssignmentLogs, 2)

	_, err = f.tasks.Update(ctx, 999, next)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_DeleteRefreshesProject(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")

	a, err := f.tasks.Create(ctx, taskInput(10, todo(1, true)))
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, taskInput(10, todo(1, false)))
	require.NoError(t, err)
	assert.Equal(t, 50, f.store.Projects[10].CompletionStatus)

	require.NoError(t, f.tasks.Delete(ctx, a.TaskID))
	assert.Equal(t, 0, f.store.Projects[10].CompletionStatus)
	assert.ErrorIs(t, f.tasks.Delete(ctx, a.TaskID), repository.ErrNotFound)
}

func TestTaskService_Assignments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddEmployee("111", "Ann", "Lee")

	created, err := f.tasks.Create(ctx, taskInput(10, model.TodoInput{TodoIndex: intp(4), Importance: intp(1)}))
	require.NoError(t, err)

	a, err := f.tasks.AddAssignment(ctx, model.Assignment{SSN: "111", TaskID: created.TaskID, TodoIndex: 4})
	require.NoError(t, err)
	require.NotNil(t, a.AssignedDate)
	assert.Equal(t, fixedNow, *a.AssignedDate)

	_, err = f.tasks.AddAssignment(ctx, model.Assignment{SSN: "111", TaskID: created.TaskID, TodoIndex: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.tasks.AddAssignment(ctx, model.Assignment{SSN: "111", TaskID: created.TaskID, TodoIndex: 4})
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := f.tasks.Get(ctx, created.TaskID)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"111"}}, got.Assignments)

	require.NoError(t, f.tasks.RemoveAssignment(ctx, "111", created.TaskID, 4))
	assert.ErrorIs(t, f.tasks.RemoveAssignment(ctx, "111", created.TaskID, 4), repository.ErrNotFound)
	assert.Len(t, f.store.AssignmentLogs, 1)
}

func TestTaskService_AddAssignmentLogsOncePerEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddEmployee("111", "Ann", "Lee")
	f.store.AddEmployee("222", "Bo", "Kim")

	created, err := f.tasks.Create(ctx, taskInput(10, todo(1, false), todo(1, false)))
	require.NoError(t, err)

	for _, a := range []model.Assignment{
		{SSN: "111", TaskID: created.TaskID, TodoIndex: 0},
		{SSN: "111", TaskID: created.TaskID, TodoIndex: 1},
		{SSN: "222", TaskID: created.TaskID, TodoIndex: 1},
	} {
		_, err := f.tasks.AddAssignment(ctx, a)
		require.NoError(t, err)
	}

	require.Len(t, f.store.AssignmentLogs, 2)
	assert.Equal(t, "111", f.store.AssignmentLogs[0].SSN)
	assert.Equal(t, "222", f.store.AssignmentLogs[1].SSN)

	got, err := f.tasks.Get(ctx, created.TaskID)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"111"}, {"111", "222"}}, got.Assignments)
}

func TestCompletionUpdater_RefreshTaskKeepsRateWithoutWeights(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.Tasks[1] = model.Task{TaskID: 1, Pnumber: 10, CompletionRate: 40}
	f.store.Todos[1] = []model.ToDoItem{{TaskID: 1, TodoIndex: 0, IsCompleted: true}}

	rate, err := f.updater.RefreshTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 40, rate)

	f.store.Todos[1] = []model.ToDoItem{{TaskID: 1, TodoIndex: 0, Importance: intp(2), IsCompleted: true}}
	rate, err = f.updater.RefreshTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, rate)
	assert.Equal(t, 100, f.store.Tasks[1].CompletionRate)
	require.Len(t, f.store.CompletionLogs, 1)
	assert.Equal(t, fixedNow, f.store.CompletionLogs[0].CompletionDate)
}

func TestTaskService_UpdateAssignment(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddEmployee("111", "Ann", "Lee")
	f.store.AddEmployee("222", "Bo", "Kim")

	created, err := f.tasks.Create(ctx, taskInput(10, todo(1, false), todo(1, false), todo(1, false)))
	require.NoError(t, err)
	_, err = f.tasks.AddAssignment(ctx, model.Assignment{SSN: "111", TaskID: created.TaskID, TodoIndex: 0})
	require.NoError(t, err)
	_, err = f.tasks.AddAssignment(ctx, model.Assignment{SSN: "111", TaskID: created.TaskID, TodoIndex: 1})
	require.NoError(t, err)

	moved, err := f.tasks.UpdateAssignment(ctx, "111", created.TaskID, model.Assignment{TodoIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, moved.TodoIndex)
	assert.Equal(t, fixedNow, *moved.AssignedDate)

	got, err := f.tasks.Get(ctx, created.TaskID)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{}, {"111"}, {"111"}}, got.Assignments)

	_, err = f.tasks.UpdateAssignment(ctx, "111", created.TaskID, model.Assignment{TodoIndex: 2})
	assert.ErrorIs(t, err, repository.ErrConflict)
	_, err = f.tasks.UpdateAssignment(ctx, "111", created.TaskID, model.Assignment{TodoIndex: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.tasks.UpdateAssignment(ctx, "111", created.TaskID, model.Assignment{SSN: "222", TodoIndex: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.tasks.UpdateAssignment(ctx, "222", created.TaskID, model.Assignment{TodoIndex: 0})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
