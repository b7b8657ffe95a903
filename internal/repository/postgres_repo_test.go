package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

func newMockRepo(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresRepo{DB: db}, mock
}

func intp(v int) *int { return &v }

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "x"))
	assert.ErrorIs(t, translate(sql.ErrNoRows, "task"), ErrNotFound)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23505"}, "task"), ErrConflict)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23503"}, "task"), ErrInvalidReference)

	other := errors.New("boom")
	err := translate(other, "task")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetTask_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE task_id = $1`)).
		WithArgs(9).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetTask(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTask_ScansNullableColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"task_id", "task_name", "start_date", "due_date", "completion_rate", "task_number", "pnumber"}).
		AddRow(3, "Design", start, nil, 40, nil, 7)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE task_id = $1`)).WithArgs(3).WillReturnRows(rows)

	task, err := repo.GetTask(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Design", task.TaskName)
	require.NotNil(t, task.StartDate)
	assert.True(t, start.Equal(*task.StartDate))
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.TaskNumber)
	assert.Equal(t, 40, task.CompletionRate)
	assert.Equal(t, 7, task.Pnumber)
}

func TestReplaceTask_DeletesThenReinsertsInTx(t *testing.T) {
	repo, mock := newMockRepo(t)
	task := &model.Task{TaskID: 5, TaskName: "Build", CompletionRate: 50, Pnumber: 2}
	todos := []model.ToDoItem{
		{TaskID: 5, TodoIndex: 0, Description: "a", Importance: intp(1), IsCompleted: true},
		{TaskID: 5, TodoIndex: 1, Description: "b", Importance: intp(1)},
	}
	assignments := []model.Assignment{{SSN: "123456789", TaskID: 5, TodoIndex: 1}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tasks SET task_name`)).
		WithArgs(5, "Build", nil, nil, 50, nil, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM task_todos WHERE task_id = $1`)).
		WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM assigned_to WHERE task_id = $1`)).
		WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO task_todos`)).
		WithArgs(5, 0, "a", 1, true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO task_todos`)).
		WithArgs(5, 1, "b", 1, false).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO assigned_to`)).
		WithArgs("123456789", 5, 1, nil).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceTask(context.Background(), task, todos, assignments))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTask_MissingTaskRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tasks SET task_name`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ReplaceTask(context.Background(), &model.Task{TaskID: 404, Pnumber: 1}, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask_DuplicateKeyIsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tasks`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.CreateTask(context.Background(), &model.Task{TaskID: 1, Pnumber: 1}, nil, nil)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTaskRates(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT completion_rate FROM tasks WHERE pnumber = $1`)).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"completion_rate"}).AddRow(40).AddRow(60))

	rates, err := repo.ListTaskRates(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []int{40, 60}, rates)
}

func TestListTodos_EmptyInputSkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)
	todos, err := repo.ListTodos(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, todos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLeadersByProject_JoinsEmployeeName(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "leader_ssn", "pnumber", "dnumber", "start_date", "fname", "lname"}).
		AddRow(1, "111", 7, 3, start, "Ayse", "Yilmaz").
		AddRow(2, "222", 7, nil, nil, "", "")
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE pl.pnumber = $1`)).WithArgs(7).WillReturnRows(rows)

	leaders, err := repo.ListLeadersByProject(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, leaders, 2)
	assert.Equal(t, "Ayse Yilmaz", leaders[0].FullName)
	assert.Equal(t, 3, leaders[0].Dnumber)
	assert.Equal(t, "", leaders[1].FullName)
	assert.Nil(t, leaders[1].StartDate)
}

func TestDeleteDepartment_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM departments WHERE dnumber = $1`)).
		WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteDepartment(context.Background(), 8), ErrNotFound)
}

func TestCreateEmployee_ZeroDepartmentStoredAsNull(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO employees`)).
		WithArgs("123", "A", "B", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateEmployee(context.Background(), &model.Employee{SSN: "123", Fname: "A", Lname: "B"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignment_DuplicateIsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO assigned_to`)).
		WithArgs("111", 7, 0, sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "assigned_to_ssn_task_todo_key"})

	err := repo.CreateAssignment(context.Background(), &model.Assignment{SSN: "111", TaskID: 7, TodoIndex: 0})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_AssignmentsAreUnique(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000002_assigned_to_unique.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "UNIQUE (ssn, task_id, todo_index)")

	down, err := migrationsFS.ReadFile("migrations/000002_assigned_to_unique.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "assigned_to_ssn_task_todo_key")
}

func TestGetLeader_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"id", "leader_ssn", "pnumber", "dnumber", "start_date", "fname", "lname"})
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE pl.id = $1`)).WithArgs(9).WillReturnRows(rows)

	_, err := repo.GetLeader(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAssignment_MovesRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE assigned_to SET todo_index = $4`)).
		WithArgs("111", 7, 0, 2, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE assigned_to SET todo_index = $4`)).
		WithArgs("111", 7, 5, 2, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, repo.UpdateAssignment(ctx, 0, &model.Assignment{SSN: "111", TaskID: 7, TodoIndex: 2}))
	assert.ErrorIs(t, repo.UpdateAssignment(ctx, 5, &model.Assignment{SSN: "111", TaskID: 7, TodoIndex: 2}), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWorksOn_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM works_on WHERE ssn = $1 AND pnumber = $2`)).
		WithArgs("111", 7).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetWorksOn(context.Background(), "111", 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
