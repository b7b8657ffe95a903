package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

func (r *PostgresRepo) queryAssignments(ctx context.Context, q string, args ...interface{}) ([]model.Assignment, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Assignment{}
	for rows.Next() {
		var (
			a        model.Assignment
			assigned sql.NullTime
		)
		if err := rows.Scan(&a.SSN, &a.TaskID, &a.TodoIndex, &assigned); err != nil {
			return nil, err
		}
		a.AssignedDate = timePtr(assigned)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListAssignments(ctx context.Context) ([]model.Assignment, error) {
	return r.queryAssignments(ctx, `
		SELECT ssn, task_id, todo_index, assigned_date
		FROM assigned_to ORDER BY task_id, todo_index, id`)
}

func (r *PostgresRepo) ListAssignmentsByTasks(ctx context.Context, taskIDs []int) ([]model.Assignment, error) {
	if len(taskIDs) == 0 {
		return []model.Assignment{}, nil
	}
	return r.queryAssignments(ctx, `
		SELECT ssn, task_id, todo_index, assigned_date
		FROM assigned_to WHERE task_id = ANY($1)
		ORDER BY task_id, todo_index, id`, pq.Array(int64s(taskIDs)))
}

// GetAssignment returns the employee's first assignment on the task.
func (r *PostgresRepo) GetAssignment(ctx context.Context, ssn string, taskID int) (*model.Assignment, error) {
	var (
		a        model.Assignment
		assigned sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT ssn, task_id, todo_index, assigned_date
		FROM assigned_to WHERE ssn = $1 AND task_id = $2
		ORDER BY todo_index, id LIMIT 1`, ssn, taskID,
	).Scan(&a.SSN, &a.TaskID, &a.TodoIndex, &assigned)
	if err != nil {
		return nil, translate(err, "assignment")
	}
	a.AssignedDate = timePtr(assigned)
	return &a, nil
}

func (r *PostgresRepo) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO assigned_to (ssn, task_id, todo_index, assigned_date)
		VALUES ($1, $2, $3, $4)`,
		a.SSN, a.TaskID, a.TodoIndex, nullTime(a.AssignedDate))
	return translate(err, "assignment")
}

// UpdateAssignment moves the employee's assignment on fromIndex to
// a.TodoIndex and stamps a.AssignedDate.
func (r *PostgresRepo) UpdateAssignment(ctx context.Context, fromIndex int, a *model.Assignment) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE assigned_to SET todo_index = $4, assigned_date = $5
		WHERE ssn = $1 AND task_id = $2 AND todo_index = $3`,
		a.SSN, a.TaskID, fromIndex, a.TodoIndex, nullTime(a.AssignedDate))
	if err != nil {
		return translate(err, "assignment")
	}
	return affected(res, "assignment")
}

func (r *PostgresRepo) DeleteAssignment(ctx context.Context, ssn string, taskID, todoIndex int) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM assigned_to WHERE ssn = $1 AND task_id = $2 AND todo_index = $3`,
		ssn, taskID, todoIndex)
	if err != nil {
		return translate(err, "assignment")
	}
	return affected(res, "assignment")
}
