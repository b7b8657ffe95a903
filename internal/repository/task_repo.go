package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

const taskColumns = `task_id, task_name, start_date, due_date, completion_rate, task_number, pnumber`

func scanTask(s rowScanner) (model.Task, error) {
	var (
		t          model.Task
		start, due sql.NullTime
		number     sql.NullInt64
	)
	if err := s.Scan(&t.TaskID, &t.TaskName, &start, &due, &t.CompletionRate, &number, &t.Pnumber); err != nil {
		return t, err
	}
	t.StartDate = timePtr(start)
	t.DueDate = timePtr(due)
	t.TaskNumber = intPtr(number)
	return t, nil
}

func (r *PostgresRepo) queryTasks(ctx context.Context, q string, args ...interface{}) ([]model.Task, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListTasks(ctx context.Context) ([]model.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY task_id`)
}

func (r *PostgresRepo) ListTasksByProject(ctx context.Context, pnumber int) ([]model.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE pnumber = $1 ORDER BY task_number NULLS LAST, task_id`, pnumber)
}

func (r *PostgresRepo) GetTask(ctx context.Context, taskID int) (*model.Task, error) {
	t, err := scanTask(r.DB.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_id = $1`, taskID))
	if err != nil {
		return nil, translate(err, "task")
	}
	return &t, nil
}

func (r *PostgresRepo) TaskExists(ctx context.Context, taskID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE task_id = $1)`, taskID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepo) MaxTaskID(ctx context.Context) (int, error) {
	var max int
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(task_id), 0) FROM tasks`).Scan(&max)
	return max, err
}

// CreateTask inserts the task with its to-dos and assignments in one
// transaction. A taken task id surfaces as ErrConflict.
func (r *PostgresRepo) CreateTask(ctx context.Context, t *model.Task, todos []model.ToDoItem, assignments []model.Assignment) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (task_id, task_name, start_date, due_date, completion_rate, task_number, pnumber)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.TaskID, t.TaskName, nullTime(t.StartDate), nullTime(t.DueDate),
			t.CompletionRate, nullInt(t.TaskNumber), t.Pnumber); err != nil {
			return translate(err, "task")
		}
		return insertChildren(ctx, tx, t.TaskID, todos, assignments)
	})
}

// ReplaceTask updates the task row and swaps its whole to-do and
// assignment sets: existing children are deleted, the new ones inserted.
func (r *PostgresRepo) ReplaceTask(ctx context.Context, t *model.Task, todos []model.ToDoItem, assignments []model.Assignment) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE tasks SET task_name = $2, start_date = $3, due_date = $4,
				completion_rate = $5, task_number = $6, pnumber = $7
			WHERE task_id = $1`,
			t.TaskID, t.TaskName, nullTime(t.StartDate), nullTime(t.DueDate),
			t.CompletionRate, nullInt(t.TaskNumber), t.Pnumber)
		if err != nil {
			return translate(err, "task")
		}
		if err := affected(res, "task"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM task_todos WHERE task_id = $1`, t.TaskID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM assigned_to WHERE task_id = $1`, t.TaskID); err != nil {
			return err
		}
		return insertChildren(ctx, tx, t.TaskID, todos, assignments)
	})
}

func insertChildren(ctx context.Context, tx *sql.Tx, taskID int, todos []model.ToDoItem, assignments []model.Assignment) error {
	for _, td := range todos {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO task_todos (task_id, todo_index, description, importance, is_completed)
			VALUES ($1, $2, $3, $4, $5)`,
			taskID, td.TodoIndex, td.Description, nullInt(td.Importance), td.IsCompleted); err != nil {
			return translate(err, "todo")
		}
	}
	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO assigned_to (ssn, task_id, todo_index, assigned_date)
			VALUES ($1, $2, $3, $4)`,
			a.SSN, taskID, a.TodoIndex, nullTime(a.AssignedDate)); err != nil {
			return translate(err, "assignment")
		}
	}
	return nil
}

func (r *PostgresRepo) DeleteTask(ctx context.Context, taskID int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, taskID)
	if err != nil {
		return translate(err, "task")
	}
	return affected(res, "task")
}

func (r *PostgresRepo) SetTaskCompletion(ctx context.Context, taskID, rate int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE tasks SET completion_rate = $2 WHERE task_id = $1`, taskID, rate)
	if err != nil {
		return translate(err, "task")
	}
	return affected(res, "task")
}

// ListTaskRates returns the stored completion rate of every task in the
// project.
func (r *PostgresRepo) ListTaskRates(ctx context.Context, pnumber int) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT completion_rate FROM tasks WHERE pnumber = $1 ORDER BY task_id`, pnumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var rate int
		if err := rows.Scan(&rate); err != nil {
			return nil, err
		}
		out = append(out, rate)
	}
	return out, rows.Err()
}

// ListTodos returns the to-dos of the given tasks ordered by task and index.
func (r *PostgresRepo) ListTodos(ctx context.Context, taskIDs []int) ([]model.ToDoItem, error) {
	if len(taskIDs) == 0 {
		return []model.ToDoItem{}, nil
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT task_id, todo_index, description, importance, is_completed
		FROM task_todos WHERE task_id = ANY($1)
		ORDER BY task_id, todo_index`, pq.Array(int64s(taskIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ToDoItem{}
	for rows.Next() {
		var (
			td         model.ToDoItem
			importance sql.NullInt64
		)
		if err := rows.Scan(&td.TaskID, &td.TodoIndex, &td.Description, &importance, &td.IsCompleted); err != nil {
			return nil, err
		}
		td.Importance = intPtr(importance)
		out = append(out, td)
	}
	return out, rows.Err()
}
