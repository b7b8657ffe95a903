package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

// Task completion logs

func (r *PostgresRepo) ListCompletionLogs(ctx context.Context) ([]model.TaskCompletionLog, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT log_id, task_id, completion_date FROM task_completion_logs ORDER BY completion_date DESC, log_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TaskCompletionLog{}
	for rows.Next() {
		var l model.TaskCompletionLog
		if err := rows.Scan(&l.LogID, &l.TaskID, &l.CompletionDate); err != nil {
			return nil, err
		}
		l.CompletionDate = l.CompletionDate.UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetCompletionLog(ctx context.Context, id int) (*model.TaskCompletionLog, error) {
	var l model.TaskCompletionLog
	err := r.DB.QueryRowContext(ctx,
		`SELECT log_id, task_id, completion_date FROM task_completion_logs WHERE log_id = $1`, id,
	).Scan(&l.LogID, &l.TaskID, &l.CompletionDate)
	if err != nil {
		return nil, translate(err, "completion log")
	}
	l.CompletionDate = l.CompletionDate.UTC()
	return &l, nil
}

// CreateCompletionLog stamps the current time when CompletionDate is zero.
func (r *PostgresRepo) CreateCompletionLog(ctx context.Context, l *model.TaskCompletionLog) error {
	if l.CompletionDate.IsZero() {
		l.CompletionDate = time.Now().UTC()
	}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO task_completion_logs (task_id, completion_date) VALUES ($1, $2) RETURNING log_id`,
		l.TaskID, l.CompletionDate.UTC(),
	).Scan(&l.LogID)
	return translate(err, "completion log")
}

func (r *PostgresRepo) DeleteCompletionLog(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM task_completion_logs WHERE log_id = $1`, id)
	if err != nil {
		return translate(err, "completion log")
	}
	return affected(res, "completion log")
}

// Assignment logs

func (r *PostgresRepo) ListAssignmentLogs(ctx context.Context) ([]model.AssignmentLog, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT log_id, ssn, task_id, assigned_date FROM assignment_logs ORDER BY log_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AssignmentLog{}
	for rows.Next() {
		var (
			l        model.AssignmentLog
			assigned sql.NullTime
		)
		if err := rows.Scan(&l.LogID, &l.SSN, &l.TaskID, &assigned); err != nil {
			return nil, err
		}
		l.AssignedDate = timePtr(assigned)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetAssignmentLog(ctx context.Context, id int) (*model.AssignmentLog, error) {
	var (
		l        model.AssignmentLog
		assigned sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT log_id, ssn, task_id, assigned_date FROM assignment_logs WHERE log_id = $1`, id,
	).Scan(&l.LogID, &l.SSN, &l.TaskID, &assigned)
	if err != nil {
		return nil, translate(err, "assignment log")
	}
	l.AssignedDate = timePtr(assigned)
	return &l, nil
}

func (r *PostgresRepo) CreateAssignmentLog(ctx context.Context, l *model.AssignmentLog) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO assignment_logs (ssn, task_id, assigned_date) VALUES ($1, $2, $3) RETURNING log_id`,
		l.SSN, l.TaskID, nullTime(l.AssignedDate),
	).Scan(&l.LogID)
	return translate(err, "assignment log")
}

func (r *PostgresRepo) DeleteAssignmentLog(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM assignment_logs WHERE log_id = $1`, id)
	if err != nil {
		return translate(err, "assignment log")
	}
	return affected(res, "assignment log")
}
