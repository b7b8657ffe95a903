package repository

import (
	"context"
	"database/sql"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

const projectColumns = `pnumber, pname, start_date, due_date, completion_status, dnumber`

func scanProject(s rowScanner) (model.Project, error) {
	var (
		p          model.Project
		start, due sql.NullTime
		dnumber    sql.NullInt64
	)
	if err := s.Scan(&p.Pnumber, &p.Pname, &start, &due, &p.CompletionStatus, &dnumber); err != nil {
		return p, err
	}
	p.StartDate = timePtr(start)
	p.DueDate = timePtr(due)
	p.Dnumber = int(dnumber.Int64)
	return p, nil
}

func (r *PostgresRepo) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY pnumber`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetProject(ctx context.Context, pnumber int) (*model.Project, error) {
	p, err := scanProject(r.DB.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE pnumber = $1`, pnumber))
	if err != nil {
		return nil, translate(err, "project")
	}
	return &p, nil
}

func (r *PostgresRepo) CreateProject(ctx context.Context, p *model.Project) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO projects (pnumber, pname, start_date, due_date, completion_status, dnumber)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.Pnumber, p.Pname, nullTime(p.StartDate), nullTime(p.DueDate), p.CompletionStatus, nullZero(p.Dnumber))
	return translate(err, "project")
}

// UpdateProject writes the editable fields. completion_status is owned by
// SetProjectCompletion.
func (r *PostgresRepo) UpdateProject(ctx context.Context, p *model.Project) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE projects SET pname = $2, start_date = $3, due_date = $4, dnumber = $5
		WHERE pnumber = $1`,
		p.Pnumber, p.Pname, nullTime(p.StartDate), nullTime(p.DueDate), nullZero(p.Dnumber))
	if err != nil {
		return translate(err, "project")
	}
	return affected(res, "project")
}

func (r *PostgresRepo) DeleteProject(ctx context.Context, pnumber int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE pnumber = $1`, pnumber)
	if err != nil {
		return translate(err, "project")
	}
	return affected(res, "project")
}

func (r *PostgresRepo) SetProjectCompletion(ctx context.Context, pnumber, status int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET completion_status = $2 WHERE pnumber = $1`, pnumber, status)
	if err != nil {
		return translate(err, "project")
	}
	return affected(res, "project")
}
