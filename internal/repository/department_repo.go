package repository

import (
	"context"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

func (r *PostgresRepo) ListDepartments(ctx context.Context) ([]model.Department, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT dnumber, dname FROM departments ORDER BY dnumber`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Department{}
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.Dnumber, &d.Dname); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetDepartment(ctx context.Context, dnumber int) (*model.Department, error) {
	var d model.Department
	err := r.DB.QueryRowContext(ctx,
		`SELECT dnumber, dname FROM departments WHERE dnumber = $1`, dnumber,
	).Scan(&d.Dnumber, &d.Dname)
	if err != nil {
		return nil, translate(err, "department")
	}
	return &d, nil
}

func (r *PostgresRepo) CreateDepartment(ctx context.Context, d *model.Department) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO departments (dnumber, dname) VALUES ($1, $2)`, d.Dnumber, d.Dname)
	return translate(err, "department")
}

func (r *PostgresRepo) UpdateDepartment(ctx context.Context, d *model.Department) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE departments SET dname = $2 WHERE dnumber = $1`, d.Dnumber, d.Dname)
	if err != nil {
		return translate(err, "department")
	}
	return affected(res, "department")
}

func (r *PostgresRepo) DeleteDepartment(ctx context.Context, dnumber int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM departments WHERE dnumber = $1`, dnumber)
	if err != nil {
		return translate(err, "department")
	}
	return affected(res, "department")
}
