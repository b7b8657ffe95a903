package repository

import (
	"context"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

func (r *PostgresRepo) ListWorksOn(ctx context.Context) ([]model.WorksOn, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT ssn, pnumber FROM works_on ORDER BY pnumber, ssn`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WorksOn{}
	for rows.Next() {
		var w model.WorksOn
		if err := rows.Scan(&w.SSN, &w.Pnumber); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetWorksOn(ctx context.Context, ssn string, pnumber int) (*model.WorksOn, error) {
	var w model.WorksOn
	err := r.DB.QueryRowContext(ctx,
		`SELECT ssn, pnumber FROM works_on WHERE ssn = $1 AND pnumber = $2`, ssn, pnumber,
	).Scan(&w.SSN, &w.Pnumber)
	if err != nil {
		return nil, translate(err, "works_on")
	}
	return &w, nil
}

func (r *PostgresRepo) CreateWorksOn(ctx context.Context, w *model.WorksOn) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO works_on (ssn, pnumber) VALUES ($1, $2)`, w.SSN, w.Pnumber)
	return translate(err, "works_on")
}

func (r *PostgresRepo) DeleteWorksOn(ctx context.Context, ssn string, pnumber int) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM works_on WHERE ssn = $1 AND pnumber = $2`, ssn, pnumber)
	if err != nil {
		return translate(err, "works_on")
	}
	return affected(res, "works_on")
}
