package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

const leaderSelect = `
	SELECT pl.id, pl.leader_ssn, pl.pnumber, pl.dnumber, pl.start_date,
		COALESCE(e.fname, ''), COALESCE(e.lname, '')
	FROM project_leaders pl
	LEFT JOIN employees e ON e.ssn = pl.leader_ssn`

func (r *PostgresRepo) queryLeaders(ctx context.Context, q string, args ...interface{}) ([]model.ProjectLeader, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProjectLeader{}
	for rows.Next() {
		var (
			l            model.ProjectLeader
			dnumber      sql.NullInt64
			start        sql.NullTime
			fname, lname string
		)
		if err := rows.Scan(&l.ID, &l.LeaderSSN, &l.Pnumber, &dnumber, &start, &fname, &lname); err != nil {
			return nil, err
		}
		l.Dnumber = int(dnumber.Int64)
		l.StartDate = timePtr(start)
		l.FullName = strings.TrimSpace(fname + " " + lname)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListLeaders(ctx context.Context) ([]model.ProjectLeader, error) {
	return r.queryLeaders(ctx, leaderSelect+` ORDER BY pl.pnumber, pl.start_date NULLS FIRST, pl.id`)
}

func (r *PostgresRepo) ListLeadersByProject(ctx context.Context, pnumber int) ([]model.ProjectLeader, error) {
	return r.queryLeaders(ctx, leaderSelect+` WHERE pl.pnumber = $1 ORDER BY pl.start_date NULLS FIRST, pl.id`, pnumber)
}

func (r *PostgresRepo) GetLeader(ctx context.Context, id int) (*model.ProjectLeader, error) {
	list, err := r.queryLeaders(ctx, leaderSelect+` WHERE pl.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, translate(sql.ErrNoRows, "project leader")
	}
	return &list[0], nil
}

func (r *PostgresRepo) CreateLeader(ctx context.Context, l *model.ProjectLeader) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO project_leaders (leader_ssn, pnumber, dnumber, start_date)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		l.LeaderSSN, l.Pnumber, nullZero(l.Dnumber), nullTime(l.StartDate),
	).Scan(&l.ID)
	return translate(err, "project leader")
}

func (r *PostgresRepo) UpdateLeader(ctx context.Context, l *model.ProjectLeader) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE project_leaders SET leader_ssn = $2, pnumber = $3, dnumber = $4, start_date = $5
		WHERE id = $1`,
		l.ID, l.LeaderSSN, l.Pnumber, nullZero(l.Dnumber), nullTime(l.StartDate))
	if err != nil {
		return translate(err, "project leader")
	}
	return affected(res, "project leader")
}

func (r *PostgresRepo) DeleteLeader(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM project_leaders WHERE id = $1`, id)
	if err != nil {
		return translate(err, "project leader")
	}
	return affected(res, "project leader")
}
