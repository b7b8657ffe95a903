package repository

import (
	"context"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

func (r *PostgresRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, username, password_hash, role
		FROM users WHERE username = $1 LIMIT 1`, username,
	).Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *PostgresRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT user_id, username, password_hash, role FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateUser(ctx context.Context, u *model.User) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING user_id`,
		u.Username, u.PasswordHash, u.Role).Scan(&u.UserID)
	return translate(err, "user")
}

// UpsertAdmin creates the admin login or resets its password and role.
func (r *PostgresRepo) UpsertAdmin(ctx context.Context, username, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role) VALUES ($1, $2, 'admin')
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'admin'
	`, username, passwordHash)
	return translate(err, "user")
}

func (r *PostgresRepo) UpdateUserRole(ctx context.Context, username, role string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET role = $2 WHERE username = $1`, username, role)
	if err != nil {
		return translate(err, "user")
	}
	return affected(res, "user")
}
