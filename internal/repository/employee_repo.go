package repository

import (
	"context"
	"database/sql"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

const employeeColumns = `e.ssn, e.fname, e.lname, e.dno, d.dnumber, d.dname`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(s rowScanner) (model.Employee, error) {
	var (
		e            model.Employee
		dno, dnumber sql.NullInt64
		dname        sql.NullString
	)
	if err := s.Scan(&e.SSN, &e.Fname, &e.Lname, &dno, &dnumber, &dname); err != nil {
		return e, err
	}
	e.Dno = int(dno.Int64)
	if dnumber.Valid {
		e.Department = &model.Department{Dnumber: int(dnumber.Int64), Dname: dname.String}
	}
	return e, nil
}

// ListEmployees returns employees ordered by SSN so that username
// resolution sees a stable order.
func (r *PostgresRepo) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees e
		LEFT JOIN departments d ON d.dnumber = e.dno
		ORDER BY e.ssn`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetEmployee(ctx context.Context, ssn string) (*model.Employee, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees e
		LEFT JOIN departments d ON d.dnumber = e.dno
		WHERE e.ssn = $1`, ssn)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, translate(err, "employee")
	}
	return &e, nil
}

func (r *PostgresRepo) CreateEmployee(ctx context.Context, e *model.Employee) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO employees (ssn, fname, lname, dno) VALUES ($1, $2, $3, $4)`,
		e.SSN, e.Fname, e.Lname, nullZero(e.Dno))
	return translate(err, "employee")
}

// CreateEmployeeWithUser inserts the employee and its login in one
// transaction.
func (r *PostgresRepo) CreateEmployeeWithUser(ctx context.Context, e *model.Employee, u *model.User) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO employees (ssn, fname, lname, dno) VALUES ($1, $2, $3, $4)`,
			e.SSN, e.Fname, e.Lname, nullZero(e.Dno)); err != nil {
			return translate(err, "employee")
		}
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING user_id`,
			u.Username, u.PasswordHash, u.Role).Scan(&u.UserID)
		return translate(err, "user")
	})
}

func (r *PostgresRepo) UpdateEmployee(ctx context.Context, e *model.Employee) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE employees SET fname = $2, lname = $3, dno = $4 WHERE ssn = $1`,
		e.SSN, e.Fname, e.Lname, nullZero(e.Dno))
	if err != nil {
		return translate(err, "employee")
	}
	return affected(res, "employee")
}

func (r *PostgresRepo) DeleteEmployee(ctx context.Context, ssn string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM employees WHERE ssn = $1`, ssn)
	if err != nil {
		return translate(err, "employee")
	}
	return affected(res, "employee")
}
