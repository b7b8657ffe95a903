package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/identity"
	"github.com/roksva123/go-taskboard-backend/internal/model"
)

type UserService struct {
	users     UserStore
	employees EmployeeStore
	log       *zap.Logger
}

func NewUserService(users UserStore, employees EmployeeStore, log *zap.Logger) *UserService {
	return &UserService{users: users, employees: employees, log: log}
}

// ListWithEmployees pairs every login with the employee its username
// resolves to. Unmatched logins carry nil employee fields.
func (s *UserService) ListWithEmployees(ctx context.Context) ([]model.UserWithEmployee, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	bySSN := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		bySSN[e.SSN] = e
	}

	out := make([]model.UserWithEmployee, 0, len(users))
	for _, u := range users {
		row := model.UserWithEmployee{Username: u.Username, Role: u.Role}
		if ssn, ok := identity.ResolveEmployeeSSN(u.Username, employees); ok {
			e := bySSN[ssn]
			name := e.FullName()
			row.SSN = &ssn
			row.FullName = &name
			if e.Department != nil {
				dname := e.Department.Dname
				row.Department = &dname
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// CreateEmployee stores the employee and an employee login. The username
// defaults to "first.last" and a random password is generated when none is
// given; the password is only ever returned here.
func (s *UserService) CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) (*model.CreateEmployeeResponse, error) {
	emp := model.Employee{
		SSN:   strings.TrimSpace(req.SSN),
		Fname: strings.TrimSpace(req.Fname),
		Lname: strings.TrimSpace(req.Lname),
		Dno:   req.Dno,
	}
	if emp.SSN == "" || len(emp.SSN) > 9 {
		return nil, fmt.Errorf("%w: ssn must be 1 to 9 characters", ErrInvalidInput)
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = defaultUsername(emp)
	}
	password := req.Password
	if password == "" {
		var err error
		if password, err = GeneratePassword(); err != nil {
			return nil, err
		}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := model.User{Username: username, PasswordHash: hash, Role: model.RoleEmployee}
	if err := s.employees.CreateEmployeeWithUser(ctx, &emp, &user); err != nil {
		return nil, err
	}
	s.log.Info("employee created", zap.String("ssn", emp.SSN), zap.String("username", username))

	created, err := s.employees.GetEmployee(ctx, emp.SSN)
	if err != nil {
		return nil, err
	}
	return &model.CreateEmployeeResponse{
		Employee: *created,
		Username: user.Username,
		Role:     user.Role,
		Password: password,
	}, nil
}

func defaultUsername(e model.Employee) string {
	parts := []string{}
	for _, p := range []string{e.Fname, e.Lname} {
		if p = strings.ToLower(strings.Join(strings.Fields(p), "")); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return e.SSN
	}
	return strings.Join(parts, ".")
}
