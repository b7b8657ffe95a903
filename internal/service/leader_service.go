package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/identity"
	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/repository"
)

type LeaderService struct {
	leaders   LeaderStore
	projects  ProjectStore
	employees EmployeeReader
	users     UserStore
	log       *zap.Logger
	now       func() time.Time
}

func NewLeaderService(leaders LeaderStore, projects ProjectStore, employees EmployeeReader, users UserStore, log *zap.Logger) *LeaderService {
	return &LeaderService{leaders: leaders, projects: projects, employees: employees, users: users, log: log, now: time.Now}
}

func (s *LeaderService) List(ctx context.Context) ([]model.ProjectLeader, error) {
	return s.leaders.ListLeaders(ctx)
}

// Current returns the leader record with the latest start date.
func (s *LeaderService) Current(ctx context.Context, pnumber int) (*model.ProjectLeader, error) {
	if _, err := s.projects.GetProject(ctx, pnumber); err != nil {
		return nil, err
	}
	leaders, err := s.leaders.ListLeadersByProject(ctx, pnumber)
	if err != nil {
		return nil, err
	}
	l, ok := identity.CurrentLeader(pnumber, leaders)
	if !ok {
		return nil, fmt.Errorf("project %d has no leader: %w", pnumber, repository.ErrNotFound)
	}
	return &l, nil
}

// Assign makes the employee the current leader of the project. Earlier
// records are kept as history. The named login, if any, is promoted to the
// leader role unless it already is a leader or an admin.
func (s *LeaderService) Assign(ctx context.Context, pnumber int, req model.AssignLeaderRequest) (*model.ProjectLeader, error) {
	ssn := strings.TrimSpace(req.LeaderSSN)
	if ssn == "" {
		return nil, fmt.Errorf("%w: leader_ssn is required", ErrInvalidInput)
	}
	project, err := s.projects.GetProject(ctx, pnumber)
	if err != nil {
		return nil, err
	}
	emp, err := s.employees.GetEmployee(ctx, ssn)
	if err != nil {
		return nil, err
	}

	var user *model.User
	if username := strings.TrimSpace(req.Username); username != "" {
		if user, err = s.users.GetUserByUsername(ctx, username); err != nil {
			return nil, err
		}
	}

	start := s.now().UTC()
	l := &model.ProjectLeader{
		LeaderSSN: emp.SSN,
		Pnumber:   project.Pnumber,
		Dnumber:   project.Dnumber,
		StartDate: &start,
		FullName:  emp.FullName(),
	}
	if err := s.leaders.CreateLeader(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info("project leader assigned", zap.Int("pnumber", pnumber), zap.String("leader_ssn", l.LeaderSSN))

	if user != nil && !user.IsAdmin() && !strings.EqualFold(user.Role, model.RoleLeader) {
		if err := s.users.UpdateUserRole(ctx, user.Username, model.RoleLeader); err != nil {
			return nil, err
		}
		s.log.Info("user promoted to leader", zap.String("username", user.Username))
	}
	return l, nil
}

func (s *LeaderService) Get(ctx context.Context, id int) (*model.ProjectLeader, error) {
	return s.leaders.GetLeader(ctx, id)
}

// Update overwrites a leader record. The employee and project must exist.
func (s *LeaderService) Update(ctx context.Context, id int, l model.ProjectLeader) (*model.ProjectLeader, error) {
	if l.ID != 0 && l.ID != id {
		return nil, fmt.Errorf("%w: id must match the path", ErrInvalidInput)
	}
	l.ID = id
	l.LeaderSSN = strings.TrimSpace(l.LeaderSSN)
	if l.LeaderSSN == "" || l.Pnumber <= 0 {
		return nil, fmt.Errorf("%w: leader_ssn and pnumber are required", ErrInvalidInput)
	}
	l.StartDate = model.UTC(l.StartDate)
	if err := s.leaders.UpdateLeader(ctx, &l); err != nil {
		return nil, err
	}
	s.log.Info("project leader updated", zap.Int("id", id), zap.String("leader_ssn", l.LeaderSSN))
	return s.leaders.GetLeader(ctx, id)
}

func (s *LeaderService) Delete(ctx context.Context, id int) error {
	return s.leaders.DeleteLeader(ctx, id)
}
