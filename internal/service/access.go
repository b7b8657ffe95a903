package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/identity"
	"github.com/roksva123/go-taskboard-backend/internal/metrics"
	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/repository"
)

type AccessService struct {
	employees EmployeeReader
	leaders   LeaderStore
	tasks     TaskStore
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewAccessService(employees EmployeeReader, leaders LeaderStore, tasks TaskStore, m *metrics.Metrics, log *zap.Logger) *AccessService {
	return &AccessService{employees: employees, leaders: leaders, tasks: tasks, metrics: m, log: log}
}

// Authorize returns ErrForbidden unless the caller may perform action on
// target. Writes to a task that does not exist are forbidden.
func (s *AccessService) Authorize(ctx context.Context, p model.Principal, action identity.Action, target identity.Target) error {
	snap, err := s.snapshot(ctx, p, action, target)
	if err != nil {
		return err
	}
	decision := identity.Authorize(p.Role, p.Username, action, target, snap)
	if action == identity.Write {
		s.metrics.IncDecision(decision.String())
	}
	if decision != identity.Allowed {
		s.log.Info("write denied",
			zap.String("username", p.Username),
			zap.String("role", p.Role),
			zap.String("target", string(target.Kind)),
			zap.Int("id", target.ID))
		return ErrForbidden
	}
	return nil
}

// snapshot loads only what the decision needs; admins and reads need
// nothing.
func (s *AccessService) snapshot(ctx context.Context, p model.Principal, action identity.Action, target identity.Target) (identity.Snapshot, error) {
	var snap identity.Snapshot
	if action == identity.Read || (model.User{Role: p.Role}).IsAdmin() {
		return snap, nil
	}

	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return snap, err
	}
	snap.Employees = employees

	pnumber := target.ID
	if target.Kind == identity.TaskTarget {
		task, err := s.tasks.GetTask(ctx, target.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return snap, nil
		}
		if err != nil {
			return snap, err
		}
		snap.Tasks = []model.Task{*task}
		pnumber = task.Pnumber
	}

	leaders, err := s.leaders.ListLeadersByProject(ctx, pnumber)
	if err != nil {
		return snap, err
	}
	snap.Leaders = leaders
	return snap, nil
}

func (s *AccessService) WhoAmI(ctx context.Context, p model.Principal) (*model.WhoAmI, error) {
	out := &model.WhoAmI{Principal: p, LedProjects: []int{}}

	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	ssn, ok := identity.ResolveEmployeeSSN(p.Username, employees)
	if !ok {
		return out, nil
	}
	out.SSN = &ssn

	leaders, err := s.leaders.ListLeaders(ctx)
	if err != nil {
		return nil, err
	}
	out.LedProjects = identity.ProjectsLedBy(ssn, leaders)
	return out, nil
}
