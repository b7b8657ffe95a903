package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/utils"
)

type ProjectService struct {
	projects    ProjectStore
	tasks       TaskStore
	leaders     LeaderStore
	departments DepartmentReader
	updater     *CompletionUpdater
	log         *zap.Logger
}

func NewProjectService(projects ProjectStore, tasks TaskStore, leaders LeaderStore, departments DepartmentReader, updater *CompletionUpdater, log *zap.Logger) *ProjectService {
	return &ProjectService{
		projects:    projects,
		tasks:       tasks,
		leaders:     leaders,
		departments: departments,
		updater:     updater,
		log:         log,
	}
}

func (s *ProjectService) List(ctx context.Context) ([]model.ProjectDetail, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	leaders, err := s.leaders.ListLeaders(ctx)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, projects, tasks, leaders)
}

func (s *ProjectService) Get(ctx context.Context, pnumber int) (*model.ProjectDetail, error) {
	p, err := s.projects.GetProject(ctx, pnumber)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListTasksByProject(ctx, pnumber)
	if err != nil {
		return nil, err
	}
	leaders, err := s.leaders.ListLeadersByProject(ctx, pnumber)
	if err != nil {
		return nil, err
	}
	out, err := s.details(ctx, []model.Project{*p}, tasks, leaders)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *ProjectService) details(ctx context.Context, projects []model.Project, tasks []model.Task, leaders []model.ProjectLeader) ([]model.ProjectDetail, error) {
	ids := taskIDs(tasks)
	todos, err := s.tasks.ListTodos(ctx, ids)
	if err != nil {
		return nil, err
	}
	assignments, err := s.tasks.ListAssignmentsByTasks(ctx, ids)
	if err != nil {
		return nil, err
	}
	departments, err := s.departments.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	taskDetails := utils.BuildTaskDetails(tasks, todos, assignments)
	return utils.BuildProjectDetails(projects, departments, leaders, taskDetails), nil
}

// Create stores a new project. Project numbers are assigned by the caller.
func (s *ProjectService) Create(ctx context.Context, p model.Project) (*model.ProjectDetail, error) {
	if err := checkProject(p); err != nil {
		return nil, err
	}
	p.Pname = strings.TrimSpace(p.Pname)
	p.StartDate = model.UTC(p.StartDate)
	p.DueDate = model.UTC(p.DueDate)
	p.CompletionStatus = 0
	if err := s.projects.CreateProject(ctx, &p); err != nil {
		return nil, err
	}
	s.log.Info("project created", zap.Int("pnumber", p.Pnumber))
	return s.Get(ctx, p.Pnumber)
}

// Update changes the project fields. The completion status is always
// recomputed from the tasks.
func (s *ProjectService) Update(ctx context.Context, pnumber int, p model.Project) (*model.ProjectDetail, error) {
	p.Pnumber = pnumber
	if err := checkProject(p); err != nil {
		return nil, err
	}
	p.Pname = strings.TrimSpace(p.Pname)
	p.StartDate = model.UTC(p.StartDate)
	p.DueDate = model.UTC(p.DueDate)
	if err := s.projects.UpdateProject(ctx, &p); err != nil {
		return nil, err
	}
	if _, err := s.updater.RefreshProject(ctx, pnumber); err != nil {
		return nil, err
	}
	s.log.Info("project updated", zap.Int("pnumber", pnumber))
	return s.Get(ctx, pnumber)
}

// Delete removes the project and, through the foreign key, its tasks.
func (s *ProjectService) Delete(ctx context.Context, pnumber int) error {
	if err := s.projects.DeleteProject(ctx, pnumber); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.Int("pnumber", pnumber))
	return nil
}

func checkProject(p model.Project) error {
	if p.Pnumber <= 0 {
		return fmt.Errorf("%w: pnumber is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Pname) == "" {
		return fmt.Errorf("%w: pname is required", ErrInvalidInput)
	}
	if p.StartDate != nil && p.DueDate != nil && p.DueDate.Before(*p.StartDate) {
		return fmt.Errorf("%w: due_date is before start_date", ErrInvalidInput)
	}
	return nil
}
