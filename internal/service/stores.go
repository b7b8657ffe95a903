package service

import (
	"context"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

// The interfaces below are satisfied by *repository.PostgresRepo.

type EmployeeReader interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, ssn string) (*model.Employee, error)
}

type EmployeeStore interface {
	EmployeeReader
	CreateEmployeeWithUser(ctx context.Context, e *model.Employee, u *model.User) error
}

type DepartmentReader interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

type LeaderStore interface {
	ListLeaders(ctx context.Context) ([]model.ProjectLeader, error)
	ListLeadersByProject(ctx context.Context, pnumber int) ([]model.ProjectLeader, error)
	GetLeader(ctx context.Context, id int) (*model.ProjectLeader, error)
	CreateLeader(ctx context.Context, l *model.ProjectLeader) error
	UpdateLeader(ctx context.Context, l *model.ProjectLeader) error
	DeleteLeader(ctx context.Context, id int) error
}

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, pnumber int) (*model.Project, error)
	CreateProject(ctx context.Context, p *model.Project) error
	UpdateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, pnumber int) error
	SetProjectCompletion(ctx context.Context, pnumber, status int) error
}

type TaskStore interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListTasksByProject(ctx context.Context, pnumber int) ([]model.Task, error)
	GetTask(ctx context.Context, taskID int) (*model.Task, error)
	TaskExists(ctx context.Context, taskID int) (bool, error)
	MaxTaskID(ctx context.Context) (int, error)
	CreateTask(ctx context.Context, t *model.Task, todos []model.ToDoItem, assignments []model.Assignment) error
	ReplaceTask(ctx context.Context, t *model.Task, todos []model.ToDoItem, assignments []model.Assignment) error
	DeleteTask(ctx context.Context, taskID int) error
	SetTaskCompletion(ctx context.Context, taskID, rate int) error
	ListTaskRates(ctx context.Context, pnumber int) ([]int, error)
	ListTodos(ctx context.Context, taskIDs []int) ([]model.ToDoItem, error)

	ListAssignments(ctx context.Context) ([]model.Assignment, error)
	ListAssignmentsByTasks(ctx context.Context, taskIDs []int) ([]model.Assignment, error)
	GetAssignment(ctx context.Context, ssn string, taskID int) (*model.Assignment, error)
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	UpdateAssignment(ctx context.Context, fromIndex int, a *model.Assignment) error
	DeleteAssignment(ctx context.Context, ssn string, taskID, todoIndex int) error
}

type LogWriter interface {
	CreateCompletionLog(ctx context.Context, l *model.TaskCompletionLog) error
	CreateAssignmentLog(ctx context.Context, l *model.AssignmentLog) error
}

func taskIDs(tasks []model.Task) []int {
	ids := make([]int, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.TaskID)
	}
	return ids
}
