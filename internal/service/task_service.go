package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/completion"
	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/repository"
	"github.com/roksva123/go-taskboard-backend/internal/utils"
)

type TaskService struct {
	tasks    TaskStore
	projects ProjectStore
	logs     LogWriter
	updater  *CompletionUpdater
	log      *zap.Logger
	now      func() time.Time
}

func NewTaskService(tasks TaskStore, projects ProjectStore, logs LogWriter, updater *CompletionUpdater, log *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, logs: logs, updater: updater, log: log, now: time.Now}
}

func (s *TaskService) List(ctx context.Context) ([]model.TaskDetail, error) {
	tasks, err := s.tasks.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, tasks)
}

func (s *TaskService) Get(ctx context.Context, taskID int) (*model.TaskDetail, error) {
	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	todos, err := s.tasks.ListTodos(ctx, []int{taskID})
	if err != nil {
		return nil, err
	}
	assignments, err := s.tasks.ListAssignmentsByTasks(ctx, []int{taskID})
	if err != nil {
		return nil, err
	}
	out := utils.BuildTaskDetail(*task, todos, assignments)
	return &out, nil
}

func (s *TaskService) details(ctx context.Context, tasks []model.Task) ([]model.TaskDetail, error) {
	ids := taskIDs(tasks)
	todos, err := s.tasks.ListTodos(ctx, ids)
	if err != nil {
		return nil, err
	}
	assignments, err := s.tasks.ListAssignmentsByTasks(ctx, ids)
	if err != nil {
		return nil, err
	}
	return utils.BuildTaskDetails(tasks, todos, assignments), nil
}

func (s *TaskService) Create(ctx context.Context, in model.TaskInput) (*model.TaskDetail, error) {
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}

	id, err := s.freeID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	task, todos, assignments := s.build(id, in)

	err = s.tasks.CreateTask(ctx, task, todos, withTask(assignments, id))
	if errors.Is(err, repository.ErrConflict) {
		// Lost a race for the id; take the next one.
		if id, err = s.nextID(ctx); err != nil {
			return nil, err
		}
		task.TaskID = id
		err = s.tasks.CreateTask(ctx, task, todos, withTask(assignments, id))
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("task created", zap.Int("task_id", task.TaskID), zap.Int("pnumber", task.Pnumber))

	if err := s.updater.logCompleted(ctx, task.TaskID, 0, task.CompletionRate); err != nil {
		return nil, err
	}
	if err := s.logAssignments(ctx, task.TaskID, assignments, nil); err != nil {
		return nil, err
	}
	if _, err := s.updater.RefreshProject(ctx, task.Pnumber); err != nil {
		return nil, err
	}
	return s.Get(ctx, task.TaskID)
}

// Update replaces the task with in. The stored to-dos and assignments are
// swapped as a whole.
func (s *TaskService) Update(ctx context.Context, taskID int, in model.TaskInput) (*model.TaskDetail, error) {
	existing, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}
	before, err := s.tasks.ListAssignmentsByTasks(ctx, []int{taskID})
	if err != nil {
		return nil, err
	}

	task, todos, assignments := s.build(taskID, in)
	if err := s.tasks.ReplaceTask(ctx, task, todos, assignments); err != nil {
		return nil, err
	}
	s.log.Info("task updated", zap.Int("task_id", taskID), zap.Int("pnumber", task.Pnumber))

	if err := s.updater.logCompleted(ctx, taskID, existing.CompletionRate, task.CompletionRate); err != nil {
		return nil, err
	}
	if err := s.logAssignments(ctx, taskID, assignments, before); err != nil {
		return nil, err
	}
	if _, err := s.updater.RefreshProject(ctx, task.Pnumber); err != nil {
		return nil, err
	}
	if existing.Pnumber != task.Pnumber {
		if _, err := s.updater.RefreshProject(ctx, existing.Pnumber); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, taskID)
}

func (s *TaskService) Delete(ctx context.Context, taskID int) error {
	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	s.log.Info("task deleted", zap.Int("task_id", taskID))
	_, err = s.updater.RefreshProject(ctx, task.Pnumber)
	return err
}

func (s *TaskService) ListAssignments(ctx context.Context) ([]model.Assignment, error) {
	return s.tasks.ListAssignments(ctx)
}

func (s *TaskService) GetAssignment(ctx context.Context, ssn string, taskID int) (*model.Assignment, error) {
	return s.tasks.GetAssignment(ctx, ssn, taskID)
}

// AddAssignment assigns an employee to an existing to-do of the task.
func (s *TaskService) AddAssignment(ctx context.Context, a model.Assignment) (*model.Assignment, error) {
	a.SSN = strings.TrimSpace(a.SSN)
	if a.SSN == "" {
		return nil, fmt.Errorf("%w: ssn is required", ErrInvalidInput)
	}
	if _, err := s.tasks.GetTask(ctx, a.TaskID); err != nil {
		return nil, err
	}
	todos, err := s.tasks.ListTodos(ctx, []int{a.TaskID})
	if err != nil {
		return nil, err
	}
	if !hasTodo(todos, a.TodoIndex) {
		return nil, fmt.Errorf("%w: task %d has no to-do %d", ErrInvalidInput, a.TaskID, a.TodoIndex)
	}

	before, err := s.tasks.ListAssignmentsByTasks(ctx, []int{a.TaskID})
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	a.AssignedDate = &now
	if err := s.tasks.CreateAssignment(ctx, &a); err != nil {
		return nil, err
	}
	if err := s.logAssignments(ctx, a.TaskID, []model.Assignment{a}, before); err != nil {
		return nil, err
	}
	return &a, s.refresh(ctx, a.TaskID)
}

// UpdateAssignment moves the employee's first assignment on the task (the
// one GetAssignment returns) to in.TodoIndex. A nil in.AssignedDate keeps
// the stored date.
func (s *TaskService) UpdateAssignment(ctx context.Context, ssn string, taskID int, in model.Assignment) (*model.Assignment, error) {
	if (in.SSN != "" && in.SSN != ssn) || (in.TaskID != 0 && in.TaskID != taskID) {
		return nil, fmt.Errorf("%w: ssn and task_id must match the path", ErrInvalidInput)
	}
	current, err := s.tasks.GetAssignment(ctx, ssn, taskID)
	if err != nil {
		return nil, err
	}
	todos, err := s.tasks.ListTodos(ctx, []int{taskID})
	if err != nil {
		return nil, err
	}
	if !hasTodo(todos, in.TodoIndex) {
		return nil, fmt.Errorf("%w: task %d has no to-do %d", ErrInvalidInput, taskID, in.TodoIndex)
	}

	next := model.Assignment{
		SSN:          ssn,
		TaskID:       taskID,
		TodoIndex:    in.TodoIndex,
		AssignedDate: current.AssignedDate,
	}
	if in.AssignedDate != nil {
		next.AssignedDate = model.UTC(in.AssignedDate)
	}
	if err := s.tasks.UpdateAssignment(ctx, current.TodoIndex, &next); err != nil {
		return nil, err
	}
	s.log.Info("assignment updated", zap.String("ssn", ssn), zap.Int("task_id", taskID),
		zap.Int("from", current.TodoIndex), zap.Int("to", next.TodoIndex))
	return &next, s.refresh(ctx, taskID)
}

func (s *TaskService) RemoveAssignment(ctx context.Context, ssn string, taskID, todoIndex int) error {
	if err := s.tasks.DeleteAssignment(ctx, ssn, taskID, todoIndex); err != nil {
		return err
	}
	return s.refresh(ctx, taskID)
}

func (s *TaskService) refresh(ctx context.Context, taskID int) error {
	if _, err := s.updater.RefreshTask(ctx, taskID); err != nil {
		return err
	}
	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	_, err = s.updater.RefreshProject(ctx, task.Pnumber)
	return err
}

func (s *TaskService) checkInput(ctx context.Context, in model.TaskInput) error {
	if strings.TrimSpace(in.TaskName) == "" {
		return fmt.Errorf("%w: task_name is required", ErrInvalidInput)
	}
	if in.Pnumber <= 0 {
		return fmt.Errorf("%w: pnumber is required", ErrInvalidInput)
	}
	if in.CompletionRate != nil && (*in.CompletionRate < 0 || *in.CompletionRate > 100) {
		return fmt.Errorf("%w: completion_rate must be between 0 and 100", ErrInvalidInput)
	}
	if len(in.Assignments) > len(in.Todos) {
		return fmt.Errorf("%w: %d assignment groups for %d to-dos", ErrInvalidInput, len(in.Assignments), len(in.Todos))
	}
	seen := map[int]bool{}
	for i, td := range in.Todos {
		if td.Importance != nil && *td.Importance < 0 {
			return fmt.Errorf("%w: importance must not be negative", ErrInvalidInput)
		}
		idx := todoIndex(td, i)
		if seen[idx] {
			return fmt.Errorf("%w: duplicate todo_index %d", ErrInvalidInput, idx)
		}
		seen[idx] = true
	}
	if _, err := s.projects.GetProject(ctx, in.Pnumber); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: project %d does not exist", ErrInvalidInput, in.Pnumber)
		}
		return err
	}
	return nil
}

// build turns the input into rows. assignments[i] belongs to todos[i];
// blank and repeated SSNs within a group are dropped.
func (s *TaskService) build(taskID int, in model.TaskInput) (*model.Task, []model.ToDoItem, []model.Assignment) {
	task := &model.Task{
		TaskID:     taskID,
		TaskName:   strings.TrimSpace(in.TaskName),
		StartDate:  model.UTC(in.StartDate),
		DueDate:    model.UTC(in.DueDate),
		TaskNumber: in.TaskNumber,
		Pnumber:    in.Pnumber,
	}

	todos := make([]model.ToDoItem, 0, len(in.Todos))
	for i, td := range in.Todos {
		todos = append(todos, model.ToDoItem{
			TaskID:      taskID,
			TodoIndex:   todoIndex(td, i),
			Description: td.Description,
			Importance:  td.Importance,
			IsCompleted: td.IsCompleted,
		})
	}

	now := s.now().UTC()
	assignments := []model.Assignment{}
	for i, group := range in.Assignments {
		seen := map[string]bool{}
		for _, ssn := range group {
			ssn = strings.TrimSpace(ssn)
			if ssn == "" || seen[ssn] {
				continue
			}
			seen[ssn] = true
			assignments = append(assignments, model.Assignment{
				SSN:          ssn,
				TaskID:       taskID,
				TodoIndex:    todos[i].TodoIndex,
				AssignedDate: &now,
			})
		}
	}

	switch {
	case completion.Derivable(todos):
		task.CompletionRate = completion.TaskCompletion(todos)
	case in.CompletionRate != nil:
		task.CompletionRate = *in.CompletionRate
	}
	return task, todos, assignments
}

// freeID keeps the requested id when it is positive and unused, otherwise
// allocates max+1.
func (s *TaskService) freeID(ctx context.Context, requested int) (int, error) {
	if requested > 0 {
		taken, err := s.tasks.TaskExists(ctx, requested)
		if err != nil {
			return 0, err
		}
		if !taken {
			return requested, nil
		}
	}
	return s.nextID(ctx)
}

func (s *TaskService) nextID(ctx context.Context) (int, error) {
	max, err := s.tasks.MaxTaskID(ctx)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// logAssignments writes one assignment log per employee newly on the task.
func (s *TaskService) logAssignments(ctx context.Context, taskID int, now, before []model.Assignment) error {
	known := map[string]bool{}
	for _, a := range before {
		known[a.SSN] = true
	}
	for _, a := range now {
		if known[a.SSN] {
			continue
		}
		known[a.SSN] = true
		if err := s.logs.CreateAssignmentLog(ctx, &model.AssignmentLog{
			SSN:          a.SSN,
			TaskID:       taskID,
			AssignedDate: a.AssignedDate,
		}); err != nil {
			return err
		}
	}
	return nil
}

func todoIndex(td model.TodoInput, pos int) int {
	if td.TodoIndex != nil {
		return *td.TodoIndex
	}
	return pos
}

func hasTodo(todos []model.ToDoItem, idx int) bool {
	for _, td := range todos {
		if td.TodoIndex == idx {
			return true
		}
	}
	return false
}

func withTask(assignments []model.Assignment, taskID int) []model.Assignment {
	for i := range assignments {
		assignments[i].TaskID = taskID
	}
	return assignments
}
