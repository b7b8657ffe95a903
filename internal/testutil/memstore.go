// Package testutil provides an in-memory store with the same contract as
// repository.PostgresRepo, for service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/repository"
)

type MemStore struct {
	mu sync.Mutex

	Departments    map[int]model.Department
	Employees      map[string]model.Employee
	Users          map[string]model.User
	Projects       map[int]model.Project
	Tasks          map[int]model.Task
	Todos          map[int][]model.ToDoItem
	Assignments    []model.Assignment
	Leaders        []model.ProjectLeader
	WorksOn        []model.WorksOn
	CompletionLogs []model.TaskCompletionLog
	AssignmentLogs []model.AssignmentLog

	nextUser, nextLeader, nextLog int

	// FailCreateTaskOnce makes the next CreateTask return ErrConflict.
	FailCreateTaskOnce bool
}

func NewMemStore() *MemStore {
	return &MemStore{
		Departments: map[int]model.Department{},
		Employees:   map[string]model.Employee{},
		Users:       map[string]model.User{},
		Projects:    map[int]model.Project{},
		Tasks:       map[int]model.Task{},
		Todos:       map[int][]model.ToDoItem{},
	}
}

func notFound(what string) error { return fmt.Errorf("%s: %w", what, repository.ErrNotFound) }
func conflict(what string) error { return fmt.Errorf("%s: %w", what, repository.ErrConflict) }
func badRef(what string) error { return fmt.Errorf("%s: %w", what, repository.ErrInvalidReference) }

// Departments

func (m *MemStore) ListDepartments(ctx context.Context) ([]model.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Department{}
	for _, d := range m.Departments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dnumber < out[j].Dnumber })
	return out, nil
}

func (m *MemStore) GetDepartment(ctx context.Context, dnumber int) (*model.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.Departments[dnumber]
	if !ok {
		return nil, notFound("department")
	}
	return &d, nil
}

func (m *MemStore) CreateDepartment(ctx context.Context, d *model.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Departments[d.Dnumber]; ok {
		return conflict("department")
	}
	m.Departments[d.Dnumber] = *d
	return nil
}

func (m *MemStore) UpdateDepartment(ctx context.Context, d *model.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Departments[d.Dnumber]; !ok {
		return notFound("department")
	}
	m.Departments[d.Dnumber] = *d
	return nil
}

func (m *MemStore) DeleteDepartment(ctx context.Context, dnumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Departments[dnumber]; !ok {
		return notFound("department")
	}
	delete(m.Departments, dnumber)
	return nil
}

// Employees

func (m *MemStore) withDepartment(e model.Employee) model.Employee {
	if d, ok := m.Departments[e.Dno]; ok {
		e.Department = &d
	} else {
		e.Department = nil
	}
	return e
}

func (m *MemStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Employee{}
	for _, e := range m.Employees {
		out = append(out, m.withDepartment(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SSN < out[j].SSN })
	return out, nil
}

func (m *MemStore) GetEmployee(ctx context.Context, ssn string) (*model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Employees[ssn]
	if !ok {
		return nil, notFound("employee")
	}
	e = m.withDepartment(e)
	return &e, nil
}

func (m *MemStore) createEmployee(e *model.Employee) error {
	if _, ok := m.Employees[e.SSN]; ok {
		return conflict("employee")
	}
	if _, ok := m.Departments[e.Dno]; e.Dno != 0 && !ok {
		return badRef("employee")
	}
	m.Employees[e.SSN] = *e
	return nil
}

func (m *MemStore) CreateEmployee(ctx context.Context, e *model.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createEmployee(e)
}

func (m *MemStore) CreateEmployeeWithUser(ctx context.Context, e *model.Employee, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[u.Username]; ok {
		return conflict("user")
	}
	if err := m.createEmployee(e); err != nil {
		return err
	}
	m.createUser(u)
	return nil
}

func (m *MemStore) UpdateEmployee(ctx context.Context, e *model.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Employees[e.SSN]; !ok {
		return notFound("employee")
	}
	m.Employees[e.SSN] = *e
	return nil
}

func (m *MemStore) DeleteEmployee(ctx context.Context, ssn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Employees[ssn]; !ok {
		return notFound("employee")
	}
	delete(m.Employees, ssn)
	return nil
}

// Users

func (m *MemStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[username]
	if !ok {
		return nil, notFound("user")
	}
	return &u, nil
}

func (m *MemStore) ListUsers(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.User{}
	for _, u := range m.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *MemStore) createUser(u *model.User) {
	m.nextUser++
	u.UserID = m.nextUser
	m.Users[u.Username] = *u
}

func (m *MemStore) CreateUser(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[u.Username]; ok {
		return conflict("user")
	}
	m.createUser(u)
	return nil
}

func (m *MemStore) UpsertAdmin(ctx context.Context, username, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[username]; ok {
		u.PasswordHash = passwordHash
		u.Role = model.RoleAdmin
		m.Users[username] = u
		return nil
	}
	m.createUser(&model.User{Username: username, PasswordHash: passwordHash, Role: model.RoleAdmin})
	return nil
}

func (m *MemStore) UpdateUserRole(ctx context.Context, username, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[username]
	if !ok {
		return notFound("user")
	}
	u.Role = role
	m.Users[username] = u
	return nil
}

// Projects

func (m *MemStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Project{}
	for _, p := range m.Projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pnumber < out[j].Pnumber })
	return out, nil
}

func (m *MemStore) GetProject(ctx context.Context, pnumber int) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Projects[pnumber]
	if !ok {
		return nil, notFound("project")
	}
	return &p, nil
}

func (m *MemStore) CreateProject(ctx context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Projects[p.Pnumber]; ok {
		return conflict("project")
	}
	m.Projects[p.Pnumber] = *p
	return nil
}

func (m *MemStore) UpdateProject(ctx context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.Projects[p.Pnumber]
	if !ok {
		return notFound("project")
	}
	next := *p
	next.CompletionStatus = old.CompletionStatus
	m.Projects[p.Pnumber] = next
	return nil
}

func (m *MemStore) DeleteProject(ctx context.Context, pnumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Projects[pnumber]; !ok {
		return notFound("project")
	}
	delete(m.Projects, pnumber)
	for id, t := range m.Tasks {
		if t.Pnumber == pnumber {
			m.deleteTask(id)
		}
	}
	return nil
}

func (m *MemStore) SetProjectCompletion(ctx context.Context, pnumber, status int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Projects[pnumber]
	if !ok {
		return notFound("project")
	}
	p.CompletionStatus = status
	m.Projects[pnumber] = p
	return nil
}

// Tasks

func (m *MemStore) sortedTasks(keep func(model.Task) bool) []model.Task {
	out := []model.Task{}
	for _, t := range m.Tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out
}

func (m *MemStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedTasks(func(model.Task) bool { return true }), nil
}

func (m *MemStore) ListTasksByProject(ctx context.Context, pnumber int) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedTasks(func(t model.Task) bool { return t.Pnumber == pnumber }), nil
}

func (m *MemStore) GetTask(ctx context.Context, taskID int) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[taskID]
	if !ok {
		return nil, notFound("task")
	}
	return &t, nil
}

func (m *MemStore) TaskExists(ctx context.Context, taskID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Tasks[taskID]
	return ok, nil
}

func (m *MemStore) MaxTaskID(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for id := range m.Tasks {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (m *MemStore) CreateTask(ctx context.Context, t *model.Task, todos []model.ToDoItem, assignments []model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreateTaskOnce {
		m.FailCreateTaskOnce = false
		m.Tasks[t.TaskID] = model.Task{TaskID: t.TaskID, TaskName: "taken", Pnumber: t.Pnumber}
		return conflict("task")
	}
	if _, ok := m.Tasks[t.TaskID]; ok {
		return conflict("task")
	}
	if _, ok := m.Projects[t.Pnumber]; !ok {
		return badRef("task")
	}
	m.Tasks[t.TaskID] = *t
	m.setChildren(t.TaskID, todos, assignments)
	return nil
}

func (m *MemStore) ReplaceTask(ctx context.Context, t *model.Task, todos []model.ToDoItem, assignments []model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tasks[t.TaskID]; !ok {
		return notFound("task")
	}
	m.Tasks[t.TaskID] = *t
	m.dropAssignments(t.TaskID)
	m.setChildren(t.TaskID, todos, assignments)
	return nil
}

func (m *MemStore) setChildren(taskID int, todos []model.ToDoItem, assignments []model.Assignment) {
	cp := make([]model.ToDoItem, 0, len(todos))
	for _, td := range todos {
		td.TaskID = taskID
		cp = append(cp, td)
	}
	sort.Slice(cp, func(i, j int) bool { return cp[i].TodoIndex < cp[j].TodoIndex })
	m.Todos[taskID] = cp
	for _, a := range assignments {
		a.TaskID = taskID
		m.Assignments = append(m.Assignments, a)
	}
}

func (m *MemStore) dropAssignments(taskID int) {
	kept := m.Assignments[:0]
	for _, a := range m.Assignments {
		if a.TaskID != taskID {
			kept = append(kept, a)
		}
	}
	m.Assignments = kept
}

func (m *MemStore) deleteTask(taskID int) {
	delete(m.Tasks, taskID)
	delete(m.Todos, taskID)
	m.dropAssignments(taskID)
}

func (m *MemStore) DeleteTask(ctx context.Context, taskID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tasks[taskID]; !ok {
		return notFound("task")
	}
	m.deleteTask(taskID)
	return nil
}

func (m *MemStore) SetTaskCompletion(ctx context.Context, taskID, rate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[taskID]
	if !ok {
		return notFound("task")
	}
	t.CompletionRate = rate
	m.Tasks[taskID] = t
	return nil
}

func (m *MemStore) ListTaskRates(ctx context.Context, pnumber int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []int{}
	for _, t := range m.sortedTasks(func(t model.Task) bool { return t.Pnumber == pnumber }) {
		out = append(out, t.CompletionRate)
	}
	return out, nil
}

func (m *MemStore) ListTodos(ctx context.Context, taskIDs []int) ([]model.ToDoItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := append([]int(nil), taskIDs...)
	sort.Ints(ids)
	out := []model.ToDoItem{}
	for _, id := range ids {
		out = append(out, m.Todos[id]...)
	}
	return out, nil
}

// Assignments

func (m *MemStore) ListAssignments(ctx context.Context) ([]model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Assignment{}, m.Assignments...), nil
}

func (m *MemStore) ListAssignmentsByTasks(ctx context.Context, taskIDs []int) ([]model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[int]bool{}
	for _, id := range taskIDs {
		want[id] = true
	}
	out := []model.Assignment{}
	for _, a := range m.Assignments {
		if want[a.TaskID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemStore) GetAssignment(ctx context.Context, ssn string, taskID int) (*model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var first *model.Assignment
	for i, a := range m.Assignments {
		if a.SSN == ssn && a.TaskID == taskID && (first == nil || a.TodoIndex < first.TodoIndex) {
			first = &m.Assignments[i]
		}
	}
	if first == nil {
		return nil, notFound("assignment")
	}
	out := *first
	return &out, nil
}

func (m *MemStore) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Employees[a.SSN]; !ok {
		return badRef("assignment")
	}
	for _, x := range m.Assignments {
		if x.SSN == a.SSN && x.TaskID == a.TaskID && x.TodoIndex == a.TodoIndex {
			return conflict("assignment")
		}
	}
	m.Assignments = append(m.Assignments, *a)
	return nil
}

func (m *MemStore) DeleteAssignment(ctx context.Context, ssn string, taskID, todoIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.Assignments {
		if a.SSN == ssn && a.TaskID == taskID && a.TodoIndex == todoIndex {
			m.Assignments = append(m.Assignments[:i], m.Assignments[i+1:]...)
			return nil
		}
	}
	return notFound("assignment")
}

// Leaders

func (m *MemStore) ListLeaders(ctx context.Context) ([]model.ProjectLeader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaders(func(model.ProjectLeader) bool { return true }), nil
}

func (m *MemStore) ListLeadersByProject(ctx context.Context, pnumber int) ([]model.ProjectLeader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaders(func(l model.ProjectLeader) bool { return l.Pnumber == pnumber }), nil
}

func (m *MemStore) leaders(keep func(model.ProjectLeader) bool) []model.ProjectLeader {
	out := []model.ProjectLeader{}
	for _, l := range m.Leaders {
		if keep(l) {
			if e, ok := m.Employees[l.LeaderSSN]; ok {
				l.FullName = e.FullName()
			}
			out = append(out, l)
		}
	}
	return out
}

func (m *MemStore) CreateLeader(ctx context.Context, l *model.ProjectLeader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextLeader++
	l.ID = m.nextLeader
	m.Leaders = append(m.Leaders, *l)
	return nil
}

func (m *MemStore) DeleteLeader(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.Leaders {
		if l.ID == id {
			m.Leaders = append(m.Leaders[:i], m.Leaders[i+1:]...)
			return nil
		}
	}
	return notFound("project leader")
}

// AddLeader seeds a leader record starting on the given day.
func (m *MemStore) AddLeader(ssn string, pnumber int, start time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextLeader++
	m.Leaders = append(m.Leaders, model.ProjectLeader{ID: m.nextLeader, LeaderSSN: ssn, Pnumber: pnumber, StartDate: &start})
}

// Works on

func (m *MemStore) ListWorksOn(ctx context.Context) ([]model.WorksOn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.WorksOn{}, m.WorksOn...), nil
}

func (m *MemStore) CreateWorksOn(ctx context.Context, w *model.WorksOn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.WorksOn {
		if x == *w {
			return conflict("works_on")
		}
	}
	m.WorksOn = append(m.WorksOn, *w)
	return nil
}

func (m *MemStore) DeleteWorksOn(ctx context.Context, ssn string, pnumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.WorksOn {
		if x.SSN == ssn && x.Pnumber == pnumber {
			m.WorksOn = append(m.WorksOn[:i], m.WorksOn[i+1:]...)
			return nil
		}
	}
	return notFound("works_on")
}

// Logs

func (m *MemStore) ListCompletionLogs(ctx context.Context) ([]model.TaskCompletionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.TaskCompletionLog{}, m.CompletionLogs...), nil
}

func (m *MemStore) GetCompletionLog(ctx context.Context, id int) (*model.TaskCompletionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.CompletionLogs {
		if l.LogID == id {
			return &l, nil
		}
	}
	return nil, notFound("completion log")
}

func (m *MemStore) CreateCompletionLog(ctx context.Context, l *model.TaskCompletionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextLog++
	l.LogID = m.nextLog
	if l.CompletionDate.IsZero() {
		l.CompletionDate = time.Now().UTC()
	}
	m.CompletionLogs = append(m.CompletionLogs, *l)
	return nil
}

func (m *MemStore) DeleteCompletionLog(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.CompletionLogs {
		if l.LogID == id {
			m.CompletionLogs = append(m.CompletionLogs[:i], m.CompletionLogs[i+1:]...)
			return nil
		}
	}
	return notFound("completion log")
}

func (m *MemStore) ListAssignmentLogs(ctx context.Context) ([]model.AssignmentLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AssignmentLog{}, m.AssignmentLogs...), nil
}

func (m *MemStore) GetAssignmentLog(ctx context.Context, id int) (*model.AssignmentLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.AssignmentLogs {
		if l.LogID == id {
			return &l, nil
		}
	}
	return nil, notFound("assignment log")
}

func (m *MemStore) CreateAssignmentLog(ctx context.Context, l *model.AssignmentLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextLog++
	l.LogID = m.nextLog
	m.AssignmentLogs = append(m.AssignmentLogs, *l)
	return nil
}

func (m *MemStore) DeleteAssignmentLog(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.AssignmentLogs {
		if l.LogID == id {
			m.AssignmentLogs = append(m.AssignmentLogs[:i], m.AssignmentLogs[i+1:]...)
			return nil
		}
	}
	return notFound("assignment log")
}

// Seeding helpers for tests.

func (m *MemStore) AddEmployee(ssn, fname, lname string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Employees[ssn] = model.Employee{SSN: ssn, Fname: fname, Lname: lname}
}

func (m *MemStore) AddUser(username, password, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createUser(&model.User{Username: username, PasswordHash: password, Role: strings.ToLower(role)})
}

func (m *MemStore) AddProject(pnumber int, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Projects[pnumber] = model.Project{Pnumber: pnumber, Pname: name}
}

func (m *MemStore) Ping(ctx context.Context) error { return nil }

func (m *MemStore) GetWorksOn(ctx context.Context, ssn string, pnumber int) (*model.WorksOn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.WorksOn {
		if w.SSN == ssn && w.Pnumber == pnumber {
			return &w, nil
		}
	}
	return nil, notFound("works_on")
}

func (m *MemStore) GetLeader(ctx context.Context, id int) (*model.ProjectLeader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := m.leaders(func(l model.ProjectLeader) bool { return l.ID == id })
	if len(found) == 0 {
		return nil, notFound("project leader")
	}
	return &found[0], nil
}

func (m *MemStore) UpdateLeader(ctx context.Context, l *model.ProjectLeader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.Leaders {
		if x.ID != l.ID {
			continue
		}
		_, empOK := m.Employees[l.LeaderSSN]
		_, projOK := m.Projects[l.Pnumber]
		if !empOK || !projOK {
			return badRef("project leader")
		}
		m.Leaders[i] = *l
		return nil
	}
	return notFound("project leader")
}

func (m *MemStore) UpdateAssignment(ctx context.Context, fromIndex int, a *model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	at := -1
	for i, x := range m.Assignments {
		if x.SSN == a.SSN && x.TaskID == a.TaskID {
			if x.TodoIndex == a.TodoIndex && x.TodoIndex != fromIndex {
				return conflict("assignment")
			}
			if x.TodoIndex == fromIndex && at < 0 {
				at = i
			}
		}
	}
	if at < 0 {
		return notFound("assignment")
	}
	m.Assignments[at] = *a
	return nil
}
