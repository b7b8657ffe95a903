package utils

import (
	"sort"

	"github.com/roksva123/go-taskboard-backend/internal/identity"
	"github.com/roksva123/go-taskboard-backend/internal/model"
)

// GroupAssignments returns one SSN group per to-do, in the order of todos.
// Assignments pointing at a to-do index that is not in todos are dropped.
func GroupAssignments(todos []model.ToDoItem, assignments []model.Assignment) [][]string {
	pos := make(map[int]int, len(todos))
	groups := make([][]string, len(todos))
	for i, td := range todos {
		pos[td.TodoIndex] = i
		groups[i] = []string{}
	}
	for _, a := range assignments {
		if i, ok := pos[a.TodoIndex]; ok {
			groups[i] = append(groups[i], a.SSN)
		}
	}
	for _, g := range groups {
		sort.Strings(g)
	}
	return groups
}

// BuildTaskDetail assembles a single task from rows that may belong to
// other tasks as well.
func BuildTaskDetail(task model.Task, todos []model.ToDoItem, assignments []model.Assignment) model.TaskDetail {
	return BuildTaskDetails([]model.Task{task}, todos, assignments)[0]
}

func BuildTaskDetails(tasks []model.Task, todos []model.ToDoItem, assignments []model.Assignment) []model.TaskDetail {
	todosByTask := map[int][]model.ToDoItem{}
	for _, td := range todos {
		todosByTask[td.TaskID] = append(todosByTask[td.TaskID], td)
	}
	assignByTask := map[int][]model.Assignment{}
	for _, a := range assignments {
		assignByTask[a.TaskID] = append(assignByTask[a.TaskID], a)
	}

	out := make([]model.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		tds := todosByTask[t.TaskID]
		if tds == nil {
			tds = []model.ToDoItem{}
		}
		sort.SliceStable(tds, func(i, j int) bool { return tds[i].TodoIndex < tds[j].TodoIndex })
		out = append(out, model.TaskDetail{
			Task:        t,
			Todos:       tds,
			Assignments: GroupAssignments(tds, assignByTask[t.TaskID]),
		})
	}
	return out
}

func BuildProjectDetails(projects []model.Project, departments []model.Department, leaders []model.ProjectLeader, tasks []model.TaskDetail) []model.ProjectDetail {
	deps := make(map[int]model.Department, len(departments))
	for _, d := range departments {
		deps[d.Dnumber] = d
	}
	tasksByProject := map[int][]model.TaskDetail{}
	for _, t := range tasks {
		tasksByProject[t.Pnumber] = append(tasksByProject[t.Pnumber], t)
	}

	out := make([]model.ProjectDetail, 0, len(projects))
	for _, p := range projects {
		d := model.ProjectDetail{Project: p, Tasks: tasksByProject[p.Pnumber]}
		if d.Tasks == nil {
			d.Tasks = []model.TaskDetail{}
		}
		if dep, ok := deps[p.Dnumber]; ok {
			dep := dep
			d.Department = &dep
		}
		if l, ok := identity.CurrentLeader(p.Pnumber, leaders); ok {
			d.Leader = &model.LeaderSummary{LeaderSSN: l.LeaderSSN, FullName: l.FullName}
		}
		out = append(out, d)
	}
	return out
}
