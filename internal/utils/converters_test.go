package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

func TestGroupAssignments_AlignsWithSparseIndexes(t *testing.T) {
	todos := []model.ToDoItem{{TaskID: 1, TodoIndex: 0}, {TaskID: 1, TodoIndex: 2}, {TaskID: 1, TodoIndex: 5}}
	assignments := []model.Assignment{
		{SSN: "222", TaskID: 1, TodoIndex: 5},
		{SSN: "111", TaskID: 1, TodoIndex: 0},
		{SSN: "333", TaskID: 1, TodoIndex: 5},
		{SSN: "999", TaskID: 1, TodoIndex: 7},
	}

	got := GroupAssignments(todos, assignments)

	assert.Equal(t, [][]string{{"111"}, {}, {"222", "333"}}, got)
}

func TestBuildTaskDetails_SortsTodosAndKeepsEmptySlices(t *testing.T) {
	tasks := []model.Task{{TaskID: 1, Pnumber: 10}, {TaskID: 2, Pnumber: 10}}
	todos := []model.ToDoItem{
		{TaskID: 1, TodoIndex: 3, Description: "b"},
		{TaskID: 1, TodoIndex: 1, Description: "a"},
	}

	got := BuildTaskDetails(tasks, todos, nil)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Todos[0].Description)
	assert.Equal(t, [][]string{{}, {}}, got[0].Assignments)
	assert.NotNil(t, got[1].Todos)
	assert.Empty(t, got[1].Assignments)
}

func TestBuildProjectDetails_PicksCurrentLeaderAndDepartment(t *testing.T) {
	early := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	projects := []model.Project{{Pnumber: 10, Dnumber: 5}, {Pnumber: 20}}
	departments := []model.Department{{Dnumber: 5, Dname: "Research"}}
	leaders := []model.ProjectLeader{
		{LeaderSSN: "111", Pnumber: 10, StartDate: &early, FullName: "Ann Lee"},
		{LeaderSSN: "222", Pnumber: 10, StartDate: &late, FullName: "Bo Kim"},
	}
	tasks := []model.TaskDetail{{Task: model.Task{TaskID: 1, Pnumber: 10}}}

	got := BuildProjectDetails(projects, departments, leaders, tasks)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Leader)
	assert.Equal(t, "222", got[0].Leader.LeaderSSN)
	assert.Equal(t, "Research", got[0].Department.Dname)
	assert.Len(t, got[0].Tasks, 1)
	assert.Nil(t, got[1].Leader)
	assert.Nil(t, got[1].Department)
	assert.NotNil(t, got[1].Tasks)
}
