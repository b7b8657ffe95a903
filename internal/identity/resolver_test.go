package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

var john = []model.Employee{{SSN: "1", Fname: "John", Lname: "Doe"}}

func at(day int) *time.Time {
	t := time.Date(2025, time.July, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveEmployeeSSN(t *testing.T) {
	tests := []struct {
		username string
		wantSSN  string
		wantOK   bool
	}{
		{"john", "1", true},
		{"doe", "1", true},
		{"johndoe", "1", true},
		{"john.doe", "1", true},
		{"  JOHN  ", "1", true},
		{"John.Doe", "1", true},
		{"jane", "", false},
		{"john doe", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			ssn, ok := ResolveEmployeeSSN(tt.username, john)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSSN, ssn)
		})
	}
}

func TestResolveEmployeeSSN_FirstMatchWins(t *testing.T) {
	emps := []model.Employee{
		{SSN: "A", Fname: "Ali", Lname: "Kaya"},
		{SSN: "B", Fname: "Ali", Lname: "Demir"},
	}
	ssn, ok := ResolveEmployeeSSN("ali", emps)
	assert.True(t, ok)
	assert.Equal(t, "A", ssn)

	ssn, _ = ResolveEmployeeSSN("ali.demir", emps)
	assert.Equal(t, "B", ssn)
}

func TestResolveEmployeeSSN_BlankNames(t *testing.T) {
	emps := []model.Employee{{SSN: "X", Fname: "", Lname: ""}}
	_, ok := ResolveEmployeeSSN("   ", emps)
	assert.False(t, ok)

	emps = []model.Employee{{SSN: "Y", Fname: "Cem", Lname: ""}}
	ssn, ok := ResolveEmployeeSSN("cem", emps)
	assert.True(t, ok)
	assert.Equal(t, "Y", ssn)
}

func TestCurrentLeader(t *testing.T) {
	leaders := []model.ProjectLeader{
		{LeaderSSN: "42", Pnumber: 7, StartDate: at(1)},
		{LeaderSSN: "99", Pnumber: 7, StartDate: at(2)},
		{LeaderSSN: "11", Pnumber: 8, StartDate: at(9)},
	}
	cur, ok := CurrentLeader(7, leaders)
	assert.True(t, ok)
	assert.Equal(t, "99", cur.LeaderSSN)

	_, ok = CurrentLeader(3, leaders)
	assert.False(t, ok)
}

func TestCurrentLeader_NilStartDateSortsLowest(t *testing.T) {
	leaders := []model.ProjectLeader{
		{LeaderSSN: "9", Pnumber: 1},
		{LeaderSSN: "1", Pnumber: 1, StartDate: at(1)},
	}
	cur, _ := CurrentLeader(1, leaders)
	assert.Equal(t, "1", cur.LeaderSSN)
}

func TestCurrentLeader_TieBreaksOnHighestSSN(t *testing.T) {
	leaders := []model.ProjectLeader{
		{LeaderSSN: "200", Pnumber: 1, StartDate: at(5)},
		{LeaderSSN: "300", Pnumber: 1, StartDate: at(5)},
		{LeaderSSN: "100", Pnumber: 1, StartDate: at(5)},
	}
	cur, _ := CurrentLeader(1, leaders)
	assert.Equal(t, "300", cur.LeaderSSN)
}

func TestIsCurrentLeaderOfProject(t *testing.T) {
	leaders := []model.ProjectLeader{
		{LeaderSSN: "42", Pnumber: 7, StartDate: at(1)},
		{LeaderSSN: "99", Pnumber: 7, StartDate: at(2)},
	}
	assert.False(t, IsCurrentLeaderOfProject("42", 7, leaders))
	assert.True(t, IsCurrentLeaderOfProject("99", 7, leaders))
	assert.False(t, IsCurrentLeaderOfProject("99", 8, leaders))
	assert.False(t, IsCurrentLeaderOfProject("99", 7, nil))
	assert.False(t, IsCurrentLeaderOfProject("", 7, leaders))

	mixed := []model.ProjectLeader{{LeaderSSN: "ab123", Pnumber: 2, StartDate: at(1)}}
	assert.True(t, IsCurrentLeaderOfProject("AB123", 2, mixed))
}

func TestIsCurrentLeaderOfTask(t *testing.T) {
	leaders := []model.ProjectLeader{{LeaderSSN: "42", Pnumber: 7, StartDate: at(1)}}
	tasks := []model.Task{{TaskID: 3, Pnumber: 7}, {TaskID: 4, Pnumber: 8}}

	assert.True(t, IsCurrentLeaderOfTask("42", 3, tasks, leaders))
	assert.False(t, IsCurrentLeaderOfTask("42", 4, tasks, leaders))
	assert.False(t, IsCurrentLeaderOfTask("42", 5, tasks, leaders))
}

func TestProjectsLedBy(t *testing.T) {
	leaders := []model.ProjectLeader{
		{LeaderSSN: "42", Pnumber: 9, StartDate: at(1)},
		{LeaderSSN: "42", Pnumber: 7, StartDate: at(1)},
		{LeaderSSN: "99", Pnumber: 7, StartDate: at(2)},
		{LeaderSSN: "42", Pnumber: 3, StartDate: at(4)},
	}
	assert.Equal(t, []int{3, 9}, ProjectsLedBy("42", leaders))
	assert.Equal(t, []int{}, ProjectsLedBy("nobody", leaders))
}
