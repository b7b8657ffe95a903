// Package identity maps login usernames to employees and decides whether a
// caller may write to a project or task.
//
// Everything here works on an in-memory snapshot supplied by the caller;
// nothing touches the database.
package identity

import (
	"sort"
	"strings"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveEmployeeSSN returns the SSN of the first employee whose first name,
// last name, first+last or first.last equals the normalized username.
//
// The match is a heuristic: employees that share a first name collide and the
// earlier one in the slice wins.
func ResolveEmployeeSSN(username string, employees []model.Employee) (string, bool) {
	un := normalize(username)
	if un == "" {
		return "", false
	}
	for _, e := range employees {
		first, last := normalize(e.Fname), normalize(e.Lname)
		for _, form := range []string{first, last, first + last, first + "." + last} {
			if form != "" && form == un {
				return e.SSN, true
			}
		}
	}
	return "", false
}

// CurrentLeader returns the project's leader record with the latest start
// date. Records without a start date sort lowest; equal dates fall back to
// the highest leader SSN.
func CurrentLeader(projectID int, leaders []model.ProjectLeader) (model.ProjectLeader, bool) {
	var (
		best  model.ProjectLeader
		found bool
	)
	for _, l := range leaders {
		if l.Pnumber != projectID {
			continue
		}
		if !found || newer(l, best) {
			best, found = l, true
		}
	}
	return best, found
}

func newer(a, b model.ProjectLeader) bool {
	switch {
	case a.StartDate == nil && b.StartDate == nil:
	case a.StartDate == nil:
		return false
	case b.StartDate == nil:
		return true
	case !a.StartDate.Equal(*b.StartDate):
		return a.StartDate.After(*b.StartDate)
	}
	return a.LeaderSSN > b.LeaderSSN
}

func IsCurrentLeaderOfProject(ssn string, projectID int, leaders []model.ProjectLeader) bool {
	if ssn == "" {
		return false
	}
	cur, ok := CurrentLeader(projectID, leaders)
	return ok && strings.EqualFold(cur.LeaderSSN, ssn)
}

func IsCurrentLeaderOfTask(ssn string, taskID int, tasks []model.Task, leaders []model.ProjectLeader) bool {
	for _, t := range tasks {
		if t.TaskID == taskID {
			return IsCurrentLeaderOfProject(ssn, t.Pnumber, leaders)
		}
	}
	return false
}

// ProjectsLedBy lists, in ascending order, the projects whose current leader
// is ssn.
func ProjectsLedBy(ssn string, leaders []model.ProjectLeader) []int {
	seen := map[int]bool{}
	out := []int{}
	for _, l := range leaders {
		if seen[l.Pnumber] {
			continue
		}
		seen[l.Pnumber] = true
		if IsCurrentLeaderOfProject(ssn, l.Pnumber, leaders) {
			out = append(out, l.Pnumber)
		}
	}
	sort.Ints(out)
	return out
}
