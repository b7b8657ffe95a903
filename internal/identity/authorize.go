package identity

import (
	"strings"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

type Action string

const (
	Read  Action = "read"
	Write Action = "write"
)

type TargetKind string

const (
	ProjectTarget TargetKind = "project"
	TaskTarget    TargetKind = "task"
)

type Target struct {
	Kind TargetKind
	ID   int
}

type Decision int

const (
	Forbidden Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "forbidden"
}

// Snapshot is the data an authorization decision is made against. Tasks
// only needs to contain the target task for task targets.
type Snapshot struct {
	Employees []model.Employee
	Leaders   []model.ProjectLeader
	Tasks     []model.Task
}

// Authorize grants admins everything and everyone reads. Other writes are
// allowed only for the current leader of the target project, or of the
// project owning the target task.
func Authorize(role, username string, action Action, target Target, snap Snapshot) Decision {
	if strings.EqualFold(strings.TrimSpace(role), model.RoleAdmin) {
		return Allowed
	}
	if action == Read {
		return Allowed
	}
	ssn, ok := ResolveEmployeeSSN(username, snap.Employees)
	if !ok {
		return Forbidden
	}
	var leads bool
	switch target.Kind {
	case ProjectTarget:
		leads = IsCurrentLeaderOfProject(ssn, target.ID, snap.Leaders)
	case TaskTarget:
		leads = IsCurrentLeaderOfTask(ssn, target.ID, snap.Tasks, snap.Leaders)
	}
	if leads {
		return Allowed
	}
	return Forbidden
}
