package model

type LeaderSummary struct {
	LeaderSSN string `json:"leader_ssn"`
	FullName  string `json:"full_name,omitempty"`
}

// ProjectDetail is a project together with its department, current leader
// and tasks.
type ProjectDetail struct {
	Project
	Department *Department    `json:"department"`
	Leader     *LeaderSummary `json:"leader"`
	Tasks      []TaskDetail   `json:"tasks"`
}
