package model

import "time"

type Department struct {
	Dnumber int    `json:"dnumber"`
	Dname   string `json:"dname"`
}

type Employee struct {
	SSN        string      `json:"ssn"`
	Fname      string      `json:"fname"`
	Lname      string      `json:"lname"`
	Dno        int         `json:"dno"`
	Department *Department `json:"department,omitempty"`
}

// FullName joins first and last name, trimming the gap when either is empty.
func (e Employee) FullName() string {
	switch {
	case e.Fname == "":
		return e.Lname
	case e.Lname == "":
		return e.Fname
	}
	return e.Fname + " " + e.Lname
}

type Project struct {
	Pnumber          int        `json:"pnumber"`
	Pname            string     `json:"pname"`
	StartDate        *time.Time `json:"start_date"`
	DueDate          *time.Time `json:"due_date"`
	CompletionStatus int        `json:"completion_status"`
	Dnumber          int        `json:"dnumber"`
}

// ProjectLeader is one leadership assignment. The current leader of a
// project is the record with the latest StartDate.
type ProjectLeader struct {
	ID        int        `json:"id"`
	LeaderSSN string     `json:"leader_ssn"`
	Pnumber   int        `json:"pnumber"`
	Dnumber   int        `json:"dnumber"`
	StartDate *time.Time `json:"start_date"`
	FullName  string     `json:"full_name,omitempty"`
}

type WorksOn struct {
	SSN     string `json:"ssn"`
	Pnumber int    `json:"pnumber"`
}

type TaskCompletionLog struct {
	LogID          int       `json:"log_id"`
	TaskID         int       `json:"task_id"`
	CompletionDate time.Time `json:"completion_date"`
}

type AssignmentLog struct {
	LogID        int        `json:"log_id"`
	SSN          string     `json:"ssn"`
	TaskID       int        `json:"task_id"`
	AssignedDate *time.Time `json:"assigned_date"`
}
