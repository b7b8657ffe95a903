package model

import "time"

type Task struct {
	TaskID         int        `json:"task_id"`
	TaskName       string     `json:"task_name"`
	StartDate      *time.Time `json:"start_date"`
	DueDate        *time.Time `json:"due_date"`
	CompletionRate int        `json:"completion_rate"`
	TaskNumber     *int       `json:"task_number"`
	Pnumber        int        `json:"pnumber"`
}

// ToDoItem is keyed by (TaskID, TodoIndex). The index is an opaque key; it
// is not guaranteed to be dense.
type ToDoItem struct {
	TaskID      int    `json:"task_id"`
	TodoIndex   int    `json:"todo_index"`
	Description string `json:"description"`
	Importance  *int   `json:"importance"`
	IsCompleted bool   `json:"is_completed"`
}

// Weight returns the importance, treating null and negative values as 0.
func (t ToDoItem) Weight() int {
	if t.Importance == nil || *t.Importance < 0 {
		return 0
	}
	return *t.Importance
}

type Assignment struct {
	SSN          string     `json:"ssn"`
	TaskID       int        `json:"task_id"`
	TodoIndex    int        `json:"todo_index"`
	AssignedDate *time.Time `json:"assigned_date,omitempty"`
}

// TaskDetail is a task with its to-do list and the employees assigned to
// each to-do, grouped by to-do index.
type TaskDetail struct {
	Task
	Todos       []ToDoItem `json:"todos"`
	Assignments [][]string `json:"assignments"`
}

// TaskInput is the write shape for creating or replacing a task.
type TaskInput struct {
	TaskID         int         `json:"task_id"`
	TaskName       string      `json:"task_name" binding:"required"`
	StartDate      *time.Time  `json:"start_date"`
	DueDate        *time.Time  `json:"due_date"`
	CompletionRate *int        `json:"completion_rate"`
	TaskNumber     *int        `json:"task_number"`
	Pnumber        int         `json:"pnumber" binding:"required"`
	Todos          []TodoInput `json:"todos"`
	Assignments    [][]string  `json:"assignments"`
}

type TodoInput struct {
	TodoIndex   *int   `json:"todo_index"`
	Description string `json:"description"`
	Importance  *int   `json:"importance"`
	IsCompleted bool   `json:"is_completed"`
}
