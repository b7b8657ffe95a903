package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

func todo(importance int, done bool) model.ToDoItem {
	return model.ToDoItem{Importance: &importance, IsCompleted: done}
}

func TestTaskCompletion(t *testing.T) {
	tests := []struct {
		name  string
		todos []model.ToDoItem
		want  int
	}{
		{"empty list", nil, 0},
		{"zero weight completed", []model.ToDoItem{todo(0, true)}, 0},
		{"half done", []model.ToDoItem{todo(10, true), todo(10, false)}, 50},
		{"all done", []model.ToDoItem{todo(3, true), todo(7, true)}, 100},
		{"nothing done", []model.ToDoItem{todo(3, false), todo(7, false)}, 0},
		{"weighted", []model.ToDoItem{todo(1, true), todo(2, false)}, 33},
		{"rounds half up", []model.ToDoItem{todo(1, true), todo(7, false)}, 13},
		{"null importance counts as zero", []model.ToDoItem{{IsCompleted: true}, todo(4, false)}, 0},
		{"negative importance ignored", []model.ToDoItem{todo(-5, false), todo(5, true)}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TaskCompletion(tt.todos))
		})
	}
}

func TestTaskCompletion_IgnoresIndexDensity(t *testing.T) {
	a := todo(2, true)
	a.TodoIndex = 0
	b := todo(2, false)
	b.TodoIndex = 17
	assert.Equal(t, 50, TaskCompletion([]model.ToDoItem{a, b}))
}

func TestDerivable(t *testing.T) {
	assert.False(t, Derivable(nil))
	assert.False(t, Derivable([]model.ToDoItem{todo(0, true), {IsCompleted: false}}))
	assert.True(t, Derivable([]model.ToDoItem{todo(1, false)}))
}

func TestProjectCompletion(t *testing.T) {
	tests := []struct {
		name  string
		rates []int
		want  int
	}{
		{"no tasks", nil, 0},
		{"two tasks", []int{40, 60}, 50},
		{"rounds down below half", []int{33, 33, 34}, 33},
		{"rounds half away from zero", []int{50, 51}, 51},
		{"single task", []int{87}, 87},
		{"all complete", []int{100, 100}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectCompletion(tt.rates))
		})
	}
}
