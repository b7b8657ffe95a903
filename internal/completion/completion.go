// Package completion computes task and project completion percentages.
//
// Task completion is the importance-weighted share of completed to-do items.
// Project completion is the mean of the stored task rates. Both round half
// away from zero and always return a value in [0, 100].
package completion

import (
	"math"

	"github.com/roksva123/go-taskboard-backend/internal/model"
)

// TaskCompletion returns round(done/total*100) over the to-do importance
// weights. A list with zero total weight yields 0.
func TaskCompletion(todos []model.ToDoItem) int {
	done, total := weights(todos)
	if total == 0 {
		return 0
	}
	return clamp(round(float64(done) / float64(total) * 100))
}

// Derivable reports whether the task rate is determined by its to-do list,
// i.e. whether the list carries any weight at all.
func Derivable(todos []model.ToDoItem) bool {
	_, total := weights(todos)
	return total > 0
}

// ProjectCompletion returns the rounded mean of the task rates, or 0 for a
// project without tasks.
func ProjectCompletion(rates []int) int {
	if len(rates) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rates {
		sum += r
	}
	return clamp(round(float64(sum) / float64(len(rates))))
}

func weights(todos []model.ToDoItem) (done, total int) {
	for _, t := range todos {
		w := t.Weight()
		total += w
		if t.IsCompleted {
			done += w
		}
	}
	return done, total
}

func round(x float64) int {
	return int(math.Round(x))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
