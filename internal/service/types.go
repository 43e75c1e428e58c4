// Package service defines the backend-agnostic interface for task operations.
package service

import "math"

// Task represents a single todo item.
type Task struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// NextID returns the id a new task appended to tasks receives:
// the highest existing id plus one, or 1 for an empty sequence.
// It returns ErrIDExhausted when the highest id is already math.MaxUint64.
func NextID(tasks []Task) (uint64, error) {
	var max uint64
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	if max == math.MaxUint64 {
		return 0, ErrIDExhausted
	}
	return max + 1, nil
}

// IndexOf returns the position of the first task with the given id, or -1.
func IndexOf(tasks []Task, id uint64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
