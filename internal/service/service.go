// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task not found")

// ErrIDExhausted is returned by CreateTask when no larger id is left.
var ErrIDExhausted = errors.New("no task id left after the highest stored id")

// Service defines the interface for task backend operations.
// A Service holds the whole task sequence in memory for the lifetime of one
// command; mutations become durable only after Flush.
type Service interface {
	// ListTasks returns all tasks in store order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask appends a new open task and returns it.
	// Returns ErrIDExhausted if the highest stored id is the largest possible.
	CreateTask(ctx context.Context, description string) (Task, error)

	// DeleteTask removes the first task with the given id.
	// Returns ErrNotFound and leaves the sequence unchanged if there is none.
	DeleteTask(ctx context.Context, id uint64) error

	// CompleteTask marks the first task with the given id as completed.
	// Returns ErrNotFound if there is none.
	CompleteTask(ctx context.Context, id uint64) error

	// Flush persists pending changes. It does nothing if no mutation happened.
	Flush(ctx context.Context) error
}
