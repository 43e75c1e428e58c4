// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu      sync.RWMutex
	tasks   []service.Task
	dirty   bool
	Flushes int // number of Flush calls that had changes to persist

	// Error injection for testing
	ListTasksErr    error
	CreateTaskErr   error
	DeleteTaskErr   error
	CompleteTaskErr error
	FlushErr        error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task without marking the service dirty.
func (f *FakeService) AddTask(id uint64, description string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Description: description,
		Completed:   completed,
	})
}

// Tasks returns a snapshot of the current sequence.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Dirty reports whether a mutation is waiting for Flush.
func (f *FakeService) Dirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirty
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, description string) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := service.NextID(f.tasks)
	if err != nil {
		return service.Task{}, err
	}
	task := service.Task{ID: id, Description: description}
	f.tasks = append(f.tasks, task)
	f.dirty = true
	return task, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id uint64) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := service.IndexOf(f.tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	f.dirty = true
	return nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, id uint64) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := service.IndexOf(f.tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	if !f.tasks[i].Completed {
		f.tasks[i].Completed = true
		f.dirty = true
	}
	return nil
}

// Flush implements service.Service.
func (f *FakeService) Flush(ctx context.Context) error {
	if f.FlushErr != nil {
		return f.FlushErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dirty {
		f.Flushes++
		f.dirty = false
	}
	return nil
}
