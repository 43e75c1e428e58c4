// Package jsonfile implements the service.Service interface over a single
// JSON task file.
package jsonfile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/taskfile"
)

// Client implements service.Service. It loads the whole file on creation,
// mutates the sequence in memory and rewrites the file on Flush.
type Client struct {
	path  string
	log   *zap.Logger
	tasks []service.Task
	dirty bool
}

// New loads the task file named by cfg.File.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logging.OrNop(cfg.Logger)
	tasks, err := taskfile.Load(cfg.File, taskfile.Options{
		Strict: cfg.Strict,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		path:  cfg.File,
		log:   log,
		tasks: tasks,
	}, nil
}

// Path returns the task file location.
func (c *Client) Path() string {
	return c.path
}

// Dirty reports whether the sequence changed since it was loaded or flushed.
func (c *Client) Dirty() bool {
	return c.dirty
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	result := make([]service.Task, len(c.tasks))
	copy(result, c.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, description string) (service.Task, error) {
	id, err := service.NextID(c.tasks)
	if err != nil {
		return service.Task{}, err
	}
	task := service.Task{
		ID:          id,
		Description: description,
	}
	c.tasks = append(c.tasks, task)
	c.dirty = true
	c.log.Debug("created task", zap.Uint64("id", task.ID))
	return task, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id uint64) error {
	i := service.IndexOf(c.tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	c.dirty = true
	c.log.Debug("deleted task", zap.Uint64("id", id))
	return nil
}

// CompleteTask implements service.Service.
func (c *Client) CompleteTask(ctx context.Context, id uint64) error {
	i := service.IndexOf(c.tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	if c.tasks[i].Completed {
		return nil
	}
	c.tasks[i].Completed = true
	c.dirty = true
	c.log.Debug("completed task", zap.Uint64("id", id))
	return nil
}

// Flush implements service.Service.
func (c *Client) Flush(ctx context.Context) error {
	if !c.dirty {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := taskfile.Save(c.path, c.tasks); err != nil {
		return err
	}
	c.dirty = false
	c.log.Debug("saved task file", zap.String("path", c.path), zap.Int("tasks", len(c.tasks)))
	return nil
}
