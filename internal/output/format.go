// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"

	"todo/internal/service"
)

const (
	// EmptyMessage is printed by view when the store holds no tasks.
	EmptyMessage = "No tasks available."

	checked   = "[x]"
	unchecked = "[ ]"
)

// FormatTask formats a task line for view.
// Format: "{ID} [x]: {DESCRIPTION}\n", with "[ ]" for open tasks.
// The description is printed exactly as stored.
func FormatTask(w io.Writer, task service.Task) {
	status := unchecked
	if task.Completed {
		status = checked
	}
	fmt.Fprintf(w, "%d %s: %s\n", task.ID, status, task.Description)
}

// FormatTasks writes every task in order, or EmptyMessage if there are none.
func FormatTasks(w io.Writer, tasks []service.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyMessage)
		return
	}
	for _, task := range tasks {
		FormatTask(w, task)
	}
}
