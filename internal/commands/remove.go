package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&RemoveCmd{})
}

// RemoveCmd implements the remove command.
type RemoveCmd struct{}

func (c *RemoveCmd) Name() string      { return "remove" }
func (c *RemoveCmd) Aliases() []string { return []string{"rm"} }
func (c *RemoveCmd) Synopsis() string  { return "Remove a task by ID" }
func (c *RemoveCmd) Usage() string     { return "todo remove <task_id>" }
func (c *RemoveCmd) NeedsStore() bool  { return true }

func (c *RemoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RemoveCmd) ValidateArgs(args []string) error {
	_, err := ParseTaskID(args)
	return err
}

func (c *RemoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return ReportArgError(errOut, DefaultRegistry, err)
	}

	if err := svc.DeleteTask(ctx, id); err != nil {
		return reportTaskError(errOut, id, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "Task removed successfully.")
	}
	return exitcode.Success
}

// reportTaskError prints a failed lookup or store error.
// A missing task is reported but is not a failure.
func reportTaskError(errOut io.Writer, id uint64, err error) int {
	if errors.Is(err, service.ErrNotFound) {
		fmt.Fprintf(errOut, "Error: No task found with ID %d\n", id)
		return exitcode.Success
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return exitcode.StoreError
}
