package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// ErrDescriptionRequired indicates add was called without any description argument.
var ErrDescriptionRequired = &ArgError{Msg: "No task description provided.", ShowUsage: true}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a new task" }
func (c *AddCmd) Usage() string     { return "todo add <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) ValidateArgs(args []string) error {
	_, err := description(args)
	return err
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	desc, err := description(args)
	if err != nil {
		return ReportArgError(errOut, DefaultRegistry, err)
	}

	if _, err := svc.CreateTask(ctx, desc); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exitcode.StoreError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "Task added successfully.")
	}
	return exitcode.Success
}

// description joins all words with single spaces. Any supplied argument
// counts, including an empty one.
func description(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrDescriptionRequired
	}
	return strings.Join(args, " "), nil
}
