package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ViewCmd{})
}

// ViewCmd implements the view command.
type ViewCmd struct {
	openOnly bool
}

// SetOpenOnly sets the --open flag (for testing).
func (c *ViewCmd) SetOpenOnly(open bool) {
	c.openOnly = open
}

func (c *ViewCmd) Name() string      { return "view" }
func (c *ViewCmd) Aliases() []string { return []string{"list", "ls"} }
func (c *ViewCmd) Synopsis() string  { return "View all tasks" }
func (c *ViewCmd) Usage() string     { return "todo view [--open]" }
func (c *ViewCmd) NeedsStore() bool  { return true }

func (c *ViewCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.openOnly, "open", false, "")
}

func (c *ViewCmd) ValidateArgs(args []string) error { return nil }

func (c *ViewCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exitcode.StoreError
	}

	if c.openOnly {
		open := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				open = append(open, t)
			}
		}
		tasks = open
	}

	output.FormatTasks(out, tasks)
	return exitcode.Success
}
