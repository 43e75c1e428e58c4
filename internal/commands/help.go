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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

// NewHelpCmd returns a help command listing the commands in r.
func NewHelpCmd(r *Registry) *HelpCmd {
	return &HelpCmd{registry: r}
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Show this help message" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) ValidateArgs(args []string) error { return nil }

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	r := c.registry
	if r == nil {
		r = DefaultRegistry
	}
	WriteUsage(out, r)
	return exitcode.Success
}

// WriteUsage prints one line per command in r followed by the common flags.
func WriteUsage(w io.Writer, r *Registry) {
	cmds := r.All()

	width := 0
	for _, c := range cmds {
		width = max(width, len(c.Usage()))
	}

	fmt.Fprintln(w, "Usage:")
	for _, c := range cmds {
		fmt.Fprintf(w, "  %-*s  %s\n", width, c.Usage(), c.Synopsis())
	}
	fmt.Fprint(w, commonFlagsText)
}

// ReportArgError prints err and, if it asks for it, the usage block.
// Returns the exit code for an argument error.
func ReportArgError(errOut io.Writer, r *Registry, err error) int {
	fmt.Fprintf(errOut, "Error: %v\n", err)
	var argErr *ArgError
	if errors.As(err, &argErr) && argErr.ShowUsage {
		WriteUsage(errOut, r)
	}
	return exitcode.UserError
}

const commonFlagsText = `
Common flags:
  --file <path>     Task file (default tasks.json)
  --config <path>   Config file, replaces the user and project config
  --strict          Fail on a malformed task file instead of starting empty
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr
`
