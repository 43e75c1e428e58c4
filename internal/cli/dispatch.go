package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory

	// ConfigDir and WorkDir override where config files are looked up.
	ConfigDir string
	WorkDir   string
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> usage
	if len(args) == 0 {
		commands.WriteUsage(out, d.registry)
		return exitcode.Success
	}

	cmdName := args[0]
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		// Flags require a command, so a leading flag is reported the same way.
		fmt.Fprintf(errOut, "Error: Unknown command '%s'.\n", cmdName)
		commands.WriteUsage(errOut, d.registry)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var (
		configPath string
		file       string
		strict     bool
		quiet      bool
		debug      bool
	)
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&file, "file", "", "")
	fs.BoolVar(&strict, "strict", false, "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			commands.WriteUsage(out, d.registry)
			return exitcode.Success
		}
		return reportFlagError(errOut, err)
	}
	positionalArgs := fs.Args()

	// Arguments are checked before anything touches the task file.
	if err := cmd.ValidateArgs(positionalArgs); err != nil {
		return commands.ReportArgError(errOut, d.registry, err)
	}

	logger := logging.New(errOut, debug)
	defer func() { _ = logger.Sync() }()

	// help and version work even when the config files are broken.
	cfg := &config.Config{File: config.DefaultFile, Logger: logger}
	if cmd.NeedsStore() {
		loaded, err := config.Load(config.LoadOptions{
			Path:    configPath,
			Dir:     d.ConfigDir,
			WorkDir: d.WorkDir,
			Logger:  logger,
		})
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return exitcode.UserError
		}
		cfg = loaded
	}
	if file != "" {
		cfg.File = file
	}
	cfg.Strict = cfg.Strict || strict
	cfg.Quiet = cfg.Quiet || quiet
	cfg.Debug = debug

	var svc service.Service
	if cmd.NeedsStore() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "Error: no task store configured")
			return exitcode.StoreError
		}
		logger.Debug("loading tasks", zap.String("file", cfg.File), zap.Bool("strict", cfg.Strict))
		var err error
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "Error loading tasks: %v\n", err)
			return exitcode.StoreError
		}
	}

	code := cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
	if svc == nil || code != exitcode.Success {
		return code
	}

	if err := svc.Flush(ctx); err != nil {
		fmt.Fprintf(errOut, "Error saving tasks: %v\n", err)
		return exitcode.StoreError
	}
	return code
}

// reportFlagError prints a flag parse failure.
func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "Error: flag needs an argument: %s\n", flagName)
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		fmt.Fprintf(errOut, "Error: unknown flag: %s\n", flagName)
	default:
		fmt.Fprintf(errOut, "Error: %s\n", errStr)
	}
	return exitcode.UserError
}
