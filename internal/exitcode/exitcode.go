// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion. A remove or done on a
	// missing id still exits with Success.
	Success = 0

	// UserError indicates bad input: missing or malformed arguments,
	// unknown command or flag, invalid configuration.
	UserError = 1

	// StoreError indicates the task file could not be read or written,
	// or was rejected in strict mode.
	StoreError = 1
)
