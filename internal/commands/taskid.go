package commands

import (
	"strconv"
	"strings"
)

var (
	// ErrTaskIDRequired indicates no task id was provided.
	ErrTaskIDRequired = &ArgError{Msg: "No task ID provided.", ShowUsage: true}

	// ErrTaskIDInvalid indicates the task id is not a non-negative integer.
	ErrTaskIDInvalid = &ArgError{Msg: "Task ID must be a number."}
)

// ParseTaskID parses the task id from the first positional argument.
// Further arguments are ignored.
//
// The id must be a base-10 unsigned integer that fits in 64 bits. A single
// leading '+' is accepted; spaces and separators are not.
func ParseTaskID(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}

	id, err := strconv.ParseUint(strings.TrimPrefix(args[0], "+"), 10, 64)
	if err != nil {
		return 0, ErrTaskIDInvalid
	}
	return id, nil
}
