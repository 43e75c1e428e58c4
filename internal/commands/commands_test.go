package commands_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		File:   "unused.json",
		Quiet:  quiet,
		Logger: zap.NewNop(),
	}

	// Commands that do not need a store receive a nil service.
	var s service.Service
	if svc != nil {
		s = svc
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "todo 0.1.0\n", stdout)
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "help", stdout)
}

func TestHelpCommand_CustomRegistry(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.VersionCmd{}))

	stdout, _, code := runCommand(t, commands.NewHelpCmd(r), nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Usage:\n  todo version  Print version\n")
	assert.NotContains(t, stdout, "todo add", "help should only list commands from its registry")
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "groceries"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "Task added successfully.\n", stdout)
	assert.Equal(t, []service.Task{{ID: 1, Description: "Buy groceries"}}, svc.Tasks())
}

func TestAddCommand_JoinsWordsWithSingleSpaces(t *testing.T) {
	svc := testutil.NewFakeService()

	_, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Walk", "the  dog", "twice"}, false)

	require.Equal(t, exitcode.Success, code)
	// Words are joined with one space; spacing inside a single argument is kept.
	assert.Equal(t, "Walk the  dog twice", svc.Tasks()[0].Description)
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk"}, true)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Empty(t, stdout, "quiet mode prints nothing")
	assert.Len(t, svc.Tasks(), 1, "quiet mode should still add the task")
}

func TestAddCommand_NoDescription(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Regexp(t, `^Error: No task description provided\.\nUsage:\n`, stderr)
	assert.False(t, svc.Dirty(), "store should not be mutated")
}

func TestAddCommand_BlankDescriptionsAreStored(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty", []string{""}, ""},
		{"spaces", []string{"   "}, "   "},
		{"blank words", []string{"  ", "\t"}, "   \t"},
		{"multiline", []string{"line1\nline2"}, "line1\nline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()

			stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, tt.args, false)

			assert.Equal(t, exitcode.Success, code)
			assert.Empty(t, stderr)
			assert.Equal(t, "Task added successfully.\n", stdout)
			assert.Equal(t, []service.Task{{ID: 1, Description: tt.want}}, svc.Tasks())
		})
	}
}

func TestAddCommand_StoreError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("disk on fire")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, false)

	assert.Equal(t, exitcode.StoreError, code)
	assert.Equal(t, "Error: disk on fire\n", stderr)
}

func TestAddCommand_IDExhausted(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(math.MaxUint64, "last", false)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, false)

	assert.Equal(t, exitcode.StoreError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: "+service.ErrIDExhausted.Error()+"\n", stderr)
	assert.False(t, svc.Dirty())
	assert.Len(t, svc.Tasks(), 1)
}

// Tests for remove command
func TestRemoveCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", false)
	svc.AddTask(2, "Walk dog", false)

	stdout, stderr, code := runCommand(t, &commands.RemoveCmd{}, svc, []string{"1"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "Task removed successfully.\n", stdout)
	assert.Equal(t, []service.Task{{ID: 2, Description: "Walk dog"}}, svc.Tasks())
}

func TestRemoveCommand_PlusSignedID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", false)
	svc.AddTask(2, "Walk dog", false)

	stdout, stderr, code := runCommand(t, &commands.RemoveCmd{}, svc, []string{"+1"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "Task removed successfully.\n", stdout)
	assert.Equal(t, []service.Task{{ID: 2, Description: "Walk dog"}}, svc.Tasks())
}

func TestRemoveCommand_NotFound(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", false)

	stdout, stderr, code := runCommand(t, &commands.RemoveCmd{}, svc, []string{"7"}, false)

	assert.Equal(t, exitcode.Success, code, "missing id is not a failure")
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: No task found with ID 7\n", stderr)
	assert.False(t, svc.Dirty())
	assert.Len(t, svc.Tasks(), 1)
}

func TestRemoveCommand_NoID(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.RemoveCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Regexp(t, `^Error: No task ID provided\.\nUsage:\n`, stderr)
}

func TestRemoveCommand_InvalidID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", false)

	stdout, stderr, code := runCommand(t, &commands.RemoveCmd{}, svc, []string{"abc"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: Task ID must be a number.\n", stderr)
	assert.False(t, svc.Dirty())
}

func TestRemoveCommand_StoreError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.DeleteTaskErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.RemoveCmd{}, svc, []string{"1"}, false)

	assert.Equal(t, exitcode.StoreError, code)
	assert.Equal(t, "Error: boom\n", stderr)
}

// Tests for done command
func TestDoneCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", false)
	svc.AddTask(2, "Walk dog", false)

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"2"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "Task marked completed.\n", stdout)
	assert.Equal(t, []service.Task{
		{ID: 1, Description: "Buy milk"},
		{ID: 2, Description: "Walk dog", Completed: true},
	}, svc.Tasks())
}

func TestDoneCommand_NotFound(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"3"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Error: No task found with ID 3\n", stderr)
}

func TestDoneCommand_InvalidID(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"-2"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "Error: Task ID must be a number.\n", stderr)
}

// Tests for view command
func TestViewCommand_WithTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", true)
	svc.AddTask(2, "Walk dog", false)

	stdout, stderr, code := runCommand(t, &commands.ViewCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "1 [x]: Buy milk\n2 [ ]: Walk dog\n", stdout)
	assert.False(t, svc.Dirty(), "view must not mutate the store")
}

func TestViewCommand_DescriptionsVerbatim(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "", false)
	svc.AddTask(2, "line1\nline2", false)

	stdout, _, code := runCommand(t, &commands.ViewCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "1 [ ]: \n2 [ ]: line1\nline2\n", stdout)
}

func TestViewCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.ViewCmd{}, svc, nil, true)

	assert.Equal(t, exitcode.Success, code)
	// The task listing is the result of view, not an informational message.
	assert.Equal(t, "No tasks available.\n", stdout, "empty message is printed even in quiet mode")
}

func TestViewCommand_OpenOnly(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", true)
	svc.AddTask(2, "Walk dog", false)

	cmd := &commands.ViewCmd{}
	cmd.SetOpenOnly(true)
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "2 [ ]: Walk dog\n", stdout)
	assert.Len(t, svc.Tasks(), 2, "filtering must not drop stored tasks")
}

func TestViewCommand_ListError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("unreadable")

	stdout, stderr, code := runCommand(t, &commands.ViewCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.StoreError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: unreadable\n", stderr)
}
