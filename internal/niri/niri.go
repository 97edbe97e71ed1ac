// Package niri submits control commands to the niri compositor through its
// msg command line tool. This is the fallback channel for actions the
// wlr-foreign-toplevel protocol cannot express, notably moving a window to a
// specific dynamic workspace index. Commands are fire-and-forget: niri gives
// no delivery confirmation and none is expected.
package niri

import (
	"fmt"
	"os/exec"
	"strconv"
)

// DefaultCommand is the niri binary; running inside the session it finds its
// socket via NIRI_SOCKET on its own.
const DefaultCommand = "niri"

// ActionArgs builds the argv tail for `niri msg action <action> [arg]`.
// Arguments are passed as an argv slice, never through a shell.
func ActionArgs(action, arg string) []string {
	args := []string{"msg", "action", action}
	if arg != "" {
		args = append(args, arg)
	}
	return args
}

// WorkspaceArg translates a 0-based workspace index into the 1-based string
// argument niri expects.
func WorkspaceArg(index int) string {
	return strconv.Itoa(index + 1)
}

// Runner launches niri commands detached from the daemon.
type Runner struct {
	command string
}

// NewRunner creates a runner for the given niri command, falling back to
// DefaultCommand when empty.
func NewRunner(command string) *Runner {
	if command == "" {
		command = DefaultCommand
	}
	return &Runner{command: command}
}

// Action runs `niri msg action <action> [arg]` asynchronously and detached.
// Only a failure to launch is reported; once started, the command's outcome
// is unobserved.
func (r *Runner) Action(action, arg string) error {
	args := ActionArgs(action, arg)
	cmd := exec.Command(r.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s %v: %w", r.command, args, err)
	}
	// Detach: the daemon never waits on compositor commands.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("release %s %v: %w", r.command, args, err)
	}
	return nil
}
