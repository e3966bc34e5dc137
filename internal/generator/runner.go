// Package generator invokes the external color-scheme generator and
// normalizes its output.
package generator

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/x/ansi"
)

// ErrNotFound indicates the generator executable is not on PATH.
// It is checked before any invocation so a missing binary surfaces as a
// setup problem rather than a run failure.
var ErrNotFound = errors.New("generator executable not found")

// DefaultCommand is the generator binary used when none is configured.
const DefaultCommand = "flavours"

// Runner executes the generator synchronously and returns its combined
// stdout/stderr text.
type Runner struct {
	command string
}

// New creates a Runner for the given generator command.
// An empty command falls back to DefaultCommand.
func New(command string) *Runner {
	if command == "" {
		command = DefaultCommand
	}
	return &Runner{command: command}
}

// Command returns the generator command name.
func (r *Runner) Command() string {
	return r.command
}

// CheckInstalled verifies the generator binary exists on PATH.
func (r *Runner) CheckInstalled() error {
	if _, err := exec.LookPath(r.command); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, r.command)
	}
	return nil
}

// Run executes the generator with the given arguments and returns the
// combined stdout/stderr. A non-zero exit status is not an error: the
// generator reports failures as text on any exit code, so callers
// classify the output by its markers instead.
func (r *Runner) Run(args ...string) (string, error) {
	cmd := exec.Command(r.command, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), nil
		}
		return "", fmt.Errorf("run %s: %w", r.command, err)
	}
	return string(out), nil
}

// Clean strips terminal escape sequences from generator output.
// Cleaning is idempotent: cleaning already-clean text is a no-op.
func Clean(s string) string {
	return ansi.Strip(s)
}
