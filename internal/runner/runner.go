// Package runner executes external commands with structured argument
// lists. Arguments are always passed positionally to the process; the
// command line is never handed to a shell, so file paths containing
// quotes, spaces, or metacharacters cannot change what gets executed.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external command invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command for logs and error messages. Arguments
// containing whitespace are quoted for readability only; the rendered
// string is never executed.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		if strings.ContainsAny(arg, " \t\"'") {
			parts = append(parts, fmt.Sprintf("%q", arg))
		} else {
			parts = append(parts, arg)
		}
	}
	return strings.Join(parts, " ")
}

// Result holds the captured output of a finished command.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner runs external commands and waits for them to finish.
type Runner interface {
	// Run executes the command with captured output.
	Run(ctx context.Context, cmd Command) (Result, error)
	// RunInteractive executes the command wired to the parent's
	// stdin/stdout/stderr. Used for long package manager installs
	// where the user should see live progress.
	RunInteractive(ctx context.Context, cmd Command) error
}

// System is the Runner backed by os/exec.
type System struct{}

// Run executes the command and waits for completion. The returned error
// is non-nil when the command could not be started or exited non-zero;
// the Result carries whatever output was captured either way.
func (System) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, fmt.Errorf("%s exited with status %d: %s", cmd.Name, res.ExitCode, firstLine(stderr.Bytes()))
		}
		res.ExitCode = -1
		return res, fmt.Errorf("failed to run %s: %w", cmd.Name, err)
	}

	return res, nil
}

// RunInteractive executes the command attached to the parent's stdio
// streams so the user sees progress as it happens.
func (System) RunInteractive(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}

	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with status %d", cmd.Name, exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", cmd.Name, err)
	}
	return nil
}

// firstLine extracts the first non-empty line of command output for
// compact error messages.
func firstLine(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "(no output)"
}
