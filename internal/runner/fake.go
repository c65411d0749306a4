package runner

import (
	"context"
	"sync"
)

// Fake is a scripted Runner for tests. Every invocation is recorded;
// the optional Handler decides the response per command. Without a
// Handler every command succeeds with an empty Result.
type Fake struct {
	mu      sync.Mutex
	calls   []Command
	Handler func(cmd Command) (Result, error)
}

// Run records the command and returns the scripted response.
func (f *Fake) Run(_ context.Context, cmd Command) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.Handler != nil {
		return f.Handler(cmd)
	}
	return Result{}, nil
}

// RunInteractive records the command like Run. The scripted Handler
// error, if any, is returned; captured output is discarded.
func (f *Fake) RunInteractive(_ context.Context, cmd Command) error {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.Handler != nil {
		_, err := f.Handler(cmd)
		return err
	}
	return nil
}

// Calls returns a copy of every command run so far, in order.
func (f *Fake) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many commands have been run.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// CommandLines returns the rendered command line of every call, in
// order. Convenient for asserting on invocation sequences.
func (f *Fake) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.calls))
	for i, c := range f.calls {
		lines[i] = c.String()
	}
	return lines
}
