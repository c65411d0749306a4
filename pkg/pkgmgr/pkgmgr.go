// Package pkgmgr detects the system package manager and drives guided
// installs of exiftool. Homebrew is used on macOS and Linux, Chocolatey
// on Windows.
package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
)

// ErrNoManager is returned when no supported package manager is
// installed on the system.
var ErrNoManager = errors.New("no supported package manager found")

// Kind identifies a supported package manager.
type Kind string

const (
	// Homebrew covers both macOS installs and Linuxbrew.
	Homebrew Kind = "brew"
	// Chocolatey is the Windows package manager.
	Chocolatey Kind = "choco"
)

// Manager is a detected package manager, ready to run installs.
type Manager struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path"`
}

// InstallCommand returns the structured invocation that installs pkg.
// Chocolatey needs -y to suppress its own confirmation prompt; the
// prompting already happened on our side.
func (m *Manager) InstallCommand(pkg string) runner.Command {
	switch m.Kind {
	case Chocolatey:
		return runner.Command{Name: m.Path, Args: []string{"install", pkg, "-y"}}
	default:
		return runner.Command{Name: m.Path, Args: []string{"install", pkg}}
	}
}

// ManualCommand returns the command line a user would type themselves,
// using the plain manager name so it works from any shell.
func (m *Manager) ManualCommand(pkg string) string {
	switch m.Kind {
	case Chocolatey:
		return fmt.Sprintf("choco install %s -y", pkg)
	default:
		return fmt.Sprintf("brew install %s", pkg)
	}
}

// Install runs the package manager install interactively so download
// and build progress stays visible. The result is a plain boolean;
// failure detail is logged, not propagated, because callers only
// branch on whether the tool became available.
func (m *Manager) Install(ctx context.Context, r runner.Runner, pkg string) bool {
	cmd := m.InstallCommand(pkg)
	logger.Info("running package manager install",
		logger.Manager(string(m.Kind)), logger.Command(cmd.String()))

	if err := r.RunInteractive(ctx, cmd); err != nil {
		logger.Debug("package manager install failed",
			logger.Manager(string(m.Kind)), logger.Err(err))
		return false
	}
	return true
}

// Version probes the manager with --version and returns the first
// output line, e.g. "Homebrew 4.4.2".
func (m *Manager) Version(ctx context.Context, r runner.Runner) (string, error) {
	res, err := r.Run(ctx, runner.Command{Name: m.Path, Args: []string{"--version"}})
	if err != nil {
		return "", fmt.Errorf("%s version probe failed: %w", m.Kind, err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(res.Stdout)), "\n")
	if line == "" {
		return "", fmt.Errorf("%s at %s returned an empty version", m.Kind, m.Path)
	}
	return strings.TrimSpace(line), nil
}
