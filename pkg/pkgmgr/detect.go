package pkgmgr

import (
	"context"
	"os"
	"os/exec"

	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/platform"
)

// managerPaths lists standard install locations per platform, most
// likely first. Only one manager kind exists per platform.
var managerPaths = map[platform.OS]struct {
	kind  Kind
	paths []string
}{
	platform.Darwin: {
		kind: Homebrew,
		paths: []string{
			"/opt/homebrew/bin/brew",
			"/usr/local/bin/brew",
		},
	},
	platform.Linux: {
		kind: Homebrew,
		paths: []string{
			"/home/linuxbrew/.linuxbrew/bin/brew",
			"/usr/local/bin/brew",
		},
	},
	platform.Windows: {
		kind: Chocolatey,
		paths: []string{
			`C:\ProgramData\chocolatey\bin\choco.exe`,
		},
	},
}

// Detector finds the platform's package manager. Stat and LookPath are
// injectable for tests.
type Detector struct {
	Platform platform.Platform
	Runner   runner.Runner
	Stat     func(name string) (os.FileInfo, error)
	LookPath func(file string) (string, error)
}

// NewDetector creates a Detector backed by the real filesystem and PATH.
func NewDetector(p platform.Platform, r runner.Runner) *Detector {
	return &Detector{
		Platform: p,
		Runner:   r,
		Stat:     os.Stat,
		LookPath: exec.LookPath,
	}
}

// Detect finds the package manager for the platform, probing well-known
// locations first and PATH second. A candidate that exists but fails
// the version probe is treated as broken and skipped. Returns
// ErrNoManager when nothing usable exists.
func (d *Detector) Detect(ctx context.Context) (*Manager, error) {
	entry, ok := managerPaths[d.Platform.OS]
	if !ok {
		return nil, ErrNoManager
	}

	for _, candidate := range entry.paths {
		info, err := d.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		mgr := &Manager{Kind: entry.kind, Path: candidate}
		if _, err := mgr.Version(ctx, d.Runner); err != nil {
			logger.Debug("skipping unusable package manager candidate",
				logger.Manager(string(entry.kind)), logger.ToolPath(candidate), logger.Err(err))
			continue
		}
		return mgr, nil
	}

	name := string(entry.kind) + d.Platform.ExeSuffix()
	if resolved, err := d.LookPath(name); err == nil {
		mgr := &Manager{Kind: entry.kind, Path: resolved}
		if _, err := mgr.Version(ctx, d.Runner); err != nil {
			logger.Debug("package manager on PATH is not usable",
				logger.Manager(string(entry.kind)), logger.ToolPath(resolved), logger.Err(err))
			return nil, ErrNoManager
		}
		return mgr, nil
	}

	return nil, ErrNoManager
}
