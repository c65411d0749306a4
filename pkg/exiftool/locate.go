package exiftool

import (
	"context"
	"errors"
	"os"

	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/platform"
)

// ErrNotFound is returned when no exiftool binary exists on the system.
var ErrNotFound = errors.New("exiftool not found")

// Source records how a binary was found.
type Source string

const (
	// SourceWellKnown means the binary sat at one of the standard
	// install locations for the platform.
	SourceWellKnown Source = "well-known"
	// SourcePath means the binary answered a version probe through
	// the ambient PATH.
	SourcePath Source = "path"
	// SourceConfig means the path was pinned in the configuration.
	SourceConfig Source = "config"
)

// Tool is a located exiftool binary. For SourcePath the Path is the
// bare executable name; resolution is left to the host every time the
// tool runs.
type Tool struct {
	Path   string `json:"path"`
	Source Source `json:"source"`
}

// Client returns a Client driving this tool through r.
func (t *Tool) Client(r runner.Runner) *Client {
	return NewClient(t.Path, r)
}

// wellKnownPaths lists standard exiftool install locations per
// platform, most likely first.
var wellKnownPaths = map[platform.OS][]string{
	platform.Darwin: {
		"/opt/homebrew/bin/exiftool",
		"/usr/local/bin/exiftool",
		"/opt/local/bin/exiftool",
		"/usr/bin/exiftool",
	},
	platform.Linux: {
		"/home/linuxbrew/.linuxbrew/bin/exiftool",
		"/usr/local/bin/exiftool",
		"/usr/bin/exiftool",
		"/snap/bin/exiftool",
	},
	platform.Windows: {
		`C:\ProgramData\chocolatey\bin\exiftool.exe`,
		`C:\Windows\exiftool.exe`,
		`C:\Program Files\exiftool\exiftool.exe`,
	},
}

// Locator finds an exiftool binary by checking well-known install
// locations and then probing PATH. Stat is injectable for tests.
type Locator struct {
	Platform platform.Platform
	Runner   runner.Runner
	Stat     func(name string) (os.FileInfo, error)
}

// NewLocator creates a Locator for the given platform backed by the
// real filesystem.
func NewLocator(p platform.Platform, r runner.Runner) *Locator {
	return &Locator{
		Platform: p,
		Runner:   r,
		Stat:     os.Stat,
	}
}

// WellKnownPaths returns the standard install locations checked for the
// locator's platform, in probe order.
func (l *Locator) WellKnownPaths() []string {
	return wellKnownPaths[l.Platform.OS]
}

// Locate finds an exiftool binary. The first well-known location that
// exists wins. When none exist, a version probe of the bare executable
// name decides whether PATH can resolve it; on success the bare name is
// returned and the host resolves it on every later invocation. Nothing
// is cached; callers re-locate each run. Returns ErrNotFound when the
// tool is absent.
func (l *Locator) Locate(ctx context.Context) (*Tool, error) {
	for _, candidate := range l.WellKnownPaths() {
		info, err := l.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return &Tool{Path: candidate, Source: SourceWellKnown}, nil
	}

	name := "exiftool" + l.Platform.ExeSuffix()
	if _, err := NewClient(name, l.Runner).Version(ctx); err != nil {
		logger.Debug("exiftool not reachable through PATH", logger.Err(err))
		return nil, ErrNotFound
	}
	return &Tool{Path: name, Source: SourcePath}, nil
}
