package wipe

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
)

// Step names as they appear in results and logs.
const (
	StepXattrs       = "xattrs"
	StepResourceFork = "resource_fork"
	StepAttributes   = "attributes"
	StepUnblock      = "unblock"
	StepOwnership    = "ownership"
	StepStrip        = "strip"
	StepTimestamp    = "timestamp"
)

// namedAttrs are macOS attributes removed one by one after the
// clear-all pass. Some of these survive xattr -c on older systems.
var namedAttrs = []string{
	"com.apple.quarantine",
	"com.apple.metadata:kMDItemWhereFroms",
	"com.apple.metadata:kMDItemDownloadedDate",
	"com.apple.metadata:kMDItemFinderComment",
	"com.apple.lastuseddate#PS",
}

// touchStampLayout renders the touch -t argument ([[CC]YY]MMDDhhmm.ss).
const touchStampLayout = "200601021504.05"

// step is one sub-action of the per-file sequence.
type step struct {
	name string
	run  func(ctx context.Context, path string) Outcome
}

// preSteps returns the attribute-clearing steps for the platform, in
// order. They run before the exiftool strip and every error they hit
// is tolerated.
func (p *Processor) preSteps() []step {
	switch {
	case p.Platform.IsDarwin():
		return []step{
			{StepXattrs, p.clearDarwinXattrs},
			{StepResourceFork, p.removeResourceFork},
			{StepOwnership, p.chownToUser},
		}
	case p.Platform.IsWindows():
		return []step{
			{StepAttributes, p.clearWindowsAttributes},
			{StepUnblock, p.removeZoneIdentifier},
			{StepOwnership, p.takeOwnership},
		}
	default:
		return []step{
			{StepXattrs, p.clearLinuxXattrs},
			{StepOwnership, p.chownToUser},
		}
	}
}

// clearDarwinXattrs clears all extended attributes, then removes the
// stubborn named ones individually. The named removals are silent
// best-effort; the outcome reflects only the clear-all pass.
func (p *Processor) clearDarwinXattrs(ctx context.Context, path string) Outcome {
	out := Ok()
	if _, err := p.Runner.Run(ctx, runner.Command{Name: "xattr", Args: []string{"-c", path}}); err != nil {
		out = Ignored(err.Error())
	}

	for _, attr := range namedAttrs {
		if _, err := p.Runner.Run(ctx, runner.Command{Name: "xattr", Args: []string{"-d", attr, path}}); err != nil {
			logger.Debug("named attribute not removed",
				logger.Path(path), logger.Attr(attr), logger.Err(err))
		}
	}
	return out
}

// clearLinuxXattrs clears extended attributes natively; most distros
// do not ship xattr(1).
func (p *Processor) clearLinuxXattrs(_ context.Context, path string) Outcome {
	if err := p.ClearXattrs(path); err != nil {
		return Ignored(err.Error())
	}
	return Ok()
}

// removeResourceFork deletes the legacy macOS resource fork. A file
// without one is already clean.
func (p *Processor) removeResourceFork(_ context.Context, path string) Outcome {
	if err := p.Remove(path + "/..namedfork/rsrc"); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Ok()
		}
		return Ignored(err.Error())
	}
	return Ok()
}

// chownToUser reassigns the file to the invoking user. Permission
// failures are expected for files the user does not own.
func (p *Processor) chownToUser(ctx context.Context, path string) Outcome {
	username, err := p.Username()
	if err != nil {
		return Ignored("cannot determine current user")
	}

	if _, err := p.Runner.Run(ctx, runner.Command{Name: "chown", Args: []string{username, path}}); err != nil {
		return Ignored(err.Error())
	}
	return Ok()
}

// clearWindowsAttributes drops the archive, hidden, read-only, and
// system attribute bits.
func (p *Processor) clearWindowsAttributes(ctx context.Context, path string) Outcome {
	if _, err := p.Runner.Run(ctx, runner.Command{Name: "attrib", Args: []string{"-A", "-H", "-R", "-S", path}}); err != nil {
		return Ignored(err.Error())
	}
	return Ok()
}

// removeZoneIdentifier deletes the download marker NTFS keeps in an
// alternate data stream, addressable as a colon-suffixed path. Doing
// this natively avoids round-tripping the path through PowerShell.
func (p *Processor) removeZoneIdentifier(_ context.Context, path string) Outcome {
	if err := p.Remove(path + ":Zone.Identifier"); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Ok()
		}
		return Ignored(err.Error())
	}
	return Ok()
}

// takeOwnership reassigns the file to the invoking user. Typically
// needs elevation, so failure is expected.
func (p *Processor) takeOwnership(ctx context.Context, path string) Outcome {
	if _, err := p.Runner.Run(ctx, runner.Command{Name: "takeown", Args: []string{"/F", path}}); err != nil {
		return Ignored(err.Error())
	}
	return Ok()
}

// stripMetadata removes embedded metadata through exiftool. The
// comprehensive pass is tried first; formats it chokes on get one
// minimal retry. Both failing fails the file.
func (p *Processor) stripMetadata(ctx context.Context, path string) Outcome {
	err := p.Tool.StripAll(ctx, path)
	if err == nil {
		return Ok()
	}

	logger.Warn("comprehensive strip failed, trying minimal strip",
		logger.Path(path), logger.Err(err))

	if err2 := p.Tool.StripMinimal(ctx, path); err2 != nil {
		errs := &multierror.Error{ErrorFormat: compactErrors}
		errs = multierror.Append(errs, err, err2)
		return Failed(errs.Error())
	}
	return Ok()
}

// compactErrors joins accumulated errors on one line so reasons stay
// readable in logs and reports.
func compactErrors(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// refreshTimestamp forces the modification time to now. On Unix the
// stamped touch form is tried first, then a plain touch; on Windows
// the time is set natively. Failure never downgrades the file result.
func (p *Processor) refreshTimestamp(ctx context.Context, path string) Outcome {
	if p.Platform.IsWindows() {
		now := p.Now()
		if err := p.Chtimes(path, now, now); err != nil {
			return Ignored(err.Error())
		}
		return Ok()
	}

	stamp := p.Now().Format(touchStampLayout)
	if _, err := p.Runner.Run(ctx, runner.Command{Name: "touch", Args: []string{"-m", "-t", stamp, path}}); err != nil {
		logger.Debug("stamped touch failed, trying plain touch",
			logger.Path(path), logger.Err(err))

		if _, err2 := p.Runner.Run(ctx, runner.Command{Name: "touch", Args: []string{path}}); err2 != nil {
			return Ignored(err2.Error())
		}
	}
	return Ok()
}
