package wipe

import (
	"context"
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"

	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/exiftool"
	"github.com/mdwipe/mdwipe/pkg/platform"
)

// Processor runs the per-file removal sequence over a batch of paths.
type Processor struct {
	Platform platform.Platform
	Runner   runner.Runner
	Tool     *exiftool.Client

	// OS surface, injectable so every platform branch is testable
	// from any host.
	Stat        func(name string) (os.FileInfo, error)
	Remove      func(name string) error
	Chtimes     func(name string, atime, mtime time.Time) error
	ClearXattrs func(path string) error
	Username    func() (string, error)
	Now         func() time.Time
}

// NewProcessor returns a Processor backed by the real OS.
func NewProcessor(plat platform.Platform, r runner.Runner, tool *exiftool.Client) *Processor {
	return &Processor{
		Platform:    plat,
		Runner:      r,
		Tool:        tool,
		Stat:        os.Stat,
		Remove:      os.Remove,
		Chtimes:     os.Chtimes,
		ClearXattrs: clearNativeXattrs,
		Username:    currentUsername,
		Now:         time.Now,
	}
}

func currentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// StepResult is the recorded outcome of one sub-action.
type StepResult struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
}

// FileResult is the recorded outcome of one file.
type FileResult struct {
	Path       string       `json:"path"`
	Outcome    Outcome      `json:"outcome"`
	Steps      []StepResult `json:"steps,omitempty"`
	DurationMs float64      `json:"duration_ms"`
}

// Succeeded reports whether the file counts as a success.
func (r FileResult) Succeeded() bool {
	return r.Outcome.IsOk()
}

// ProcessFile runs the full removal sequence on one file. Paths that
// are missing or name a directory fail without running any step;
// letting exiftool loose on a directory would recurse into it.
func (p *Processor) ProcessFile(ctx context.Context, path string) FileResult {
	start := time.Now()
	res := FileResult{Path: path}

	info, err := p.Stat(path)
	switch {
	case err != nil:
		res.Outcome = Failed("file does not exist")
	case info.IsDir():
		res.Outcome = Failed("is a directory")
	default:
		res.Steps = p.runSteps(ctx, path)
		res.Outcome = fileOutcome(res.Steps)
	}

	res.DurationMs = logger.Duration(start)
	return res
}

// runSteps executes the sequence: attribute clearing, the exiftool
// strip, then the timestamp refresh. Only a strip failure stops the
// sequence; everything before it is tolerated and recorded.
func (p *Processor) runSteps(ctx context.Context, path string) []StepResult {
	results := make([]StepResult, 0, 8)

	record := func(s step) Outcome {
		out := s.run(ctx, path)
		results = append(results, StepResult{Name: s.name, Outcome: out})
		logStep(path, s.name, out)
		return out
	}

	for _, s := range p.preSteps() {
		record(s)
	}

	if out := record(step{StepStrip, p.stripMetadata}); out.IsFailed() {
		return results
	}

	record(step{StepTimestamp, p.refreshTimestamp})
	return results
}

// fileOutcome reduces the step outcomes to the file outcome. Ignored
// steps do not count against the file.
func fileOutcome(steps []StepResult) Outcome {
	for _, s := range steps {
		if s.Outcome.IsFailed() {
			return Failed(s.Outcome.Reason)
		}
	}
	return Ok()
}

func logStep(path, name string, out Outcome) {
	switch out.Status {
	case StatusIgnored:
		logger.Debug("step ignored",
			logger.Path(path), logger.Step(name), logger.Reason(out.Reason))
	case StatusFailed:
		logger.Warn("step failed",
			logger.Path(path), logger.Step(name), logger.Reason(out.Reason))
	default:
		logger.Debug("step completed",
			logger.Path(path), logger.Step(name), logger.Outcome(string(StatusOk)))
	}
}

// Run processes the batch in order, one file at a time. Every path is
// attempted; a failed file never stops the rest.
func (p *Processor) Run(ctx context.Context, paths []string) *Report {
	report := NewReport(uuid.NewString())
	log := logger.With(logger.KeyRunID, report.RunID)

	start := time.Now()
	log.Info("starting metadata removal", logger.FileCount(len(paths)))

	for _, path := range paths {
		res := p.ProcessFile(ctx, path)
		report.Add(res)

		if res.Succeeded() {
			log.Info("file cleaned",
				logger.Path(res.Path), logger.DurationMs(res.DurationMs))
		} else {
			log.Error("file failed",
				logger.Path(res.Path), logger.Reason(res.Outcome.Reason))
		}
	}

	report.DurationMs = logger.Duration(start)
	log.Info("metadata removal finished",
		logger.FileCount(report.Total()),
		logger.Succeeded(report.Succeeded),
		logger.FailedCount(report.Failed))
	return report
}
