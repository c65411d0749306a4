package wipe

import (
	"fmt"
)

// Verdict is the terminal classification of a batch run.
type Verdict string

const (
	VerdictAllSucceeded Verdict = "all_succeeded"
	VerdictPartial      Verdict = "partial"
	VerdictAllFailed    Verdict = "all_failed"
)

// Report accumulates the results of one batch run.
type Report struct {
	RunID      string       `json:"run_id"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	Results    []FileResult `json:"results"`
	DurationMs float64      `json:"duration_ms"`
}

// NewReport returns an empty report for the given run identifier.
func NewReport(runID string) *Report {
	return &Report{RunID: runID}
}

// Add records a file result and bumps the matching counter. Every
// file lands in exactly one counter, so Succeeded+Failed always
// equals the number of results.
func (r *Report) Add(res FileResult) {
	r.Results = append(r.Results, res)
	if res.Succeeded() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// Total returns the number of files processed.
func (r *Report) Total() int {
	return r.Succeeded + r.Failed
}

// Verdict reduces the counters to one of the three terminal outcomes.
// Pure function of the counters; an empty run reads as all failed.
func (r *Report) Verdict() Verdict {
	switch {
	case r.Failed == 0 && r.Succeeded > 0:
		return VerdictAllSucceeded
	case r.Succeeded > 0:
		return VerdictPartial
	default:
		return VerdictAllFailed
	}
}

// Summary renders the one-line human account of the run.
func (r *Report) Summary() string {
	switch r.Verdict() {
	case VerdictAllSucceeded:
		if r.Succeeded == 1 {
			return "Metadata removed from 1 file"
		}
		return fmt.Sprintf("Metadata removed from all %d files", r.Succeeded)
	case VerdictPartial:
		return fmt.Sprintf("Metadata removed from %d of %d files (%d failed)", r.Succeeded, r.Total(), r.Failed)
	default:
		return fmt.Sprintf("Failed to remove metadata from all %d files", r.Total())
	}
}

// FailedResults returns only the failed entries, for the detail list
// shown after a partial or failed run.
func (r *Report) FailedResults() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if !res.Succeeded() {
			out = append(out, res)
		}
	}
	return out
}
