// Package wipe implements the batch metadata removal pipeline: per
// file, clear filesystem-level attributes, strip embedded metadata
// through exiftool, then refresh the modification timestamp. Step
// failures are tolerated wherever the file can still come out clean.
package wipe

import "fmt"

// Status classifies how a step or file ended.
type Status string

const (
	// StatusOk means the action completed.
	StatusOk Status = "ok"
	// StatusIgnored means the action errored but the error does not
	// count. The reason records what happened.
	StatusIgnored Status = "ignored"
	// StatusFailed means the action errored and the failure counts.
	StatusFailed Status = "failed"
)

// Outcome is the explicit result of one sub-step or one whole file.
// Best-effort steps report Ignored instead of swallowing their errors,
// so ignored and failed stay distinguishable.
type Outcome struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Ok returns a successful outcome.
func Ok() Outcome {
	return Outcome{Status: StatusOk}
}

// Ignored returns a tolerated-error outcome with the given reason.
func Ignored(reason string) Outcome {
	return Outcome{Status: StatusIgnored, Reason: reason}
}

// Failed returns a counting-error outcome with the given reason.
func Failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}

// Failedf returns a counting-error outcome with a formatted reason.
func Failedf(format string, args ...any) Outcome {
	return Failed(fmt.Sprintf(format, args...))
}

// IsOk reports whether the outcome is a success.
func (o Outcome) IsOk() bool {
	return o.Status == StatusOk
}

// IsIgnored reports whether the outcome is a tolerated error.
func (o Outcome) IsIgnored() bool {
	return o.Status == StatusIgnored
}

// IsFailed reports whether the outcome is a counting error.
func (o Outcome) IsFailed() bool {
	return o.Status == StatusFailed
}

func (o Outcome) String() string {
	if o.Reason == "" {
		return string(o.Status)
	}
	return fmt.Sprintf("%s: %s", o.Status, o.Reason)
}
