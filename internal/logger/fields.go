package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so runs can be
// grepped and aggregated by field.
const (
	// ========================================================================
	// Batch Run
	// ========================================================================
	KeyRunID     = "run_id"     // Identifier correlating all records of one run
	KeyFileCount = "file_count" // Number of files in the batch
	KeySucceeded = "succeeded"  // Files fully cleaned
	KeyFailed    = "failed"     // Files that failed at least one required step
	KeyIgnored   = "ignored"    // Steps whose failure was tolerated during a run

	// ========================================================================
	// Per-File Processing
	// ========================================================================
	KeyPath       = "path"        // Full path of the file being processed
	KeyStep       = "step"        // Processing step: xattrs, resource_fork, ownership, strip, timestamp
	KeyOutcome    = "outcome"     // Step or file outcome: ok, ignored, failed
	KeyReason     = "reason"      // Why a file was ignored or a step failed
	KeyAttr       = "attr"        // Extended attribute name being removed
	KeyDurationMs = "duration_ms" // Step or file duration in milliseconds

	// ========================================================================
	// External Tools
	// ========================================================================
	KeyTool     = "tool"      // External tool name: exiftool, touch, chown, etc.
	KeyToolPath = "tool_path" // Resolved absolute path of the tool
	KeyVersion  = "version"   // Tool version string
	KeyManager  = "manager"   // Package manager: brew, choco
	KeyCommand  = "command"   // Full command line that was run
	KeyExitCode = "exit_code" // Process exit code

	// ========================================================================
	// Watch Mode
	// ========================================================================
	KeyDir   = "dir"   // Directory being watched
	KeyEvent = "event" // Filesystem event type: create, write, rename

	// ========================================================================
	// Errors
	// ========================================================================
	KeyError = "error" // Error message
)

// ============================================================================
// Field constructors for type safety
// ============================================================================

// RunID returns a slog.Attr correlating records of one batch run
func RunID(id string) slog.Attr {
	return slog.String(KeyRunID, id)
}

// FileCount returns a slog.Attr for the number of files in a batch
func FileCount(n int) slog.Attr {
	return slog.Int(KeyFileCount, n)
}

// Succeeded returns a slog.Attr for the count of fully cleaned files
func Succeeded(n int) slog.Attr {
	return slog.Int(KeySucceeded, n)
}

// FailedCount returns a slog.Attr for the count of failed files
func FailedCount(n int) slog.Attr {
	return slog.Int(KeyFailed, n)
}

// Path returns a slog.Attr for the file being processed
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Step returns a slog.Attr for the current processing step
func Step(name string) slog.Attr {
	return slog.String(KeyStep, name)
}

// Outcome returns a slog.Attr for a step or file outcome
func Outcome(o string) slog.Attr {
	return slog.String(KeyOutcome, o)
}

// Reason returns a slog.Attr explaining an ignored or failed outcome
func Reason(r string) slog.Attr {
	return slog.String(KeyReason, r)
}

// Attr returns a slog.Attr for an extended attribute name
func Attr(name string) slog.Attr {
	return slog.String(KeyAttr, name)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Tool returns a slog.Attr for an external tool name
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// ToolPath returns a slog.Attr for a resolved tool path
func ToolPath(p string) slog.Attr {
	return slog.String(KeyToolPath, p)
}

// Version returns a slog.Attr for a tool version string
func Version(v string) slog.Attr {
	return slog.String(KeyVersion, v)
}

// Manager returns a slog.Attr for a package manager name
func Manager(name string) slog.Attr {
	return slog.String(KeyManager, name)
}

// Command returns a slog.Attr for a full command line
func Command(line string) slog.Attr {
	return slog.String(KeyCommand, line)
}

// ExitCode returns a slog.Attr for a process exit code
func ExitCode(code int) slog.Attr {
	return slog.Int(KeyExitCode, code)
}

// Dir returns a slog.Attr for a watched directory
func Dir(d string) slog.Attr {
	return slog.String(KeyDir, d)
}

// Event returns a slog.Attr for a filesystem event type
func Event(e string) slog.Attr {
	return slog.String(KeyEvent, e)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
