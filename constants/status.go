package constants

// RunStatus is the canonical status for a batch run, as written to the
// progress snapshot.
type RunStatus string

// Stable values (external pollers match on these exact strings).
const (
	RunStatusIdle      RunStatus = "idle"      // no run started yet
	RunStatusNoFiles   RunStatus = "no_files"  // input directory held no PDFs
	RunStatusRunning   RunStatus = "running"   // batch loop in progress
	RunStatusCompleted RunStatus = "completed" // full remaining set processed
	RunStatusStopped   RunStatus = "stopped"   // cooperative stop interrupted the run
)

// RunStatusError renders the terminal error status, message capped at 100 chars.
func RunStatusError(msg string) RunStatus {
	if len(msg) > 100 {
		msg = msg[:100]
	}
	return RunStatus("error: " + msg)
}

// Validation statuses for a single output row.
const (
	ValidationOK     = "OK"
	ValidationReview = "VERIFICA"
)

// ErrorCategory classifies a per-file processing failure.
type ErrorCategory string

const (
	ErrEmptyFile       ErrorCategory = "EMPTY_FILE"
	ErrTextUnreadable  ErrorCategory = "TEXT_UNREADABLE"
	ErrFieldExtraction ErrorCategory = "FIELD_EXTRACTION_FAILED"
	ErrOwnerNotFound   ErrorCategory = "OWNER_NOT_FOUND"
	ErrException       ErrorCategory = "EXCEPTION"
)

// Sentinel field values. NotDetected means "actively searched, not found";
// the empty string means the field was never present in the source layout.
const (
	NotDetected    = "Nedetectat"
	NoOwnerSection = "Fara proprietar identificat"
)
