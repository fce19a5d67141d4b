package types

import "time"

// Outcome classifies a single scanner run.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomePartial      Outcome = "partial"
	OutcomeTimedOut     Outcome = "timed_out"
	OutcomeKilled       Outcome = "killed"
	OutcomeInterrupted  Outcome = "interrupted"
	OutcomeToolMissing  Outcome = "tool_missing"
	OutcomeNonZeroExit  Outcome = "non_zero_exit"
	OutcomeLaunchFailed Outcome = "launch_failed"
)

// HasOutput reports whether a run with this outcome produced output worth saving.
func (o Outcome) HasOutput() bool {
	return o == OutcomeSuccess || o == OutcomePartial
}

// ScanRecord describes a saved scan output file.
type ScanRecord struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	SavedAt time.Time `json:"saved_at"`
}
