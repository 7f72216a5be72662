package mwt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding is returned when a string is not valid UTF-8 and so
	// has no byte encoding other implementations would agree on.
	ErrInvalidEncoding = errors.New("invalid input encoding")

	// ErrPolicyEvaluation is returned when a policy cannot produce a valid
	// decision for the given context.
	ErrPolicyEvaluation = errors.New("policy evaluation failed")

	// ErrRecordFailed matches every *RecordError.
	ErrRecordFailed = errors.New("record failed")

	// ErrNilRecorder is returned by NewExplorer when no recorder is supplied.
	ErrNilRecorder = errors.New("nil recorder")
)

// RecordError describes a decision whose record could not be delivered to
// the Recorder. The action was still returned to the caller.
type RecordError struct {
	UniqueKey   string
	Action      int
	Probability float64
	Err         error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record decision for %q (action=%d, p=%v): %v", e.UniqueKey, e.Action, e.Probability, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Is reports ErrRecordFailed as a match so callers can test with errors.Is.
func (e *RecordError) Is(target error) bool {
	return target == ErrRecordFailed
}
