package domain

import "fmt"

// Warning is an operational notice raised during a trial that is not
// fatal to the run. The engine collects a Warning (spec.md §7), and also
// logs it through the injected *log.Logger, for its own notices: a
// missing prior-year MAGI for the marketplace premium, a missing Tax
// Collection bucket, a missing Roth conversion bucket. Notices raised
// inside buckets, policies, scheduled flows and the refill policy (an
// underfunded withdrawal, a skipped source) are only logged and are not
// collected as Warnings.
type Warning struct {
	Month   Month
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Month, w.Message)
}

// TrialError wraps a fatal, trial-aborting failure (missing MAGI history
// needed for the IRMAA look-back) with the index of the trial that
// failed; the engine does not validate its Config, so a malformed
// configuration does not produce one. Follows the teacher's
// fmt.Errorf("failed to ...: %w", err) wrapping idiom.
type TrialError struct {
	TrialIndex int
	Err        error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("trial %d: %v", e.TrialIndex, e.Err)
}

func (e *TrialError) Unwrap() error {
	return e.Err
}
