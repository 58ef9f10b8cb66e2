package dex

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when there are no profiles to score at all.
// It is the only batch-fatal condition: per-profile failures are recorded
// as skips and never abort the run.
var ErrEmptyDataset = errors.New("no profiles to score")

// UnknownMoveError reports a profile referencing a move absent from the
// move catalog. The profile's evaluation is abandoned; the batch continues.
type UnknownMoveError struct {
	Profile string
	Move    string
}

func (e *UnknownMoveError) Error() string {
	return fmt.Sprintf("%s: move %q not in catalog", e.Profile, e.Move)
}

// MalformedProfileError reports a profile that fails structural validation
// (empty types, empty moves, and so on). Same skip policy as UnknownMoveError.
type MalformedProfileError struct {
	Profile string
	Reason  string
}

func (e *MalformedProfileError) Error() string {
	if e.Profile == "" {
		return "malformed profile: " + e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Profile, e.Reason)
}
