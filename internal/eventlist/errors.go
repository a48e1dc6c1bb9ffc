package eventlist

import (
	"errors"
	"fmt"
)

// UnresolvedLengthError reports a node reaching the generator without a
// resolved length. This is an upstream scheduler defect and aborts
// generation immediately.
type UnresolvedLengthError struct {
	// Node describes the offending node, e.g. `section "readout"` or
	// `pulse on signal "q0/drive"`.
	Node string
}

// Error implements the error interface.
func (e *UnresolvedLengthError) Error() string {
	return fmt.Sprintf("%s has no resolved length", e.Node)
}

// IsUnresolvedLength reports whether err is an UnresolvedLengthError.
// Uses errors.As to handle wrapped errors.
func IsUnresolvedLength(err error) bool {
	var ue *UnresolvedLengthError
	return errors.As(err, &ue)
}

// AcquireGroupError reports an acquire group whose members disagree on
// handle, acquisition type or signal, or whose per-member payload slices are
// not parallel. This is an upstream defect and aborts generation.
type AcquireGroupError struct {
	Section string
	Reason  string
}

// Error implements the error interface.
func (e *AcquireGroupError) Error() string {
	return fmt.Sprintf("acquire group in section %q: %s", e.Section, e.Reason)
}

// IsAcquireGroupError reports whether err is an AcquireGroupError.
// Uses errors.As to handle wrapped errors.
func IsAcquireGroupError(err error) bool {
	var ae *AcquireGroupError
	return errors.As(err, &ae)
}
