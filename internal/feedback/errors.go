package feedback

import (
	"errors"
	"fmt"
)

// UnschedulableMatchError reports a match section whose branch timing cannot
// be resolved: the section sits in a context where its start may still move,
// or no resolved acquisition feeds its handle. This is a user-program error.
type UnschedulableMatchError struct {
	Section string
	Handle  string
	Reason  string
}

// Error implements the error interface.
func (e *UnschedulableMatchError) Error() string {
	return fmt.Sprintf("match section %q with handle %q cannot be scheduled: %s", e.Section, e.Handle, e.Reason)
}

// IsUnschedulableMatch reports whether err is an UnschedulableMatchError.
// Uses errors.As to handle wrapped errors.
func IsUnschedulableMatch(err error) bool {
	var ue *UnschedulableMatchError
	return errors.As(err, &ue)
}

// UnsupportedReadoutError reports a feedback configuration the latency model
// cannot serve, e.g. an acquisition on a legacy analyzer.
type UnsupportedReadoutError struct {
	Section string
	Signal  string
	Class   DeviceClass
}

// Error implements the error interface.
func (e *UnsupportedReadoutError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("feedback not supported for acquisition on signal %q (device class %q) in section %q", e.Signal, e.Class, e.Section)
	}
	return fmt.Sprintf("feedback not supported for device class %q", e.Class)
}

// IsUnsupportedReadout reports whether err is an UnsupportedReadoutError.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedReadout(err error) bool {
	var ue *UnsupportedReadoutError
	return errors.As(err, &ue)
}

// UnknownSignalError reports a signal id missing from the signal table.
type UnknownSignalError struct {
	Section string
	Signal  string
}

// Error implements the error interface.
func (e *UnknownSignalError) Error() string {
	return fmt.Sprintf("section %q references unknown signal %q", e.Section, e.Signal)
}
