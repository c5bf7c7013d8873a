package skyq

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress reports an address that is not an IP literal.
	ErrInvalidAddress = errors.New("skyq: invalid address")
	// ErrDeviceUnreachable covers every transport, status and decoding
	// failure while talking to the box.
	ErrDeviceUnreachable = errors.New("skyq: device unreachable")
	// ErrInvalidLimit reports a negative page limit.
	ErrInvalidLimit = errors.New("skyq: invalid limit")
	// ErrInvalidBoundary reports a rollover hour outside 0..23.
	ErrInvalidBoundary = errors.New("skyq: invalid day boundary")
)

// DeviceError carries the context of a failed request. It always matches
// ErrDeviceUnreachable with errors.Is, and also matches the underlying
// cause when there is one.
type DeviceError struct {
	Op     string // "probe" or "fetch"
	Status int    // HTTP status when the device answered
	Err    error
}

func (e *DeviceError) Error() string {
	msg := fmt.Sprintf("%v: %s", ErrDeviceUnreachable, e.Op)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DeviceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDeviceUnreachable}
	}
	return []error{ErrDeviceUnreachable, e.Err}
}

func unreachable(op string, status int, err error) error {
	return &DeviceError{Op: op, Status: status, Err: err}
}
