package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the game.
// They can be checked with errors.Is.
var (
	// ErrMissingConfig is returned when a required credential is absent.
	ErrMissingConfig = errors.New("rockpapershock: missing configuration")

	// ErrInvalidChoice is returned when input is outside the vocabulary.
	ErrInvalidChoice = errors.New("rockpapershock: invalid choice")

	// ErrInvalidCommand is returned when a device command is out of bounds.
	ErrInvalidCommand = errors.New("rockpapershock: invalid device command")

	// ErrDevice is matched by every DeviceError.
	ErrDevice = errors.New("rockpapershock: device command failed")

	// ErrInvalidTransition is returned by the session state machine.
	ErrInvalidTransition = errors.New("rockpapershock: invalid state transition")
)

// DeviceError describes a failed device command: either a non-200
// response (StatusCode and Body set) or a transport failure (Err set).
type DeviceError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("device command failed: %v", e.Err)
	}
	return fmt.Sprintf("device command failed: server returned %d: %s", e.StatusCode, e.Body)
}

// Unwrap exposes the transport error, if any.
func (e *DeviceError) Unwrap() error { return e.Err }

// Is makes every DeviceError match ErrDevice.
func (e *DeviceError) Is(target error) bool { return target == ErrDevice }
