package domain

import "fmt"

// CommandType is the kind of action the remote device performs.
type CommandType int

const (
	Stimulate CommandType = iota
	Vibrate
)

// String returns the lower-case name used in console messages.
func (t CommandType) String() string {
	switch t {
	case Stimulate:
		return "shock"
	case Vibrate:
		return "vibrate"
	default:
		return "unknown"
	}
}

// APIName returns the capitalized name the control API expects.
func (t CommandType) APIName() string {
	switch t {
	case Stimulate:
		return "Shock"
	case Vibrate:
		return "Vibrate"
	default:
		return ""
	}
}

const (
	// MaxIntensity is the upper bound accepted by the control API.
	MaxIntensity = 100

	// DefaultDurationMs is how long every command runs.
	DefaultDurationMs = 1000
)

// DeviceCommand is a single instruction for the target device.
type DeviceCommand struct {
	TargetID   string
	Type       CommandType
	Intensity  int
	DurationMs int
}

// Validate checks the command against the control API's bounds.
func (c DeviceCommand) Validate() error {
	if c.TargetID == "" {
		return fmt.Errorf("%w: target id is empty", ErrInvalidCommand)
	}
	if c.Intensity < 0 || c.Intensity > MaxIntensity {
		return fmt.Errorf("%w: intensity %d out of range [0,%d]", ErrInvalidCommand, c.Intensity, MaxIntensity)
	}
	if c.DurationMs < 0 {
		return fmt.Errorf("%w: negative duration %d", ErrInvalidCommand, c.DurationMs)
	}
	return nil
}

// CommandFor returns the command triggered by an outcome.
// A tie triggers nothing and reports false.
func CommandFor(o Outcome, targetID string) (DeviceCommand, bool) {
	switch o {
	case HumanWins:
		return DeviceCommand{TargetID: targetID, Type: Vibrate, Intensity: 100, DurationMs: DefaultDurationMs}, true
	case DeviceWins:
		return DeviceCommand{TargetID: targetID, Type: Stimulate, Intensity: 50, DurationMs: DefaultDurationMs}, true
	default:
		return DeviceCommand{}, false
	}
}
