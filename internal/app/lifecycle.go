package app

import (
	"fmt"

	"github.com/bft-labs/rockpapershock/internal/domain"
	"github.com/bft-labs/rockpapershock/internal/ports"
)

// State represents the lifecycle state of a session.
type State int

const (
	StateAwaitingConfig State = iota
	StatePlaying
	StateStopped
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateAwaitingConfig:
		return "AwaitingConfig"
	case StatePlaying:
		return "Playing"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// StateObserver is called when the session changes state.
type StateObserver interface {
	OnStateChange(previous, current State, reason string)
}

// lifecycle is the session's state machine. Sessions are single-threaded,
// so it carries no locking.
type lifecycle struct {
	state    State
	logger   ports.Logger
	observer StateObserver
}

func newLifecycle(logger ports.Logger, observer StateObserver) *lifecycle {
	return &lifecycle{
		state:    StateAwaitingConfig,
		logger:   logger,
		observer: observer,
	}
}

// transitionTo moves to newState, rejecting edges the session never takes.
func (l *lifecycle) transitionTo(newState State, reason string) error {
	oldState := l.state

	valid := false
	switch oldState {
	case StateAwaitingConfig:
		valid = newState == StatePlaying || newState == StateStopped
	case StatePlaying:
		valid = newState == StatePlaying || newState == StateStopped
	case StateStopped:
		// terminal
	}
	if !valid {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, oldState, newState)
	}

	l.state = newState

	if l.observer != nil {
		l.observer.OnStateChange(oldState, newState, reason)
	}

	l.logger.Debug("state transition",
		ports.String("from", oldState.String()),
		ports.String("to", newState.String()),
		ports.String("reason", reason),
	)
	return nil
}
