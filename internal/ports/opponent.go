package ports

import "github.com/bft-labs/rockpapershock/internal/domain"

// Opponent chooses the device's hand for a round.
type Opponent interface {
	Choose() domain.Choice
}

// OpponentFunc adapts a plain function to Opponent.
type OpponentFunc func() domain.Choice

// Choose calls f.
func (f OpponentFunc) Choose() domain.Choice { return f() }
