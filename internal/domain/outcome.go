package domain

// Outcome is the result of a round from the human's point of view.
type Outcome int

const (
	Tie Outcome = iota
	HumanWins
	DeviceWins
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Tie:
		return "tie"
	case HumanWins:
		return "human-wins"
	case DeviceWins:
		return "device-wins"
	default:
		return "unknown"
	}
}

// beats maps each choice to the one it defeats.
var beats = map[Choice]Choice{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// Resolve compares the human's choice against the opponent's.
func Resolve(human, opponent Choice) Outcome {
	switch {
	case human == opponent:
		return Tie
	case beats[human] == opponent:
		return HumanWins
	default:
		return DeviceWins
	}
}
