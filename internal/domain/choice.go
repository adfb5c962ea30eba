package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Choice is a hand played in a round.
type Choice int

const (
	Rock Choice = iota
	Paper
	Scissors
)

// Choices lists the vocabulary in prompt order.
var Choices = [...]Choice{Rock, Paper, Scissors}

// String returns the vocabulary word for the choice.
func (c Choice) String() string {
	switch c {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "unknown"
	}
}

// Valid reports whether c is part of the vocabulary.
func (c Choice) Valid() bool {
	return c >= Rock && c <= Scissors
}

// ParseChoice matches text against the vocabulary, ignoring case and
// surrounding whitespace. Anything else is rejected with ErrInvalidChoice.
func ParseChoice(text string) (Choice, error) {
	word := strings.ToLower(strings.TrimSpace(text))
	for _, c := range Choices {
		if word == c.String() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, text)
}

// RandomChoice draws uniformly from the vocabulary.
// A nil r uses the global source, seeded by the runtime.
func RandomChoice(r *rand.Rand) Choice {
	if r == nil {
		return Choices[rand.IntN(len(Choices))]
	}
	return Choices[r.IntN(len(Choices))]
}
