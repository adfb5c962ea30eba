package domain

// Stats tallies a single session. It is never persisted.
type Stats struct {
	Rounds         int
	Wins           int
	Losses         int
	Ties           int
	DeviceFailures int
}

// Record counts one resolved round.
func (s *Stats) Record(o Outcome) {
	s.Rounds++
	switch o {
	case HumanWins:
		s.Wins++
	case DeviceWins:
		s.Losses++
	case Tie:
		s.Ties++
	}
}
