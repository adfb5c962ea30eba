package domain

import "testing"

func TestResolve_Exhaustive(t *testing.T) {
	tests := []struct {
		human    Choice
		opponent Choice
		want     Outcome
	}{
		{Rock, Rock, Tie},
		{Rock, Paper, DeviceWins},
		{Rock, Scissors, HumanWins},
		{Paper, Rock, HumanWins},
		{Paper, Paper, Tie},
		{Paper, Scissors, DeviceWins},
		{Scissors, Rock, DeviceWins},
		{Scissors, Paper, HumanWins},
		{Scissors, Scissors, Tie},
	}

	for _, tt := range tests {
		got := Resolve(tt.human, tt.opponent)
		if got != tt.want {
			t.Errorf("Resolve(%s, %s) = %s, want %s", tt.human, tt.opponent, got, tt.want)
		}
	}
}

func TestResolve_Antisymmetric(t *testing.T) {
	for _, a := range Choices {
		for _, b := range Choices {
			ab, ba := Resolve(a, b), Resolve(b, a)
			if a == b {
				if ab != Tie {
					t.Errorf("Resolve(%s, %s) = %s, want tie", a, b, ab)
				}
				continue
			}
			if ab == ba || ab == Tie || ba == Tie {
				t.Errorf("Resolve(%s, %s) = %s and Resolve(%s, %s) = %s, want one win each way", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Tie, "tie"},
		{HumanWins, "human-wins"},
		{DeviceWins, "device-wins"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %s, want %s", tt.outcome, got, tt.want)
		}
	}
}
