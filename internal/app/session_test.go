package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpAdapter "github.com/bft-labs/rockpapershock/internal/adapters/http"
	logAdapter "github.com/bft-labs/rockpapershock/internal/adapters/log"
	"github.com/bft-labs/rockpapershock/internal/domain"
	"github.com/bft-labs/rockpapershock/internal/ports"
)

var validCreds = domain.Credentials{APIToken: "tok", DeviceID: "dev-1"}

// mockDevice records every command and returns err for each.
type mockDevice struct {
	commands []domain.DeviceCommand
	err      error
}

func (m *mockDevice) Send(ctx context.Context, cmd domain.DeviceCommand, creds domain.Credentials) error {
	m.commands = append(m.commands, cmd)
	return m.err
}

// scriptedOpponent plays the given choices in order, repeating the last.
func scriptedOpponent(choices ...domain.Choice) ports.Opponent {
	i := 0
	return ports.OpponentFunc(func() domain.Choice {
		c := choices[i]
		if i < len(choices)-1 {
			i++
		}
		return c
	})
}

func newTestSession(creds domain.Credentials, device ports.DeviceController, opponent ports.Opponent, input string) (*Session, *bytes.Buffer, *mockObserver) {
	var out bytes.Buffer
	obs := &mockObserver{}
	s := NewSession(SessionConfig{
		Credentials: creds,
		Device:      device,
		Logger:      mockLogger{},
		Opponent:    opponent,
		Observer:    obs,
		In:          strings.NewReader(input),
		Out:         &out,
	})
	return s, &out, obs
}

func TestSession_WinSendsVibrate(t *testing.T) {
	dev := &mockDevice{}
	s, out, _ := newTestSession(validCreds, dev, scriptedOpponent(domain.Scissors), "rock\nno\n")

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if len(dev.commands) != 1 {
		t.Fatalf("device got %d commands, want 1", len(dev.commands))
	}
	want := domain.DeviceCommand{TargetID: "dev-1", Type: domain.Vibrate, Intensity: 100, DurationMs: 1000}
	if dev.commands[0] != want {
		t.Errorf("command = %+v, want %+v", dev.commands[0], want)
	}
	if stats.Wins != 1 || stats.Rounds != 1 {
		t.Errorf("stats = %+v, want one win", stats)
	}
	for _, line := range []string{"You chose: rock", "Computer chose: scissors", "You win!", "Vibrate sent successfully.", "Thanks for playing!"} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("output missing %q:\n%s", line, out.String())
		}
	}
	if s.State() != StateStopped {
		t.Errorf("state = %s, want Stopped", s.State())
	}
}

func TestSession_LossSendsShock(t *testing.T) {
	dev := &mockDevice{}
	s, out, _ := newTestSession(validCreds, dev, scriptedOpponent(domain.Paper), "rock\nno\n")

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(dev.commands) != 1 {
		t.Fatalf("device got %d commands, want 1", len(dev.commands))
	}
	want := domain.DeviceCommand{TargetID: "dev-1", Type: domain.Stimulate, Intensity: 50, DurationMs: 1000}
	if dev.commands[0] != want {
		t.Errorf("command = %+v, want %+v", dev.commands[0], want)
	}
	if !strings.Contains(out.String(), "You lose!") {
		t.Errorf("output missing loss line:\n%s", out.String())
	}
}

func TestSession_TieSendsNothing(t *testing.T) {
	dev := &mockDevice{}
	s, out, _ := newTestSession(validCreds, dev, scriptedOpponent(domain.Paper), "paper\nno\n")

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(dev.commands) != 0 {
		t.Errorf("device got %d commands on tie, want 0", len(dev.commands))
	}
	if stats.Ties != 1 {
		t.Errorf("stats = %+v, want one tie", stats)
	}
	if !strings.Contains(out.String(), "It's a tie!") {
		t.Errorf("output missing tie line:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Sending") {
		t.Errorf("tie should not announce a command:\n%s", out.String())
	}
}

func TestSession_InvalidChoiceReprompts(t *testing.T) {
	dev := &mockDevice{}
	s, out, _ := newTestSession(validCreds, dev, scriptedOpponent(domain.Rock), "foo\nROCK\nno\n")

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if n := strings.Count(out.String(), "Invalid choice."); n != 1 {
		t.Errorf("got %d re-prompts, want 1", n)
	}
	if n := strings.Count(out.String(), "Enter your choice"); n != 2 {
		t.Errorf("got %d choice prompts, want 2", n)
	}
	if !strings.Contains(out.String(), "You chose: rock") {
		t.Errorf("output missing resolved choice:\n%s", out.String())
	}
}

func TestSession_MissingConfig(t *testing.T) {
	tests := []struct {
		name  string
		creds domain.Credentials
	}{
		{"missing token", domain.Credentials{DeviceID: "dev-1"}},
		{"missing device id", domain.Credentials{APIToken: "tok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &mockDevice{}
			s, out, obs := newTestSession(tt.creds, dev, scriptedOpponent(domain.Rock), "rock\nyes\n")

			stats, err := s.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			if stats.Rounds != 0 {
				t.Errorf("rounds = %d, want 0", stats.Rounds)
			}
			if len(dev.commands) != 0 {
				t.Errorf("device got %d commands, want 0", len(dev.commands))
			}
			if !strings.Contains(out.String(), "not found") {
				t.Errorf("output missing configuration error:\n%s", out.String())
			}
			if strings.Contains(out.String(), "Enter your choice") {
				t.Errorf("no round should be prompted:\n%s", out.String())
			}
			if len(obs.events) != 1 || obs.events[0].previous != StateAwaitingConfig || obs.events[0].current != StateStopped {
				t.Errorf("transitions = %+v, want AwaitingConfig -> Stopped", obs.events)
			}
		})
	}
}

func TestSession_DeviceFailureContinues(t *testing.T) {
	dev := &mockDevice{err: &domain.DeviceError{StatusCode: 500, Body: "upstream down"}}
	s, out, _ := newTestSession(validCreds, dev, scriptedOpponent(domain.Scissors, domain.Rock), "rock\nyes\nscissors\nno\n")

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if stats.Rounds != 2 {
		t.Errorf("rounds = %d, want 2", stats.Rounds)
	}
	if stats.DeviceFailures != 2 {
		t.Errorf("device failures = %d, want 2", stats.DeviceFailures)
	}

	text := out.String()
	win := strings.Index(text, "You win!")
	fail := strings.Index(text, "Failed to send vibrate. Response: upstream down")
	if win < 0 || fail < 0 || fail < win {
		t.Errorf("want win line followed by failure line:\n%s", text)
	}
	if !strings.Contains(text, "You lose!") {
		t.Errorf("second round did not run:\n%s", text)
	}
}

func TestSession_TransportFailureMessage(t *testing.T) {
	dev := &mockDevice{err: &domain.DeviceError{Err: errors.New("dial tcp: refused")}}
	s, out, _ := newTestSession(validCreds, dev, scriptedOpponent(domain.Paper), "rock\nno\n")

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Failed to send shock. Error:") {
		t.Errorf("output missing transport failure:\n%s", out.String())
	}
}

func TestSession_PlayAgainAnswers(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRounds int
	}{
		{"yes continues", "rock\nyes\nrock\nno\n", 2},
		{"YES continues", "rock\n YES \nrock\nno\n", 2},
		{"y stops", "rock\ny\nrock\n", 1},
		{"empty stops", "rock\n\nrock\n", 1},
		{"eof at play again stops", "rock\n", 1},
		{"eof at choice stops", "rock\nyes\n", 1},
		{"final line without newline", "rock\nyes\npaper", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out, _ := newTestSession(validCreds, &mockDevice{}, scriptedOpponent(domain.Rock), tt.input)

			stats, err := s.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			if stats.Rounds != tt.wantRounds {
				t.Errorf("rounds = %d, want %d", stats.Rounds, tt.wantRounds)
			}
			if s.State() != StateStopped {
				t.Errorf("state = %s, want Stopped", s.State())
			}
			if !strings.HasSuffix(out.String(), "Thanks for playing!\n") {
				t.Errorf("output should end with closing message:\n%s", out.String())
			}
		})
	}
}

func TestSession_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dev := &mockDevice{}
	s, _, _ := newTestSession(validCreds, dev, scriptedOpponent(domain.Rock), "rock\nyes\n")
	stats, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if stats.Rounds != 0 {
		t.Errorf("rounds = %d, want 0", stats.Rounds)
	}
}

func TestSession_RandomOpponentByDefault(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(SessionConfig{
		Credentials: validCreds,
		Device:      &mockDevice{},
		Logger:      mockLogger{},
		In:          strings.NewReader("rock\nno\n"),
		Out:         &out,
	})
	if s.ID() == "" {
		t.Error("session id should be set")
	}
	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if stats.Rounds != 1 {
		t.Errorf("rounds = %d, want 1", stats.Rounds)
	}
}

// End to end against a stub control endpoint.
func TestSession_EndToEnd_Stubbed(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantMessage string
	}{
		{"success", http.StatusOK, "Vibrate sent successfully."},
		{"server error", http.StatusInternalServerError, "Failed to send vibrate. Response: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				if tt.status != http.StatusOK {
					_, _ = w.Write([]byte("nope"))
				}
			}))
			defer ts.Close()

			ctrl := httpAdapter.NewController(ts.Client(), logAdapter.NewNoopLogger(), ts.URL, "")
			s, out, _ := newTestSession(validCreds, ctrl, scriptedOpponent(domain.Scissors, domain.Paper), "rock\nyes\npaper\nno\n")

			stats, err := s.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			if calls != 1 {
				t.Errorf("endpoint called %d times, want 1 (second round is a tie)", calls)
			}
			if stats.Rounds != 2 || stats.Ties != 1 {
				t.Errorf("stats = %+v", stats)
			}
			if !strings.Contains(out.String(), tt.wantMessage) {
				t.Errorf("output missing %q:\n%s", tt.wantMessage, out.String())
			}
		})
	}
}
