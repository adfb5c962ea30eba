// Package app runs the interactive game session.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/bft-labs/rockpapershock/internal/domain"
	"github.com/bft-labs/rockpapershock/internal/ports"
)

const affirmative = "yes"

// SessionConfig wires a Session to its collaborators.
type SessionConfig struct {
	Credentials domain.Credentials
	Device      ports.DeviceController
	Logger      ports.Logger

	// Opponent defaults to a uniform random draw.
	Opponent ports.Opponent

	// Observer is optional.
	Observer StateObserver

	In  io.Reader
	Out io.Writer
}

// Session plays rounds until the player stops, input ends or the
// credentials turn out to be incomplete.
type Session struct {
	id       string
	creds    domain.Credentials
	device   ports.DeviceController
	opponent ports.Opponent
	logger   ports.Logger
	in       *bufio.Reader
	out      io.Writer

	lc    *lifecycle
	stats domain.Stats
}

// NewSession creates a session in the AwaitingConfig state.
func NewSession(cfg SessionConfig) *Session {
	opponent := cfg.Opponent
	if opponent == nil {
		opponent = ports.OpponentFunc(func() domain.Choice { return domain.RandomChoice(nil) })
	}
	return &Session{
		id:       uuid.NewString(),
		creds:    cfg.Credentials,
		device:   cfg.Device,
		opponent: opponent,
		logger:   cfg.Logger,
		in:       bufio.NewReader(cfg.In),
		out:      cfg.Out,
		lc:       newLifecycle(cfg.Logger, cfg.Observer),
	}
}

// ID returns the session identifier used in log fields.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.lc.state }

// Stats returns the tally so far.
func (s *Session) Stats() domain.Stats { return s.stats }

// Run drives the session to the Stopped state. Missing configuration and
// device failures are reported on the console and never returned; only
// console I/O failures are.
func (s *Session) Run(ctx context.Context) (domain.Stats, error) {
	if err := s.creds.Validate(); err != nil {
		s.logger.Error("configuration incomplete", ports.String("session", s.id), ports.Err(err))
		s.printf("API key or Shock ID not found (%v). Please set up your .env file.\n", err)
		return s.stats, s.stop("missing configuration")
	}

	if err := s.lc.transitionTo(StatePlaying, "credentials loaded"); err != nil {
		return s.stats, err
	}
	s.logger.Info("session started", ports.String("session", s.id), ports.String("device", s.creds.DeviceID))

	s.printf("Welcome to Rock Paper Shock!\n")
	s.printf("Win: You get a vibration. Lose: You get a shock. Tie: Nothing happens.\n")

	for {
		if err := ctx.Err(); err != nil {
			return s.stats, s.stop("interrupted")
		}

		if err := s.playRound(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return s.stats, s.stop("end of input")
			}
			_ = s.stop("console error")
			return s.stats, err
		}

		again, err := s.askPlayAgain()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return s.stats, s.stop("end of input")
			}
			_ = s.stop("console error")
			return s.stats, err
		}
		if !again {
			return s.stats, s.stop("player quit")
		}
		if err := s.lc.transitionTo(StatePlaying, "next round"); err != nil {
			return s.stats, err
		}
	}
}

func (s *Session) playRound(ctx context.Context) error {
	human, err := s.readHumanChoice()
	if err != nil {
		return err
	}
	opponent := s.opponent.Choose()

	s.printf("You chose: %s\n", human)
	s.printf("Computer chose: %s\n", opponent)

	outcome := domain.Resolve(human, opponent)
	s.stats.Record(outcome)

	s.logger.Debug("round resolved",
		ports.String("session", s.id),
		ports.Int("round", s.stats.Rounds),
		ports.String("human", human.String()),
		ports.String("opponent", opponent.String()),
		ports.String("outcome", outcome.String()),
	)

	switch outcome {
	case domain.Tie:
		s.printf("It's a tie!\n")
	case domain.HumanWins:
		s.printf("You win!\n")
	case domain.DeviceWins:
		s.printf("You lose!\n")
	}

	cmd, ok := domain.CommandFor(outcome, s.creds.DeviceID)
	if !ok {
		return nil
	}
	s.sendCommand(ctx, cmd)
	return nil
}

// readHumanChoice prompts until ParseChoice accepts a line.
func (s *Session) readHumanChoice() (domain.Choice, error) {
	for {
		s.printf("Enter your choice (rock/paper/scissors): ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		choice, err := domain.ParseChoice(line)
		if err == nil {
			return choice, nil
		}
		s.logger.Debug("rejected choice", ports.String("session", s.id), ports.Err(err))
		s.printf("Invalid choice. Please enter rock, paper, or scissors.\n")
	}
}

func (s *Session) sendCommand(ctx context.Context, cmd domain.DeviceCommand) {
	s.printf("Sending %s with intensity: %d and duration: %d milliseconds\n", cmd.Type, cmd.Intensity, cmd.DurationMs)

	err := s.device.Send(ctx, cmd, s.creds)
	if err == nil {
		s.printf("%s sent successfully.\n", cmd.Type.APIName())
		return
	}

	s.stats.DeviceFailures++
	s.logger.Warn("device command failed",
		ports.String("session", s.id),
		ports.Int("round", s.stats.Rounds),
		ports.String("type", cmd.Type.APIName()),
		ports.Err(err),
	)

	var de *domain.DeviceError
	if errors.As(err, &de) && de.Err == nil {
		s.printf("Failed to send %s. Response: %s\n", cmd.Type, de.Body)
		return
	}
	s.printf("Failed to send %s. Error: %v\n", cmd.Type, err)
}

func (s *Session) askPlayAgain() (bool, error) {
	s.printf("Do you want to play again? (yes/no): ")
	line, err := s.readLine()
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(line)) == affirmative, nil
}

// readLine returns the next line without its terminator. A final line
// lacking a newline is still returned; io.EOF only follows it.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) stop(reason string) error {
	if err := s.lc.transitionTo(StateStopped, reason); err != nil {
		return err
	}
	if s.stats.Rounds > 0 {
		s.printf("\nRounds: %d  Wins: %d  Losses: %d  Ties: %d\n",
			s.stats.Rounds, s.stats.Wins, s.stats.Losses, s.stats.Ties)
	}
	s.printf("Thanks for playing!\n")
	s.logger.Info("session stopped",
		ports.String("session", s.id),
		ports.String("reason", reason),
		ports.Int("rounds", s.stats.Rounds),
		ports.Int("device_failures", s.stats.DeviceFailures),
	)
	return nil
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
