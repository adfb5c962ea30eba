package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDeviceError_Is(t *testing.T) {
	statusErr := &DeviceError{StatusCode: 500, Body: "boom"}
	if !errors.Is(statusErr, ErrDevice) {
		t.Error("status DeviceError should match ErrDevice")
	}
	if !strings.Contains(statusErr.Error(), "500") || !strings.Contains(statusErr.Error(), "boom") {
		t.Errorf("Error() = %q, want status and body", statusErr.Error())
	}

	wrapped := fmt.Errorf("round 3: %w", &DeviceError{Err: context.DeadlineExceeded})
	if !errors.Is(wrapped, ErrDevice) {
		t.Error("wrapped DeviceError should match ErrDevice")
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Error("transport DeviceError should unwrap to its cause")
	}

	var de *DeviceError
	if !errors.As(wrapped, &de) {
		t.Fatal("errors.As should find DeviceError")
	}
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr string
	}{
		{"complete", Credentials{APIToken: "t", DeviceID: "d"}, ""},
		{"missing token", Credentials{DeviceID: "d"}, "API token"},
		{"missing device", Credentials{APIToken: "t"}, "device id"},
		{"empty", Credentials{}, "API token"},
	}

	for _, tt := range tests {
		err := tt.creds.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("%s: error = %v, want ErrMissingConfig", tt.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %q, want mention of %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestCredentials_Masked(t *testing.T) {
	c := Credentials{APIToken: "secret", DeviceID: "d"}
	m := c.Masked()
	if m.APIToken != "*****" || m.DeviceID != "d" {
		t.Errorf("Masked() = %+v", m)
	}
	if c.APIToken != "secret" {
		t.Error("Masked() mutated the original")
	}
}

func TestStats_Record(t *testing.T) {
	var s Stats
	for _, o := range []Outcome{HumanWins, DeviceWins, Tie, HumanWins} {
		s.Record(o)
	}
	want := Stats{Rounds: 4, Wins: 2, Losses: 1, Ties: 1}
	if s != want {
		t.Errorf("Stats = %+v, want %+v", s, want)
	}
}
