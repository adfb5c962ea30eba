package ports

import (
	"context"

	"github.com/bft-labs/rockpapershock/internal/domain"
)

// DeviceController delivers commands to the wearable device.
type DeviceController interface {
	// Send performs exactly one delivery attempt.
	// Failures are reported as *domain.DeviceError.
	Send(ctx context.Context, cmd domain.DeviceCommand, creds domain.Credentials) error
}
