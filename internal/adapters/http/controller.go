package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bft-labs/rockpapershock/internal/domain"
	"github.com/bft-labs/rockpapershock/internal/ports"
)

const (
	// DefaultServiceURL is the OpenShock API base.
	DefaultServiceURL = "https://api.shocklink.net"

	// DefaultCustomName identifies this client to the control API.
	DefaultCustomName = "RockPaperShock"

	controlEndpoint = "/2/shockers/control"

	// maxErrorBody caps how much of a failed response is kept for display.
	maxErrorBody = 4 << 10
)

type controlRequest struct {
	Shocks     []shockEntry `json:"shocks"`
	CustomName string       `json:"customName"`
}

type shockEntry struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Intensity int    `json:"intensity"`
	Duration  int    `json:"duration"`
	Exclusive bool   `json:"exclusive"`
}

// Controller implements ports.DeviceController against the OpenShock API.
type Controller struct {
	client     ports.HTTPClient
	logger     ports.Logger
	serviceURL string
	customName string
}

// NewController creates a controller posting to serviceURL.
// Empty serviceURL or customName fall back to the defaults.
func NewController(client ports.HTTPClient, logger ports.Logger, serviceURL, customName string) *Controller {
	if serviceURL == "" {
		serviceURL = DefaultServiceURL
	}
	if customName == "" {
		customName = DefaultCustomName
	}
	return &Controller{
		client:     client,
		logger:     logger,
		serviceURL: serviceURL,
		customName: customName,
	}
}

// Send performs a single control request. Only HTTP 200 counts as success.
func (c *Controller) Send(ctx context.Context, cmd domain.DeviceCommand, creds domain.Credentials) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	payload := controlRequest{
		Shocks: []shockEntry{{
			ID:        creds.DeviceID,
			Type:      cmd.Type.APIName(),
			Intensity: cmd.Intensity,
			Duration:  cmd.DurationMs,
			Exclusive: true,
		}},
		CustomName: c.customName,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal control request: %w", err)
	}

	url := c.serviceURL + controlEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("OpenShockToken", creds.APIToken)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending device command",
		ports.String("url", url),
		ports.String("type", payload.Shocks[0].Type),
		ports.Int("intensity", cmd.Intensity),
		ports.Int("duration_ms", cmd.DurationMs),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.DeviceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.DeviceError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
