package domain

import "fmt"

// Credentials authorize commands against one device.
// Values are loaded once at startup and passed by value.
type Credentials struct {
	APIToken string
	DeviceID string
}

// Validate reports which required value is absent, if any.
func (c Credentials) Validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("%w: API token", ErrMissingConfig)
	}
	if c.DeviceID == "" {
		return fmt.Errorf("%w: device id", ErrMissingConfig)
	}
	return nil
}

// Masked returns a copy safe for logging.
func (c Credentials) Masked() Credentials {
	if c.APIToken != "" {
		c.APIToken = "*****"
	}
	return c
}
