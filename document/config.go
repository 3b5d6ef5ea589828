package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrConfiguration indicates an invalid or incomplete controller configuration.
var ErrConfiguration = errors.New("configuration error")

const (
	defaultTimeout       = 30 * time.Second
	defaultToastDuration = 3 * time.Second
)

// Config holds what the three controllers of one document share.
type Config struct {
	// DocumentID identifies the shared code. Required.
	DocumentID string

	// Sink receives notifications. Required.
	Sink Sink

	// Context is the parent of every request context. Cancelling it aborts
	// all in-flight calls. Defaults to context.Background().
	Context context.Context

	// Timeout bounds each remote call. Defaults to 30s.
	Timeout time.Duration

	// ToastDuration is stamped on notifications that do not set their own.
	// Defaults to 3s.
	ToastDuration time.Duration
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.DocumentID) == "" {
		missing = append(missing, "DocumentID")
	}
	if c.Sink == nil {
		missing = append(missing, "Sink")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Context == nil {
		c.Context = context.Background()
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.ToastDuration <= 0 {
		c.ToastDuration = defaultToastDuration
	}
}

func (c *Config) notifier() notifier {
	return notifier{sink: c.Sink, duration: c.ToastDuration}
}
