package watch

import "time"

// Config contains configuration for the watch command
type Config struct {
	// Feed source: HTTP(S) URL or local file path
	Source string

	// Display settings
	Timezone   string
	TimeFormat string

	// Disclosure settings
	BatchSize int

	// Refresh settings
	RefreshInterval time.Duration
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "24h"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 5
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 60 * time.Second
	}
	return nil
}
