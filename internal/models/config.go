package models

import (
	"fmt"
	"net/url"
)

// ClientConfig is the top-level configuration for the mediaforge client
type ClientConfig struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Polling PollingConfig `yaml:"polling" json:"polling"`
	Retry   RetryConfig   `yaml:"retry" json:"retry"`
	Upload  UploadConfig  `yaml:"upload" json:"upload"`
}

// ServerConfig contains connection details for the media-processing service
type ServerConfig struct {
	BaseURL        string `yaml:"base_url" json:"base_url"`
	APIKey         string `yaml:"api_key" json:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// PollingConfig controls how job status is re-fetched while a job is active
type PollingConfig struct {
	IntervalSeconds    int `yaml:"interval_seconds" json:"interval_seconds"`
	MaxIntervalSeconds int `yaml:"max_interval_seconds" json:"max_interval_seconds"`
	TimeoutMinutes     int `yaml:"timeout_minutes" json:"timeout_minutes"`
}

// RetryConfig controls retry behavior for transient transport errors
type RetryConfig struct {
	MaxAttempts      int   `yaml:"max_attempts" json:"max_attempts"`
	InitialBackoffMs int64 `yaml:"initial_backoff_ms" json:"initial_backoff_ms"`
	MaxBackoffMs     int64 `yaml:"max_backoff_ms" json:"max_backoff_ms"`
}

// UploadConfig contains client-side upload admission settings
type UploadConfig struct {
	// MaxSizeOverrideMB replaces the per-media-type ceiling when > 0
	MaxSizeOverrideMB int64 `yaml:"max_size_override_mb" json:"max_size_override_mb"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Server: ServerConfig{
			BaseURL:        "",
			APIKey:         "",
			TimeoutSeconds: 30,
		},
		Polling: PollingConfig{
			IntervalSeconds:    2,
			MaxIntervalSeconds: 15,
			TimeoutMinutes:     30,
		},
		Retry: RetryConfig{
			MaxAttempts:      5,
			InitialBackoffMs: 1000,
			MaxBackoffMs:     30000,
		},
		Upload: UploadConfig{
			MaxSizeOverrideMB: 0,
		},
	}
}

// Validate checks if the ClientConfig has all required fields and valid values
func (c *ClientConfig) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server base_url is required")
	}

	if _, err := url.Parse(c.Server.BaseURL); err != nil {
		return fmt.Errorf("invalid server base_url: %w", err)
	}

	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be > 0, got %d", c.Server.TimeoutSeconds)
	}

	if c.Polling.IntervalSeconds <= 0 || c.Polling.IntervalSeconds > 60 {
		return fmt.Errorf("polling interval_seconds must be 1-60, got %d", c.Polling.IntervalSeconds)
	}

	if c.Polling.MaxIntervalSeconds < c.Polling.IntervalSeconds {
		return fmt.Errorf("polling max_interval_seconds (%d) must be >= interval_seconds (%d)",
			c.Polling.MaxIntervalSeconds, c.Polling.IntervalSeconds)
	}

	if c.Polling.TimeoutMinutes <= 0 {
		return fmt.Errorf("polling timeout_minutes must be > 0, got %d", c.Polling.TimeoutMinutes)
	}

	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry max_attempts must be > 0, got %d", c.Retry.MaxAttempts)
	}

	if c.Upload.MaxSizeOverrideMB < 0 {
		return fmt.Errorf("upload max_size_override_mb cannot be negative, got %d", c.Upload.MaxSizeOverrideMB)
	}

	return nil
}
