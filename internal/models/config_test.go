package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge/internal/models"
)

func validConfig() models.ClientConfig {
	config := models.DefaultConfig()
	config.Server.BaseURL = "https://media.example.com"
	return config
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ClientConfig)
		wantErr string
	}{
		{
			name:   "valid defaults with base URL",
			mutate: func(c *models.ClientConfig) {},
		},
		{
			name:    "missing base URL",
			mutate:  func(c *models.ClientConfig) { c.Server.BaseURL = "" },
			wantErr: "base_url is required",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *models.ClientConfig) { c.Server.TimeoutSeconds = 0 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "poll interval out of range",
			mutate:  func(c *models.ClientConfig) { c.Polling.IntervalSeconds = 90 },
			wantErr: "interval_seconds",
		},
		{
			name: "max interval below interval",
			mutate: func(c *models.ClientConfig) {
				c.Polling.IntervalSeconds = 10
				c.Polling.MaxIntervalSeconds = 5
			},
			wantErr: "max_interval_seconds",
		},
		{
			name:    "zero retry attempts",
			mutate:  func(c *models.ClientConfig) { c.Retry.MaxAttempts = 0 },
			wantErr: "max_attempts",
		},
		{
			name:    "negative upload override",
			mutate:  func(c *models.ClientConfig) { c.Upload.MaxSizeOverrideMB = -1 },
			wantErr: "max_size_override_mb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := models.DefaultConfig()

	assert.Equal(t, 2, config.Polling.IntervalSeconds)
	assert.Equal(t, 15, config.Polling.MaxIntervalSeconds)
	assert.Equal(t, 5, config.Retry.MaxAttempts)
	assert.Equal(t, int64(0), config.Upload.MaxSizeOverrideMB)
}
