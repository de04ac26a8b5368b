package services

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mediaforge/mediaforge/internal/models"
)

// LoadConfig loads configuration from file and environment
// Priority order (highest to lowest):
//  1. CLI flags (via viper bindings)
//  2. Environment variables (MEDIAFORGE_ prefix)
//  3. Configuration file
//  4. Default values
func LoadConfig(configFile string) (*models.ClientConfig, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		viper.SetConfigName("mediaforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/mediaforge")
		viper.AddConfigPath("/etc/mediaforge")
	}

	viper.SetEnvPrefix("MEDIAFORGE")
	viper.AutomaticEnv()

	// Read config file (optional - don't fail if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Build config manually from viper values
	// (Viper.Unmarshal has issues with nested structs in some versions)
	config := models.ClientConfig{
		Server: models.ServerConfig{
			BaseURL:        viper.GetString("server.base_url"),
			APIKey:         viper.GetString("server.api_key"),
			TimeoutSeconds: viper.GetInt("server.timeout_seconds"),
		},
		Polling: models.PollingConfig{
			IntervalSeconds:    viper.GetInt("polling.interval_seconds"),
			MaxIntervalSeconds: viper.GetInt("polling.max_interval_seconds"),
			TimeoutMinutes:     viper.GetInt("polling.timeout_minutes"),
		},
		Retry: models.RetryConfig{
			MaxAttempts:      viper.GetInt("retry.max_attempts"),
			InitialBackoffMs: viper.GetInt64("retry.initial_backoff_ms"),
			MaxBackoffMs:     viper.GetInt64("retry.max_backoff_ms"),
		},
		Upload: models.UploadConfig{
			MaxSizeOverrideMB: viper.GetInt64("upload.max_size_override_mb"),
		},
	}

	// Apply defaults for missing values
	defaults := models.DefaultConfig()
	if config.Server.TimeoutSeconds == 0 {
		config.Server.TimeoutSeconds = defaults.Server.TimeoutSeconds
	}
	if config.Polling.IntervalSeconds == 0 {
		config.Polling.IntervalSeconds = defaults.Polling.IntervalSeconds
	}
	if config.Polling.MaxIntervalSeconds == 0 {
		config.Polling.MaxIntervalSeconds = defaults.Polling.MaxIntervalSeconds
	}
	if config.Polling.TimeoutMinutes == 0 {
		config.Polling.TimeoutMinutes = defaults.Polling.TimeoutMinutes
	}
	if config.Retry.MaxAttempts == 0 {
		config.Retry.MaxAttempts = defaults.Retry.MaxAttempts
	}
	if config.Retry.InitialBackoffMs == 0 {
		config.Retry.InitialBackoffMs = defaults.Retry.InitialBackoffMs
	}
	if config.Retry.MaxBackoffMs == 0 {
		config.Retry.MaxBackoffMs = defaults.Retry.MaxBackoffMs
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetConfigFilePath returns the path to the config file that was loaded
func GetConfigFilePath() string {
	return viper.ConfigFileUsed()
}

// SetConfigValue allows runtime override of config values
// Useful for CLI flag overrides
func SetConfigValue(key string, value interface{}) {
	viper.Set(key, value)
}
