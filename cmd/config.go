package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/mediaforge/internal/services"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration the CLI resolved from flags, environment
variables, the configuration file, and built-in defaults, along with
the path of the file that was loaded.

Example:
  mediaforge config
  mediaforge config --server https://media.example.com`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if path := services.GetConfigFilePath(); path != "" {
		fmt.Printf("Config file: %s\n\n", path)
	} else {
		fmt.Printf("Config file: (none found, using defaults)\n\n")
	}

	fmt.Println("Server:")
	fmt.Printf("  base_url:        %s\n", valueOr(config.Server.BaseURL, "(not set)"))
	fmt.Printf("  api_key:         %s\n", maskSecret(config.Server.APIKey))
	fmt.Printf("  timeout_seconds: %d\n\n", config.Server.TimeoutSeconds)

	fmt.Println("Polling:")
	fmt.Printf("  interval_seconds:     %d\n", config.Polling.IntervalSeconds)
	fmt.Printf("  max_interval_seconds: %d\n", config.Polling.MaxIntervalSeconds)
	fmt.Printf("  timeout_minutes:      %d\n\n", config.Polling.TimeoutMinutes)

	fmt.Println("Retry:")
	fmt.Printf("  max_attempts:       %d\n", config.Retry.MaxAttempts)
	fmt.Printf("  initial_backoff_ms: %d\n", config.Retry.InitialBackoffMs)
	fmt.Printf("  max_backoff_ms:     %d\n\n", config.Retry.MaxBackoffMs)

	fmt.Println("Upload:")
	fmt.Printf("  max_size_override_mb: %d\n", config.Upload.MaxSizeOverrideMB)

	return nil
}

// valueOr substitutes a placeholder for an empty string value
func valueOr(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// maskSecret hides an API key, keeping enough of the tail to identify it
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
