/*
Copyright © 2026 Mediaforge Contributors

Mediaforge is a CLI client for a media-processing service.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
	"github.com/mediaforge/mediaforge/internal/services"
)

var (
	// Global flags
	cfgFile   string
	serverURL string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediaforge",
	Short: "Mediaforge - media-processing service CLI",
	Long: `Mediaforge submits video, image, and audio files to a media-processing
service and tracks the resulting jobs to completion.

The server advertises its operations as declarative schemas; the CLI
validates parameters and admits files locally before anything is uploaded,
then polls submitted jobs until they finish.

Example:
  mediaforge operations list
  mediaforge submit --operation transcode --file clip.mp4 --param target_format=webm --wait
  mediaforge job list

For more information, visit: https://github.com/mediaforge/mediaforge`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if forgeErr := lib.ClassifyError(err); forgeErr != nil {
			fmt.Fprint(os.Stderr, forgeErr.UserMessage())
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./mediaforge.yaml, ~/.config/mediaforge/mediaforge.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "service base URL (overrides server.base_url)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.SetVersionTemplate("Mediaforge version {{.Version}}\n")
}

// newLogger returns the logger honoring the --verbose flag
func newLogger() *lib.Logger {
	if verbose {
		return lib.NewLogger(lib.LogLevelDebug)
	}
	return lib.DefaultLogger
}

// loadConfig resolves the effective configuration, applying flag overrides
// ahead of file and environment values
func loadConfig() (*models.ClientConfig, error) {
	if serverURL != "" {
		services.SetConfigValue("server.base_url", serverURL)
	}
	return services.LoadConfig(cfgFile)
}

// newAPIClient loads configuration and wires up the service client
func newAPIClient() (*services.APIClient, *models.ClientConfig, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger()
	httpClient := services.NewHTTPClient(
		time.Duration(config.Server.TimeoutSeconds)*time.Second,
		config.Retry,
		logger,
	)

	return services.NewAPIClient(config.Server, httpClient, logger), config, nil
}
