package cmd

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
	"github.com/mediaforge/mediaforge/internal/services"
	"github.com/mediaforge/mediaforge/internal/ui"
)

var (
	submitOperation string
	submitFile      string
	submitParams    []string
	submitWait      bool
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate a file and submit a processing job",
	Long: `Submit a file for processing.

The operation's parameter schemas are fetched from the server; defaults are
filled in for parameters you do not pass, and both parameters and the file
are validated locally before anything is uploaded. With --wait the job is
polled to completion.

Example:
  mediaforge submit --operation transcode --file clip.mp4 --param target_format=webm
  mediaforge submit --operation resize --file photo.jpg --param width=1280 --wait`,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitOperation, "operation", "", "operation name (required)")
	submitCmd.Flags().StringVar(&submitFile, "file", "", "path of the file to process (required)")
	submitCmd.Flags().StringArrayVar(&submitParams, "param", nil, "parameter as name=value (repeatable)")
	submitCmd.Flags().BoolVar(&submitWait, "wait", false, "poll the job until it finishes")

	_ = submitCmd.MarkFlagRequired("operation")
	_ = submitCmd.MarkFlagRequired("file")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	client, config, err := newAPIClient()
	if err != nil {
		return err
	}
	logger := newLogger()

	operation, err := client.GetOperation(submitOperation)
	if err != nil {
		return fmt.Errorf("failed to fetch operation '%s': %w", submitOperation, err)
	}

	values, err := resolveParameters(operation)
	if err != nil {
		return err
	}

	result := lib.ValidateParameters(*operation, values)
	if !result.Valid {
		return lib.ErrInvalidParameters(operation.Name, result.Errors)
	}

	fileInfo, err := statFile(submitFile)
	if err != nil {
		return err
	}

	admission := lib.ValidateFile(fileInfo, []models.MediaType{operation.MediaType}, customMaxSize(config))
	if !admission.IsValid {
		lib.LogAdmissionRejected(logger, fileInfo.Name, string(admission.Error.Code), admission.Error.Message)
		return lib.ErrFileRejected(fileInfo.Name, admission)
	}
	for _, warning := range admission.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	file, err := os.Open(submitFile)
	if err != nil {
		return lib.ErrFileNotFound(submitFile)
	}
	defer func() { _ = file.Close() }()

	job, err := client.CreateJob(models.CreateJobParams{
		Operation:  operation.Name,
		Parameters: values,
		File:       fileInfo,
	}, file)
	if err != nil {
		return err
	}

	fmt.Printf("Job submitted: %s\n", job.ID)

	if !submitWait {
		fmt.Printf("Track it with: mediaforge job watch %s\n", job.ID)
		return nil
	}

	return watchJob(client, config, job.ID, operation.DisplayName())
}

// resolveParameters merges --param flags over the operation's defaults,
// coercing each raw flag string to the schema's type. Unparseable values
// are left as strings so validation reports the proper message.
func resolveParameters(operation *models.OperationDefinition) (map[string]any, error) {
	values := lib.BuildDefaultParameters(*operation)

	for _, raw := range submitParams {
		name, value, found := strings.Cut(raw, "=")
		if !found {
			return nil, lib.WrapError(lib.CategoryValidation,
				fmt.Sprintf("Invalid --param '%s'", raw), nil,
				"Pass parameters as --param name=value")
		}

		schema, ok := operation.ParameterByName(name)
		if !ok {
			return nil, lib.WrapError(lib.CategoryValidation,
				fmt.Sprintf("Operation '%s' has no parameter '%s'", operation.Name, name), nil,
				fmt.Sprintf("Run 'mediaforge operations show %s' to see its parameters", operation.Name))
		}

		values[name] = coerceFlagValue(schema, value)
	}

	return values, nil
}

// coerceFlagValue converts a raw flag string to the schema's value type
func coerceFlagValue(schema models.ParameterSchema, raw string) any {
	switch schema.Type {
	case models.ParameterTypeInteger:
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	case models.ParameterTypeFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case models.ParameterTypeBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// statFile builds the admission metadata view of a local file
func statFile(path string) (models.FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return models.FileInfo{}, lib.ErrFileNotFound(path)
	}
	if stat.IsDir() {
		return models.FileInfo{}, lib.WrapError(lib.CategoryFileSystem,
			fmt.Sprintf("'%s' is a directory", path), nil,
			"Pass a single media file")
	}

	return models.FileInfo{
		Name:     filepath.Base(path),
		Size:     stat.Size(),
		MIMEType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

// customMaxSize converts the configured override to bytes, 0 when unset
func customMaxSize(config *models.ClientConfig) int64 {
	return config.Upload.MaxSizeOverrideMB * 1024 * 1024
}

// watchJob polls a job with a progress bar until it reaches a final status
func watchJob(client *services.APIClient, config *models.ClientConfig, jobID string, description string) error {
	logger := newLogger()
	poller := services.NewJobPoller(client, logger)
	pollConfig := services.NewPollConfig(config.Polling)

	bar := ui.NewJobProgressBar(description)
	etaCalc := ui.NewETACalculator()
	status, err := poller.WatchJob(context.Background(), jobID, pollConfig, func(s *models.JobStatusInfo) {
		etaCalc.RecordProgress(s.Progress)
		if label, ok := ui.ETALabel(etaCalc, s.ETASeconds, s.Progress); ok {
			bar.Describe(fmt.Sprintf("%s (ETA %s)", description, label))
		}
		_ = bar.Update(s.Progress)
	})
	_ = bar.Clear()
	if err != nil {
		return err
	}
	if status == nil {
		return lib.WrapError(lib.CategoryService,
			fmt.Sprintf("No status could be fetched for job %s", jobID), nil,
			fmt.Sprintf("Check it manually with: mediaforge job status %s", jobID))
	}

	return reportFinalStatus(jobID, status, pollConfig)
}

func reportFinalStatus(jobID string, status *models.JobStatusInfo, pollConfig *services.PollConfig) error {
	switch {
	case models.HasDownloadableOutput(status):
		fmt.Printf("Job %s completed in %s\n", jobID, pollConfig.GetElapsedTime().Round(time.Second))
		fmt.Printf("Download the result with: mediaforge job download %s\n", jobID)
		return nil
	case models.IsJobFailed(status):
		message := "no error message reported"
		if status.ErrorMessage != nil {
			message = *status.ErrorMessage
		}
		return lib.WrapError(lib.CategoryService,
			fmt.Sprintf("Job %s failed: %s", jobID, message), nil,
			fmt.Sprintf("Retry it with: mediaforge job retry %s", jobID))
	default:
		fmt.Printf("Job %s finished with status '%s'\n", jobID, status.Status)
		return nil
	}
}
