package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
	"github.com/mediaforge/mediaforge/internal/ui"
)

var downloadOutput string

// jobCmd represents the job command group
var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage processing jobs",
	Long: `Manage processing jobs on the server.

Available subcommands:
  list     - List all jobs
  status   - Show a job's current status
  watch    - Poll a job until it finishes
  retry    - Re-run a failed job
  delete   - Remove a job and its files
  download - Download a completed job's output`,
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all jobs",
	Long: `List all jobs known to the server, newest first.

Example:
  mediaforge job list`,
	RunE: runJobList,
}

var jobStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show a job's current status",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobStatus,
}

var jobWatchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Poll a job until it finishes",
	Long: `Poll a job's status until it reaches a final state, showing a
progress bar. Transient fetch failures are retried; only the reported job
status decides the outcome.

Example:
  mediaforge job watch 4f6b2a90-3c1d-4e8a-9c0f-6a2d8b1e5f37`,
	Args: cobra.ExactArgs(1),
	RunE: runJobWatch,
}

var jobRetryCmd = &cobra.Command{
	Use:   "retry <job-id>",
	Short: "Re-run a failed job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobRetry,
}

var jobDeleteCmd = &cobra.Command{
	Use:   "delete <job-id>",
	Short: "Remove a job and its files from the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobDelete,
}

var jobDownloadCmd = &cobra.Command{
	Use:   "download <job-id>",
	Short: "Download a completed job's output file",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobDownload,
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(jobListCmd)
	jobCmd.AddCommand(jobStatusCmd)
	jobCmd.AddCommand(jobWatchCmd)
	jobCmd.AddCommand(jobRetryCmd)
	jobCmd.AddCommand(jobDeleteCmd)
	jobCmd.AddCommand(jobDownloadCmd)

	jobDownloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output path (default: the server-side file name)")
}

// jobIDArg validates the job ID argument before any request is made.
// Job IDs are server-issued UUIDs.
func jobIDArg(args []string) (string, error) {
	id := args[0]
	if err := uuid.Validate(id); err != nil {
		return "", lib.WrapError(lib.CategoryValidation,
			fmt.Sprintf("'%s' is not a valid job ID", id), nil,
			"Job IDs are UUIDs; copy one from 'mediaforge job list'")
	}
	return id, nil
}

func runJobList(cmd *cobra.Command, args []string) error {
	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	page, err := client.ListJobs()
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	if len(page.Results) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	jobs := page.Results
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	fmt.Printf("%-38s %-15s %-20s %-9s %-7s %s\n", "JOB ID", "STATUS", "OPERATION", "PROGRESS", "OUTPUT", "AGE")
	fmt.Println("--------------------------------------------------------------------------------------------------------")

	for i := range jobs {
		j := &jobs[i]
		output := "-"
		if models.HasDownloadableOutput(j) {
			output = "yes"
		}
		fmt.Printf("%-38s %s %-13s %-20s %-9s %-7s %s\n",
			j.ID,
			statusSymbol(j.Status),
			j.Status,
			j.Operation,
			fmt.Sprintf("%d%%", j.Progress),
			output,
			formatDuration(time.Since(j.CreatedAt)),
		)
	}

	fmt.Printf("\nTotal: %d jobs\n", page.Count)
	return nil
}

func runJobStatus(cmd *cobra.Command, args []string) error {
	jobID, err := jobIDArg(args)
	if err != nil {
		return err
	}

	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	job, err := client.GetJob(jobID)
	if err != nil {
		return err
	}

	fmt.Printf("Job:       %s\n", job.ID)
	fmt.Printf("Operation: %s\n", job.Operation)
	fmt.Printf("Status:    %s %s\n", statusSymbol(job.Status), job.Status)
	fmt.Printf("Progress:  %d%%\n", job.Progress)
	fmt.Printf("Created:   %s\n", job.CreatedAt.Format(time.RFC3339))

	if job.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", job.CompletedAt.Format(time.RFC3339))
	}
	if job.ProcessingTime > 0 {
		fmt.Printf("Took:      %s\n", ui.FormatETASeconds(job.ProcessingTime))
	}
	if job.ErrorMessage != nil {
		fmt.Printf("Error:     %s\n", *job.ErrorMessage)
	}
	if job.InputFile != nil {
		fmt.Printf("Input:     %s (%s)\n", job.InputFile.Name, lib.FormatFileSize(job.InputFile.Size))
	}
	if models.HasDownloadableOutput(job) {
		fmt.Printf("Output:    %s (%s)\n", job.OutputFile.Name, lib.FormatFileSize(job.OutputFile.Size))
	}
	if job.IsExpired {
		fmt.Println("Note:      this job has expired; its files may no longer be available")
	}

	if models.ShouldPollJob(job) {
		fmt.Printf("\nStill running - follow it with: mediaforge job watch %s\n", job.ID)
	}

	return nil
}

func runJobWatch(cmd *cobra.Command, args []string) error {
	jobID, err := jobIDArg(args)
	if err != nil {
		return err
	}

	client, config, err := newAPIClient()
	if err != nil {
		return err
	}

	job, err := client.GetJob(jobID)
	if err != nil {
		return err
	}

	if !models.ShouldPollJob(job) {
		fmt.Printf("Job %s already finished with status '%s'\n", job.ID, job.Status)
		return nil
	}

	return watchJob(client, config, job.ID, job.Operation)
}

func runJobRetry(cmd *cobra.Command, args []string) error {
	jobID, err := jobIDArg(args)
	if err != nil {
		return err
	}

	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	job, err := client.GetJob(jobID)
	if err != nil {
		return err
	}

	if !models.IsJobFailed(job) {
		return lib.WrapError(lib.CategoryValidation,
			fmt.Sprintf("Job '%s' is %s; only failed jobs can be retried", job.ID, job.Status), nil)
	}

	retried, err := client.RetryJob(job.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Job %s queued for retry (status: %s)\n", retried.ID, retried.Status)
	return nil
}

func runJobDelete(cmd *cobra.Command, args []string) error {
	jobID, err := jobIDArg(args)
	if err != nil {
		return err
	}

	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := client.DeleteJob(jobID); err != nil {
		return err
	}

	fmt.Printf("Job %s deleted\n", jobID)
	return nil
}

func runJobDownload(cmd *cobra.Command, args []string) error {
	jobID, err := jobIDArg(args)
	if err != nil {
		return err
	}

	client, config, err := newAPIClient()
	if err != nil {
		return err
	}

	job, err := client.GetJob(jobID)
	if err != nil {
		return err
	}

	if !models.HasDownloadableOutput(job) {
		return lib.WrapError(lib.CategoryValidation,
			fmt.Sprintf("Job '%s' has no downloadable output (status: %s)", job.ID, job.Status), nil,
			"Only completed jobs with an output file can be downloaded")
	}

	path := downloadOutput
	if path == "" {
		path = job.OutputFile.Name
	}

	out, err := os.Create(path)
	if err != nil {
		return lib.WrapError(lib.CategoryFileSystem,
			fmt.Sprintf("Cannot write to '%s'", path), err,
			"Check the path and directory permissions")
	}
	defer func() { _ = out.Close() }()

	bar := ui.NewDownloadBar(job.OutputFile.Size, "Downloading "+job.OutputFile.Name)

	// A download interrupted mid-stream restarts from the beginning, so the
	// target file is rewound before every attempt
	var written int64
	err = lib.ExecuteWithRetry(func() error {
		if _, err := out.Seek(0, io.SeekStart); err != nil {
			return err
		}
		if err := out.Truncate(0); err != nil {
			return err
		}
		_ = bar.Set64(0)

		n, err := client.DownloadOutput(job, out, func(n int64) {
			_ = bar.Set64(n)
		})
		written = n
		return err
	}, lib.NewRetryConfigFromModel(config.Retry), lib.IsNetworkError)
	_ = bar.Finish()
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Printf("\nSaved %s to %s\n", lib.FormatFileSize(written), path)
	return nil
}

func statusSymbol(status models.JobStatus) string {
	switch status {
	case models.JobStatusCompleted:
		return "✓"
	case models.JobStatusProcessing:
		return "→"
	case models.JobStatusFailed:
		return "✗"
	case models.JobStatusPending, models.JobStatusQueued:
		return "○"
	default:
		return " "
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%dd", days)
}
