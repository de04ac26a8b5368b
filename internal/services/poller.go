package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
)

// ErrPollTimeout is returned when a job stays active past the configured timeout
var ErrPollTimeout = fmt.Errorf("job polling timeout exceeded")

// PollConfig holds configuration for job status polling
type PollConfig struct {
	Timeout         time.Duration
	StartTime       time.Time
	PollInterval    time.Duration
	MaxPollInterval time.Duration
	PollCount       int
}

// NewPollConfig creates polling configuration from client settings
func NewPollConfig(cfg models.PollingConfig) *PollConfig {
	return &PollConfig{
		Timeout:         time.Duration(cfg.TimeoutMinutes) * time.Minute,
		StartTime:       time.Now(),
		PollInterval:    time.Duration(cfg.IntervalSeconds) * time.Second,
		MaxPollInterval: time.Duration(cfg.MaxIntervalSeconds) * time.Second,
		PollCount:       0,
	}
}

// CalculateNextPollInterval calculates exponential backoff for the next polling attempt
func CalculateNextPollInterval(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		return max
	}
	return next
}

// CheckTimeout checks if polling has exceeded timeout
func (pc *PollConfig) CheckTimeout() bool {
	return time.Since(pc.StartTime) > pc.Timeout
}

// GetElapsedTime returns time elapsed since polling started
func (pc *PollConfig) GetElapsedTime() time.Duration {
	return time.Since(pc.StartTime)
}

// IncrementPollCount increments the poll attempt counter
func (pc *PollConfig) IncrementPollCount() {
	pc.PollCount++
}

// UpdateInterval updates the poll interval with exponential backoff
func (pc *PollConfig) UpdateInterval() {
	pc.PollInterval = CalculateNextPollInterval(pc.PollInterval, pc.MaxPollInterval)
}

// StatusFetcher fetches the polling projection of one job
type StatusFetcher interface {
	GetJobStatus(jobID string) (*models.JobStatusInfo, error)
}

// JobPoller re-issues status fetches for a job until it reaches a final
// status. The stop condition is ShouldPollJob over the latest observed
// status; a failed fetch is a transport problem, never a job-failure signal.
type JobPoller struct {
	client StatusFetcher
	logger *lib.Logger
}

// NewJobPoller creates a poller backed by the given status fetcher
func NewJobPoller(client StatusFetcher, logger *lib.Logger) *JobPoller {
	return &JobPoller{client: client, logger: logger}
}

// WatchJob polls a job until it leaves the active statuses, the timeout
// elapses, or the context is cancelled. The callback receives every
// successfully fetched status, including the final one. Transient fetch
// errors are tolerated and retried on the next tick.
func (p *JobPoller) WatchJob(ctx context.Context, jobID string, config *PollConfig, callback func(*models.JobStatusInfo)) (*models.JobStatusInfo, error) {
	var lastStatus *models.JobStatusInfo

	for {
		if config.CheckTimeout() {
			p.logger.Warn("Polling timed out", "job_id", jobID, "elapsed", config.GetElapsedTime())
			return lastStatus, ErrPollTimeout
		}

		status, err := p.client.GetJobStatus(jobID)
		config.IncrementPollCount()

		if err != nil {
			// A fetch error is not a job failure; keep polling unless the
			// error is clearly permanent
			if forgeErr := lib.ClassifyError(err); !forgeErr.IsRetryable {
				return lastStatus, err
			}
			p.logger.Warn("Status fetch failed, will retry", "job_id", jobID, "error", err)
		} else {
			lastStatus = status
			if callback != nil {
				callback(status)
			}

			if !models.ShouldPollJob(status) {
				p.logger.Debug("Job reached final status",
					"job_id", jobID,
					"status", string(status.Status),
					"polls", config.PollCount)
				return status, nil
			}

			lib.LogPollTick(p.logger, jobID, string(status.Status), status.Progress, config.PollInterval)
		}

		select {
		case <-ctx.Done():
			return lastStatus, ctx.Err()
		case <-time.After(config.PollInterval):
		}

		config.UpdateInterval()
	}
}
