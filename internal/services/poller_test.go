package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
	"github.com/mediaforge/mediaforge/internal/services"
)

// scriptedFetcher replays a fixed sequence of status responses
type scriptedFetcher struct {
	responses []fetchResponse
	calls     int
}

type fetchResponse struct {
	status *models.JobStatusInfo
	err    error
}

func (f *scriptedFetcher) GetJobStatus(jobID string) (*models.JobStatusInfo, error) {
	if f.calls >= len(f.responses) {
		last := f.responses[len(f.responses)-1]
		return last.status, last.err
	}
	response := f.responses[f.calls]
	f.calls++
	return response.status, response.err
}

func fastPollConfig() *services.PollConfig {
	return &services.PollConfig{
		Timeout:         2 * time.Second,
		StartTime:       time.Now(),
		PollInterval:    time.Millisecond,
		MaxPollInterval: 2 * time.Millisecond,
	}
}

func statusOf(s models.JobStatus, progress int) *models.JobStatusInfo {
	return &models.JobStatusInfo{
		Status:     s,
		Progress:   progress,
		IsComplete: models.IsFinalStatus(s),
		HasOutput:  s == models.JobStatusCompleted,
	}
}

func TestWatchJob_StopsOnFirstFinalStatus(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{status: statusOf(models.JobStatusQueued, 0)},
		{status: statusOf(models.JobStatusProcessing, 40)},
		{status: statusOf(models.JobStatusProcessing, 80)},
		{status: statusOf(models.JobStatusCompleted, 100)},
	}}

	poller := services.NewJobPoller(fetcher, lib.NewLogger(lib.LogLevelError))

	var observed []models.JobStatus
	final, err := poller.WatchJob(context.Background(), "job-1", fastPollConfig(), func(s *models.JobStatusInfo) {
		observed = append(observed, s.Status)
	})

	require.NoError(t, err)
	require.NotNil(t, final)
	assert.Equal(t, models.JobStatusCompleted, final.Status)
	// No fetch is issued after the final status was observed
	assert.Equal(t, 4, fetcher.calls)
	assert.Equal(t, models.JobStatusCompleted, observed[len(observed)-1])
}

func TestWatchJob_FailedStatusIsFinal(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{status: statusOf(models.JobStatusProcessing, 10)},
		{status: statusOf(models.JobStatusFailed, 10)},
	}}

	poller := services.NewJobPoller(fetcher, lib.NewLogger(lib.LogLevelError))
	final, err := poller.WatchJob(context.Background(), "job-2", fastPollConfig(), nil)

	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, final.Status)
}

func TestWatchJob_TransientFetchErrorIsNotJobFailure(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{status: statusOf(models.JobStatusProcessing, 20)},
		{err: fmt.Errorf("connection refused")},
		{status: statusOf(models.JobStatusCompleted, 100)},
	}}

	poller := services.NewJobPoller(fetcher, lib.NewLogger(lib.LogLevelError))
	final, err := poller.WatchJob(context.Background(), "job-3", fastPollConfig(), nil)

	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, final.Status)
	assert.Equal(t, 3, fetcher.calls)
}

func TestWatchJob_PermanentErrorStopsPolling(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{err: lib.ErrJobNotFound("job-4")},
	}}

	poller := services.NewJobPoller(fetcher, lib.NewLogger(lib.LogLevelError))
	_, err := poller.WatchJob(context.Background(), "job-4", fastPollConfig(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWatchJob_Timeout(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{status: statusOf(models.JobStatusProcessing, 50)},
	}}

	config := fastPollConfig()
	config.Timeout = 20 * time.Millisecond

	poller := services.NewJobPoller(fetcher, lib.NewLogger(lib.LogLevelError))
	last, err := poller.WatchJob(context.Background(), "job-5", config, nil)

	require.ErrorIs(t, err, services.ErrPollTimeout)
	require.NotNil(t, last)
	assert.Equal(t, models.JobStatusProcessing, last.Status)
}

func TestWatchJob_ContextCancellation(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{status: statusOf(models.JobStatusProcessing, 50)},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	poller := services.NewJobPoller(fetcher, lib.NewLogger(lib.LogLevelError))
	_, err := poller.WatchJob(ctx, "job-6", fastPollConfig(), nil)

	require.ErrorIs(t, err, context.Canceled)
}

func TestCalculateNextPollInterval(t *testing.T) {
	assert.Equal(t, 4*time.Second, services.CalculateNextPollInterval(2*time.Second, 15*time.Second))
	assert.Equal(t, 15*time.Second, services.CalculateNextPollInterval(10*time.Second, 15*time.Second))
	assert.Equal(t, 15*time.Second, services.CalculateNextPollInterval(15*time.Second, 15*time.Second))
}

func TestNewPollConfig(t *testing.T) {
	config := services.NewPollConfig(models.PollingConfig{
		IntervalSeconds:    2,
		MaxIntervalSeconds: 15,
		TimeoutMinutes:     30,
	})

	assert.Equal(t, 2*time.Second, config.PollInterval)
	assert.Equal(t, 15*time.Second, config.MaxPollInterval)
	assert.Equal(t, 30*time.Minute, config.Timeout)
	assert.Equal(t, 0, config.PollCount)
}
