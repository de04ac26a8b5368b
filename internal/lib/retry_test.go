package lib_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
)

func TestCalculateBackoff(t *testing.T) {
	tests := []struct {
		name      string
		attempt   int
		initialMs int64
		maxMs     int64
		expected  time.Duration
	}{
		{"first attempt", 0, 1000, 30000, 1 * time.Second},
		{"second attempt doubles", 1, 1000, 30000, 2 * time.Second},
		{"third attempt doubles again", 2, 1000, 30000, 4 * time.Second},
		{"capped at max", 10, 1000, 30000, 30 * time.Second},
		{"negative attempt treated as first", -1, 1000, 30000, 1 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lib.CalculateBackoff(tt.attempt, tt.initialMs, tt.maxMs))
		})
	}
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   models.ErrorType
	}{
		{500, models.ErrorTypeTransient},
		{502, models.ErrorTypeTransient},
		{503, models.ErrorTypeTransient},
		{408, models.ErrorTypeTransient},
		{429, models.ErrorTypeTransient},
		{400, models.ErrorTypeNonTransient},
		{401, models.ErrorTypeNonTransient},
		{404, models.ErrorTypeNonTransient},
		{422, models.ErrorTypeNonTransient},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.expected, lib.ClassifyHTTPError(tt.statusCode))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, lib.ShouldRetry(models.ErrorTypeTransient, 0, 3))
	assert.True(t, lib.ShouldRetry(models.ErrorTypeTransient, 2, 3))
	assert.False(t, lib.ShouldRetry(models.ErrorTypeTransient, 3, 3))
	assert.False(t, lib.ShouldRetry(models.ErrorTypeNonTransient, 0, 3))
}

func TestExecuteWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	config := lib.RetryConfig{MaxAttempts: 5, InitialBackoffMs: 1, MaxBackoffMs: 2}

	calls := 0
	err := lib.ExecuteWithRetry(func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, config, lib.IsNetworkError)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_StopsOnNonRetryableError(t *testing.T) {
	config := lib.RetryConfig{MaxAttempts: 5, InitialBackoffMs: 1, MaxBackoffMs: 2}

	calls := 0
	err := lib.ExecuteWithRetry(func() error {
		calls++
		return errors.New("validation failed")
	}, config, lib.IsNetworkError)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "non-retryable")
}

func TestExecuteWithRetry_ExhaustsAttempts(t *testing.T) {
	config := lib.RetryConfig{MaxAttempts: 3, InitialBackoffMs: 1, MaxBackoffMs: 2}

	calls := 0
	err := lib.ExecuteWithRetry(func() error {
		calls++
		return errors.New("connection reset")
	}, config, lib.IsNetworkError)

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"no such host", errors.New("lookup example: no such host"), true},
		{"timeout", errors.New("request timeout"), true},
		{"context deadline", errors.New("context deadline exceeded"), true},
		{"unexpected eof", errors.New("unexpected EOF"), true},
		{"validation error", errors.New("width must be an integer"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lib.IsNetworkError(tt.err))
		})
	}
}
