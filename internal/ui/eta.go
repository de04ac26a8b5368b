package ui

import (
	"fmt"
	"time"
)

// ETACalculator estimates time to completion from observed progress samples.
// Used when the server does not report eta_seconds itself.
// Average time per percent is computed from the last 10 samples or the last
// 30 seconds, whichever is more recent.
type ETACalculator struct {
	samples       []TimestampedProgress
	maxSamples    int
	maxTimeWindow time.Duration
}

// TimestampedProgress records a progress measurement at a specific time
type TimestampedProgress struct {
	Timestamp time.Time
	Percent   int
}

// NewETACalculator creates an ETA calculator with default settings
func NewETACalculator() *ETACalculator {
	return &ETACalculator{
		samples:       make([]TimestampedProgress, 0),
		maxSamples:    10,
		maxTimeWindow: 30 * time.Second,
	}
}

// RecordProgress records a progress measurement (0-100)
func (e *ETACalculator) RecordProgress(percent int) {
	now := time.Now()

	e.samples = append(e.samples, TimestampedProgress{
		Timestamp: now,
		Percent:   percent,
	})

	if len(e.samples) > e.maxSamples {
		e.samples = e.samples[len(e.samples)-e.maxSamples:]
	}

	e.pruneOldSamples(now)
}

// pruneOldSamples removes samples older than maxTimeWindow.
// When every sample is stale the window empties entirely.
func (e *ETACalculator) pruneOldSamples(now time.Time) {
	cutoff := now.Add(-e.maxTimeWindow)

	firstValid := len(e.samples)
	for i, sample := range e.samples {
		if sample.Timestamp.After(cutoff) {
			firstValid = i
			break
		}
	}

	e.samples = e.samples[firstValid:]
}

// CalculateETA computes estimated time to completion from recorded samples.
// Returns false when fewer than two samples exist or no progress was made.
func (e *ETACalculator) CalculateETA(currentPercent int) (time.Duration, bool) {
	if len(e.samples) < 2 {
		return 0, false
	}

	if currentPercent >= 100 {
		return 0, true
	}

	first := e.samples[0]
	last := e.samples[len(e.samples)-1]

	timeDelta := last.Timestamp.Sub(first.Timestamp)
	percentDelta := last.Percent - first.Percent

	if percentDelta <= 0 || timeDelta <= 0 {
		return 0, false
	}

	perPercent := timeDelta / time.Duration(percentDelta)
	eta := time.Duration(100-currentPercent) * perPercent

	return eta, true
}

// FormatETA renders a duration as short human copy
// Example: 95s -> "1m 35s"
func FormatETA(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int(d.Seconds())
	switch {
	case totalSeconds < 60:
		return fmt.Sprintf("%ds", totalSeconds)
	case totalSeconds < 3600:
		return fmt.Sprintf("%dm %ds", totalSeconds/60, totalSeconds%60)
	default:
		return fmt.Sprintf("%dh %dm", totalSeconds/3600, (totalSeconds%3600)/60)
	}
}

// FormatETASeconds renders a server-reported eta_seconds value.
// The server's estimate wins over local calculation when present.
func FormatETASeconds(seconds float64) string {
	return FormatETA(time.Duration(seconds * float64(time.Second)))
}

// ETALabel returns display copy for the time remaining on a watched job.
// A server-reported estimate wins; otherwise the locally observed progress
// rate is used. Returns false while neither source can produce an estimate.
func ETALabel(calc *ETACalculator, serverETASeconds *float64, currentPercent int) (string, bool) {
	if serverETASeconds != nil {
		return FormatETASeconds(*serverETASeconds), true
	}
	if eta, ok := calc.CalculateETA(currentPercent); ok {
		return FormatETA(eta), true
	}
	return "", false
}
