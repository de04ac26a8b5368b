package ui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge/internal/ui"
)

func TestCalculateETA_NeedsTwoSamples(t *testing.T) {
	calc := ui.NewETACalculator()

	_, ok := calc.CalculateETA(10)
	assert.False(t, ok)

	calc.RecordProgress(10)
	_, ok = calc.CalculateETA(10)
	assert.False(t, ok)
}

func TestCalculateETA_CompleteJobIsZero(t *testing.T) {
	calc := ui.NewETACalculator()
	calc.RecordProgress(50)
	calc.RecordProgress(100)

	eta, ok := calc.CalculateETA(100)
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), eta)
}

func TestCalculateETA_NoProgressMeansNoEstimate(t *testing.T) {
	calc := ui.NewETACalculator()
	calc.RecordProgress(40)
	time.Sleep(2 * time.Millisecond)
	calc.RecordProgress(40)

	_, ok := calc.CalculateETA(40)
	assert.False(t, ok)
}

func TestCalculateETA_EstimatesFromObservedRate(t *testing.T) {
	calc := ui.NewETACalculator()
	calc.RecordProgress(20)
	time.Sleep(10 * time.Millisecond)
	calc.RecordProgress(40)

	eta, ok := calc.CalculateETA(40)
	require.True(t, ok)
	assert.Greater(t, eta, time.Duration(0))
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds only", 45 * time.Second, "45s"},
		{"minutes and seconds", 95 * time.Second, "1m 35s"},
		{"hours and minutes", 2*time.Hour + 10*time.Minute, "2h 10m"},
		{"zero", 0, "0s"},
		{"negative clamps to zero", -5 * time.Second, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ui.FormatETA(tt.duration))
		})
	}
}

func TestFormatETASeconds(t *testing.T) {
	assert.Equal(t, "18s", ui.FormatETASeconds(18.5))
	assert.Equal(t, "1m 30s", ui.FormatETASeconds(90))
}

func TestETALabel_ServerEstimateWins(t *testing.T) {
	calc := ui.NewETACalculator()
	calc.RecordProgress(10)
	calc.RecordProgress(90)

	serverETA := 95.0
	label, ok := ui.ETALabel(calc, &serverETA, 90)

	require.True(t, ok)
	assert.Equal(t, "1m 35s", label)
}

func TestETALabel_FallsBackToObservedRate(t *testing.T) {
	calc := ui.NewETACalculator()
	calc.RecordProgress(20)
	time.Sleep(10 * time.Millisecond)
	calc.RecordProgress(40)

	label, ok := ui.ETALabel(calc, nil, 40)

	require.True(t, ok)
	assert.NotEmpty(t, label)
}

func TestETALabel_NoEstimateAvailable(t *testing.T) {
	calc := ui.NewETACalculator()
	calc.RecordProgress(10)

	_, ok := ui.ETALabel(calc, nil, 10)
	assert.False(t, ok)
}
