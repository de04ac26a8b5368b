package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediaforge/mediaforge/internal/models"
)

var allStatuses = []models.JobStatus{
	models.JobStatusPending,
	models.JobStatusQueued,
	models.JobStatusProcessing,
	models.JobStatusCompleted,
	models.JobStatusFailed,
}

func TestStatusClassesPartition(t *testing.T) {
	// Every status is either active or final, never both
	for _, status := range allStatuses {
		active := models.IsActiveStatus(status)
		final := models.IsFinalStatus(status)
		assert.NotEqual(t, active, final, "status %s must be in exactly one class", status)
	}
}

func TestIsActiveStatus(t *testing.T) {
	assert.True(t, models.IsActiveStatus(models.JobStatusPending))
	assert.True(t, models.IsActiveStatus(models.JobStatusQueued))
	assert.True(t, models.IsActiveStatus(models.JobStatusProcessing))
	assert.False(t, models.IsActiveStatus(models.JobStatusCompleted))
	assert.False(t, models.IsActiveStatus(models.JobStatusFailed))
}

func TestIsSuccessAndFailureStatus(t *testing.T) {
	for _, status := range allStatuses {
		assert.Equal(t, status == models.JobStatusCompleted, models.IsSuccessStatus(status))
		assert.Equal(t, status == models.JobStatusFailed, models.IsFailureStatus(status))
	}
}

func TestIsValidJobStatus(t *testing.T) {
	for _, status := range allStatuses {
		assert.True(t, models.IsValidJobStatus(status))
	}
	assert.False(t, models.IsValidJobStatus(models.JobStatus("cancelled")))
	assert.False(t, models.IsValidJobStatus(models.JobStatus("")))
}

func TestIsValidMediaType(t *testing.T) {
	for _, mediaType := range models.AllMediaTypes {
		assert.True(t, models.IsValidMediaType(mediaType))
	}
	assert.False(t, models.IsValidMediaType(models.MediaType("document")))
}

func TestIsValidParameterType(t *testing.T) {
	for _, paramType := range []models.ParameterType{
		models.ParameterTypeInteger,
		models.ParameterTypeFloat,
		models.ParameterTypeString,
		models.ParameterTypeBoolean,
		models.ParameterTypeChoice,
	} {
		assert.True(t, models.IsValidParameterType(paramType))
	}
	assert.False(t, models.IsValidParameterType(models.ParameterType("enum")))
}
