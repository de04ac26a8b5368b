package models

// MediaType classifies what kind of media an operation consumes
type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypeImage MediaType = "image"
	MediaTypeAudio MediaType = "audio"
)

// AllMediaTypes lists every recognized media type in display order
var AllMediaTypes = []MediaType{MediaTypeVideo, MediaTypeImage, MediaTypeAudio}

// IsValidMediaType checks if the media type is recognized
func IsValidMediaType(t MediaType) bool {
	switch t {
	case MediaTypeVideo, MediaTypeImage, MediaTypeAudio:
		return true
	default:
		return false
	}
}

// JobStatus defines the execution state of a processing job as reported by the server
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsValidJobStatus checks if the job status is recognized
func IsValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusPending, JobStatusQueued, JobStatusProcessing, JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}

// IsActiveStatus reports whether a status means the server is still working on the job
func IsActiveStatus(s JobStatus) bool {
	switch s {
	case JobStatusPending, JobStatusQueued, JobStatusProcessing:
		return true
	default:
		return false
	}
}

// IsFinalStatus reports whether a status is terminal; no further transitions follow
func IsFinalStatus(s JobStatus) bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// IsSuccessStatus reports whether a status means the job finished with usable output
func IsSuccessStatus(s JobStatus) bool {
	return s == JobStatusCompleted
}

// IsFailureStatus reports whether a status means the job terminated in error
func IsFailureStatus(s JobStatus) bool {
	return s == JobStatusFailed
}

// FileRole distinguishes the file a job consumed from the file it produced
type FileRole string

const (
	FileRoleInput  FileRole = "input"
	FileRoleOutput FileRole = "output"
)

// IsValidFileRole checks if the file role is recognized
func IsValidFileRole(r FileRole) bool {
	return r == FileRoleInput || r == FileRoleOutput
}

// ParameterType is the discriminator tag of a parameter schema
type ParameterType string

const (
	ParameterTypeInteger ParameterType = "integer"
	ParameterTypeFloat   ParameterType = "float"
	ParameterTypeString  ParameterType = "string"
	ParameterTypeBoolean ParameterType = "boolean"
	ParameterTypeChoice  ParameterType = "choice"
)

// IsValidParameterType checks if the parameter type is recognized
func IsValidParameterType(t ParameterType) bool {
	switch t {
	case ParameterTypeInteger, ParameterTypeFloat, ParameterTypeString, ParameterTypeBoolean, ParameterTypeChoice:
		return true
	default:
		return false
	}
}
