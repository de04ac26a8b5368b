package models

import "time"

// Job is the full server-side view of one execution of an operation against
// an uploaded file. The client never mutates a Job; it only classifies the
// observed state and decides whether continued polling is warranted.
type Job struct {
	ID             string         `json:"id"`
	Operation      string         `json:"operation"` // operation_name reference, not owned
	Status         JobStatus      `json:"status"`
	Progress       int            `json:"progress"` // 0-100
	Parameters     map[string]any `json:"parameters,omitempty"`
	ErrorMessage   *string        `json:"error_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
	ProcessingTime float64        `json:"processing_time,omitempty"` // seconds
	IsExpired      bool           `json:"is_expired"`
	InputFile      *JobFile       `json:"input_file,omitempty"`
	OutputFile     *JobFile       `json:"output_file,omitempty"`
}

// JobFile describes a file attached to a job
type JobFile struct {
	Role        FileRole `json:"role"`
	Name        string   `json:"name"`
	Size        int64    `json:"size"`
	MIMEType    string   `json:"mime_type"`
	DownloadURL string   `json:"download_url"`
}

// JobListItem is the reduced projection returned by job listings.
// Carries no parameters and no file payloads, only an output flag.
type JobListItem struct {
	ID           string     `json:"id"`
	Operation    string     `json:"operation"`
	Status       JobStatus  `json:"status"`
	Progress     int        `json:"progress"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	HasOutput    bool       `json:"has_output"`
}

// JobStatusInfo is the minimal projection used while polling a running job
type JobStatusInfo struct {
	Status       JobStatus `json:"status"`
	Progress     int       `json:"progress"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	ETASeconds   *float64  `json:"eta_seconds,omitempty"`
	IsComplete   bool      `json:"is_complete"`
	HasOutput    bool      `json:"has_output"`
}

// StatusBearer is the minimal capability shared by every job projection.
// Lifecycle predicates take this interface so Job, JobListItem, and
// JobStatusInfo can all drive the same status logic.
type StatusBearer interface {
	JobStatus() JobStatus
}

// OutputBearer extends StatusBearer with knowledge of whether the job
// produced a downloadable output
type OutputBearer interface {
	StatusBearer
	OutputAvailable() bool
}

// JobStatus returns the job's current status
func (j *Job) JobStatus() JobStatus { return j.Status }

// OutputAvailable reports whether the job carries an output file
func (j *Job) OutputAvailable() bool { return j.OutputFile != nil }

// JobStatus returns the list item's current status
func (j *JobListItem) JobStatus() JobStatus { return j.Status }

// OutputAvailable reports whether the server flagged an output for this job
func (j *JobListItem) OutputAvailable() bool { return j.HasOutput }

// JobStatus returns the polled status
func (s *JobStatusInfo) JobStatus() JobStatus { return s.Status }

// OutputAvailable reports whether the server flagged an output for this job
func (s *JobStatusInfo) OutputAvailable() bool { return s.HasOutput }

// IsJobActive reports whether the server is still working on the job
func IsJobActive(j StatusBearer) bool {
	return IsActiveStatus(j.JobStatus())
}

// IsJobFailed reports whether the job terminated in error
func IsJobFailed(j StatusBearer) bool {
	return IsFailureStatus(j.JobStatus())
}

// ShouldPollJob is the sole signal callers use to decide whether to keep
// issuing status requests. A job is worth polling exactly while it is active.
func ShouldPollJob(j StatusBearer) bool {
	return IsJobActive(j)
}

// HasDownloadableOutput reports whether the job finished successfully and
// its output can be fetched. Projections that carry a has_output flag and
// the full Job's output_file pointer must agree on every job.
func HasDownloadableOutput(j OutputBearer) bool {
	return IsSuccessStatus(j.JobStatus()) && j.OutputAvailable()
}
