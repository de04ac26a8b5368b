package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
)

// APIClient handles communication with the media-processing service
type APIClient struct {
	config     models.ServerConfig
	httpClient *HTTPClient
	logger     *lib.Logger
}

// NewAPIClient creates a client for the media-processing service
func NewAPIClient(config models.ServerConfig, httpClient *HTTPClient, logger *lib.Logger) *APIClient {
	return &APIClient{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// endpoint joins the base URL with an API path
func (c *APIClient) endpoint(path string) string {
	return strings.TrimSuffix(c.config.BaseURL, "/") + path
}

// authorize attaches authentication and correlation headers
func (c *APIClient) authorize(req *http.Request) {
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	req.Header.Set("Accept", "application/json")
}

// ListOperations fetches every operation definition the server offers
func (c *APIClient) ListOperations() ([]models.OperationDefinition, error) {
	body, err := c.getJSON(c.endpoint("/api/operations/"))
	if err != nil {
		return nil, err
	}

	var operations []models.OperationDefinition
	if err := json.Unmarshal(body, &operations); err != nil {
		return nil, fmt.Errorf("failed to decode operations: %w", err)
	}

	return operations, nil
}

// GetOperation fetches a single operation definition by name
func (c *APIClient) GetOperation(name string) (*models.OperationDefinition, error) {
	body, err := c.getJSON(c.endpoint("/api/operations/" + name + "/"))
	if err != nil {
		return nil, err
	}

	var operation models.OperationDefinition
	if err := json.Unmarshal(body, &operation); err != nil {
		return nil, fmt.Errorf("failed to decode operation: %w", err)
	}

	return &operation, nil
}

// CreateJob submits a job: operation name, JSON-encoded parameters, and the
// file contents as a multipart upload. A fresh request ID is attached so the
// server can deduplicate retried submissions.
func (c *APIClient) CreateJob(params models.CreateJobParams, file io.Reader) (*models.Job, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("operation", params.Operation); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	paramJSON, err := json.Marshal(params.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}
	if err := writer.WriteField("parameters", string(paramJSON)); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	part, err := writer.CreatePart(fileHeader(params.File))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req, err := http.NewRequest("POST", c.endpoint("/api/jobs/"), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, lib.ErrNetworkUnreachable(c.config.BaseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.responseError(resp.StatusCode, body, "Job submission was rejected")
	}

	var job models.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}

	lib.LogJobSubmitted(c.logger, job.ID, params.Operation, params.File.Name)
	return &job, nil
}

// GetJob fetches the full view of a job
func (c *APIClient) GetJob(jobID string) (*models.Job, error) {
	body, err := c.getJSON(c.endpoint("/api/jobs/" + jobID + "/"))
	if err != nil {
		return nil, err
	}

	var job models.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}

	return &job, nil
}

// ListJobs fetches one page of the job listing
func (c *APIClient) ListJobs() (*models.PaginatedResponse[models.JobListItem], error) {
	body, err := c.getJSON(c.endpoint("/api/jobs/"))
	if err != nil {
		return nil, err
	}

	// The listing endpoint can answer with either the paginated envelope
	// or an error envelope; tell them apart structurally before decoding.
	var probe map[string]any
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode job listing: %w", err)
	}
	if lib.IsAPIError(probe) {
		parsed := lib.ParseAPIValidationErrors(body)
		return nil, lib.WrapError(lib.CategoryService, lib.FormatAPIValidationErrors(parsed), nil)
	}
	if !lib.IsPaginatedResponse(probe) {
		return nil, fmt.Errorf("unexpected job listing shape")
	}

	var page models.PaginatedResponse[models.JobListItem]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode job listing: %w", err)
	}

	return &page, nil
}

// GetJobStatus fetches the minimal polling projection of a job
func (c *APIClient) GetJobStatus(jobID string) (*models.JobStatusInfo, error) {
	body, err := c.getJSON(c.endpoint("/api/jobs/" + jobID + "/status/"))
	if err != nil {
		return nil, err
	}

	var status models.JobStatusInfo
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to decode job status: %w", err)
	}

	return &status, nil
}

// RetryJob asks the server to re-run a failed job
func (c *APIClient) RetryJob(jobID string) (*models.Job, error) {
	req, err := http.NewRequest("POST", c.endpoint("/api/jobs/"+jobID+"/retry/"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, lib.ErrNetworkUnreachable(c.config.BaseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return nil, lib.ErrJobNotFound(jobID)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, c.responseError(resp.StatusCode, body, "Retry was rejected")
	}

	var job models.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}

	return &job, nil
}

// DeleteJob removes a job and its files from the server
func (c *APIClient) DeleteJob(jobID string) error {
	req, err := http.NewRequest("DELETE", c.endpoint("/api/jobs/"+jobID+"/"), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return lib.ErrNetworkUnreachable(c.config.BaseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return lib.ErrJobNotFound(jobID)
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return c.responseError(resp.StatusCode, body, "Delete was rejected")
	}

	return nil
}

// DownloadOutput streams a completed job's output file to a writer
func (c *APIClient) DownloadOutput(job *models.Job, writer io.Writer, progressCallback func(int64)) (int64, error) {
	if !models.HasDownloadableOutput(job) {
		return 0, lib.WrapError(lib.CategoryValidation,
			fmt.Sprintf("Job '%s' has no downloadable output", job.ID), nil,
			"Only completed jobs with an output file can be downloaded",
			"Use 'mediaforge job status' to check the job state")
	}

	if progressCallback != nil {
		return c.httpClient.DownloadWithProgress(job.OutputFile.DownloadURL, writer, progressCallback)
	}
	return c.httpClient.Download(job.OutputFile.DownloadURL, writer)
}

// getJSON performs an authorized GET and returns the body for 2xx responses
func (c *APIClient) getJSON(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, lib.ErrNetworkUnreachable(c.config.BaseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.responseError(resp.StatusCode, body, "Request failed")
	}

	return body, nil
}

// responseError translates an error response into a ForgeError, preferring
// the server's own error envelope when it parses
func (c *APIClient) responseError(statusCode int, body []byte, fallback string) error {
	if statusCode >= 500 {
		return lib.ErrServiceUnavailable(statusCode, fmt.Errorf("HTTP %d", statusCode))
	}
	return lib.ErrServiceBadRequest(statusCode, body, fallback)
}

// fileHeader builds the multipart part header for the upload, preserving the
// client-detected MIME type when one is known
func fileHeader(file models.FileInfo) textproto.MIMEHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.Name))
	if file.MIMEType != "" {
		header.Set("Content-Type", file.MIMEType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}
	return header
}
