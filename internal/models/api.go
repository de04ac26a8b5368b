package models

// PaginatedResponse is the list envelope returned by collection endpoints
type PaginatedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// CreateJobParams is the request shape for job submission. Parameters are
// serialized to a JSON string field before transport; the file travels as
// the multipart payload.
type CreateJobParams struct {
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters"`
	File       FileInfo       `json:"file"`
}
