package models

import (
	"fmt"
	"strings"
)

// OperationDefinition describes one media-processing capability offered by the
// server: what kind of media it accepts, which formats it reads and writes,
// and the parameters a job may carry.
type OperationDefinition struct {
	Name          string            `json:"operation_name"`
	MediaType     MediaType         `json:"media_type"`
	Description   string            `json:"description"`
	Parameters    []ParameterSchema `json:"parameters"`
	InputFormats  []string          `json:"input_formats"`  // empty means "any"
	OutputFormats []string          `json:"output_formats"` // empty means "same as input"
}

// DisplayName returns the human form of the operation name
// Example: "extract_audio" -> "extract audio"
func (o *OperationDefinition) DisplayName() string {
	return strings.ReplaceAll(o.Name, "_", " ")
}

// ParameterByName finds a parameter schema by its stable name
func (o *OperationDefinition) ParameterByName(name string) (ParameterSchema, bool) {
	for _, p := range o.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSchema{}, false
}

// Validate checks if the operation definition is well-formed
func (o *OperationDefinition) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("operation_name is required")
	}

	if !IsValidMediaType(o.MediaType) {
		return fmt.Errorf("operation '%s': invalid media_type: %s", o.Name, o.MediaType)
	}

	seen := make(map[string]bool, len(o.Parameters))
	for i := range o.Parameters {
		p := &o.Parameters[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("operation '%s': %w", o.Name, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("operation '%s': duplicate parameter name '%s'", o.Name, p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}

// GroupedOperations partitions a flat operation list by media type.
// Derived via GroupOperationsByMediaType, never hand-constructed.
type GroupedOperations struct {
	Video []OperationDefinition `json:"video"`
	Image []OperationDefinition `json:"image"`
	Audio []OperationDefinition `json:"audio"`
}

// GroupOperationsByMediaType partitions operations by their media type.
// Every operation lands in exactly one group; declared order is preserved
// within each group. Operations with an unrecognized media type are dropped.
func GroupOperationsByMediaType(operations []OperationDefinition) GroupedOperations {
	var grouped GroupedOperations

	for _, op := range operations {
		switch op.MediaType {
		case MediaTypeVideo:
			grouped.Video = append(grouped.Video, op)
		case MediaTypeImage:
			grouped.Image = append(grouped.Image, op)
		case MediaTypeAudio:
			grouped.Audio = append(grouped.Audio, op)
		}
	}

	return grouped
}

// ForMediaType returns the group for a given media type
func (g *GroupedOperations) ForMediaType(t MediaType) []OperationDefinition {
	switch t {
	case MediaTypeVideo:
		return g.Video
	case MediaTypeImage:
		return g.Image
	case MediaTypeAudio:
		return g.Audio
	default:
		return nil
	}
}

// Total returns the number of operations across all groups
func (g *GroupedOperations) Total() int {
	return len(g.Video) + len(g.Image) + len(g.Audio)
}
