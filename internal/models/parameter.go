package models

import (
	"errors"
	"fmt"
	"strings"
)

// ParameterSchema declares one input of an operation: its type, constraints,
// and default. The Type tag determines which optional fields are meaningful;
// constraints inconsistent with the tag (e.g. Choices on an integer schema)
// never drive validation.
type ParameterSchema struct {
	Name        string        `json:"param_name"`
	Type        ParameterType `json:"type"`
	Required    bool          `json:"required"`
	Description string        `json:"description"`
	Default     any           `json:"default,omitempty"`
	Min         *float64      `json:"min,omitempty"`     // integer/float only
	Max         *float64      `json:"max,omitempty"`     // integer/float only
	Choices     []string      `json:"choices,omitempty"` // choice only
}

// DisplayLabel returns the human form of the parameter name
// Example: "target_bitrate" -> "target bitrate"
func (p *ParameterSchema) DisplayLabel() string {
	return strings.ReplaceAll(p.Name, "_", " ")
}

// HasMin reports whether a lower bound is declared
func (p *ParameterSchema) HasMin() bool {
	return p.Min != nil
}

// HasMax reports whether an upper bound is declared
func (p *ParameterSchema) HasMax() bool {
	return p.Max != nil
}

// Validate checks if the schema itself is well-formed
func (p *ParameterSchema) Validate() error {
	if p.Name == "" {
		return errors.New("param_name is required")
	}

	if !IsValidParameterType(p.Type) {
		return fmt.Errorf("invalid parameter type: %s", p.Type)
	}

	if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
		return fmt.Errorf("parameter '%s': min (%v) must be <= max (%v)", p.Name, *p.Min, *p.Max)
	}

	if p.Type == ParameterTypeChoice {
		if len(p.Choices) == 0 {
			return fmt.Errorf("parameter '%s': choice type requires non-empty choices", p.Name)
		}
		if p.Default != nil {
			def := fmt.Sprintf("%v", p.Default)
			found := false
			for _, c := range p.Choices {
				if c == def {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("parameter '%s': default '%s' is not one of the declared choices", p.Name, def)
			}
		}
	}

	return nil
}
