// Package genai sends schema-constrained prompts to a hosted language model and
// decodes the structured reply.
package genai

import (
	"context"
	"errors"
)

var (
	// ErrMalformedResponse means the reply did not match the declared schema.
	ErrMalformedResponse = errors.New("malformed response from generative service")
	// ErrBlocked means the service refused to answer, usually on safety grounds.
	ErrBlocked = errors.New("generation blocked by the generative service")
	// ErrNotConfigured means no API key was provided.
	ErrNotConfigured = errors.New("generative service is not configured")
)

// Schema describes the JSON the model must return, in the subset of OpenAPI the
// Gemini API accepts.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// SafetySetting maps a harm category onto a blocking threshold.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// Request is a fully rendered prompt plus its expected response shape.
type Request struct {
	Flow   string
	Prompt string
	Schema *Schema
	Safety []SafetySetting
}

// Validator is implemented by reply types that can check their own content.
// GenerateJSON runs it after decoding, so a rejected reply counts as malformed.
type Validator interface {
	Validate() error
}

// Generator produces a JSON document for req and decodes it into out.
type Generator interface {
	GenerateJSON(ctx context.Context, req Request, out interface{}) error
}
