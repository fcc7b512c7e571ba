// Package llm provides abstractions for LLM provider integration.
//
// Providers handle API communication with LLM services and return plain
// messages. They know nothing about form fields or mappings; the resolver
// layer owns prompt construction and response interpretation. This keeps
// providers reusable and testable independently of the filling pipeline.
package llm

import (
	"context"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/types"
)

// ResponseSchema asks the provider to constrain the model's output to a JSON
// schema (OpenAI structured outputs). Providers that cannot honor it fall
// back to free-form completion; callers must still parse defensively.
type ResponseSchema struct {
	Name        string
	Description string
	Schema      map[string]interface{}
}

// Provider defines the interface for LLM integrations.
//
// The filling pipeline performs one completion per run (extract, resolve,
// apply), so the interface is non-streaming: a single blocking Complete call
// per phase matches the request/response shape of the rest of the system.
type Provider interface {
	// Complete sends messages to the LLM and returns the full response.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// CompleteStructured behaves like Complete but constrains the response
	// to the given JSON schema when the backing API supports it.
	CompleteStructured(ctx context.Context, messages []*types.Message, schema *ResponseSchema) (*types.Message, error)

	// GetModelInfo returns information about the LLM model being used.
	GetModelInfo() *types.ModelInfo

	// GetModel returns the model name being used.
	GetModel() string

	// GetBaseURL returns the base URL being used for API requests.
	GetBaseURL() string

	// GetAPIKey returns the API key being used for authentication.
	GetAPIKey() string
}
