// Package resolver turns extracted field descriptors plus the user's document
// into concrete field mappings by consulting an LLM provider.
//
// The resolver owns prompt construction, the response JSON schema, and
// defensive parsing of the model's output. It returns mappings exactly as the
// applicator expects them: selector strings echoed from extraction, a kind
// hint, and string values (JSON-array-shaped for multi-selects).
package resolver

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/formfill"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/llm"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/llm/tokenizer"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/logging"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/types"
)

// DefaultMaxDocumentTokens bounds how much of the user document is included
// in the prompt.
const DefaultMaxDocumentTokens = 8000

// PageContext carries page-level metadata given to the model alongside the
// extracted fields. Screenshot, when present, is PNG bytes attached to the
// prompt as an image.
type PageContext struct {
	URL        string
	Title      string
	Screenshot []byte
}

// Resolver resolves field descriptors to mappings through an LLM provider.
type Resolver struct {
	provider          llm.Provider
	tokenizer         *tokenizer.Tokenizer
	maxDocumentTokens int
	logger            *logging.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTokenizer enables token-accurate document truncation. Without it the
// resolver falls back to a character-based approximation.
func WithTokenizer(t *tokenizer.Tokenizer) Option {
	return func(r *Resolver) {
		r.tokenizer = t
	}
}

// WithMaxDocumentTokens overrides the document token budget.
func WithMaxDocumentTokens(max int) Option {
	return func(r *Resolver) {
		r.maxDocumentTokens = max
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a resolver over the given provider.
func New(provider llm.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider:          provider,
		maxDocumentTokens: DefaultMaxDocumentTokens,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve asks the model for one mapping per fillable field it can answer
// from the document. Fields the document does not cover are simply absent
// from the result; the applicator treats the list as best-effort anyway.
func (r *Resolver) Resolve(ctx context.Context, fields []formfill.FieldDescriptor, page PageContext, documentText string) ([]formfill.Mapping, error) {
	if r.provider == nil {
		return nil, fmt.Errorf("LLM provider not available")
	}
	if len(fields) == 0 {
		return nil, nil
	}

	documentText = r.truncateDocument(documentText)

	userPrompt, err := buildUserPrompt(fields, page, documentText)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	userMessage := types.NewUserMessage(userPrompt)
	if len(page.Screenshot) > 0 {
		userMessage.Images = []string{screenshotDataURL(page.Screenshot)}
	}

	messages := []*types.Message{
		types.NewSystemMessage(systemPrompt),
		userMessage,
	}

	response, err := r.provider.CompleteStructured(ctx, messages, mappingsSchema())
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}

	mappings, err := parseMappings(response.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mappings from model response: %w", err)
	}

	r.logf("resolved %d mappings for %d fields", len(mappings), len(fields))
	return mappings, nil
}

// truncateDocument enforces the document token budget, using the tokenizer
// when available and a rough 4-characters-per-token estimate otherwise.
func (r *Resolver) truncateDocument(text string) string {
	if r.maxDocumentTokens <= 0 {
		return text
	}

	if r.tokenizer != nil {
		return r.tokenizer.Truncate(text, r.maxDocumentTokens)
	}

	maxChars := r.maxDocumentTokens * 4
	if len(text) > maxChars {
		return text[:maxChars]
	}
	return text
}

func screenshotDataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func (r *Resolver) logf(format string, v ...interface{}) {
	if r.logger != nil {
		r.logger.Infof(format, v...)
	}
}
