package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/formfill"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/llm"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/types"
)

// mockProvider captures the request and replies with a canned response.
type mockProvider struct {
	response string
	err      error

	gotMessages []*types.Message
	gotSchema   *llm.ResponseSchema
	calls       int
}

func (m *mockProvider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	return m.CompleteStructured(ctx, messages, nil)
}

func (m *mockProvider) CompleteStructured(ctx context.Context, messages []*types.Message, schema *llm.ResponseSchema) (*types.Message, error) {
	m.calls++
	m.gotMessages = messages
	m.gotSchema = schema
	if m.err != nil {
		return nil, m.err
	}
	return types.NewAssistantMessage(m.response), nil
}

func (m *mockProvider) GetModelInfo() *types.ModelInfo { return &types.ModelInfo{Name: "mock"} }
func (m *mockProvider) GetModel() string               { return "mock" }
func (m *mockProvider) GetBaseURL() string             { return "" }
func (m *mockProvider) GetAPIKey() string              { return "" }

func sampleFields() []formfill.FieldDescriptor {
	return []formfill.FieldDescriptor{
		{Selector: "#name", Tag: "input", Type: "text", Label: "Full name"},
		{Selector: "#country", Tag: "select", Options: []formfill.Option{
			{Value: "US", Text: "United States"},
		}},
	}
}

func TestResolveParsesMappingsObject(t *testing.T) {
	provider := &mockProvider{
		response: `{"mappings":[{"selector":"#name","kind":"text","value":"Alice"}]}`,
	}
	r := New(provider)

	mappings, err := r.Resolve(context.Background(), sampleFields(), PageContext{}, "Name: Alice")
	require.NoError(t, err)

	require.Len(t, mappings, 1)
	assert.Equal(t, formfill.Mapping{Selector: "#name", Kind: "text", Value: "Alice"}, mappings[0])
}

func TestResolveParsesBareArray(t *testing.T) {
	provider := &mockProvider{
		response: `[{"selector":"#name","kind":"text","value":"Bob"}]`,
	}
	r := New(provider)

	mappings, err := r.Resolve(context.Background(), sampleFields(), PageContext{}, "doc")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "Bob", mappings[0].Value)
}

func TestResolveStripsCodeFences(t *testing.T) {
	provider := &mockProvider{
		response: "```json\n{\"mappings\":[{\"selector\":\"#name\",\"kind\":\"text\",\"value\":\"Carol\"}]}\n```",
	}
	r := New(provider)

	mappings, err := r.Resolve(context.Background(), sampleFields(), PageContext{}, "doc")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "Carol", mappings[0].Value)
}

func TestResolvePromptContents(t *testing.T) {
	provider := &mockProvider{response: `{"mappings":[]}`}
	r := New(provider)

	_, err := r.Resolve(context.Background(), sampleFields(), PageContext{
		URL:   "https://example.com/apply",
		Title: "Application",
	}, "Name: Alice\nCountry: United States")
	require.NoError(t, err)

	require.Len(t, provider.gotMessages, 2)
	system, user := provider.gotMessages[0], provider.gotMessages[1]

	assert.Equal(t, types.RoleSystem, system.Role)
	assert.Contains(t, system.Content, "selector")

	assert.Equal(t, types.RoleUser, user.Role)
	assert.Contains(t, user.Content, "#name")
	assert.Contains(t, user.Content, "https://example.com/apply")
	assert.Contains(t, user.Content, "Name: Alice")

	require.NotNil(t, provider.gotSchema)
	assert.Equal(t, "form_field_mappings", provider.gotSchema.Name)
}

func TestResolveAttachesScreenshot(t *testing.T) {
	provider := &mockProvider{response: `{"mappings":[]}`}
	r := New(provider)

	_, err := r.Resolve(context.Background(), sampleFields(), PageContext{
		Screenshot: []byte{0x89, 0x50, 0x4E, 0x47},
	}, "doc")
	require.NoError(t, err)

	require.Len(t, provider.gotMessages, 2)
	images := provider.gotMessages[1].Images
	require.Len(t, images, 1)
	assert.Contains(t, images[0], "data:image/png;base64,")
}

func TestResolveEmptyFieldsSkipsProvider(t *testing.T) {
	provider := &mockProvider{response: `{"mappings":[]}`}
	r := New(provider)

	mappings, err := r.Resolve(context.Background(), nil, PageContext{}, "doc")
	require.NoError(t, err)
	assert.Nil(t, mappings)
	assert.Equal(t, 0, provider.calls)
}

func TestResolveProviderError(t *testing.T) {
	provider := &mockProvider{err: fmt.Errorf("rate limited")}
	r := New(provider)

	_, err := r.Resolve(context.Background(), sampleFields(), PageContext{}, "doc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestResolveMalformedResponse(t *testing.T) {
	provider := &mockProvider{response: "I could not find any values, sorry."}
	r := New(provider)

	_, err := r.Resolve(context.Background(), sampleFields(), PageContext{}, "doc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestTruncateDocumentFallback(t *testing.T) {
	r := New(&mockProvider{}, WithMaxDocumentTokens(2))

	// Without a tokenizer the budget is approximated at 4 chars per token.
	assert.Equal(t, "12345678", r.truncateDocument("123456789abc"))
	assert.Equal(t, "short", r.truncateDocument("short"))
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"fence with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without language", "```\n{\"a\":1}\n```", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.input))
		})
	}
}
