// Package types defines the shared message shapes exchanged with LLM
// providers.
package types

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single conversation message sent to or received from an LLM
// provider. Images carries optional data-URL encoded attachments (page
// screenshots) for providers that accept multimodal input.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
	Images  []string    `json:"images,omitempty"`
}

// NewSystemMessage creates a system-role message.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user-role message.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant-role message.
func NewAssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}

// ModelInfo describes the model behind a provider.
type ModelInfo struct {
	Name      string                 `json:"name"`
	Provider  string                 `json:"provider"`
	MaxTokens int                    `json:"max_tokens"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
