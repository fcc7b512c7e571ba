package resolver

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/formfill"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/llm"
)

// mappingsSchema is the structured-output contract for the mapping list.
func mappingsSchema() *llm.ResponseSchema {
	return &llm.ResponseSchema{
		Name:        "form_field_mappings",
		Description: "Field-to-value mappings for filling a web form",
		Schema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"mappings": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"selector": map[string]interface{}{
								"type":        "string",
								"description": "CSS selector copied verbatim from the field descriptor",
							},
							"kind": map[string]interface{}{
								"type":        "string",
								"description": "One of: text, checkbox, radio, select, multi_select",
							},
							"value": map[string]interface{}{
								"type":        "string",
								"description": "Value to write; multi_select values are a JSON array string",
							},
						},
						"required":             []string{"selector", "kind", "value"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"mappings"},
			"additionalProperties": false,
		},
	}
}

// parseMappings decodes the model's response. Structured output should give
// bare JSON, but models behind non-conforming gateways still wrap responses
// in code fences, so those are stripped first. A bare top-level array is
// accepted as well.
func parseMappings(content string) ([]formfill.Mapping, error) {
	cleaned := stripCodeFence(strings.TrimSpace(content))

	var wrapped struct {
		Mappings []formfill.Mapping `json:"mappings"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil && wrapped.Mappings != nil {
		return wrapped.Mappings, nil
	}

	var bare []formfill.Mapping
	if err := json.Unmarshal([]byte(cleaned), &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("response is not a mappings object or array: %.200s", cleaned)
}

// stripCodeFence removes a surrounding ``` fence, with or without a language
// tag.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json")
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
