package resolver

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/formfill"
)

// systemPrompt frames the model's job: map document facts onto the page's
// fields without inventing values or altering selectors.
const systemPrompt = `You are a form-filling assistant. You receive a list of form field descriptors extracted from a web page, a user document containing personal or business information, and optionally a screenshot of the page.

Produce a value for every field whose answer is clearly supported by the document. Follow these rules strictly:
- Echo each field's "selector" exactly as given. Never invent or modify selectors.
- Set "kind" to one of: text, checkbox, radio, select, multi_select.
- "value" is always a string. For checkboxes use "yes" or "no". For radio and select fields use one of the listed option values or labels. For multi_select fields encode the chosen values as a JSON array string, e.g. "[\"Red\",\"Blue\"]".
- Skip fields the document does not answer. Do not guess.`

// buildUserPrompt assembles the per-request prompt: page context, the field
// descriptors as JSON, and the document text.
func buildUserPrompt(fields []formfill.FieldDescriptor, page PageContext, documentText string) (string, error) {
	fieldsJSON, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", err
	}

	var prompt strings.Builder

	if page.URL != "" {
		fmt.Fprintf(&prompt, "Page URL: %s\n", page.URL)
	}
	if page.Title != "" {
		fmt.Fprintf(&prompt, "Page Title: %s\n", page.Title)
	}
	if page.URL != "" || page.Title != "" {
		prompt.WriteString("\n")
	}

	prompt.WriteString("Form fields extracted from the page:\n```json\n")
	prompt.Write(fieldsJSON)
	prompt.WriteString("\n```\n\n")

	prompt.WriteString("User document:\n```\n")
	prompt.WriteString(documentText)
	prompt.WriteString("\n```\n\n")

	prompt.WriteString(`Respond with a JSON object of the form {"mappings": [{"selector": "...", "kind": "...", "value": "..."}]}.`)

	return prompt.String(), nil
}
