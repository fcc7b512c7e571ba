// Package document loads the user-supplied document that the resolver mines
// for field values: plain text or markdown, a YAML profile, or a PDF.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported document formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatPDF      = "pdf"
)

// Document is the loaded, text-normalized form of the user's source document.
type Document struct {
	Path   string
	Format string
	Text   string
}

// Load reads the file at path and normalizes it to text according to its
// extension. Unknown extensions are treated as plain text.
func Load(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := extractPDFText(path)
		if err != nil {
			return nil, fmt.Errorf("failed to extract PDF text from %s: %w", path, err)
		}
		return &Document{Path: path, Format: FormatPDF, Text: text}, nil

	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", path, err)
		}
		text, err := flattenYAML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML document %s: %w", path, err)
		}
		return &Document{Path: path, Format: FormatYAML, Text: text}, nil

	case ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", path, err)
		}
		return &Document{Path: path, Format: FormatMarkdown, Text: string(data)}, nil

	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", path, err)
		}
		return &Document{Path: path, Format: FormatText, Text: string(data)}, nil
	}
}

// flattenYAML renders a YAML mapping as sorted "dotted.key: value" lines so
// nested profile structures read naturally in a prompt.
func flattenYAML(data []byte) (string, error) {
	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return "", err
	}

	entries := make(map[string]string)
	flattenInto(entries, "", parsed)

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, entries[k])
	}
	return b.String(), nil
}

func flattenInto(entries map[string]string, prefix string, value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, child := range v {
			childPrefix := key
			if prefix != "" {
				childPrefix = prefix + "." + key
			}
			flattenInto(entries, childPrefix, child)
		}
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		entries[prefix] = strings.Join(parts, ", ")
	default:
		entries[prefix] = fmt.Sprintf("%v", v)
	}
}
