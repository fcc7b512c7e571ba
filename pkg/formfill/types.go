package formfill

// Mapping kinds produced by the value-resolution step. Kind is free-form and
// matched case-insensitively; it only influences multi_select value decoding.
// The actual write path is keyed by the resolved control, not the kind hint.
const (
	KindText        = "text"
	KindCheckbox    = "checkbox"
	KindRadio       = "radio"
	KindSelect      = "select"
	KindMultiSelect = "multi_select"
)

// FieldDescriptor is the serialized snapshot of one fillable control at
// extraction time. Descriptors are created fresh on every extraction and are
// never persisted; the selector is the round-trip key the resolver must echo
// back unchanged.
type FieldDescriptor struct {
	Selector     string        `json:"selector"`
	Tag          string        `json:"tag"`
	Type         string        `json:"type"`
	Name         string        `json:"name"`
	ID           string        `json:"id"`
	Placeholder  string        `json:"placeholder"`
	Label        string        `json:"label"`
	ChildCount   int           `json:"childCount"`
	CurrentValue string        `json:"currentValue"`
	Multiple     bool          `json:"multiple"`
	Checked      bool          `json:"checked"`
	Options      []Option      `json:"options,omitempty"`
	RadioGroup   []RadioOption `json:"radioGroup,omitempty"`
}

// Option describes one choice of a select control.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// RadioOption describes one member of a radio group.
type RadioOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Mapping instructs the applicator to write a value into the control located
// by Selector. Value is always a string on the wire; multi-select values are
// encoded as a JSON-array-shaped string.
type Mapping struct {
	Selector string `json:"selector"`
	Kind     string `json:"kind"`
	Value    string `json:"value"`
}

// Values decodes the mapping's value into individual tokens. multi_select
// values that look like a JSON array are expanded; everything else, including
// arrays that fail to parse, stays a single opaque token.
func (m Mapping) Values() []string {
	_, tokens := normalizeValue(m)
	return tokens
}

// ApplyResult tallies one apply batch. Either the counts are meaningful or
// Error carries the message of an unexpected failure, never both.
type ApplyResult struct {
	UpdatedCount int    `json:"updatedCount"`
	SkippedCount int    `json:"skippedCount"`
	Error        string `json:"error,omitempty"`
}

// ExtractResponse is the reply to an extract request.
type ExtractResponse struct {
	Fields []FieldDescriptor `json:"fields"`
	Error  string            `json:"error,omitempty"`
}

// ApplyRequest carries the mappings to apply.
type ApplyRequest struct {
	Mappings []Mapping `json:"mappings"`
}
