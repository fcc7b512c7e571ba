package formfill

import (
	"fmt"
	"unicode/utf8"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/dom"
)

// maxValueLength caps the serialized current value of a control to bound the
// payload sent to the value-resolution step.
const maxValueLength = 200

// fillableCandidates selects every user-editable control kind we consider.
const fillableCandidates = "input, textarea, select"

// skippedInputTypes are input types that cannot or must not be offered as
// fillable. File inputs in particular cannot be populated programmatically.
var skippedInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"reset":  true,
	"file":   true,
}

// ExtractFields scans the document for fillable controls and serializes each
// into a FieldDescriptor, in document order. The pass is read-only and
// idempotent: extracting twice without DOM mutation yields equivalent results.
func ExtractFields(doc *dom.Document) []FieldDescriptor {
	var fields []FieldDescriptor

	for _, el := range doc.FindAll(fillableCandidates) {
		if el.Disabled() {
			continue
		}
		if el.Tag() == "input" && skippedInputTypes[el.Type()] {
			continue
		}
		fields = append(fields, describeField(doc, el))
	}

	return fields
}

// describeField serializes a single control into a FieldDescriptor.
func describeField(doc *dom.Document, el *dom.Element) FieldDescriptor {
	tag := el.Tag()

	fieldType := el.Type()
	if tag == "input" && fieldType == "" {
		fieldType = "text"
	}

	desc := FieldDescriptor{
		Selector:     BuildSelector(el),
		Tag:          tag,
		Type:         fieldType,
		Name:         el.Name(),
		ID:           el.ID(),
		Placeholder:  el.Attr("placeholder"),
		Label:        resolveLabel(doc, el),
		ChildCount:   el.ChildElementCount(),
		CurrentValue: truncateValue(el.Value()),
		Multiple:     el.Multiple(),
		Checked:      el.Checked(),
	}

	if tag == "select" {
		for _, opt := range el.Options() {
			desc.Options = append(desc.Options, Option{
				Value: opt.OptionValue(),
				Text:  opt.Text(),
			})
		}
	}

	if tag == "input" && fieldType == "radio" && desc.Name != "" {
		for _, radio := range sameNameRadios(doc, desc.Name) {
			desc.RadioGroup = append(desc.RadioGroup, RadioOption{
				Value: radio.Attr("value"),
				Label: resolveLabel(doc, radio),
			})
		}
	}

	return desc
}

// resolveLabel finds the human-readable label for a control: a <label for=id>
// pointing at it, else the nearest ancestor <label>, else "".
func resolveLabel(doc *dom.Document, el *dom.Element) string {
	if id := el.ID(); id != "" {
		labels := doc.FindAll(fmt.Sprintf("label[for=\"%s\"]", escapeAttr(id)))
		if len(labels) > 0 {
			return labels[0].Text()
		}
	}

	if parent := el.Parent(); parent != nil {
		if label := parent.Closest("label"); label != nil {
			return label.Text()
		}
	}

	return ""
}

// sameNameRadios returns all radio inputs sharing the given name, in document
// order.
func sameNameRadios(doc *dom.Document, name string) []*dom.Element {
	var radios []*dom.Element
	for _, el := range doc.FindAll("input") {
		if el.Type() == "radio" && el.Name() == name {
			radios = append(radios, el)
		}
	}
	return radios
}

func truncateValue(v string) string {
	if len(v) <= maxValueLength {
		return v
	}
	cut := maxValueLength
	for cut > 0 && !utf8.RuneStart(v[cut]) {
		cut--
	}
	return v[:cut]
}
