package formfill

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/dom"
)

// truthyValues are the tokens interpreted as "checked" for checkbox and radio
// writes.
var truthyValues = map[string]bool{
	"true":    true,
	"yes":     true,
	"1":       true,
	"checked": true,
	"on":      true,
}

// IsTruthy reports whether the lowercase-trimmed value is one of the tokens
// interpreted as "checked" for checkbox and radio writes.
func IsTruthy(value string) bool {
	return truthyValues[normalizeToken(value)]
}

// ApplyMappings writes each mapping's value into the control located by its
// selector and tallies updates and skips. A mapping that cannot be resolved —
// empty or invalid selector, no match, or a write-protected file input — is
// counted as skipped and never aborts the batch.
//
// The write path is keyed by the actual resolved control, not the declared
// kind: the kind hint only drives multi_select value decoding. This tolerance
// for mismatched hints from the value-resolution step is deliberate.
//
// After every successful write the target dispatches a bubbling "input" event
// followed by a bubbling "change" event so observers see the change in
// browser order. An unexpected panic anywhere in the batch is reported as
// ApplyResult.Error instead of partial counts.
func ApplyMappings(doc *dom.Document, mappings []Mapping) (result ApplyResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ApplyResult{Error: fmt.Sprintf("apply failed: %v", r)}
		}
	}()

	for _, m := range mappings {
		if applyOne(doc, m) {
			result.UpdatedCount++
		} else {
			result.SkippedCount++
		}
	}

	return result
}

// applyOne applies a single mapping and reports whether it counted as an
// update. Selector failures are swallowed here so a malformed mapping only
// costs its own slot in the batch.
func applyOne(doc *dom.Document, m Mapping) bool {
	if strings.TrimSpace(m.Selector) == "" {
		return false
	}

	el, err := doc.QuerySelector(m.Selector)
	if err != nil || el == nil {
		return false
	}

	// File inputs cannot be set programmatically.
	if el.Tag() == "input" && el.Type() == "file" {
		return false
	}

	raw, tokens := normalizeValue(m)

	switch {
	case el.Tag() == "input" && el.Type() == "checkbox":
		return applyCheckbox(el, raw)
	case el.Tag() == "input" && el.Type() == "radio":
		return applyRadio(doc, el, raw)
	case el.Tag() == "select":
		return applySelect(el, tokens)
	default:
		el.SetValue(raw)
		notifyChanged(el)
		return true
	}
}

// normalizeValue decodes a multi_select mapping's JSON-array-shaped value into
// tokens. Any other kind, or a value that fails to parse, keeps the original
// string as a single opaque token.
func normalizeValue(m Mapping) (raw string, tokens []string) {
	raw = m.Value
	tokens = []string{raw}

	if !strings.EqualFold(strings.TrimSpace(m.Kind), KindMultiSelect) {
		return raw, tokens
	}

	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return raw, tokens
	}

	var parsed []any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		// Best-effort: a malformed encoding stays an opaque string.
		return raw, tokens
	}

	tokens = make([]string, 0, len(parsed))
	for _, v := range parsed {
		if s, ok := v.(string); ok {
			tokens = append(tokens, s)
		} else {
			tokens = append(tokens, fmt.Sprintf("%v", v))
		}
	}
	return raw, tokens
}

// applyCheckbox interprets the value against the truthy set and writes the
// result. A deliberate "false" is still a successful write, so checkboxes
// always count as updated.
func applyCheckbox(el *dom.Element, value string) bool {
	el.SetChecked(truthyValues[normalizeToken(value)])
	notifyChanged(el)
	return true
}

// applyRadio checks the group member whose value attribute matches, else the
// one whose label text matches. If neither matches, the originally targeted
// element is checked when the value is a truthy token; otherwise the mapping
// is skipped.
func applyRadio(doc *dom.Document, el *dom.Element, value string) bool {
	want := normalizeToken(value)

	if name := el.Name(); name != "" {
		group := sameNameRadios(doc, name)

		var target *dom.Element
		for _, radio := range group {
			if normalizeToken(radio.Attr("value")) == want {
				target = radio
				break
			}
		}
		if target == nil {
			for _, radio := range group {
				if normalizeToken(resolveLabel(doc, radio)) == want {
					target = radio
					break
				}
			}
		}

		if target != nil {
			checkRadio(target, group)
			notifyChanged(target)
			return true
		}
	}

	if truthyValues[want] {
		if name := el.Name(); name != "" {
			checkRadio(el, sameNameRadios(doc, name))
		} else {
			el.SetChecked(true)
		}
		notifyChanged(el)
		return true
	}

	return false
}

// checkRadio checks target and unchecks the rest of its group, preserving the
// at-most-one-checked invariant.
func checkRadio(target *dom.Element, group []*dom.Element) {
	for _, radio := range group {
		if !radio.Same(target) {
			radio.SetChecked(false)
		}
	}
	target.SetChecked(true)
}

// applySelect resolves each wanted token to an option by value attribute then
// by visible text. Multi-selects deselect everything first and select every
// resolved option; single-selects use only the first token.
func applySelect(el *dom.Element, tokens []string) bool {
	var wanted []string
	for _, t := range tokens {
		if t = normalizeToken(t); t != "" {
			wanted = append(wanted, t)
		}
	}
	if len(wanted) == 0 {
		return false
	}

	options := el.Options()
	resolve := func(token string) *dom.Element {
		for _, opt := range options {
			if normalizeToken(opt.OptionValue()) == token {
				return opt
			}
		}
		for _, opt := range options {
			if normalizeToken(opt.Text()) == token {
				return opt
			}
		}
		return nil
	}

	if el.Multiple() {
		for _, opt := range options {
			opt.SetSelected(false)
		}
		selected := 0
		for _, token := range wanted {
			if opt := resolve(token); opt != nil {
				opt.SetSelected(true)
				selected++
			}
		}
		if selected == 0 {
			return false
		}
		notifyChanged(el)
		return true
	}

	opt := resolve(wanted[0])
	if opt == nil {
		return false
	}
	for _, other := range options {
		other.SetSelected(false)
	}
	opt.SetSelected(true)
	notifyChanged(el)
	return true
}

// notifyChanged fires the synthetic events page scripts rely on, in browser
// order: input before change, both bubbling.
func notifyChanged(el *dom.Element) {
	el.Dispatch("input", true)
	el.Dispatch("change", true)
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
