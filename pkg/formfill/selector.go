package formfill

import (
	"fmt"
	"strings"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/dom"
)

// BuildSelector derives a CSS selector for el that is stable enough to
// re-resolve the same logical control later. The rules are tried in strict
// preference order; the first applicable one wins:
//
//  1. #id — ids are assumed page-unique and most stable.
//  2. tag[name="..."] — radio and checkbox controls commonly share a name
//     within a group, so those get a positional :nth-of-type disambiguator.
//  3. tag[aria-label="..."].
//  4. A structural path of tag:nth-of-type steps from the nearest enclosing
//     form (or body) down to the element.
//
// The nth-of-type index in rule 2 is the element's 0-based position among all
// same-tag same-name controls in document order, not a true structural
// pseudo-class match. It is best-effort and can drift on pages whose sibling
// counts change between extraction and application.
func BuildSelector(el *dom.Element) string {
	tag := el.Tag()

	if id := el.ID(); id != "" {
		return "#" + escapeIdent(id)
	}

	if name := el.Name(); name != "" {
		selector := fmt.Sprintf("%s[name=\"%s\"]", tag, escapeAttr(name))
		if t := el.Type(); t == "radio" || t == "checkbox" {
			index := groupIndex(el, tag, name)
			selector += fmt.Sprintf(":nth-of-type(%d)", index+1)
		}
		return selector
	}

	if label := el.Attr("aria-label"); label != "" {
		return fmt.Sprintf("%s[aria-label=\"%s\"]", tag, escapeAttr(label))
	}

	return structuralPath(el)
}

// groupIndex returns el's 0-based position among all same-tag same-name
// elements in document order.
func groupIndex(el *dom.Element, tag, name string) int {
	index := 0
	for _, candidate := range el.Document().FindAll(tag) {
		if candidate.Name() != name {
			continue
		}
		if candidate.Same(el) {
			return index
		}
		index++
	}
	return index
}

// structuralPath builds a tag:nth-of-type path from el up to its nearest
// enclosing form, or to body if the element is not inside a form.
func structuralPath(el *dom.Element) string {
	var steps []string
	prefix := "body"

	for cur := el; cur != nil; {
		parent := cur.Parent()
		if parent == nil {
			break
		}

		step := fmt.Sprintf("%s:nth-of-type(%d)", cur.Tag(), cur.TypeSiblingIndex())
		steps = append([]string{step}, steps...)

		if parent.Tag() == "form" {
			prefix = "form"
			break
		}
		if parent.Tag() == "body" {
			break
		}
		cur = parent
	}

	if len(steps) == 0 {
		return el.Tag()
	}
	return prefix + " > " + strings.Join(steps, " > ")
}
