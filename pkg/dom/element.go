package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element wraps a single element node in a Document. Two Elements refer to the
// same underlying control iff Same reports true; wrapper values themselves are
// cheap and freely copyable.
type Element struct {
	doc  *Document
	node *html.Node
}

// Document returns the document the element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// Tag returns the lowercase tag name.
func (e *Element) Tag() string {
	return strings.ToLower(e.node.Data)
}

// Same reports whether two wrappers refer to the same underlying node.
func (e *Element) Same(other *Element) bool {
	return other != nil && e.node == other.node
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, regardless of value.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// SetAttr sets the named attribute, replacing any existing value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return e.Attr("id")
}

// Name returns the element's name attribute.
func (e *Element) Name() string {
	return e.Attr("name")
}

// Type returns the lowercase trimmed type attribute. For input elements an
// empty result means the default text type.
func (e *Element) Type() string {
	return strings.ToLower(strings.TrimSpace(e.Attr("type")))
}

// Disabled reports whether the control carries the disabled attribute.
func (e *Element) Disabled() bool {
	return e.HasAttr("disabled")
}

// Multiple reports whether a select control allows multiple selection.
func (e *Element) Multiple() bool {
	return e.HasAttr("multiple")
}

// Checked reports whether a checkbox or radio control is checked.
func (e *Element) Checked() bool {
	return e.HasAttr("checked")
}

// SetChecked writes the checked state of a checkbox or radio control.
func (e *Element) SetChecked(checked bool) {
	if checked {
		e.SetAttr("checked", "checked")
	} else {
		e.RemoveAttr("checked")
	}
}

// Value reads the control's current value:
//   - input: the value attribute
//   - textarea: the text content
//   - select: the value of the first selected option, falling back to the
//     first option (single-select default), else ""
func (e *Element) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.rawText()
	case "select":
		options := e.Options()
		for _, opt := range options {
			if opt.Selected() {
				return opt.OptionValue()
			}
		}
		if len(options) > 0 && !e.Multiple() {
			return options[0].OptionValue()
		}
		return ""
	default:
		return e.Attr("value")
	}
}

// SetValue writes a value into a text-like control. For textarea the text
// content is replaced; for everything else the value attribute is written.
// Select controls are driven through their options, not through SetValue.
func (e *Element) SetValue(value string) {
	if e.Tag() == "textarea" {
		for c := e.node.FirstChild; c != nil; {
			next := c.NextSibling
			e.node.RemoveChild(c)
			c = next
		}
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		return
	}
	e.SetAttr("value", value)
}

// Options returns a select control's options in document order.
func (e *Element) Options() []*Element {
	var options []*Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && strings.ToLower(c.Data) == "option" {
				options = append(options, e.doc.element(c))
				continue
			}
			walk(c)
		}
	}
	walk(e.node)
	return options
}

// Selected reports whether an option carries the selected attribute.
func (e *Element) Selected() bool {
	return e.HasAttr("selected")
}

// SetSelected writes an option's selectedness.
func (e *Element) SetSelected(selected bool) {
	if selected {
		e.SetAttr("selected", "selected")
	} else {
		e.RemoveAttr("selected")
	}
}

// OptionValue returns an option's submission value: the value attribute if
// present, else the option's visible text.
func (e *Element) OptionValue() string {
	if e.HasAttr("value") {
		return e.Attr("value")
	}
	return e.Text()
}

// Text returns the element's visible text with whitespace collapsed.
func (e *Element) Text() string {
	return strings.Join(strings.Fields(e.rawText()), " ")
}

// rawText concatenates all descendant text nodes without normalization.
func (e *Element) rawText() string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// Parent returns the nearest ancestor element, or nil at the tree root.
func (e *Element) Parent() *Element {
	for n := e.node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			return e.doc.element(n)
		}
	}
	return nil
}

// Closest walks from the element up through its ancestors and returns the
// first element with the given tag name, or nil if none encloses it.
func (e *Element) Closest(tag string) *Element {
	tag = strings.ToLower(tag)
	for el := e; el != nil; el = el.Parent() {
		if el.Tag() == tag {
			return el
		}
	}
	return nil
}

// ChildElementCount returns the number of direct child elements.
func (e *Element) ChildElementCount() int {
	count := 0
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// TypeSiblingIndex returns the element's 1-based position among its sibling
// elements of the same tag, as used by :nth-of-type.
func (e *Element) TypeSiblingIndex() int {
	index := 1
	for n := e.node.PrevSibling; n != nil; n = n.PrevSibling {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == e.Tag() {
			index++
		}
	}
	return index
}
