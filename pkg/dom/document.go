package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document wraps a parsed HTML tree and tracks event listeners registered
// against its elements. A Document is owned by a single goroutine; the core
// performs synchronous single-pass reads and writes over it.
type Document struct {
	gq        *goquery.Document
	root      *html.Node
	listeners map[*html.Node][]registration
}

// Parse reads HTML from r and returns a Document over the parsed tree.
func Parse(r io.Reader) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if len(gq.Nodes) == 0 {
		return nil, fmt.Errorf("parsed document has no root node")
	}

	return &Document{
		gq:        gq,
		root:      gq.Nodes[0],
		listeners: make(map[*html.Node][]registration),
	}, nil
}

// ParseString is a convenience wrapper around Parse for string input.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// QuerySelector resolves a CSS selector against the document and returns the
// first matching element in document order, or nil if nothing matches.
// Invalid selector syntax is returned as an error rather than a panic so
// callers can treat it as a per-selector failure.
func (d *Document) QuerySelector(selector string) (*Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	n := sel.MatchFirst(d.root)
	if n == nil {
		return nil, nil
	}
	return d.element(n), nil
}

// QuerySelectorAll resolves a CSS selector against the document and returns
// all matching elements in document order.
func (d *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	nodes := sel.MatchAll(d.root)
	elements := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, d.element(n))
	}
	return elements, nil
}

// FindAll evaluates a known-good selector through goquery and returns all
// matches in document order. Intended for the core's own fixed selectors;
// invalid input yields no results instead of an error.
func (d *Document) FindAll(selector string) []*Element {
	var elements []*Element
	d.gq.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			elements = append(elements, d.element(n))
		}
	})
	return elements
}

// Body returns the document's body element, or nil if the tree has none.
func (d *Document) Body() *Element {
	sel := d.gq.Find("body").First()
	if sel.Length() == 0 {
		return nil
	}
	return d.element(sel.Nodes[0])
}

// Render serializes the current state of the tree back to HTML. Useful for
// persisting the result of an offline (in-memory) fill.
func (d *Document) Render() (string, error) {
	var b strings.Builder
	if err := html.Render(&b, d.root); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return b.String(), nil
}

// element wraps a node, preserving the back-reference to the document so the
// wrapper can reach the listener registry and tree root.
func (d *Document) element(n *html.Node) *Element {
	return &Element{doc: d, node: n}
}
