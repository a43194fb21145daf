// Package html provides a golang.org/x/net/html implementation of
// mailnote.FragmentParser. It walks the node tree directly and needs no
// selector engine.
package html

import (
	"bytes"
	"strings"

	"github.com/fwojciec/mailnote"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure FragmentParser implements mailnote.FragmentParser at compile time.
var _ mailnote.FragmentParser = (*FragmentParser)(nil)

// FragmentParser parses HTML fragments with the HTML5 algorithm.
type FragmentParser struct{}

// NewFragmentParser creates a new FragmentParser.
func NewFragmentParser() *FragmentParser {
	return &FragmentParser{}
}

// ParseFragment parses s as the inner HTML of a <div>.
func (p *FragmentParser) ParseFragment(s string) (mailnote.Fragment, error) {
	nodes, err := parseNodes(s)
	if err != nil {
		return nil, mailnote.Errorf(mailnote.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Fragment{nodes: nodes}, nil
}

// parseNodes parses s with the fragment algorithm in a <div> context, which
// is what assigning innerHTML does in a browser. Document-level tags such as
// <html> and <body> are dropped; their children are kept.
func parseNodes(s string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(s), context)
}

// Fragment is a parsed fragment backed by x/net/html nodes.
type Fragment struct {
	nodes []*html.Node
}

// Text returns the concatenated text of all visible text nodes.
func (f *Fragment) Text() string {
	var b strings.Builder
	for _, n := range f.nodes {
		collectText(&b, n)
	}
	return b.String()
}

// OuterHTMLByIDSuffix renders the first tag element whose id ends in suffix.
func (f *Fragment) OuterHTMLByIDSuffix(tag, suffix string) (string, bool) {
	for _, n := range f.nodes {
		if found := findByIDSuffix(n, tag, suffix); found != nil {
			outer, err := render(found)
			if err != nil {
				return "", false
			}
			return outer, true
		}
	}
	return "", false
}

// ElementsByID returns the outermost elements whose tag and id satisfy match.
func (f *Fragment) ElementsByID(match func(tag, id string) bool) []mailnote.Element {
	var elements []mailnote.Element
	for _, n := range f.nodes {
		elements = appendMatches(elements, n, match)
	}
	return elements
}

func appendMatches(elements []mailnote.Element, n *html.Node, match func(tag, id string) bool) []mailnote.Element {
	if n.Type == html.ElementNode {
		if id, ok := attr(n, "id"); ok && match(n.Data, id) {
			return append(elements, element(n, id))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		elements = appendMatches(elements, c, match)
	}
	return elements
}

func element(n *html.Node, id string) mailnote.Element {
	var inner bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&inner, c)
	}
	outer, _ := render(n)

	var text strings.Builder
	collectText(&text, n)

	return mailnote.Element{
		Tag:       n.Data,
		ID:        id,
		InnerHTML: inner.String(),
		OuterHTML: outer,
		Text:      text.String(),
	}
}

func render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// collectText appends the text of n and its descendants to b, skipping
// elements whose content is never rendered as text.
func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

func findByIDSuffix(n *html.Node, tag, suffix string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		if id, ok := attr(n, "id"); ok && strings.HasSuffix(id, suffix) {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByIDSuffix(c, tag, suffix); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
