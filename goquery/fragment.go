package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailnote"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure FragmentParser implements mailnote.FragmentParser at compile time.
var _ mailnote.FragmentParser = (*FragmentParser)(nil)

// hiddenSelector matches elements whose content is never rendered as text.
const hiddenSelector = "script, style, noscript, template"

// FragmentParser parses HTML fragments into goquery documents so callers can
// query them with CSS selectors, the way browser code uses querySelector.
type FragmentParser struct{}

// NewFragmentParser creates a new FragmentParser.
func NewFragmentParser() *FragmentParser {
	return &FragmentParser{}
}

// ParseFragment parses s as the inner HTML of a <div>.
func (p *FragmentParser) ParseFragment(s string) (mailnote.Fragment, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(s), context)
	if err != nil {
		return nil, mailnote.Errorf(mailnote.EINVALID, "failed to parse HTML: %v", err)
	}

	// ParseFragment returns detached nodes; re-attach them to the context
	// element so the whole fragment is one selection.
	for _, n := range nodes {
		context.AppendChild(n)
	}

	return &Fragment{doc: goquery.NewDocumentFromNode(context)}, nil
}

// Fragment is a parsed fragment backed by a goquery document.
type Fragment struct {
	doc *goquery.Document
}

// Text returns the visible text of the fragment.
func (f *Fragment) Text() string {
	return visibleText(f.doc.Selection)
}

// OuterHTMLByIDSuffix renders the first tag element whose id ends in suffix.
func (f *Fragment) OuterHTMLByIDSuffix(tag, suffix string) (string, bool) {
	sel := f.doc.Find(fmt.Sprintf("%s[id$=%q]", tag, suffix)).First()
	if sel.Length() == 0 {
		return "", false
	}

	outer, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", false
	}
	return outer, true
}

// ElementsByID returns the outermost elements whose tag and id satisfy match.
func (f *Fragment) ElementsByID(match func(tag, id string) bool) []mailnote.Element {
	var elements []mailnote.Element

	var walk func(sel *goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Children().Each(func(_ int, child *goquery.Selection) {
			tag := goquery.NodeName(child)
			if id, ok := child.Attr("id"); ok && match(tag, id) {
				elements = append(elements, element(child, tag, id))
				return
			}
			walk(child)
		})
	}
	walk(f.doc.Selection)

	return elements
}

func element(sel *goquery.Selection, tag, id string) mailnote.Element {
	inner, _ := sel.Html()
	outer, _ := goquery.OuterHtml(sel)
	return mailnote.Element{
		Tag:       tag,
		ID:        id,
		InnerHTML: inner,
		OuterHTML: outer,
		Text:      visibleText(sel),
	}
}

// visibleText returns the text of sel without hidden elements. sel is
// cloned so the document is left intact.
func visibleText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find(hiddenSelector).Remove()
	return clone.Text()
}
