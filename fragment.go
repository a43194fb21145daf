package mailnote

// Fragment is a parsed HTML fragment.
type Fragment interface {
	// Text returns the visible text content. Text nodes are concatenated
	// verbatim; script and style contents are skipped.
	Text() string

	// OuterHTMLByIDSuffix returns the rendered markup of the first element
	// with the given tag whose id ends in suffix.
	OuterHTMLByIDSuffix(tag, suffix string) (string, bool)

	// ElementsByID returns, in document order, the outermost elements with
	// an id for which match reports true. Descendants of a matched element
	// are not visited.
	ElementsByID(match func(tag, id string) bool) []Element
}

// Element is an element found in a Fragment. Markup is re-rendered from
// the parsed tree, so it is normalized rather than byte-identical to the
// input.
type Element struct {
	Tag       string
	ID        string
	InnerHTML string
	OuterHTML string

	// Text is the element's visible text.
	Text string
}

// FragmentParser parses HTML fragments into a queryable tree. Parsing must
// never fail on malformed markup.
type FragmentParser interface {
	ParseFragment(html string) (Fragment, error)
}
