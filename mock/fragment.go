package mock

import "github.com/fwojciec/mailnote"

var (
	_ mailnote.FragmentParser = (*FragmentParser)(nil)
	_ mailnote.Fragment       = (*Fragment)(nil)
)

// FragmentParser is a mock implementation of mailnote.FragmentParser.
type FragmentParser struct {
	ParseFragmentFn func(html string) (mailnote.Fragment, error)
}

func (p *FragmentParser) ParseFragment(html string) (mailnote.Fragment, error) {
	return p.ParseFragmentFn(html)
}

// Fragment is a mock implementation of mailnote.Fragment.
type Fragment struct {
	TextFn                func() string
	OuterHTMLByIDSuffixFn func(tag, suffix string) (string, bool)
	ElementsByIDFn        func(match func(tag, id string) bool) []mailnote.Element
}

func (f *Fragment) Text() string {
	return f.TextFn()
}

func (f *Fragment) OuterHTMLByIDSuffix(tag, suffix string) (string, bool) {
	return f.OuterHTMLByIDSuffixFn(tag, suffix)
}

func (f *Fragment) ElementsByID(match func(tag, id string) bool) []mailnote.Element {
	return f.ElementsByIDFn(match)
}
