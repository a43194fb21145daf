// Package parse implements mailnote.EmailParser: it splits a newsletter
// email into main content and numbered footnotes.
//
// HTML input is unwrapped from forwarding scaffolding, split at the
// profile's delimiter phrase, sanitized, and mined for footnotes with an
// ordered chain of matchers. Input without the delimiter goes through a
// generic fallback that looks for common footnote separators instead.
package parse

import (
	"regexp"
	"strings"

	"github.com/fwojciec/mailnote"
)

// Ensure Parser implements mailnote.EmailParser at compile time.
var _ mailnote.EmailParser = (*Parser)(nil)

var htmlStartRe = regexp.MustCompile(`(?is)<[a-z].*>`)

// Parser splits newsletter emails into main content and footnotes.
// A Parser holds only immutable configuration and is safe for concurrent use.
type Parser struct {
	fragments mailnote.FragmentParser
	profile   mailnote.Profile
	phraseRe  *regexp.Regexp
}

// Option configures a Parser.
type Option func(*Parser)

// WithProfile sets the newsletter profile used to find the delimiter and
// the wrapper table. Invalid profiles are ignored.
func WithProfile(profile mailnote.Profile) Option {
	return func(p *Parser) {
		if profile.Validate() == nil {
			p.profile = profile
		}
	}
}

// NewParser creates a Parser that uses fragments to read HTML.
func NewParser(fragments mailnote.FragmentParser, opts ...Option) *Parser {
	p := &Parser{
		fragments: fragments,
		profile:   mailnote.DefaultProfile(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.phraseRe = regexp.MustCompile("(?i)" + phrasePattern(p.profile.Delimiter))
	return p
}

// Profile returns the parser's newsletter profile.
func (p *Parser) Profile() mailnote.Profile {
	return p.profile
}

// Parse splits content into main content and footnotes.
func (p *Parser) Parse(content string) (*mailnote.ParsedEmail, error) {
	if strings.TrimSpace(content) == "" {
		return nil, mailnote.Errorf(mailnote.EEMPTY, "email content is empty")
	}

	isHTML := IsHTML(content)
	if isHTML {
		content = p.ExtractBody(content)
	}

	offset := p.Locate(content, isHTML)
	if offset < 0 {
		return p.Fallback(content, isHTML)
	}

	mainContent := strings.TrimSpace(content[:offset])
	block := strings.TrimSpace(content[offset:])
	if isHTML {
		mainContent = strings.TrimSpace(Sanitize(mainContent))
	}
	if mainContent == "" {
		return nil, mailnote.Errorf(mailnote.ENOCONTENT, "no main content found before the subscription section")
	}

	return &mailnote.ParsedEmail{
		MainContent: mainContent,
		Footnotes:   p.ExtractFootnotes(block, isHTML),
	}, nil
}

// IsHTML reports whether content looks like markup rather than plain text.
func IsHTML(content string) bool {
	return htmlStartRe.MatchString(content)
}

// ExtractBody returns the outer markup of the newsletter table when content
// is wrapped in forwarding scaffolding, and content unchanged otherwise.
func (p *Parser) ExtractBody(content string) string {
	if p.profile.WrapperIDSuffix == "" {
		return content
	}

	frag, err := p.fragments.ParseFragment(content)
	if err != nil {
		return content
	}

	if outer, ok := frag.OuterHTMLByIDSuffix("table", p.profile.WrapperIDSuffix); ok {
		return outer
	}
	return content
}

// StripTags returns the visible text of an HTML fragment. It never fails;
// unparseable input yields an empty string.
func (p *Parser) StripTags(fragment string) string {
	frag, err := p.fragments.ParseFragment(fragment)
	if err != nil {
		return ""
	}
	return frag.Text()
}
