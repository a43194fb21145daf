package parse

import (
	"regexp"
	"strings"

	"github.com/fwojciec/mailnote"
)

// separator marks where a generic footnote section begins. When keep is
// set the separator is itself the first footnote and stays in the block.
type separator struct {
	re   *regexp.Regexp
	keep bool
}

var separators = []separator{
	{re: regexp.MustCompile(`(?i)<hr\b[^>]*>`)},
	{re: regexp.MustCompile(`(?i)<h[1-6]\b[^>]*>\s*footnotes?\s*</h[1-6]>`)},
	{re: regexp.MustCompile(`(?i)footnotes?:`)},
	{re: regexp.MustCompile(`(?i)<p\b[^>]*\sid\s*=\s*["']?footnote`), keep: true},
}

var (
	genericDefRe    = regexp.MustCompile(`(?i)<[^>]*\sid\s*=\s*["']?footnote\d+`)
	newsletterDefRe = regexp.MustCompile(`(?i)<[^>]*\sid\s*=\s*["'][^"']*footnote[_-]?\d+["']`)
)

// Fallback parses content that has no delimiter phrase. It splits at the
// first generic separator (a rule, a "Footnotes" heading or label, or a
// footnote paragraph); failing that, at the first footnote element when
// the text also carries [N] references. Otherwise the whole input is main
// content with no footnotes, which is a normal result. Only blank content
// is an error.
func (p *Parser) Fallback(content string, isHTML bool) (*mailnote.ParsedEmail, error) {
	if strings.TrimSpace(content) == "" {
		return nil, mailnote.Errorf(mailnote.EEMPTY, "email content is empty")
	}

	mainContent, block := p.split(content, isHTML)

	// split never returns empty main content for non-blank input. When
	// sanitizing removes everything, the unsanitized markup is kept.
	if isHTML {
		if sanitized := strings.TrimSpace(Sanitize(mainContent)); sanitized != "" {
			mainContent = sanitized
		}
	}
	mainContent = strings.TrimSpace(mainContent)

	chain := fallbackTextChain
	if isHTML {
		chain = fallbackHTMLChain
	}

	return &mailnote.ParsedEmail{
		MainContent: mainContent,
		Footnotes:   p.runChain(chain, block),
	}, nil
}

// split returns the main content and footnote block of content. A split
// that would leave the main content empty is skipped.
func (p *Parser) split(content string, isHTML bool) (string, string) {
	for _, sep := range separators {
		loc := sep.re.FindStringIndex(content)
		if loc == nil {
			continue
		}

		mainContent := strings.TrimSpace(content[:loc[0]])
		if mainContent == "" {
			continue
		}

		start := loc[1]
		if sep.keep {
			start = loc[0]
		}
		return mainContent, strings.TrimSpace(content[start:])
	}

	text := content
	if isHTML {
		text = p.StripTags(content)
	}
	if !bracketRe.MatchString(text) {
		return content, ""
	}

	offset := firstIndex(content, genericDefRe, newsletterDefRe)
	if offset < 0 {
		return content, ""
	}

	mainContent := strings.TrimSpace(content[:offset])
	if mainContent == "" {
		return content, ""
	}
	return mainContent, strings.TrimSpace(content[offset:])
}

// firstIndex returns the earliest match offset of any of res in s, or -1.
func firstIndex(s string, res ...*regexp.Regexp) int {
	first := -1
	for _, re := range res {
		if i := index(re, s); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	return first
}
