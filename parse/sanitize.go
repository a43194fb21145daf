package parse

import "regexp"

var (
	styleAttrRe    = regexp.MustCompile(`(?i)style\s*=\s*"[^"]*"`)
	classAttrRe    = regexp.MustCompile(`(?i)class\s*=\s*"[^"]*"`)
	officeParaRe   = regexp.MustCompile(`(?i)<o:p[^>]*>.*?</o:p>`)
	emptySpanRe    = regexp.MustCompile(`(?i)<span[^>]*></span>`)
	footnoteLinkRe = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["'][^"']*footnote[_-]?(\d+)["'][^>]*>(.*?)</a>`)
)

// Sanitize removes inline styles, classes and Outlook/Gmail filler markup
// from newsletter HTML, and rewrites footnote anchors into internal links
// carrying a data-footnote-id attribute. Other markup is left alone.
func Sanitize(html string) string {
	html = styleAttrRe.ReplaceAllString(html, "")
	html = classAttrRe.ReplaceAllString(html, "")
	html = officeParaRe.ReplaceAllString(html, "")
	html = emptySpanRe.ReplaceAllString(html, "")

	// Classes are gone by now, so the footnote-link class survives.
	return footnoteLinkRe.ReplaceAllString(html,
		`<a href="#footnote-${1}" class="footnote-link" data-footnote-id="${1}">${2}</a>`)
}
