package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// delimiterWindow is how many bytes of text after the phrase match are
	// used to rebuild the phrase as a markup-tolerant pattern.
	delimiterWindow = 50

	// delimiterWords caps the number of words in that pattern.
	delimiterWords = 6
)

// wordSeparator matches the gap between two words in raw HTML: whitespace,
// non-breaking spaces and whole tags.
const wordSeparator = `(?:\s|\x{00A0}|&nbsp;|&#160;|&#xa0;|<[^>]*>)+`

// Locate returns the byte offset in content where the footnote block
// starts, or -1 when the delimiter phrase cannot be found.
//
// For HTML the phrase is first found in the text view, then mapped back to
// the markup by searching for its leading words with any whitespace, tags
// or entities between them. A direct search of the raw markup is the last
// resort.
func (p *Parser) Locate(content string, isHTML bool) int {
	if !isHTML {
		return index(p.phraseRe, content)
	}

	text := p.StripTags(content)
	loc := p.phraseRe.FindStringIndex(text)
	if loc == nil {
		return -1
	}

	end := min(len(text), loc[0]+delimiterWindow)
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	words := strings.Fields(text[loc[0]:end])
	if len(words) > delimiterWords {
		words = words[:delimiterWords]
	}

	if re, err := regexp.Compile("(?i)" + wordsPattern(words)); err == nil {
		if i := index(re, content); i >= 0 {
			return i
		}
	}

	return index(p.phraseRe, content)
}

func index(re *regexp.Regexp, s string) int {
	if loc := re.FindStringIndex(s); loc != nil {
		return loc[0]
	}
	return -1
}

// phrasePattern matches phrase with any run of whitespace between words
// and typographic or entity-encoded apostrophes and quotes.
func phrasePattern(phrase string) string {
	var parts []string
	for _, w := range strings.Fields(phrase) {
		parts = append(parts, escapeWord(w))
	}
	return strings.Join(parts, `[\s\x{00A0}]+`)
}

// wordsPattern joins escaped words with wordSeparator.
func wordsPattern(words []string) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, escapeWord(w))
	}
	return strings.Join(parts, wordSeparator)
}

// escapeWord quotes w for use in a pattern, letting characters that HTML
// serializers commonly encode match their entity forms too.
func escapeWord(w string) string {
	var b strings.Builder
	for _, r := range w {
		switch r {
		case '\'', '’':
			b.WriteString(`(?:'|\x{2019}|&#0*39;|&#[xX]0*27;|&apos;|&rsquo;|&#8217;|&#[xX]2019;)`)
		case '"':
			b.WriteString(`(?:"|&quot;|&#0*34;|&#[xX]0*22;)`)
		case '&':
			b.WriteString(`(?:&|&amp;|&#0*38;)`)
		case '<':
			b.WriteString(`(?:<|&lt;)`)
		case '>':
			b.WriteString(`(?:>|&gt;)`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
