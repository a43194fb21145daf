package parse

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/mailnote"
)

var (
	divHyphenIDRe = regexp.MustCompile(`(?i)footnote-(\d+)$`)
	divPlainIDRe  = regexp.MustCompile(`(?i)footnote(\d+)$`)
	footnoteIDRe  = regexp.MustCompile(`(?i)footnote[^\d\s]*(\d+)`)
	superscriptRe = regexp.MustCompile(`(?is)<p\b[^>]*><sup>(\d+)</sup>\s*(.*?)</p>`)
	bracketRe     = regexp.MustCompile(`\[(\d+)\]`)
	bracketLineRe = regexp.MustCompile(`(?m)^[ \t]*\[(\d+)\]`)
)

// matcher extracts footnotes from a block using one encoding. Matchers are
// stateless and return a fresh slice on every call.
type matcher func(s *scan) []mailnote.Footnote

// Matcher chains, in priority order. Only the first matcher that yields a
// non-empty result is used, so ids from different encodings never mix.
var (
	htmlChain = []matcher{matchDivHyphen, matchDivPlain, matchIDElement, matchBracketText}
	textChain = []matcher{matchBracketLines}

	fallbackHTMLChain = []matcher{matchDivHyphen, matchDivPlain, matchIDElement, matchSuperscript, matchBracketText}
	fallbackTextChain = []matcher{matchDivHyphen, matchDivPlain, matchIDElement, matchSuperscript, matchBracketLines}
)

// scan is the input of one chain run. The block is parsed into a fragment
// at most once, on first use, and the scan is discarded when the run ends.
type scan struct {
	block  string
	parser *Parser

	parsed bool
	frag   mailnote.Fragment
}

func (s *scan) fragment() mailnote.Fragment {
	if !s.parsed {
		s.parsed = true
		if frag, err := s.parser.fragments.ParseFragment(s.block); err == nil {
			s.frag = frag
		}
	}
	return s.frag
}

func (s *scan) text() string {
	if frag := s.fragment(); frag != nil {
		return frag.Text()
	}
	return ""
}

// ExtractFootnotes pulls footnotes out of the block that follows the
// delimiter. The result is sorted by id and never nil.
func (p *Parser) ExtractFootnotes(block string, isHTML bool) []mailnote.Footnote {
	chain := textChain
	if isHTML {
		chain = htmlChain
	}
	return p.runChain(chain, block)
}

func (p *Parser) runChain(chain []matcher, block string) []mailnote.Footnote {
	if block == "" {
		return []mailnote.Footnote{}
	}

	s := &scan{block: block, parser: p}
	for _, m := range chain {
		footnotes := m(s)
		if len(footnotes) == 0 {
			continue
		}
		slices.SortStableFunc(footnotes, func(a, b mailnote.Footnote) int {
			return cmp.Compare(a.ID, b.ID)
		})
		return footnotes
	}

	return []mailnote.Footnote{}
}

// matchDivHyphen matches <div id="…footnote-N">, the newsletter's own markup.
func matchDivHyphen(s *scan) []mailnote.Footnote {
	return matchElements(s, "div", divHyphenIDRe, false)
}

// matchDivPlain matches <div id="…footnoteN">.
func matchDivPlain(s *scan) []mailnote.Footnote {
	return matchElements(s, "div", divPlainIDRe, false)
}

// matchIDElement matches any element whose id contains "footnote" and digits.
func matchIDElement(s *scan) []mailnote.Footnote {
	return matchElements(s, "", footnoteIDRe, true)
}

// matchSuperscript matches <p><sup>N</sup> content</p>. Paragraphs cannot
// nest, so the first </p> closes the match.
func matchSuperscript(s *scan) []mailnote.Footnote {
	var footnotes []mailnote.Footnote
	for _, m := range superscriptRe.FindAllStringSubmatch(s.block, -1) {
		id, ok := parseID(m[1])
		if !ok {
			continue
		}

		content := strings.TrimSpace(s.parser.StripTags(m[2]))
		if content == "" {
			continue
		}

		footnotes = append(footnotes, mailnote.Footnote{
			ID:           id,
			Content:      content,
			OriginalHTML: m[0],
		})
	}
	return footnotes
}

// matchBracketText matches "[N] content" runs in the text of an HTML block.
func matchBracketText(s *scan) []mailnote.Footnote {
	return matchBrackets(bracketRe, s.text())
}

// matchBracketLines matches plain text lines starting with "[N]".
func matchBracketLines(s *scan) []mailnote.Footnote {
	return matchBrackets(bracketLineRe, s.block)
}

// matchElements finds the outermost elements with the given tag (any tag
// when empty) whose id matches idRe, whose first group is the footnote id.
// The whole element is read, however deeply its content nests. OriginalHTML
// is the inner markup, or the element itself when whole is set.
func matchElements(s *scan, tag string, idRe *regexp.Regexp, whole bool) []mailnote.Footnote {
	frag := s.fragment()
	if frag == nil {
		return nil
	}

	elements := frag.ElementsByID(func(t, id string) bool {
		return (tag == "" || strings.EqualFold(t, tag)) && idRe.MatchString(id)
	})

	var footnotes []mailnote.Footnote
	for _, el := range elements {
		m := idRe.FindStringSubmatch(el.ID)
		if m == nil {
			continue
		}
		id, ok := parseID(m[1])
		if !ok {
			continue
		}

		content := strings.TrimSpace(el.Text)
		if content == "" {
			continue
		}

		original := el.InnerHTML
		if whole {
			original = el.OuterHTML
		}

		footnotes = append(footnotes, mailnote.Footnote{
			ID:           id,
			Content:      content,
			OriginalHTML: original,
		})
	}
	return footnotes
}

// matchBrackets splits text at markers matched by re. Each footnote runs
// from its marker to the next marker or the end of text.
func matchBrackets(re *regexp.Regexp, text string) []mailnote.Footnote {
	locs := re.FindAllStringSubmatchIndex(text, -1)

	var footnotes []mailnote.Footnote
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		id, ok := parseID(text[loc[2]:loc[3]])
		if !ok {
			continue
		}

		content := strings.TrimSpace(text[loc[1]:end])
		if content == "" {
			continue
		}

		footnotes = append(footnotes, mailnote.Footnote{
			ID:           id,
			Content:      content,
			OriginalHTML: strings.TrimSpace(text[loc[0]:end]),
		})
	}
	return footnotes
}

// parseID returns a positive footnote id. Ids that overflow int are rejected.
func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
