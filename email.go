package mailnote

// ParsedEmail is the structured result of parsing a newsletter email.
type ParsedEmail struct {
	// MainContent is the newsletter body preceding the footnote block.
	// HTML input yields sanitized HTML; plain text input yields text.
	MainContent string `json:"mainContent"`

	// Footnotes are sorted ascending by ID.
	Footnotes []Footnote `json:"footnotes"`
}

// Footnote is a single numbered footnote definition.
type Footnote struct {
	ID int `json:"id"`

	// Content is the tag-free, trimmed footnote text.
	Content string `json:"content"`

	// OriginalHTML is the raw fragment the footnote was extracted from.
	// Presentation code prefers it over Content when present.
	OriginalHTML string `json:"originalHtml,omitempty"`
}

// Footnote returns the first footnote with the given id.
func (e *ParsedEmail) Footnote(id int) (Footnote, bool) {
	for _, fn := range e.Footnotes {
		if fn.ID == id {
			return fn, true
		}
	}
	return Footnote{}, false
}

// FootnoteIDs returns the footnote ids in order.
func (e *ParsedEmail) FootnoteIDs() []int {
	ids := make([]int, 0, len(e.Footnotes))
	for _, fn := range e.Footnotes {
		ids = append(ids, fn.ID)
	}
	return ids
}

// EmailParser splits newsletter content into main content and footnotes.
type EmailParser interface {
	// Parse returns EEMPTY for blank input and ENOCONTENT when the footnote
	// delimiter is found but nothing precedes it. Any other structural
	// ambiguity resolves to a best-effort result rather than an error.
	Parse(content string) (*ParsedEmail, error)
}
