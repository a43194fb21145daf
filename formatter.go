package mailnote

import (
	"strconv"
	"strings"
)

// FormatFootnotes renders footnotes as "[N] content" lines separated by
// blank lines. Content that already opens with its own marker is kept as is.
func FormatFootnotes(footnotes []Footnote) string {
	if len(footnotes) == 0 {
		return ""
	}

	parts := make([]string, 0, len(footnotes))
	for _, fn := range footnotes {
		marker := "[" + strconv.Itoa(fn.ID) + "]"
		if strings.HasPrefix(fn.Content, marker) {
			parts = append(parts, fn.Content)
			continue
		}
		parts = append(parts, marker+" "+fn.Content)
	}

	return strings.Join(parts, "\n\n")
}

// FormatIDs renders ids as a comma separated list.
func FormatIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ", ")
}

// TitleFromText returns the first non-blank line of text, truncated to max
// runes. Used to label stored emails.
func TitleFromText(text string, max int) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		runes := []rune(line)
		if max > 0 && len(runes) > max {
			return string(runes[:max]) + "…"
		}
		return line
	}
	return ""
}
