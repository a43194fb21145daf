package mailnote

import (
	"regexp"
	"slices"
	"strconv"
)

var referenceRe = regexp.MustCompile(`\[(\d+)\]`)

// FindReferences returns the distinct footnote reference markers ([N]) in
// text, ascending. It returns nil when there are none.
func FindReferences(text string) []int {
	matches := referenceRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(matches))
	refs := make([]int, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, id)
	}

	slices.Sort(refs)
	return refs
}

// MissingReferences returns the references that have no matching footnote.
// A non-empty result usually means the mail client truncated the message.
func MissingReferences(refs []int, footnotes []Footnote) []int {
	defined := make(map[int]bool, len(footnotes))
	for _, fn := range footnotes {
		defined[fn.ID] = true
	}

	var missing []int
	for _, id := range refs {
		if !defined[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// HighlightReferences wraps every [N] marker in a span carrying the footnote
// id so presentation code can attach click handlers.
func HighlightReferences(content string) string {
	return referenceRe.ReplaceAllString(content, `<span class="footnote-ref" data-footnote-id="$1">[$1]</span>`)
}
