package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/mailnote"
	"github.com/fwojciec/mailnote/parse"
)

// Output formats shared by parse and show.
const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatText     = "text"
)

// render formats a parsed email for output.
func render(deps *Dependencies, format string, email *mailnote.ParsedEmail) (string, error) {
	switch format {
	case formatMarkdown:
		body := email.MainContent
		if parse.IsHTML(body) {
			md, err := deps.Converter.Convert(body)
			if err != nil {
				return "", err
			}
			body = md
		}
		return joinSections(body, mailnote.FormatFootnotes(email.Footnotes)), nil
	case formatText:
		body := strings.TrimSpace(visibleText(deps, email.MainContent))
		return joinSections(body, mailnote.FormatFootnotes(email.Footnotes)), nil
	default:
		b, err := json.MarshalIndent(email, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func joinSections(body, footnotes string) string {
	if footnotes == "" {
		return body
	}
	return body + "\n\n---\n\n" + footnotes
}

// visibleText returns the text of content when it is HTML.
func visibleText(deps *Dependencies, content string) string {
	if !parse.IsHTML(content) {
		return content
	}
	frag, err := deps.Fragments.ParseFragment(content)
	if err != nil {
		return content
	}
	return frag.Text()
}

// warnMissing prints a truncation warning for references without footnotes.
func warnMissing(deps *Dependencies, name string, missing []int) {
	if len(missing) == 0 {
		return
	}
	prefix := "warning: "
	if name != "" && name != stdinName {
		prefix += name + ": "
	}
	fmt.Fprintf(deps.Stderr, "%sno footnotes for references %s; content may have been truncated\n",
		prefix, mailnote.FormatIDs(missing))
}
