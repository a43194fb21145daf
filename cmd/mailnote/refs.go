package main

import (
	"fmt"

	"github.com/fwojciec/mailnote"
)

// Run executes the refs command.
func (c *RefsCmd) Run(deps *Dependencies) error {
	var names []string
	if c.File != "" {
		names = []string{c.File}
	}

	inputs, err := readInputs(deps, names)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	email, err := deps.Parser.Parse(inputs[0].Content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	refs := mailnote.FindReferences(visibleText(deps, email.MainContent))
	if len(refs) == 0 {
		fmt.Fprintln(deps.Stdout, "No footnote references found.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "references: %s\n", mailnote.FormatIDs(refs))
	fmt.Fprintf(deps.Stdout, "footnotes:  %s\n", mailnote.FormatIDs(email.FootnoteIDs()))
	if missing := mailnote.MissingReferences(refs, email.Footnotes); len(missing) > 0 {
		fmt.Fprintf(deps.Stdout, "missing:    %s\n", mailnote.FormatIDs(missing))
	}

	return nil
}
