package main

import (
	"fmt"

	"github.com/fwojciec/mailnote"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	inputs, err := readInputs(deps, c.Files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	for i, in := range inputs {
		email, err := deps.Parser.Parse(in.Content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
			return err
		}

		refs := mailnote.FindReferences(visibleText(deps, email.MainContent))
		warnMissing(deps, in.Name, mailnote.MissingReferences(refs, email.Footnotes))

		out, err := render(deps, c.Format, email)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
			return err
		}

		if len(inputs) > 1 && c.Format != formatJSON {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "==> %s <==\n", in.Name)
		}
		fmt.Fprintln(deps.Stdout, out)
	}

	return nil
}
