package main

import (
	"fmt"

	"github.com/fwojciec/mailnote"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	email, err := deps.Emails.FindEmailByID(deps.Ctx, c.ID)
	if err != nil {
		if mailnote.ErrorCode(err) == mailnote.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: email %q not found. Use 'mailnote list' to see saved emails.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	warnMissing(deps, "", email.Missing())

	out, err := render(deps, c.Format, &email.Email)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	if c.Format != formatJSON {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", email.Title)
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
