package main

import (
	"fmt"

	"github.com/fwojciec/mailnote"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return mailnote.Errorf(mailnote.EINVALID, "use --force to confirm deletion")
	}

	email, err := deps.Emails.FindEmailByID(deps.Ctx, c.ID)
	if err != nil {
		if mailnote.ErrorCode(err) == mailnote.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: email %q not found. Use 'mailnote list' to see saved emails.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	if err := deps.Emails.DeleteEmail(deps.Ctx, email.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted email %q\n", email.Title)
	return nil
}
