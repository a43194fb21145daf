package main

import (
	"fmt"

	"github.com/fwojciec/mailnote"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	emails, err := deps.Emails.FindEmails(deps.Ctx, mailnote.EmailFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	if len(emails) == 0 {
		fmt.Fprintln(deps.Stdout, "No emails found. Use 'mailnote import' to add some.")
		return nil
	}

	for _, e := range emails {
		fmt.Fprintf(deps.Stdout, "%s  %s  %2d footnotes  %s\n",
			e.ID, e.CreatedAt.Format("2006-01-02"), len(e.Email.Footnotes), e.Title)
	}

	return nil
}
