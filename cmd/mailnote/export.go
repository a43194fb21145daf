package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/mailnote"
	"github.com/fwojciec/mailnote/fs"
	"github.com/fwojciec/mailnote/parse"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return err
	}

	emails, err := deps.Emails.FindEmails(deps.Ctx, mailnote.EmailFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	store := fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
	if err := exportEmails(deps, store, emails); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", dir, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d emails to %s\n", len(emails), dir)
	return nil
}

func exportEmails(deps *Dependencies, store mailnote.ExportStore, emails []*mailnote.Email) error {
	for _, email := range emails {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		body := email.Email.MainContent
		if parse.IsHTML(body) {
			md, err := deps.Converter.Convert(body)
			if err != nil {
				return fmt.Errorf("convert %s: %w", email.ID, err)
			}
			body = md
		}

		markdown := joinSections(body, mailnote.FormatFootnotes(email.Email.Footnotes))
		if err := store.Save(deps.Ctx, email, markdown); err != nil {
			return err
		}
	}
	return nil
}
