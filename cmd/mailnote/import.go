package main

import (
	"fmt"

	"github.com/fwojciec/mailnote"
	"github.com/fwojciec/mailnote/ingest"
)

// nameWidth caps file names in progress output.
const nameWidth = 60

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	inputs, err := readInputs(deps, c.Files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}

	progress := func(event ingest.ProgressEvent) {
		name := ingest.TruncateName(event.Name, nameWidth)
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Importing %d emails\n", event.Total)
		case ingest.ProgressCompleted:
			warnMissing(deps, name, event.Missing)
		case ingest.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  already imported %s\n", name)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", name, mailnote.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Importer.Import(deps.Ctx, inputs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error importing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d emails (%d footnotes, %s), %d skipped, %d failed\n",
		result.Saved, result.Footnotes, ingest.FormatBytes(result.Bytes), result.Skipped, result.Failed)

	if result.Failed > 0 && result.Saved == 0 && result.Skipped == 0 {
		return mailnote.Errorf(mailnote.EINVALID, "no emails imported")
	}
	return nil
}
