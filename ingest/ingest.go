// Package ingest imports batches of newsletter emails: it parses inputs
// concurrently and stores the results in input order.
package ingest

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/mailnote"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of inputs parsed at once when
// Importer.Concurrency is unset.
const DefaultConcurrency = 4

// titleLength caps stored email titles, in runes.
const titleLength = 80

// Importer parses emails and saves them to an EmailService.
type Importer struct {
	Parser mailnote.EmailParser
	Emails mailnote.EmailService

	// Fragments, when set, is used to derive titles and references from
	// the visible text of HTML main content.
	Fragments mailnote.FragmentParser

	// Profile is recorded on every stored email.
	Profile     string
	Concurrency int
}

// Input is one raw email to import.
type Input struct {
	Name    string
	Content string
}

// Result holds the outcome of an import.
type Result struct {
	Saved     int
	Skipped   int
	Failed    int
	Bytes     int
	Footnotes int
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	Missing   []int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

// parseResult holds the outcome of parsing a single input.
type parseResult struct {
	position int
	email    *mailnote.Email
	err      error
}

// Import parses all inputs and saves the successful ones. Inputs already
// stored (same content hash) are skipped rather than failed. The progress
// callback, if provided, receives events as the import proceeds.
func (im *Importer) Import(ctx context.Context, inputs []Input, progress ProgressFunc) (*Result, error) {
	if len(inputs) == 0 {
		return &Result{}, nil
	}

	concurrency := im.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan parseResult, len(inputs))

	var completed atomic.Int64
	total := len(inputs)

	notify := func(event ProgressEvent) {
		if progress != nil {
			event.Total = total
			progress(event)
		}
	}

	notify(ProgressEvent{Type: ProgressStarted})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, input := range inputs {
			g.Go(func() error {
				if gctx.Err() != nil {
					resultCh <- parseResult{position: i, err: gctx.Err()}
					return nil
				}
				resultCh <- im.parseInput(i, input)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]parseResult, len(inputs))
	var result Result
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if r.err != nil {
			result.Failed++
			notify(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Name:      inputs[r.position].Name,
				Error:     r.err,
			})
			continue
		}
		notify(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Name:      inputs[r.position].Name,
			Missing:   r.email.Missing(),
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.err != nil {
			continue
		}

		name := inputs[r.position].Name
		if err := im.Emails.CreateEmail(ctx, r.email); err != nil {
			if mailnote.ErrorCode(err) == mailnote.ECONFLICT {
				result.Skipped++
				notify(ProgressEvent{Type: ProgressSkipped, Completed: total, Name: name})
				continue
			}
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: total, Name: name, Error: err})
			continue
		}

		result.Saved++
		result.Bytes += len(r.email.Email.MainContent)
		result.Footnotes += len(r.email.Email.Footnotes)
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total})

	return &result, nil
}

// parseInput parses a single input into an unsaved Email.
func (im *Importer) parseInput(position int, input Input) parseResult {
	parsed, err := im.Parser.Parse(input.Content)
	if err != nil {
		return parseResult{position: position, err: err}
	}

	text := im.visibleText(parsed.MainContent)

	title := mailnote.TitleFromText(text, titleLength)
	if title == "" {
		title = input.Name
	}

	return parseResult{
		position: position,
		email: &mailnote.Email{
			Title:       title,
			Profile:     im.Profile,
			ContentHash: ComputeHash(input.Content),
			Email:       *parsed,
			References:  mailnote.FindReferences(text),
		},
	}
}

// visibleText returns the text of main content, or the content itself when
// no fragment parser is configured.
func (im *Importer) visibleText(content string) string {
	if im.Fragments == nil {
		return content
	}
	frag, err := im.Fragments.ParseFragment(content)
	if err != nil {
		return content
	}
	return frag.Text()
}
