package ingest_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/mailnote"
	"github.com/fwojciec/mailnote/goquery"
	"github.com/fwojciec/mailnote/ingest"
	"github.com/fwojciec/mailnote/mock"
	"github.com/fwojciec/mailnote/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEmails is an EmailService mock that keeps created emails and
// rejects duplicate hashes.
func recordingEmails() (*mock.EmailService, *[]*mailnote.Email) {
	var mu sync.Mutex
	var saved []*mailnote.Email
	svc := &mock.EmailService{
		CreateEmailFn: func(_ context.Context, email *mailnote.Email) error {
			mu.Lock()
			defer mu.Unlock()
			for _, e := range saved {
				if e.ContentHash == email.ContentHash {
					return mailnote.Errorf(mailnote.ECONFLICT, "email already imported")
				}
			}
			saved = append(saved, email)
			return nil
		},
	}
	return svc, &saved
}

func TestImporter_Import(t *testing.T) {
	t.Parallel()

	t.Run("returns zero result for no inputs", func(t *testing.T) {
		t.Parallel()

		im := &ingest.Importer{Parser: &mock.EmailParser{}, Emails: &mock.EmailService{}}

		result, err := im.Import(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, &ingest.Result{}, result)
	})

	t.Run("parses and saves inputs in order", func(t *testing.T) {
		t.Parallel()

		emails, saved := recordingEmails()
		im := &ingest.Importer{
			Parser:      parse.NewParser(goquery.NewFragmentParser()),
			Emails:      emails,
			Fragments:   goquery.NewFragmentParser(),
			Profile:     mailnote.DefaultProfileName,
			Concurrency: 2,
		}
		inputs := []ingest.Input{
			{Name: "a.txt", Content: "First issue.[1]\n\nIf you'd like to get Money Stuff, subscribe.\n[1] Note A."},
			{Name: "b.html", Content: "<h2>Second issue</h2><p>Claim.[1]</p><p>If you'd like to get Money Stuff</p><div id=\"x_footnote-1\">Note B.</div>"},
			{Name: "c.txt", Content: "Third issue with nothing else."},
		}

		result, err := im.Import(context.Background(), inputs, nil)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Saved)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, 2, result.Footnotes)
		require.Len(t, *saved, 3)

		first := (*saved)[0]
		assert.Equal(t, "First issue.[1]", first.Title)
		assert.Equal(t, mailnote.DefaultProfileName, first.Profile)
		assert.Equal(t, ingest.ComputeHash(inputs[0].Content), first.ContentHash)
		assert.Equal(t, []int{1}, first.References)

		second := (*saved)[1]
		assert.Equal(t, "Second issueClaim.[1]", second.Title)
		assert.Equal(t, []int{1}, second.References)
		assert.Equal(t, "Note B.", second.Email.Footnotes[0].Content)

		assert.Equal(t, "Third issue with nothing else.", (*saved)[2].Title)
	})

	t.Run("derives title and references from visible text", func(t *testing.T) {
		t.Parallel()

		emails, saved := recordingEmails()
		var parsedHTML string
		im := &ingest.Importer{
			Parser: &mock.EmailParser{
				ParseFn: func(_ string) (*mailnote.ParsedEmail, error) {
					return &mailnote.ParsedEmail{
						MainContent: "<h1>Headline</h1><p>Claim.[4]</p>",
						Footnotes:   []mailnote.Footnote{},
					}, nil
				},
			},
			Emails: emails,
			Fragments: &mock.FragmentParser{
				ParseFragmentFn: func(html string) (mailnote.Fragment, error) {
					parsedHTML = html
					return &mock.Fragment{
						TextFn: func() string { return "\n  Headline\nClaim.[4]" },
					}, nil
				},
			},
		}

		result, err := im.Import(context.Background(), []ingest.Input{{Name: "a.html", Content: "<html>raw</html>"}}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, "<h1>Headline</h1><p>Claim.[4]</p>", parsedHTML)
		require.Len(t, *saved, 1)
		assert.Equal(t, "Headline", (*saved)[0].Title)
		assert.Equal(t, []int{4}, (*saved)[0].References)
		assert.Equal(t, []int{4}, (*saved)[0].Missing())
	})

	t.Run("counts parse failures and keeps going", func(t *testing.T) {
		t.Parallel()

		emails, saved := recordingEmails()
		im := &ingest.Importer{
			Parser: parse.NewParser(goquery.NewFragmentParser()),
			Emails: emails,
		}
		inputs := []ingest.Input{
			{Name: "empty.txt", Content: "   "},
			{Name: "ok.txt", Content: "Fine."},
		}

		var failed []ingest.ProgressEvent
		result, err := im.Import(context.Background(), inputs, func(e ingest.ProgressEvent) {
			if e.Type == ingest.ProgressFailed {
				failed = append(failed, e)
			}
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, *saved, 1)
		require.Len(t, failed, 1)
		assert.Equal(t, "empty.txt", failed[0].Name)
		assert.Equal(t, mailnote.EEMPTY, mailnote.ErrorCode(failed[0].Error))
	})

	t.Run("skips already imported emails", func(t *testing.T) {
		t.Parallel()

		emails, saved := recordingEmails()
		im := &ingest.Importer{
			Parser: parse.NewParser(goquery.NewFragmentParser()),
			Emails: emails,
		}
		inputs := []ingest.Input{
			{Name: "one.txt", Content: "Same body."},
			{Name: "copy.txt", Content: "Same body."},
		}

		var skipped []string
		result, err := im.Import(context.Background(), inputs, func(e ingest.ProgressEvent) {
			if e.Type == ingest.ProgressSkipped {
				skipped = append(skipped, e.Name)
			}
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 0, result.Failed)
		assert.Len(t, *saved, 1)
		assert.Equal(t, []string{"copy.txt"}, skipped)
	})

	t.Run("counts storage errors as failures", func(t *testing.T) {
		t.Parallel()

		im := &ingest.Importer{
			Parser: &mock.EmailParser{
				ParseFn: func(content string) (*mailnote.ParsedEmail, error) {
					return &mailnote.ParsedEmail{MainContent: content, Footnotes: []mailnote.Footnote{}}, nil
				},
			},
			Emails: &mock.EmailService{
				CreateEmailFn: func(_ context.Context, _ *mailnote.Email) error {
					return errors.New("disk full")
				},
			},
		}

		result, err := im.Import(context.Background(), []ingest.Input{{Name: "a", Content: "body"}}, nil)
		require.NoError(t, err)

		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		emails, _ := recordingEmails()
		im := &ingest.Importer{
			Parser: parse.NewParser(goquery.NewFragmentParser()),
			Emails: emails,
		}
		inputs := []ingest.Input{
			{Name: "a.txt", Content: "Claim.[1] Other.[2]\n\nIf you'd like to get Money Stuff\n[1] Only one."},
		}

		var events []ingest.ProgressEvent
		_, err := im.Import(context.Background(), inputs, func(e ingest.ProgressEvent) {
			events = append(events, e)
		})
		require.NoError(t, err)

		require.Len(t, events, 3)
		assert.Equal(t, ingest.ProgressStarted, events[0].Type)
		assert.Equal(t, ingest.ProgressCompleted, events[1].Type)
		assert.Equal(t, []int{2}, events[1].Missing)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, 1, events[1].Total)
		assert.Equal(t, ingest.ProgressFinished, events[2].Type)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		im := &ingest.Importer{
			Parser: parse.NewParser(goquery.NewFragmentParser()),
			Emails: &mock.EmailService{},
		}

		_, err := im.Import(ctx, []ingest.Input{{Name: "a", Content: "body"}}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
