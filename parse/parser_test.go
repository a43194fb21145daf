package parse_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mailnote"
	"github.com/fwojciec/mailnote/goquery"
	mnhtml "github.com/fwojciec/mailnote/html"
	"github.com/fwojciec/mailnote/mock"
	"github.com/fwojciec/mailnote/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements mailnote.EmailParser at compile time.
var _ mailnote.EmailParser = (*parse.Parser)(nil)

func newParser(opts ...parse.Option) *parse.Parser {
	return parse.NewParser(goquery.NewFragmentParser(), opts...)
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("returns EEMPTY for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := newParser().Parse("")

		require.Error(t, err)
		assert.Equal(t, mailnote.EEMPTY, mailnote.ErrorCode(err))
	})

	t.Run("returns EEMPTY for whitespace-only input", func(t *testing.T) {
		t.Parallel()

		_, err := newParser().Parse("  \n\t \r\n")

		require.Error(t, err)
		assert.Equal(t, mailnote.EEMPTY, mailnote.ErrorCode(err))
	})

	t.Run("returns ENOCONTENT when nothing precedes the delimiter", func(t *testing.T) {
		t.Parallel()

		_, err := newParser().Parse("If you'd like to get Money Stuff in your inbox, subscribe.\n[1] A note.")

		require.Error(t, err)
		assert.Equal(t, mailnote.ENOCONTENT, mailnote.ErrorCode(err))
	})

	t.Run("returns ENOCONTENT when nothing precedes the delimiter in HTML", func(t *testing.T) {
		t.Parallel()

		_, err := newParser().Parse("If you'd like to get Money Stuff<br>[1] A note.")

		require.Error(t, err)
		assert.Equal(t, mailnote.ENOCONTENT, mailnote.ErrorCode(err))
	})

	t.Run("splits HTML at the delimiter and extracts newsletter footnotes", func(t *testing.T) {
		t.Parallel()

		input := `<p>Intro with a claim.<a href="https://example.com/#footnote_1">[1]</a></p>` +
			`<p>If you'd like to get Money Stuff in handy email form, subscribe.</p>` +
			`<div id="x_footnote-1"><p>[1] The note.</p></div>`

		email, err := newParser().Parse(input)
		require.NoError(t, err)

		assert.Contains(t, email.MainContent, "Intro with a claim.")
		assert.Contains(t, email.MainContent, `<a href="#footnote-1" class="footnote-link" data-footnote-id="1">[1]</a>`)
		assert.NotContains(t, email.MainContent, "If you'd like")
		assert.Equal(t, []mailnote.Footnote{
			{ID: 1, Content: "[1] The note.", OriginalHTML: "<p>[1] The note.</p>"},
		}, email.Footnotes)
	})

	t.Run("splits plain text at the delimiter", func(t *testing.T) {
		t.Parallel()

		input := "Intro with a claim.[1] And another.[2]\n\n" +
			"If you'd like to get Money Stuff in handy email form, subscribe here.\n\n" +
			"[1] First note.\n" +
			"[2] Second note\ncontinues here.\n"

		email, err := newParser().Parse(input)
		require.NoError(t, err)

		assert.Equal(t, "Intro with a claim.[1] And another.[2]", email.MainContent)
		require.Len(t, email.Footnotes, 2)
		assert.Equal(t, mailnote.Footnote{ID: 1, Content: "First note.", OriginalHTML: "[1] First note."}, email.Footnotes[0])
		assert.Equal(t, 2, email.Footnotes[1].ID)
		assert.Equal(t, "Second note\ncontinues here.", email.Footnotes[1].Content)
	})

	t.Run("extracts hyphenated footnote blocks through the fallback", func(t *testing.T) {
		t.Parallel()

		email, err := newParser().Parse(readFixture(t, "footnote_blocks.html"))
		require.NoError(t, err)

		assert.Equal(t, []int{6, 7, 8, 9}, email.FootnoteIDs())
		assert.Equal(t, "[6] I mean, Elon Musk keeps taking new jobs, but that is a very special case.", email.Footnotes[0].Content)
		assert.Equal(t, "[7] I am assuming that this is a small and simple software startup and there are no liabilities.", email.Footnotes[1].Content)
		assert.Equal(t, `[8] "In a seven-figure deal," you could add, though I'm not sure that's even impressive these days.`, email.Footnotes[2].Content)
		assert.Equal(t, `[9] "It could not possibly be material to them financially" and "doing this would undermine the signal value of getting acquired by Google."`, email.Footnotes[3].Content)
		assert.Contains(t, email.Footnotes[0].OriginalHTML, "<p>[6] I mean")

		assert.Contains(t, email.MainContent, "This is a test email with footnotes.")
		assert.Contains(t, email.MainContent, "More content with footnote [8] and [9].")
		assert.NotContains(t, email.MainContent, "footnote-6")
		assert.NotContains(t, email.MainContent, "Elon Musk")
		assert.NotContains(t, email.MainContent, "style=")
	})

	t.Run("strips forwarding wrapper", func(t *testing.T) {
		t.Parallel()

		email, err := newParser().Parse(readFixture(t, "forwarded.html"))
		require.NoError(t, err)

		assert.Contains(t, email.MainContent, "MoviePass Economy II")
		assert.Contains(t, email.MainContent, "View in browser")
		assert.NotContains(t, email.MainContent, "bbaros@gmail.com")
		assert.NotContains(t, email.MainContent, "Money Stuff: MoviePass Is Back With Betting")
		assert.NotContains(t, email.MainContent, "Forwarded message")
		assert.NotContains(t, email.MainContent, "Sent from my phone")
		assert.NotContains(t, email.MainContent, "subscribe at this link")
		assert.NotContains(t, email.MainContent, "style=")
		assert.Contains(t, email.MainContent, `data-footnote-id="1"`)
		assert.Contains(t, email.MainContent, `data-footnote-id="2"`)

		assert.Equal(t, []mailnote.Footnote{
			{ID: 1, Content: "[1] Disclosure: I used to use MoviePass.", OriginalHTML: "<p>[1] Disclosure: I used to use MoviePass.</p>"},
			{ID: 2, Content: "[2] Worse, really.", OriginalHTML: "<p>[2] Worse, really.</p>"},
		}, email.Footnotes)
	})

	t.Run("reports references without definitions", func(t *testing.T) {
		t.Parallel()

		input := "A claim.[1] Another claim.[2] The client cut off the rest."

		email, err := newParser().Parse(input)
		require.NoError(t, err)

		assert.Equal(t, input, email.MainContent)
		assert.NotNil(t, email.Footnotes)
		assert.Empty(t, email.Footnotes)

		refs := mailnote.FindReferences(email.MainContent)
		assert.Equal(t, []int{1, 2}, refs)
		assert.Equal(t, []int{1, 2}, mailnote.MissingReferences(refs, email.Footnotes))
	})

	t.Run("reports partially truncated footnotes", func(t *testing.T) {
		t.Parallel()

		input := `<p>One.[1] Two.[2] Three.[3]</p>` +
			`<p>If you'd like to get Money Stuff, subscribe.</p>` +
			`<div id="m_footnote-1">First.</div>`

		email, err := newParser().Parse(input)
		require.NoError(t, err)

		refs := mailnote.FindReferences(email.MainContent)
		assert.Equal(t, []int{1, 2, 3}, refs)
		assert.Equal(t, []int{2, 3}, mailnote.MissingReferences(refs, email.Footnotes))
	})

	t.Run("uses profile delimiter", func(t *testing.T) {
		t.Parallel()

		profile := mailnote.Profile{Name: "other", Delimiter: "Thanks for reading", WrapperIDSuffix: "wrapper"}
		input := "Body text.[1]\n\nThanks for reading! Unsubscribe anytime.\n[1] The note."

		email, err := newParser(parse.WithProfile(profile)).Parse(input)
		require.NoError(t, err)

		assert.Equal(t, "Body text.[1]", email.MainContent)
		assert.Equal(t, []int{1}, email.FootnoteIDs())
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		p := newParser()
		input := readFixture(t, "forwarded.html")

		first, err := p.Parse(input)
		require.NoError(t, err)
		second, err := p.Parse(input)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("gives the same result with either fragment parser", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"forwarded.html", "footnote_blocks.html"} {
			input := readFixture(t, name)

			viaGoquery, err := parse.NewParser(goquery.NewFragmentParser()).Parse(input)
			require.NoError(t, err)
			viaHTML, err := parse.NewParser(mnhtml.NewFragmentParser()).Parse(input)
			require.NoError(t, err)

			assert.Equal(t, viaGoquery, viaHTML, name)
		}
	})
}

func TestWithProfile(t *testing.T) {
	t.Parallel()

	t.Run("ignores invalid profiles", func(t *testing.T) {
		t.Parallel()

		p := newParser(parse.WithProfile(mailnote.Profile{Name: "broken"}))

		assert.Equal(t, mailnote.DefaultProfile(), p.Profile())
	})

	t.Run("applies valid profiles", func(t *testing.T) {
		t.Parallel()

		profile := mailnote.Profile{Name: "x", Delimiter: "Unsubscribe"}
		p := newParser(parse.WithProfile(profile))

		assert.Equal(t, profile, p.Profile())
	})
}

func TestIsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "paragraph", input: "<p>x</p>", want: true},
		{name: "inline tag in text", input: "Use <b>bold</b> here", want: true},
		{name: "multiline tag", input: "<div\nid=\"a\">x</div>", want: true},
		{name: "comparison operators", input: "a < b and c > d", want: false},
		{name: "plain text", input: "Just text [1]", want: false},
		{name: "closing tag only", input: "text</p>", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parse.IsHTML(tt.input))
		})
	}
}

func TestParser_ExtractBody(t *testing.T) {
	t.Parallel()

	t.Run("returns the newsletter table", func(t *testing.T) {
		t.Parallel()

		body := newParser().ExtractBody(readFixture(t, "forwarded.html"))

		assert.Regexp(t, `^<table id="m_-4405271914567410178wrapper"`, body)
		assert.NotContains(t, body, "bbaros@gmail.com")
		assert.Contains(t, body, "View in browser")
	})

	t.Run("returns input unchanged without a wrapper", func(t *testing.T) {
		t.Parallel()

		input := `<table id="content"><tr><td>Body</td></tr></table>`

		assert.Equal(t, input, newParser().ExtractBody(input))
	})

	t.Run("skips extraction when the profile has no wrapper suffix", func(t *testing.T) {
		t.Parallel()

		profile := mailnote.Profile{Name: "x", Delimiter: "Unsubscribe"}
		input := `<div>Header</div><table id="a_wrapper"><tr><td>Body</td></tr></table>`

		assert.Equal(t, input, newParser(parse.WithProfile(profile)).ExtractBody(input))
	})

	t.Run("asks the fragment for a table ending in the profile suffix", func(t *testing.T) {
		t.Parallel()

		var gotTag, gotSuffix string
		fragments := &mock.FragmentParser{
			ParseFragmentFn: func(_ string) (mailnote.Fragment, error) {
				return &mock.Fragment{
					OuterHTMLByIDSuffixFn: func(tag, suffix string) (string, bool) {
						gotTag, gotSuffix = tag, suffix
						return "<table>newsletter</table>", true
					},
				}, nil
			},
		}

		body := parse.NewParser(fragments).ExtractBody("<div>forwarded</div>")

		assert.Equal(t, "<table>newsletter</table>", body)
		assert.Equal(t, "table", gotTag)
		assert.Equal(t, "wrapper", gotSuffix)
	})

	t.Run("returns input unchanged when the fragment cannot be parsed", func(t *testing.T) {
		t.Parallel()

		fragments := &mock.FragmentParser{
			ParseFragmentFn: func(_ string) (mailnote.Fragment, error) {
				return nil, errors.New("boom")
			},
		}

		assert.Equal(t, "<p>x</p>", parse.NewParser(fragments).ExtractBody("<p>x</p>"))
	})
}

func TestParser_StripTags(t *testing.T) {
	t.Parallel()

	p := newParser()

	assert.Equal(t, "Hello world", p.StripTags(`<p>Hello <b>world</b></p>`))
	assert.Equal(t, "text", p.StripTags(`<script>x()</script>text`))
	assert.Equal(t, "broken", p.StripTags(`<div><span>broken`))
	assert.Empty(t, p.StripTags(""))
}
