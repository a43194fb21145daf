// Package htmltomarkdown renders newsletter HTML as Markdown using
// JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/mailnote"
)

// Ensure Converter implements mailnote.Converter at compile time.
var _ mailnote.Converter = (*Converter)(nil)

// footnoteLinkRe matches the internal footnote anchors written by
// parse.Sanitize.
var footnoteLinkRe = regexp.MustCompile(`(?is)<a\s[^>]*class="footnote-link"[^>]*>(.*?)</a>`)

// Converter turns sanitized email HTML into Markdown. Newsletter layout
// tables are kept through the table plugin so their cells survive.
type Converter struct {
	conv         *converter.Converter
	plainMarkers bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithPlainMarkers renders footnote links as their bare [N] marker instead
// of a link to an anchor that only exists in HTML output.
func WithPlainMarkers() Option {
	return func(c *Converter) {
		c.plainMarkers = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", mailnote.Errorf(mailnote.EINVALID, "empty HTML input")
	}

	if c.plainMarkers {
		html = footnoteLinkRe.ReplaceAllString(html, "$1")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}

	return strings.TrimSpace(result), nil
}
