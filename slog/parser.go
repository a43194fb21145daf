// Package slog provides logging decorators for mailnote services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mailnote"
)

// Ensure LoggingParser implements mailnote.EmailParser.
var _ mailnote.EmailParser = (*LoggingParser)(nil)

// LoggingParser wraps an EmailParser with debug logging.
type LoggingParser struct {
	next   mailnote.EmailParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next mailnote.EmailParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) Parse(content string) (email *mailnote.ParsedEmail, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"bytes", len(content),
			"duration", time.Since(begin),
		}
		if email != nil {
			attrs = append(attrs,
				"main_bytes", len(email.MainContent),
				"footnotes", len(email.Footnotes),
			)
		}
		if err != nil {
			attrs = append(attrs, "code", mailnote.ErrorCode(err), "err", err)
		}
		p.logger.Debug("parse email", attrs...)
	}(time.Now())
	return p.next.Parse(content)
}
