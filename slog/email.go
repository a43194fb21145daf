package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mailnote"
)

// Ensure LoggingEmailService implements mailnote.EmailService.
var _ mailnote.EmailService = (*LoggingEmailService)(nil)

// LoggingEmailService wraps an EmailService with debug logging.
type LoggingEmailService struct {
	next   mailnote.EmailService
	logger *slog.Logger
}

// NewLoggingEmailService creates a new LoggingEmailService.
func NewLoggingEmailService(next mailnote.EmailService, logger *slog.Logger) *LoggingEmailService {
	return &LoggingEmailService{next: next, logger: logger}
}

// CreateEmail delegates to the wrapped service and logs the operation.
func (s *LoggingEmailService) CreateEmail(ctx context.Context, email *mailnote.Email) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create email",
			"id", email.ID,
			"hash", email.ContentHash,
			"footnotes", len(email.Email.Footnotes),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateEmail(ctx, email)
}

// FindEmailByID delegates to the wrapped service and logs the operation.
func (s *LoggingEmailService) FindEmailByID(ctx context.Context, id string) (email *mailnote.Email, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find email",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEmailByID(ctx, id)
}

// FindEmails delegates to the wrapped service and logs the operation.
func (s *LoggingEmailService) FindEmails(ctx context.Context, filter mailnote.EmailFilter) (emails []*mailnote.Email, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find emails",
			"count", len(emails),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEmails(ctx, filter)
}

// DeleteEmail delegates to the wrapped service and logs the operation.
func (s *LoggingEmailService) DeleteEmail(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete email",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteEmail(ctx, id)
}
