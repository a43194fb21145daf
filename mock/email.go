package mock

import (
	"context"

	"github.com/fwojciec/mailnote"
)

var _ mailnote.EmailService = (*EmailService)(nil)

// EmailService is a mock implementation of mailnote.EmailService.
type EmailService struct {
	CreateEmailFn   func(ctx context.Context, email *mailnote.Email) error
	FindEmailByIDFn func(ctx context.Context, id string) (*mailnote.Email, error)
	FindEmailsFn    func(ctx context.Context, filter mailnote.EmailFilter) ([]*mailnote.Email, error)
	DeleteEmailFn   func(ctx context.Context, id string) error
}

func (s *EmailService) CreateEmail(ctx context.Context, email *mailnote.Email) error {
	return s.CreateEmailFn(ctx, email)
}

func (s *EmailService) FindEmailByID(ctx context.Context, id string) (*mailnote.Email, error) {
	return s.FindEmailByIDFn(ctx, id)
}

func (s *EmailService) FindEmails(ctx context.Context, filter mailnote.EmailFilter) ([]*mailnote.Email, error) {
	return s.FindEmailsFn(ctx, filter)
}

func (s *EmailService) DeleteEmail(ctx context.Context, id string) error {
	return s.DeleteEmailFn(ctx, id)
}
