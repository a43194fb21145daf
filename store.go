package mailnote

import (
	"context"
	"strings"
	"time"
)

// Email is a stored parse result.
type Email struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Profile     string      `json:"profile"`
	ContentHash string      `json:"contentHash"`
	Email       ParsedEmail `json:"email"`
	References  []int       `json:"references"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Validate returns an error if the email contains invalid fields.
func (e *Email) Validate() error {
	if strings.TrimSpace(e.Email.MainContent) == "" {
		return Errorf(EINVALID, "email main content required")
	}
	if e.ContentHash == "" {
		return Errorf(EINVALID, "email content hash required")
	}
	return nil
}

// Missing returns the references that have no matching footnote.
func (e *Email) Missing() []int {
	return MissingReferences(e.References, e.Email.Footnotes)
}

// EmailService represents a service for managing parsed emails.
type EmailService interface {
	// CreateEmail stores a new email, assigning ID and CreatedAt.
	// Returns ECONFLICT if an email with the same content hash exists.
	CreateEmail(ctx context.Context, email *Email) error

	// FindEmailByID retrieves an email by ID.
	// Returns ENOTFOUND if the email does not exist.
	FindEmailByID(ctx context.Context, id string) (*Email, error)

	// FindEmails retrieves emails matching the filter, newest first.
	FindEmails(ctx context.Context, filter EmailFilter) ([]*Email, error)

	// DeleteEmail permanently removes an email and its footnotes.
	// Returns ENOTFOUND if the email does not exist.
	DeleteEmail(ctx context.Context, id string) error
}

// EmailFilter represents a filter for FindEmails.
type EmailFilter struct {
	ID          *string `json:"id"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
