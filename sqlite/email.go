package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/mailnote"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ mailnote.EmailService = (*EmailService)(nil)

// EmailService implements mailnote.EmailService using SQLite.
type EmailService struct {
	db *DB
}

// NewEmailService creates a new EmailService.
func NewEmailService(db *DB) *EmailService {
	return &EmailService{db: db}
}

// CreateEmail stores an email and its footnotes in one transaction.
func (s *EmailService) CreateEmail(ctx context.Context, email *mailnote.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	refs, err := json.Marshal(email.References)
	if err != nil {
		return fmt.Errorf("failed to encode references: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM emails WHERE content_hash = ?", email.ContentHash).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return mailnote.Errorf(mailnote.ECONFLICT, "email already imported")
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO emails (id, title, profile, content_hash, main_content, refs, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, email.Title, email.Profile, email.ContentHash, email.Email.MainContent, string(refs),
		formatTime(createdAt))
	if err != nil {
		return err
	}

	for i, fn := range email.Email.Footnotes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO footnotes (email_id, position, footnote_id, content, original_html)
			VALUES (?, ?, ?, ?, ?)
		`, id, i, fn.ID, fn.Content, fn.OriginalHTML)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	email.ID = id
	email.CreatedAt = createdAt
	return nil
}

// FindEmailByID retrieves an email by ID.
func (s *EmailService) FindEmailByID(ctx context.Context, id string) (*mailnote.Email, error) {
	emails, err := s.FindEmails(ctx, mailnote.EmailFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, mailnote.Errorf(mailnote.ENOTFOUND, "email not found")
	}
	return emails[0], nil
}

// FindEmails retrieves emails matching the filter, newest first.
func (s *EmailService) FindEmails(ctx context.Context, filter mailnote.EmailFilter) ([]*mailnote.Email, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, profile, content_hash, main_content, refs, created_at FROM emails WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	paginate(&query, &args, filter)

	emails, err := s.queryEmails(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	// Footnotes are loaded after the email rows are closed; the pool has a
	// single connection.
	for _, email := range emails {
		footnotes, err := s.findFootnotes(ctx, email.ID)
		if err != nil {
			return nil, err
		}
		email.Email.Footnotes = footnotes
	}

	return emails, nil
}

func (s *EmailService) queryEmails(ctx context.Context, query string, args ...any) ([]*mailnote.Email, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []*mailnote.Email
	for rows.Next() {
		var email mailnote.Email
		var refs, createdAt string

		if err := rows.Scan(&email.ID, &email.Title, &email.Profile, &email.ContentHash,
			&email.Email.MainContent, &refs, &createdAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(refs), &email.References); err != nil {
			return nil, fmt.Errorf("failed to decode references: %w", err)
		}

		email.CreatedAt, err = parseTime(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		emails = append(emails, &email)
	}

	return emails, rows.Err()
}

func (s *EmailService) findFootnotes(ctx context.Context, emailID string) ([]mailnote.Footnote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT footnote_id, content, original_html
		FROM footnotes
		WHERE email_id = ?
		ORDER BY position ASC
	`, emailID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	footnotes := []mailnote.Footnote{}
	for rows.Next() {
		var fn mailnote.Footnote
		if err := rows.Scan(&fn.ID, &fn.Content, &fn.OriginalHTML); err != nil {
			return nil, err
		}
		footnotes = append(footnotes, fn)
	}

	return footnotes, rows.Err()
}

// DeleteEmail permanently removes an email. Its footnotes go with it.
func (s *EmailService) DeleteEmail(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM emails WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return mailnote.Errorf(mailnote.ENOTFOUND, "email not found")
	}

	return nil
}
