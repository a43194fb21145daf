package mailnote

import "context"

// ExportStore writes stored emails as Markdown documents. Saved emails
// become visible together on Commit; Abort discards them.
type ExportStore interface {
	Save(ctx context.Context, email *Email, markdown string) error
	Commit() error
	Abort() error
}
