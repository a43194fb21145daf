// Package fs exports stored emails as Markdown files.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mailnote"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements mailnote.ExportStore at compile time.
var _ mailnote.ExportStore = (*FileStore)(nil)

// FileStore implements mailnote.ExportStore with atomic update semantics.
// Files are saved to a temporary directory, then moved into place on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes one email with YAML frontmatter to the temporary directory.
func (s *FileStore) Save(ctx context.Context, email *mailnote.Email, markdown string) error {
	name, err := EmailPath(email)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	content, err := FormatEmail(email, markdown)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), name), []byte(content), 0644)
}

// Commit replaces the output directory with everything saved so far.
func (s *FileStore) Commit() error {
	// Nothing saved still yields an empty output directory.
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the temporary directory.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// EmailPath returns the file name for an email: its creation date and ID.
func EmailPath(email *mailnote.Email) (string, error) {
	if email.ID == "" {
		return "", mailnote.Errorf(mailnote.EINVALID, "email ID required")
	}
	if strings.ContainsAny(email.ID, `/\`) || strings.Contains(email.ID, "..") {
		return "", mailnote.Errorf(mailnote.EINVALID, "path traversal in email ID %q", email.ID)
	}
	return email.CreatedAt.Format("2006-01-02") + "-" + email.ID + ".md", nil
}

// frontmatter is the YAML header of an exported email.
type frontmatter struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Profile   string `yaml:"profile,omitempty"`
	Imported  string `yaml:"imported"`
	Footnotes int    `yaml:"footnotes"`
	Missing   []int  `yaml:"missing,omitempty,flow"`
}

// FormatEmail formats an email's Markdown with YAML frontmatter.
func FormatEmail(email *mailnote.Email, markdown string) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		ID:        email.ID,
		Title:     email.Title,
		Profile:   email.Profile,
		Imported:  email.CreatedAt.Format("2006-01-02"),
		Footnotes: len(email.Email.Footnotes),
		Missing:   email.Missing(),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(markdown)
	if !strings.HasSuffix(markdown, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}
