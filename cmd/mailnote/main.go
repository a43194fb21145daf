package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mailnote"
	"github.com/fwojciec/mailnote/goquery"
	"github.com/fwojciec/mailnote/html"
	"github.com/fwojciec/mailnote/htmltomarkdown"
	"github.com/fwojciec/mailnote/ingest"
	"github.com/fwojciec/mailnote/parse"
	mnslog "github.com/fwojciec/mailnote/slog"
	"github.com/fwojciec/mailnote/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); the --db flag overrides it.
	DBPath string

	// Input read by commands when no files are given.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	EmailService mailnote.EmailService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mailnote"),
		kong.Description("Extract footnotes from newsletter emails."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mailnote --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	profiles, err := LoadProfiles(cli.Profiles)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", mailnote.ErrorMessage(err))
		return err
	}
	profile, ok := profiles[cli.Profile]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown profile %q\n", cli.Profile)
		return mailnote.Errorf(mailnote.EINVALID, "unknown profile %q", cli.Profile)
	}

	fragments := newFragmentParser(cli.DOM)
	deps.Fragments = fragments
	deps.Profile = profile
	deps.MaxBytes = cli.MaxBytes
	deps.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithPlainMarkers())
	deps.Parser = mnslog.NewLoggingParser(
		parse.NewParser(fragments, parse.WithProfile(profile)),
		logger.With("profile", profile.Name),
	)

	if !usesLibrary(kongCtx.Selected()) {
		return kongCtx.Run(deps)
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MAILNOTE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.EmailService = mnslog.NewLoggingEmailService(sqlite.NewEmailService(m.DB), logger)
	deps.Emails = m.EmailService
	deps.Importer = &ingest.Importer{
		Parser:      deps.Parser,
		Emails:      deps.Emails,
		Fragments:   fragments,
		Profile:     profile.Name,
		Concurrency: cli.Import.Concurrency,
	}

	return kongCtx.Run(deps)
}

// usesLibrary reports whether the selected command reads or writes the
// email database.
func usesLibrary(node *kong.Node) bool {
	if node == nil {
		return false
	}
	switch node.Name {
	case "import", "list", "show", "delete", "export":
		return true
	}
	return false
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newFragmentParser(dom string) mailnote.FragmentParser {
	if dom == "html" {
		return html.NewFragmentParser()
	}
	return goquery.NewFragmentParser()
}

func defaultDBPath() string {
	if path := os.Getenv("MAILNOTE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mailnote.db"
	}
	dir := filepath.Join(home, ".mailnote")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "mailnote.db")
}
