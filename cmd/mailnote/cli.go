package main

import (
	"context"
	"io"

	"github.com/fwojciec/mailnote"
	"github.com/fwojciec/mailnote/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Parser    mailnote.EmailParser
	Fragments mailnote.FragmentParser
	Converter mailnote.Converter
	Emails    mailnote.EmailService
	Importer  *ingest.Importer
	Profile   mailnote.Profile
	MaxBytes  int64
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `name:"db" env:"MAILNOTE_DB" help:"Path to the email library database"`
	Profiles string `env:"MAILNOTE_PROFILES" type:"path" help:"YAML file with newsletter profiles"`
	Profile  string `short:"p" default:"money-stuff" help:"Newsletter profile to parse with"`
	DOM      string `name:"dom" enum:"goquery,html" default:"goquery" help:"HTML fragment parser (goquery, html)"`
	MaxBytes int64  `name:"max-bytes" default:"5242880" help:"Reject inputs larger than this many bytes"`
	Verbose  bool   `short:"v" help:"Log debug output to stderr"`

	Parse  ParseCmd  `cmd:"" help:"Split emails into main content and footnotes"`
	Refs   RefsCmd   `cmd:"" help:"List footnote references and the ones without footnotes"`
	Import ImportCmd `cmd:"" help:"Parse emails and save them to the library"`
	List   ListCmd   `cmd:"" help:"List saved emails"`
	Show   ShowCmd   `cmd:"" help:"Show a saved email"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved email"`
	Export ExportCmd `cmd:"" help:"Write saved emails to a directory as Markdown"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Files  []string `arg:"" optional:"" help:"Email files (reads stdin when none)"`
	Format string   `short:"f" enum:"json,markdown,text" default:"json" help:"Output format (json, markdown, text)"`
}

// RefsCmd is the "refs" subcommand.
type RefsCmd struct {
	File string `arg:"" optional:"" help:"Email file (reads stdin when omitted)"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Files       []string `arg:"" help:"Email files to import"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent parse limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `short:"n" default:"20" help:"Maximum number of emails to list"`
	Offset int `help:"Number of emails to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Email ID"`
	Format string `short:"f" enum:"json,markdown,text" default:"text" help:"Output format (json, markdown, text)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Email ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" type:"path" help:"Output directory (replaced on success)"`
}
