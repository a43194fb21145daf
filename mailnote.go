// Package mailnote turns footnoted newsletter emails into a main body plus an
// ordered list of footnotes. It handles HTML and plain text input, strips
// email-client forwarding wrappers, and falls back to generic footnote
// layouts when the newsletter's own markers are missing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, htmltomarkdown/).
package mailnote
