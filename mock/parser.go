package mock

import "github.com/fwojciec/mailnote"

var _ mailnote.EmailParser = (*EmailParser)(nil)

// EmailParser is a mock implementation of mailnote.EmailParser.
type EmailParser struct {
	ParseFn func(content string) (*mailnote.ParsedEmail, error)
}

func (p *EmailParser) Parse(content string) (*mailnote.ParsedEmail, error) {
	return p.ParseFn(content)
}
