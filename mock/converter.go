package mock

import "github.com/fwojciec/mailnote"

var _ mailnote.Converter = (*Converter)(nil)

// Converter is a mock implementation of mailnote.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
