package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/mailnote"
	"github.com/fwojciec/mailnote/ingest"
)

// stdinName labels input read from standard input.
const stdinName = "-"

// readInputs reads the named files, or stdin when names is empty. Inputs
// over the byte limit are rejected before any parsing happens.
func readInputs(deps *Dependencies, names []string) ([]ingest.Input, error) {
	if len(names) == 0 {
		content, err := readLimited(deps.Stdin, stdinName, deps.MaxBytes)
		if err != nil {
			return nil, err
		}
		return []ingest.Input{{Name: stdinName, Content: content}}, nil
	}

	inputs := make([]ingest.Input, 0, len(names))
	for _, name := range names {
		content, err := readFile(name, deps.MaxBytes)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, ingest.Input{Name: name, Content: content})
	}
	return inputs, nil
}

func readFile(name string, limit int64) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", mailnote.Errorf(mailnote.ENOTFOUND, "file %s not found", name)
		}
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return readLimited(f, name, limit)
}

func readLimited(r io.Reader, name string, limit int64) (string, error) {
	if r == nil {
		return "", mailnote.Errorf(mailnote.EINVALID, "no input")
	}
	if limit <= 0 {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return string(b), nil
	}

	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(b)) > limit {
		return "", mailnote.Errorf(mailnote.EINVALID, "%s is larger than %d bytes", name, limit)
	}
	return string(b), nil
}
