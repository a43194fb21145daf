package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/mailnote"
)

// timeLayout is how timestamps are stored. Values are truncated to seconds
// before formatting so they read back unchanged.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp, naming the column on failure.
func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", column, value, err)
	}
	return t.UTC(), nil
}

// paginate appends LIMIT and OFFSET for the filter. SQLite needs a LIMIT
// before an OFFSET, so an offset alone uses LIMIT -1.
func paginate(query *strings.Builder, args *[]any, filter mailnote.EmailFilter) {
	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, filter.Limit)
	case filter.Offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, filter.Offset)
	}
}
