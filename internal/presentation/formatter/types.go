package formatter

import (
	"fmt"

	"github.com/devfeed/devfeed/internal/core/model"
)

// Formatter renders a snapshot in one output format.
type Formatter interface {
	Format(snapshot model.LogSnapshot) error
}

// New returns the formatter for the requested output format.
func New(format string) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
