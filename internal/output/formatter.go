package output

import (
	"fmt"
	"io"

	"github.com/buemura/nscan/pkg/types"
)

// Formatter renders saved scan records to a writer.
type Formatter interface {
	Format(w io.Writer, records []types.ScanRecord) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, json, markdown)", format)
	}
}
