package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/buemura/nscan/pkg/types"
)

// MarkdownFormatter renders records as a Markdown table suitable for
// pasting into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, records []types.ScanRecord) error {
	fmt.Fprintln(w, "## Saved scans")
	fmt.Fprintln(w)

	if len(records) == 0 {
		fmt.Fprintln(w, "_No saved scans._")
		return nil
	}

	fmt.Fprintln(w, "| Saved | File | Size (bytes) |")
	fmt.Fprintln(w, "|-------|------|--------------|")

	for _, rec := range records {
		fmt.Fprintf(w, "| %s | `%s` | %d |\n",
			rec.SavedAt.Format("2006-01-02 15:04:05"), escapeMarkdown(rec.Path), rec.Size)
	}

	fmt.Fprintf(w, "\n**Total:** %d saved scans\n", len(records))
	return nil
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
