package output

import (
	"fmt"
	"io"
	"time"

	"github.com/buemura/nscan/pkg/types"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders records as a colored terminal table.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, records []types.ScanRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No saved scans.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Saved", "File", "Size"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	var total int64
	for _, rec := range records {
		total += rec.Size
		table.Append([]string{colorAge(rec.SavedAt), rec.Path, sizeLabel(rec.Size)})
	}

	table.Render()

	fmt.Fprintf(w, "  Summary: %d saved scans, %s total\n", len(records), humanize.Bytes(uint64(total)))
	return nil
}

func colorAge(t time.Time) string {
	label := humanize.Time(t)
	switch age := time.Since(t); {
	case age < time.Hour:
		return color.GreenString(label)
	case age < 24*time.Hour:
		return color.CyanString(label)
	default:
		return color.WhiteString(label)
	}
}

func sizeLabel(n int64) string {
	if n == 0 {
		return color.YellowString("empty")
	}
	return humanize.Bytes(uint64(n))
}
