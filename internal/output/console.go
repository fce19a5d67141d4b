package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	infoPrefix    = color.New(color.FgCyan).Sprint("[*]")
	successPrefix = color.New(color.FgGreen, color.Bold).Sprint("[+]")
	warnPrefix    = color.New(color.FgYellow, color.Bold).Sprint("[!]")
	errorPrefix   = color.New(color.FgRed, color.Bold).Sprint("[!]")
	debugPrefix   = color.New(color.FgHiBlack).Sprint("[DEBUG]")
)

// Printer writes operator-facing diagnostic lines. Errors go to the error
// stream, everything else to the output stream.
type Printer struct {
	out     io.Writer
	err     io.Writer
	verbose bool
}

// NewPrinter creates a printer. Debug lines are only written when verbose is set.
func NewPrinter(out, err io.Writer, verbose bool) *Printer {
	return &Printer{out: out, err: err, verbose: verbose}
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, infoPrefix, format, args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, successPrefix, format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.out, warnPrefix, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err, errorPrefix, format, args...)
}

func (p *Printer) Debugf(format string, args ...any) {
	if p.verbose {
		p.line(p.out, debugPrefix, format, args...)
	}
}

// Block writes a titled block of raw text, such as captured scanner output.
// Blank text is skipped.
func (p *Printer) Block(title, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(p.out, "%s\n", color.New(color.Bold).Sprint(title))
	fmt.Fprint(p.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(p.out)
	}
}

func (p *Printer) line(w io.Writer, prefix, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
