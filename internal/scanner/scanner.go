// Package scanner runs the external vulnerability scanner as a subprocess and
// classifies how the run ended.
package scanner

import (
	"errors"
	"time"
)

// ErrToolUnavailable is returned by Probe when the scanner cannot be executed.
var ErrToolUnavailable = errors.New("scanner unavailable")

// Options holds scanner execution parameters.
type Options struct {
	Binary      string
	ScanTimeout time.Duration
}

// Reporter receives operator-facing diagnostics while a scan runs.
type Reporter interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	Block(title, text string)
}
