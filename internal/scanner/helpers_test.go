package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeScanner writes an executable shell script that answers -version with
// "fake 1.0" and runs body for anything else.
func fakeScanner(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake scanners are shell scripts")
	}

	path := filepath.Join(t.TempDir(), "fake-nuclei")
	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"-version\" ]; then echo 'fake 1.0'; exit 0; fi\n" +
		body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) add(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recorder) Infof(format string, args ...any)  { r.add("info", format, args...) }
func (r *recorder) Warnf(format string, args ...any)  { r.add("warn", format, args...) }
func (r *recorder) Errorf(format string, args ...any) { r.add("error", format, args...) }
func (r *recorder) Debugf(format string, args ...any) { r.add("debug", format, args...) }

func (r *recorder) Block(title, text string) {
	if strings.TrimSpace(text) != "" {
		r.add("block", "%s %s", title, text)
	}
}

func (r *recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

// writeScript writes an executable script with exactly the given content.
func writeScript(t *testing.T, content string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake scanners are shell scripts")
	}

	path := filepath.Join(t.TempDir(), "script")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

// shortWaitDelay lowers waitDelay for the duration of the test.
func shortWaitDelay(t *testing.T) {
	t.Helper()
	old := waitDelay
	waitDelay = 300 * time.Millisecond
	t.Cleanup(func() { waitDelay = old })
}
