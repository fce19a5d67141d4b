// Package store persists raw scanner output as timestamped text files.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/buemura/nscan/pkg/types"
	"github.com/google/uuid"
)

const fileSuffix = "-scan.txt"

// Clock abstracts time.Now so file names can be tested.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Store writes scan output files into a single directory.
type Store struct {
	dir   string
	clock Clock
}

// New creates a store rooted at dir. A nil clock means SystemClock.
func New(dir string, clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{dir: dir, clock: clock}
}

// Save writes content verbatim to <dir>/<timestamp>-scan.txt and returns the
// path. If that name was already taken within the same millisecond, a short
// random segment is inserted before the suffix instead of overwriting.
func (s *Store) Save(content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", s.dir, err)
	}

	stamp := Timestamp(s.clock.Now())
	path := filepath.Join(s.dir, stamp+fileSuffix)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		path = filepath.Join(s.dir, stamp+"-"+uuid.NewString()[:8]+fileSuffix)
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}

// List returns the saved scan files, newest first. A missing directory is not
// an error.
func (s *Store) List() ([]types.ScanRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading output directory %s: %w", s.dir, err)
	}

	var records []types.ScanRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		records = append(records, types.ScanRecord{
			Name:    entry.Name(),
			Path:    filepath.Join(s.dir, entry.Name()),
			Size:    info.Size(),
			SavedAt: info.ModTime(),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return newerThan(records[i], records[j])
	})

	return records, nil
}

// newerThan orders records by modification time. On equal times a collision
// name (<stamp>-<suffix>-scan.txt) was written after its plain <stamp> twin,
// and otherwise the later timestamp in the name wins.
func newerThan(a, b types.ScanRecord) bool {
	if !a.SavedAt.Equal(b.SavedAt) {
		return a.SavedAt.After(b.SavedAt)
	}
	stemA := strings.TrimSuffix(a.Name, fileSuffix)
	stemB := strings.TrimSuffix(b.Name, fileSuffix)
	switch {
	case strings.HasPrefix(stemA, stemB+"-"):
		return true
	case strings.HasPrefix(stemB, stemA+"-"):
		return false
	}
	return a.Name > b.Name
}

// Timestamp formats t as YYYYMMDDHHMMSSmmm with no separators.
func Timestamp(t time.Time) string {
	return t.Format("20060102150405") + fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
}
