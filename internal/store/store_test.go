package store

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2026, 10, 16, 9, 5, 7, 42*int(time.Millisecond)+999, time.Local)}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 678*int(time.Millisecond)+123456, time.Local)
	assert.Equal(t, "20260102030405678", Timestamp(ts))

	ts = time.Date(2026, 12, 31, 23, 59, 59, 0, time.Local)
	assert.Equal(t, "20261231235959000", Timestamp(ts))
}

func TestSave_CreatesDirectoryAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	s := New(dir, newClock())

	path, err := s.Save("FOUND:xss")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "20261016090507042-scan.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FOUND:xss", string(data))
}

func TestSave_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, newClock())

	_, err := s.Save("one")
	require.NoError(t, err)
}

func TestSave_EmptyContent(t *testing.T) {
	s := New(t.TempDir(), newClock())

	path, err := s.Save("")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestSave_DistinctFilesAcrossMilliseconds(t *testing.T) {
	clock := newClock()
	s := New(t.TempDir(), clock)

	first, err := s.Save("first")
	require.NoError(t, err)
	clock.advance(2 * time.Millisecond)
	second, err := s.Save("second")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	data, _ := os.ReadFile(first)
	assert.Equal(t, "first", string(data))
}

func TestSave_SameMillisecondDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, newClock())

	first, err := s.Save("first")
	require.NoError(t, err)
	second, err := s.Save("second")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Regexp(t, regexp.MustCompile(`^20261016090507042-[0-9a-f]{8}-scan\.txt$`), filepath.Base(second))

	data, _ := os.ReadFile(first)
	assert.Equal(t, "first", string(data))
	data, _ = os.ReadFile(second)
	assert.Equal(t, "second", string(data))
}

func TestSave_DirectoryIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "outputs")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := New(blocker, newClock()).Save("data")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}

func TestSave_UnwritableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := New(dir, newClock()).Save("data")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating output file")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	clock := newClock()
	s := New(dir, clock)

	older, err := s.Save("a")
	require.NoError(t, err)
	clock.advance(time.Second)
	newer, err := s.Save("bbb")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub-scan.txt"), 0o755))

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, newer, records[0].Path)
	assert.Equal(t, int64(3), records[0].Size)
	assert.Equal(t, older, records[1].Path)
	assert.Equal(t, filepath.Base(older), records[1].Name)
}

func TestList_SameMillisecondCollisionIsNewest(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, newClock())

	first, err := s.Save("first")
	require.NoError(t, err)
	second, err := s.Save("second")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	saved := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(first, saved, saved))
	require.NoError(t, os.Chtimes(second, saved.Add(time.Millisecond), saved.Add(time.Millisecond)))

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second, records[0].Path)
	assert.Equal(t, first, records[1].Path)
}

func TestList_SameMillisecondCollisionWithEqualModTime(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, newClock())

	first, err := s.Save("first")
	require.NoError(t, err)
	second, err := s.Save("second")
	require.NoError(t, err)

	saved := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(first, saved, saved))
	require.NoError(t, os.Chtimes(second, saved, saved))

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second, records[0].Path)
}

func TestList_OrdersByModTime(t *testing.T) {
	dir := t.TempDir()
	clock := newClock()
	s := New(dir, clock)

	early, err := s.Save("a")
	require.NoError(t, err)
	clock.advance(time.Second)
	late, err := s.Save("b")
	require.NoError(t, err)

	// The file with the earlier name was written last.
	now := time.Now()
	require.NoError(t, os.Chtimes(late, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(early, now, now))

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, early, records[0].Path)
	assert.Equal(t, late, records[1].Path)
}

func TestList_MissingDirectory(t *testing.T) {
	records, err := New(filepath.Join(t.TempDir(), "absent"), nil).List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNew_DefaultClock(t *testing.T) {
	s := New("outputs", nil)
	assert.IsType(t, SystemClock{}, s.clock)
	assert.Equal(t, "outputs", s.dir)
}
