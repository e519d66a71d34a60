package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	s := New(Options{})
	path := filepath.Join(dir, "sub", "note.txt")

	require.NoError(t, s.WriteText(path, "zażółć\nline"))
	got, err := s.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "zażółć\nline", got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestMove_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	s := New(Options{})
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	require.NoError(t, s.WriteText(src, "source"))
	require.NoError(t, s.WriteText(dst, "existing"))

	err := s.Move(src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, iofs.ErrExist)

	got, _ := s.ReadText(dst)
	assert.Equal(t, "existing", got)
	ok, err := s.Exists(src)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMove_CreatesTargetDir(t *testing.T) {
	dir := t.TempDir()
	s := New(Options{})
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "x", "y", "a.txt")
	require.NoError(t, s.WriteText(src, "hello"))
	require.NoError(t, s.Move(src, dst))

	ok, _ := s.Exists(src)
	assert.False(t, ok)
	got, err := s.ReadText(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestDeleteAndExists(t *testing.T) {
	dir := t.TempDir()
	s := New(Options{})
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, s.WriteText(path, "x"))
	require.NoError(t, s.Delete(path))
	ok, err := s.Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Error(t, s.Delete(path))
}

func TestWalkText(t *testing.T) {
	dir := t.TempDir()
	s := New(Options{})
	require.NoError(t, s.WriteText(filepath.Join(dir, "b", "two.txt"), "2"))
	require.NoError(t, s.WriteText(filepath.Join(dir, "a.TXT"), "1"))
	require.NoError(t, s.WriteText(filepath.Join(dir, "skip.md"), "-"))

	var seen []string
	require.NoError(t, s.WalkText(dir, func(p string) error {
		rel, _ := filepath.Rel(dir, p)
		seen = append(seen, rel)
		return nil
	}))
	assert.Equal(t, []string{"a.TXT", filepath.Join("b", "two.txt")}, seen)
}

func TestReadText_RejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644))

	_, err := New(Options{}).ReadText(path)
	assert.ErrorIs(t, err, ErrNotUTF8)
}
