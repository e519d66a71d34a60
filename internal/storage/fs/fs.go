// Package fs implements the storage collaborator on the local file system.
package fs

import (
	"bufio"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"notesort/internal/domain"
)

// ErrNotUTF8 is returned by ReadText for files that are not valid UTF-8.
var ErrNotUTF8 = errors.New("invalid UTF-8")

// Options configures FS. Zero values pick defaults.
type Options struct {
	PermFile os.FileMode
	PermDir  os.FileMode
	BufSize  int
}

// FS reads and writes UTF-8 text files. Writes go through a temporary file
// in the destination directory and are renamed into place.
type FS struct {
	permF   os.FileMode
	permD   os.FileMode
	bufSize int
}

var _ domain.Storage = (*FS)(nil)

// New creates an FS.
func New(opts Options) *FS {
	pf := opts.PermFile
	if pf == 0 {
		pf = 0o644
	}
	pd := opts.PermDir
	if pd == 0 {
		pd = 0o755
	}
	bsz := opts.BufSize
	if bsz <= 0 {
		bsz = 64 * 1024
	}
	return &FS{permF: pf, permD: pd, bufSize: bsz}
}

// ReadText returns the content of path. It fails with ErrNotUTF8 rather
// than returning garbled text.
func (s *FS) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}
	return string(data), nil
}

func (s *FS) WriteText(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.permD); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, s.permF)

	bw := bufio.NewWriterSize(tmp, s.bufSize)
	if _, err := bw.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Move renames src to dst. It fails with an error wrapping fs.ErrExist
// when dst is already taken, leaving src untouched.
func (s *FS) Move(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "move", Old: src, New: dst, Err: iofs.ErrExist}
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), s.permD); err != nil {
		return err
	}
	return os.Rename(src, dst)
}

func (s *FS) Delete(path string) error {
	return os.Remove(path)
}

func (s *FS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *FS) MkdirAll(path string) error {
	return os.MkdirAll(path, s.permD)
}

// ReadDir lists a directory sorted by name.
func (s *FS) ReadDir(path string) ([]iofs.DirEntry, error) {
	return os.ReadDir(path)
}

// WalkText calls fn for every .txt file below root in lexical order.
func (s *FS) WalkText(root string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		return fn(path)
	})
}
