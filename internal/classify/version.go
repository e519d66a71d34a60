package classify

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"notesort/internal/domain"
)

const defaultExt = ".txt"

// existsFunc is the part of domain.Storage the namers need.
type existsFunc func(path string) (bool, error)

// SplitVersion splits a file stem of the form "<prefix>-<digits>" with a
// non-empty prefix. ok is false for stems without a numeric suffix.
func SplitVersion(stem string) (prefix string, n int, ok bool) {
	i := strings.LastIndexByte(stem, '-')
	if i <= 0 || i == len(stem)-1 {
		return "", 0, false
	}
	digits := stem[i+1:]
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}
	return stem[:i], n, true
}

// NextVersion returns the first unused path "<prefix>-NNN<ext>" in folder
// for a matched file name. "story-001.txt" yields story-002.txt (or later
// if taken); "story.txt" yields story-001.txt.
func NextVersion(stor domain.Storage, folder, matched string) (string, error) {
	return nextVersion(stor.Exists, folder, matched)
}

func nextVersion(exists existsFunc, folder, matched string) (string, error) {
	stem, ext := splitName(filepath.Base(matched))
	prefix, n, ok := SplitVersion(stem)
	if ok {
		n++
	} else {
		prefix, n = stem, 1
	}
	for ; ; n++ {
		path := filepath.Join(folder, fmt.Sprintf("%s-%03d%s", prefix, n, ext))
		taken, err := exists(path)
		if err != nil {
			return "", &domain.IOFailure{Op: "stat", Path: path, Err: err}
		}
		if !taken {
			return path, nil
		}
	}
}

// NextFree returns folder/name, or folder/<stem>_N<ext> with the smallest
// N >= 1 that is not taken.
func NextFree(stor domain.Storage, folder, name string) (string, error) {
	return nextFree(stor.Exists, folder, name)
}

func nextFree(exists existsFunc, folder, name string) (string, error) {
	path := filepath.Join(folder, name)
	stem, ext := filepath.Base(name), ""
	if e := filepath.Ext(stem); e != "" {
		stem, ext = strings.TrimSuffix(stem, e), e
	}
	for n := 1; ; n++ {
		taken, err := exists(path)
		if err != nil {
			return "", &domain.IOFailure{Op: "stat", Path: path, Err: err}
		}
		if !taken {
			return path, nil
		}
		path = filepath.Join(folder, stem+"_"+strconv.Itoa(n)+ext)
	}
}

func splitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if ext == "" {
		ext = defaultExt
	}
	return stem, ext
}
