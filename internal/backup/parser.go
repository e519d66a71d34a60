// Package backup parses note-app backup dumps and extracts candidate texts.
//
// A backup is a single text blob:
//
//	<40 hex chars>#{config json}fragment^!fragment^!...
//
// The config block is flat (it ends at the first closing brace). Fragments
// are either simple notes or nested folder containers, see Extractor.
package backup

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	hashLen       = 40
	noteDelimiter = "^!"
	minFragment   = 5
)

// ErrFormat matches every *FormatError via errors.Is.
var ErrFormat = errors.New("backup format error")

// FormatError reports a backup whose header or config block is missing.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "backup: " + e.Reason }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Fragment is one ^!-delimited unit of the backup body.
type Fragment struct {
	Index int // 1-based position in the split sequence
	Raw   string
}

// Document is the parsed form of a backup.
type Document struct {
	Header    string
	Config    string
	Fragments []Fragment
	Total     int // fragments before short ones were dropped
}

// Parse splits a backup blob into header, config block and fragments.
func Parse(content string) (*Document, error) {
	header, rest, ok := scanHeader(content)
	if !ok {
		return nil, &FormatError{Reason: "missing hash header"}
	}
	config, body, ok := scanBlock(rest)
	if !ok {
		return nil, &FormatError{Reason: "missing leading JSON block"}
	}
	doc := &Document{Header: header, Config: config}
	parts := strings.Split(body, noteDelimiter)
	doc.Total = len(parts)
	for i, p := range parts {
		if utf8.RuneCountInString(strings.TrimSpace(p)) < minFragment {
			continue
		}
		doc.Fragments = append(doc.Fragments, Fragment{Index: i + 1, Raw: p})
	}
	return doc, nil
}

// scanHeader consumes exactly 40 hex digits and a '#'.
func scanHeader(s string) (string, string, bool) {
	if len(s) < hashLen+1 {
		return "", "", false
	}
	for i := 0; i < hashLen; i++ {
		if !isHex(s[i]) {
			return "", "", false
		}
	}
	if s[hashLen] != '#' {
		return "", "", false
	}
	return s[:hashLen], s[hashLen+1:], true
}

// scanBlock consumes a flat {...} block at the start of s.
func scanBlock(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "{") {
		return "", "", false
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return "", "", false
	}
	return s[:end+1], s[end+1:], true
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
