package backup

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"notesort/internal/domain"
)

const (
	nestedMarker   = "{[!*|@]}"
	foldersKey     = "folders"
	minSimpleText  = 3
	minCipherLen   = 20
	simpleFallback = "tekst_"
	nestedFallback = "notatka_"
)

// Extractor turns fragments into candidate notes. It numbers synthetic
// names across the whole run, so use one Extractor per backup.
type Extractor struct {
	produced int
}

// NewExtractor returns an Extractor with its name counter at zero.
func NewExtractor() *Extractor { return &Extractor{} }

// IsNested reports whether a fragment is a folder container.
func IsNested(raw string) bool { return strings.Contains(raw, nestedMarker) }

// ExtractAll runs Extract over every fragment of doc in order.
func (e *Extractor) ExtractAll(doc *Document) []domain.ExtractedNote {
	var out []domain.ExtractedNote
	for _, f := range doc.Fragments {
		out = append(out, e.Extract(f)...)
	}
	return out
}

// Extract returns the notes carried by one fragment, possibly none.
func (e *Extractor) Extract(f Fragment) []domain.ExtractedNote {
	if IsNested(f.Raw) {
		return e.extractNested(f)
	}
	text, ok := simpleText(f.Raw)
	if !ok {
		return nil
	}
	return []domain.ExtractedNote{e.note(text, domain.OriginSimple, "", f.Index)}
}

func (e *Extractor) extractNested(f Fragment) []domain.ExtractedNote {
	folder := FolderTitle(f)
	var out []domain.ExtractedNote
	for _, p := range scanPairs(f.Raw) {
		if p.key == foldersKey {
			continue
		}
		text := Decode(p.value)
		if looksLikeCipher(text) {
			continue
		}
		out = append(out, e.note(text, domain.OriginNested, folder, f.Index))
	}
	return out
}

func (e *Extractor) note(text string, origin domain.Origin, folder string, idx int) domain.ExtractedNote {
	e.produced++
	name := SafeName(text)
	if name == "" {
		prefix := simpleFallback
		if origin == domain.OriginNested {
			prefix = nestedFallback
		}
		name = prefix + strconv.Itoa(e.produced)
	}
	return domain.ExtractedNote{Name: name, Text: text, Origin: origin, Folder: folder, Fragment: idx}
}

// FolderTitle is the second ;-separated field of a nested fragment.
func FolderTitle(f Fragment) string {
	parts := strings.SplitN(f.Raw, ";", 4)
	if len(parts) > 1 {
		return parts[1]
	}
	return "folder_" + strconv.Itoa(f.Index)
}

// simpleText returns the decoded text following the last flat {...} block.
func simpleText(raw string) (string, bool) {
	end := lastBlockEnd(raw)
	if end < 0 {
		return "", false
	}
	rest := strings.TrimPrefix(raw[end:], ";")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	text := Decode(rest)
	if utf8.RuneCountInString(text) < minSimpleText {
		return "", false
	}
	return text, true
}

// lastBlockEnd scans non-overlapping {...} blocks (each closed by the first
// following '}') and returns the end offset of the last one, or -1.
func lastBlockEnd(s string) int {
	last := -1
	for i := 0; i < len(s); {
		open := strings.IndexByte(s[i:], '{')
		if open < 0 {
			break
		}
		open += i
		rb := strings.IndexByte(s[open:], '}')
		if rb < 0 {
			break
		}
		last = open + rb + 1
		i = last
	}
	return last
}

type pair struct {
	key, value string
}

// scanPairs finds every "key":"value" pair in s. Keys are non-empty and
// quote-free; values end at the first quote not preceded by an escaping
// backslash. A failed match resumes at the next quote.
func scanPairs(s string) []pair {
	var out []pair
	for i := 0; i < len(s); {
		q := strings.IndexByte(s[i:], '"')
		if q < 0 {
			break
		}
		start := i + q
		p, next, ok := pairAt(s, start)
		if !ok {
			i = start + 1
			continue
		}
		out = append(out, p)
		i = next
	}
	return out
}

func pairAt(s string, start int) (pair, int, bool) {
	keyEnd := strings.IndexByte(s[start+1:], '"')
	if keyEnd <= 0 {
		return pair{}, 0, false
	}
	keyEnd += start + 1
	if !strings.HasPrefix(s[keyEnd:], `":"`) {
		return pair{}, 0, false
	}
	valStart := keyEnd + 3
	for j := valStart; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return pair{key: s[start+1 : keyEnd], value: s[valStart:j]}, j + 1, true
		}
	}
	return pair{}, 0, false
}

// looksLikeCipher flags short strings with no space or newline, which are
// identifiers rather than prose.
func looksLikeCipher(text string) bool {
	return utf8.RuneCountInString(text) < minCipherLen &&
		!strings.ContainsAny(text, " \n")
}
