package backup

import (
	"strings"
	"unicode/utf8"
)

const (
	nameLineRunes = 50
	nameMaxRunes  = 100
	illegalChars  = `<>:"/\|?*`
)

// Decode undoes the backup's escaping. Replacements run in sequence and
// the escaped backslash goes last.
func Decode(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// SafeName derives a filesystem-safe file stem from the first line of
// text. It returns "" when nothing usable is left.
func SafeName(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(truncateRunes(line, nameLineRunes))
	if line == "" {
		return ""
	}
	line = strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) {
			return '_'
		}
		return r
	}, line)
	line = strings.Join(strings.Fields(line), " ")
	return truncateRunes(line, nameMaxRunes)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
