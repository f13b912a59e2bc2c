package router

import (
	"strings"
	"unicode"
)

const invalidNameChars = `<>:"/\|?*`

func invalidNameRune(r rune) bool {
	return unicode.IsControl(r) || strings.ContainsRune(invalidNameChars, r)
}

// SanitizeFileName maps a table name to a portable file name. Control
// characters and <>:"/\|?* become '_', and a trailing run of dots or
// invalid characters collapses into a single '_'.
func SanitizeFileName(name string) string {
	runes := []rune(name)

	end := len(runes)
	for end > 0 && (runes[end-1] == '.' || invalidNameRune(runes[end-1])) {
		end--
	}

	var b strings.Builder
	for _, r := range runes[:end] {
		if invalidNameRune(r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	if end < len(runes) || b.Len() == 0 {
		b.WriteByte('_')
	}
	return b.String()
}
