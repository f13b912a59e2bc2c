package converter

import (
	"regexp"
	"strings"
)

var (
	bracketNeedsSpace = regexp.MustCompile(`\S\[`)
	tenCard           = regexp.MustCompile(`10([hdsc])`)
)

// normalizeCards applies the per-line card notation fixes:
//
//	*** TURN *** [As Ah 10c][9d]   ->   *** TURN *** [As Ah Tc] [9d]
//	bets 1,250                     ->   bets 1250
func normalizeCards(line string) string {
	line = spaceBeforeBrackets(line)
	line = tenCard.ReplaceAllString(line, "T${1}")
	return stripThousandsSeparators(line)
}

// spaceBeforeBrackets puts a space in front of every "[" glued to a
// preceding non-space character.
func spaceBeforeBrackets(line string) string {
	matches := bracketNeedsSpace.FindAllStringIndex(line, -1)
	if matches == nil {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + len(matches))
	prev := 0
	for _, m := range matches {
		bracket := m[1] - 1
		b.WriteString(line[prev:bracket])
		b.WriteByte(' ')
		prev = bracket
	}
	b.WriteString(line[prev:])
	return b.String()
}

// stripThousandsSeparators removes commas sitting between two digits.
func stripThousandsSeparators(line string) string {
	if !strings.Contains(line, ",") {
		return line
	}

	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); i++ {
		if line[i] == ',' && i > 0 && i+1 < len(line) && isDigit(line[i-1]) && isDigit(line[i+1]) {
			continue
		}
		b.WriteByte(line[i])
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
