package converter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/penwyp/psvr-exporter/internal/core/constants"
	"github.com/penwyp/psvr-exporter/internal/core/model"
)

// Greedy: the name ends at the last " (" on the line, the game mode qualifier.
var tableNamePattern = regexp.MustCompile(`^(.+) \(`)

// injectHandID writes the manufactured hand number where the target header
// expects it: "PokerStars Hand #" + id + ":".
func injectHandID(header string, id int64) (string, error) {
	if len(header) < constants.HandIDOffset {
		return "", fmt.Errorf("%w: header too short for hand id: %q", model.ErrMalformedInput, header)
	}
	return header[:constants.HandIDOffset] + strconv.FormatInt(id, 10) + header[constants.HandIDOffset:], nil
}

// spaceBeforeParens separates the game name from its stake descriptor,
// "No Limit(5/10)" becomes "No Limit (5/10)".
func spaceBeforeParens(header string) string {
	var b strings.Builder
	b.Grow(len(header) + 2)
	for i := 0; i < len(header); i++ {
		if header[i] == '(' && i > 0 && header[i-1] != ' ' && header[i-1] != '\t' {
			b.WriteByte(' ')
		}
		b.WriteByte(header[i])
	}
	return b.String()
}

// cleanTableName drops possessive 's so the name can sit between single
// quotes and in a file name without ambiguity.
func cleanTableName(name string) string {
	return strings.ReplaceAll(name, "'s", "")
}

// rewriteTableHeader turns line 1 into the target table header and returns
// the cleaned table name.
//
//	Patrick_Lucky's Cash Game (PlayMoney) Seat #2 is the button
//	Table 'Patrick_Lucky Cash Game' 8-max (Play Money) Seat #2 is the button
func rewriteTableHeader(lines []string) (string, error) {
	m := tableNamePattern.FindStringSubmatchIndex(lines[1])
	if m == nil {
		return "", fmt.Errorf("%w: no table name in %q", model.ErrMalformedInput, lines[1])
	}

	name := cleanTableName(lines[1][m[2]:m[3]])
	rest := lines[1][m[3]:]

	header := fmt.Sprintf("Table '%s' %s%s", name, constants.MaxSeatsLabel, rest)
	lines[1] = strings.ReplaceAll(header, "(PlayMoney)", "(Play Money)")
	return name, nil
}
