package converter

import (
	"regexp"
	"strconv"
	"strings"
)

var sidePotPattern = regexp.MustCompile(`Side pot (\d+)\. `)

const sidePotLabel = "Side pot"

// fixPotSummary adjusts the pot line, second to last in the record. The
// target format ends it with a space, and several unlabeled side pots are
// numbered so importers can tell equal-sized ones apart:
//
//	Main pot 1250. Side pot 12800. Side pot 21475. | Rake 0
//	Main pot 1250. Side pot-2 12800. Side pot-1 21475. | Rake 0
func fixPotSummary(lines []string) {
	idx := len(lines) - 2
	if idx < 0 {
		return
	}
	lines[idx] = relabelSidePots(lines[idx] + " ")
}

func relabelSidePots(summary string) string {
	matches := sidePotPattern.FindAllStringIndex(summary, -1)
	if len(matches) < 2 {
		return summary
	}

	var b strings.Builder
	b.Grow(len(summary) + 2*len(matches))
	prev := 0
	k := len(matches)
	for _, m := range matches {
		b.WriteString(summary[prev:m[0]])
		b.WriteString(sidePotLabel + "-" + strconv.Itoa(k))
		b.WriteString(summary[m[0]+len(sidePotLabel) : m[1]])
		prev = m[1]
		k--
	}
	b.WriteString(summary[prev:])
	return b.String()
}
