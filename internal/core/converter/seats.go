package converter

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/penwyp/psvr-exporter/internal/core/model"
)

var seatPattern = regexp.MustCompile(`^Seat +(\d+):`)

// firstSeatLine is where seat descriptions start, after header and table.
const firstSeatLine = 2

type seatLine struct {
	seat int
	text string
}

// sortSeats orders the contiguous block of seat lines by seat number. The
// source client writes them in join order. The last line of the record is
// never part of the block.
func sortSeats(lines []string) error {
	var seats []seatLine
	for i := firstSeatLine; i < len(lines)-1; i++ {
		m := seatPattern.FindStringSubmatch(lines[i])
		if m == nil {
			break
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("%w: seat number in %q", model.ErrMalformedInput, lines[i])
		}
		seats = append(seats, seatLine{seat: n, text: lines[i]})
	}

	sort.SliceStable(seats, func(i, j int) bool {
		return seats[i].seat < seats[j].seat
	})

	for i, s := range seats {
		lines[firstSeatLine+i] = s.text
	}
	return nil
}
