package converter

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/model"
)

// M/D/Y H:M:S AM|PM, as printed by the source client in US notation
var handTimePattern = regexp.MustCompile(`(\d+)/(\d+)/(\d+) (\d+):(\d+):(\d+) (AM|PM)`)

// parseHandTime finds the header timestamp and returns it with the byte
// span it occupies in line.
func parseHandTime(line string, loc *time.Location) (time.Time, [2]int, error) {
	m := handTimePattern.FindStringSubmatchIndex(line)
	if m == nil {
		return time.Time{}, [2]int{}, fmt.Errorf("%w: no timestamp in header %q", model.ErrMalformedInput, line)
	}
	span := [2]int{m[0], m[1]}
	raw := line[m[0]:m[1]]

	nums := make([]int, 6)
	for i := range nums {
		n, err := strconv.Atoi(line[m[2+2*i]:m[3+2*i]])
		if err != nil {
			return time.Time{}, span, fmt.Errorf("%w: %q", model.ErrUnparsableTimestamp, raw)
		}
		nums[i] = n
	}
	month, day, year, hour, minute, second := nums[0], nums[1], nums[2], nums[3], nums[4], nums[5]

	if month < 1 || month > 12 || day < 1 || hour < 1 || hour > 12 || minute > 59 || second > 59 {
		return time.Time{}, span, fmt.Errorf("%w: %q", model.ErrUnparsableTimestamp, raw)
	}

	hour %= 12
	if line[m[14]:m[15]] == "PM" {
		hour += 12
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	if t.Day() != day || t.Month() != time.Month(month) {
		// time.Date normalizes Feb 30 into March
		return time.Time{}, span, fmt.Errorf("%w: %q", model.ErrUnparsableTimestamp, raw)
	}

	return t, span, nil
}
