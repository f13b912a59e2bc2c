// Package converter rewrites PSVR hand records into PokerStars hand
// history text. Conversion is pure: the caller supplies the hand id and
// decides, from HandTime, whether a record still needs converting.
package converter

import (
	"fmt"
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/constants"
	"github.com/penwyp/psvr-exporter/internal/core/model"
)

// minRecordLines covers header, table line and board summary.
const minRecordLines = 3

// ZoneInfo supplies the source zone and its relation to Eastern time.
// *util.TimeProvider implements it.
type ZoneInfo interface {
	Location() *time.Location
	Abbreviation(t time.Time) string
	EasternOffset() time.Duration
}

// Converter turns raw records into target-format hands.
type Converter struct {
	zones ZoneInfo
}

// New creates a converter printing times according to zones.
func New(zones ZoneInfo) *Converter {
	return &Converter{zones: zones}
}

// HandTime extracts the local time a hand was played from its header line.
func (c *Converter) HandTime(header string) (time.Time, error) {
	t, _, err := parseHandTime(header, c.zones.Location())
	return t, err
}

// Convert rewrites a complete record. The record itself is left untouched;
// on error nothing of the hand should be written.
func (c *Converter) Convert(record model.RawRecord, id int64) (*model.ConvertedHand, error) {
	if len(record.Lines) < minRecordLines {
		return nil, fmt.Errorf("%w: record has %d lines, need at least %d", model.ErrMalformedInput, len(record.Lines), minRecordLines)
	}
	lines := record.Clone().Lines

	handTime, err := c.rewriteTimestamp(lines)
	if err != nil {
		return nil, err
	}

	if lines[0], err = injectHandID(lines[0], id); err != nil {
		return nil, err
	}
	lines[0] = spaceBeforeParens(lines[0])

	table, err := rewriteTableHeader(lines)
	if err != nil {
		return nil, err
	}

	if err := sortSeats(lines); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i] = normalizeCards(lines[i])
	}

	fixPotSummary(lines)

	for i := 0; i < constants.TrailerLines; i++ {
		lines = append(lines, "")
	}

	return &model.ConvertedHand{
		ID:    id,
		Time:  handTime,
		Table: table,
		Lines: lines,
	}, nil
}

// rewriteTimestamp replaces the source date-time on line 0 with the local
// and Eastern times in target notation.
func (c *Converter) rewriteTimestamp(lines []string) (time.Time, error) {
	handTime, span, err := parseHandTime(lines[0], c.zones.Location())
	if err != nil {
		return time.Time{}, err
	}

	eastern := handTime.Add(c.zones.EasternOffset())
	stamp := fmt.Sprintf("%s %s [%s ET]",
		handTime.Format(constants.HandTimeLayout),
		c.zones.Abbreviation(handTime),
		eastern.Format(constants.HandTimeLayout))

	lines[0] = lines[0][:span[0]] + stamp + lines[0][span[1]:]
	return handTime, nil
}
