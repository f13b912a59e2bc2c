package fixtures

import (
	"os"
	"strings"
	"time"
)

// SourceTimeLayout is how the PSVR client prints hand times.
const SourceTimeLayout = "1/2/2006 3:04:05 PM"

// SourceLineEnding is what the Windows client terminates lines with.
const SourceLineEnding = "\r\n"

// Hand returns a complete PSVR hand record played at t on table. Seats are
// deliberately out of order, amounts carry thousands separators and cards
// use the "10x" notation.
func Hand(t time.Time, table string) []string {
	return []string{
		"PokerStars Hand #: Hold'em No Limit(5/10) - " + t.Format(SourceTimeLayout),
		table + " (PlayMoney) Seat #2 is the button",
		"Seat 3: Alice (1,000 in chips)",
		"Seat 1: Bob (2,500 in chips)",
		"Seat 2: Patrick_Lucky (1,250 in chips)",
		"Bob: posts small blind 5",
		"Alice: posts big blind 10",
		"*** HOLE CARDS ***",
		"Dealt to Patrick_Lucky [10h 10d]",
		"Patrick_Lucky: raises 30 to 40",
		"Bob: calls 35",
		"Alice: folds",
		"*** FLOP *** [As Ah 10c]",
		"Bob: checks",
		"Patrick_Lucky: bets 1,200",
		"Bob: calls 1,200",
		"*** TURN *** [As Ah 10c][9d]",
		"*** RIVER *** [As Ah 10c 9d][2s]",
		"*** SHOW DOWN ***",
		"Patrick_Lucky: shows [10h 10d]",
		"Bob: shows [Kc Qd]",
		"Patrick_Lucky collected 2,490 from pot",
		"*** SUMMARY ***",
		"Total pot 2490 | Rake 0",
		"Board[As Ah 10c 9d 2s]",
	}
}

// SidePotHand returns a hand whose summary mentions two side pots.
func SidePotHand(t time.Time, table string) []string {
	return []string{
		"PokerStars Hand #: Hold'em No Limit(50/100) - " + t.Format(SourceTimeLayout),
		table + " (PlayMoney) Seat #1 is the button",
		"Seat 1: Alice (1,250 in chips)",
		"Seat 2: Bob (6,400 in chips)",
		"Seat 3: Carol (27,875 in chips)",
		"*** HOLE CARDS ***",
		"Alice: raises 1,150 to 1,250 and is all-in",
		"Bob: raises 5,150 to 6,400 and is all-in",
		"Carol: calls 6,400",
		"*** SUMMARY ***",
		"Total pot 35525 Main pot 1250. Side pot 12800. Side pot 21475. | Rake 0",
		"Board[Js 10s 4d 4c Qh]",
	}
}

// Interrupted returns the first lines of a hand the client never finished.
func Interrupted(t time.Time, table string) []string {
	return Hand(t, table)[:8]
}

// Render joins lines the way the client writes them, with a blank line
// after every hand.
func Render(hands ...[]string) string {
	var b strings.Builder
	for _, hand := range hands {
		for _, line := range hand {
			b.WriteString(line)
			b.WriteString(SourceLineEnding)
		}
		b.WriteString(SourceLineEnding)
	}
	return b.String()
}

// HandLogWriter appends hands to a PSVR match log, like the client does.
type HandLogWriter struct {
	path string
}

// NewHandLogWriter creates the log file (empty) and returns a writer for it.
func NewHandLogWriter(path string) (*HandLogWriter, error) {
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return nil, err
	}
	return &HandLogWriter{path: path}, nil
}

// Path returns the log file path.
func (w *HandLogWriter) Path() string {
	return w.path
}

// AppendHands appends complete or partial hands.
func (w *HandLogWriter) AppendHands(hands ...[]string) error {
	return w.AppendRaw(Render(hands...))
}

// AppendRaw appends text verbatim, e.g. half a line.
func (w *HandLogWriter) AppendRaw(text string) error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(text)
	return err
}
