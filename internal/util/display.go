package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal colors
const (
	ColorReset  = "\033[0m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorBold   = "\033[1m"
)

// IsTerminal reports whether w is a terminal. Only *os.File can be one.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// GetDisplayWidth calculates the columns text occupies, counting wide runes twice
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to width display columns.
func PadRight(text string, width int) string {
	if pad := width - GetDisplayWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

// PadLeft right-aligns text within width display columns.
func PadLeft(text string, width int) string {
	if pad := width - GetDisplayWidth(text); pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

// Painter applies colors only when enabled, so piped output stays plain.
type Painter struct {
	Enabled bool
}

// NewPainter enables colors when w is a terminal.
func NewPainter(w io.Writer) Painter {
	return Painter{Enabled: IsTerminal(w)}
}

func (p Painter) paint(text string, codes ...string) string {
	if !p.Enabled || text == "" {
		return text
	}
	return strings.Join(codes, "") + text + ColorReset
}

// Title formats section titles (Cyan + Bold)
func (p Painter) Title(text string) string {
	return p.paint(text, ColorBold, ColorCyan)
}

// OK formats healthy values (Green)
func (p Painter) OK(text string) string {
	return p.paint(text, ColorGreen)
}

// Warn formats values needing attention (Yellow)
func (p Painter) Warn(text string) string {
	return p.paint(text, ColorYellow)
}

// Bad formats errors (Red)
func (p Painter) Bad(text string) string {
	return p.paint(text, ColorRed)
}

// Table is a column-aligned text table. Alignment uses display width so
// table names with wide characters line up.
type Table struct {
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
}

// Render writes the table with a separator under the headers.
func (t *Table) Render(w io.Writer, p Painter) error {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = GetDisplayWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if n := GetDisplayWidth(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if t.RightAlign[i] {
				parts[i] = PadLeft(cell, widths[i])
			} else {
				parts[i] = PadRight(cell, widths[i])
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	total := 0
	for _, n := range widths {
		total += n
	}
	total += 2 * (len(widths) - 1)

	if _, err := fmt.Fprintln(w, p.paint(line(t.Headers), ColorBold)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", total)); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(w, line(row)); err != nil {
			return err
		}
	}
	return nil
}
