package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
	// wide runes take two columns
	assert.Equal(t, "牌桌 ", PadRight("牌桌", 5))
	assert.Equal(t, 4, GetDisplayWidth("牌桌"))
}

func TestPainter(t *testing.T) {
	plain := Painter{}
	assert.Equal(t, "ok", plain.OK("ok"))

	colored := Painter{Enabled: true}
	assert.Equal(t, ColorRed+"bad"+ColorReset, colored.Bad("bad"))
	assert.Equal(t, "", colored.Warn(""))

	// a buffer is never a terminal
	assert.False(t, NewPainter(&bytes.Buffer{}).Enabled)
}

func TestTableRender(t *testing.T) {
	table := &Table{
		Headers:    []string{"Table", "Hands"},
		Rows:       [][]string{{"Gacrux III", "12"}, {"牌桌", "3"}},
		RightAlign: map[int]bool{1: true},
	}

	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf, Painter{}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Table       Hands", lines[0])
	assert.Equal(t, "-----------------", lines[1])
	assert.Equal(t, "Gacrux III     12", lines[2])
	assert.Equal(t, "牌桌            3", lines[3])
}
