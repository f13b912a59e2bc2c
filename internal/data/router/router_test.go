package router

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Patrick_Lucky Cash Game", "Patrick_Lucky Cash Game"},
		{"invalid characters", `a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"control characters", "tab\there", "tab_here"},
		{"trailing dots", "Table...", "Table_"},
		{"trailing dots and invalid", "Table.?.", "Table_"},
		{"trailing underscore kept", "Table_", "Table_"},
		{"inner dots kept", "v1.2 table", "v1.2 table"},
		{"unicode kept", "Café Ñandú", "Café Ñandú"},
		{"only invalid", "???", "_"},
		{"empty", "", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input))
		})
	}
}

func TestAppendCreatesAndAppends(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "")

	require.NoError(t, r.Append("Cash Game", []string{"PokerStars Hand #1: first", "", ""}))
	require.NoError(t, r.Append("Cash Game", []string{"PokerStars Hand #2: second"}))

	data, err := os.ReadFile(filepath.Join(dir, "Cash Game.txt"))
	require.NoError(t, err)
	assert.Equal(t, "PokerStars Hand #1: first\n\n\nPokerStars Hand #2: second\n", string(data))

	info, err := os.Stat(filepath.Join(dir, "Cash Game.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm()&0644)
}

func TestAppendCRLF(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "\r\n")

	require.NoError(t, r.Append("T", []string{"a", "b"}))

	data, err := os.ReadFile(r.PathFor("T"))
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\n", string(data))
}

func TestAppendSanitizesTableName(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "")

	require.NoError(t, r.Append("High/Low?", []string{"x"}))

	_, err := os.Stat(filepath.Join(dir, "High_Low_.txt"))
	assert.NoError(t, err)
}

func TestAppendMissingDir(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing"), "")
	assert.Error(t, r.Append("T", []string{"x"}))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "")

	require.NoError(t, r.Append("Beta", []string{"PokerStars Hand #1: a", "Board[As]", "", "", ""}))
	require.NoError(t, r.Append("Alpha", []string{"PokerStars Hand #2: b", "Board[Ks]", "", "", ""}))
	require.NoError(t, r.Append("Beta", []string{"PokerStars Hand #3: c", "Board[Qs]", "", "", ""}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0755))

	files, err := r.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "Alpha", files[0].Name)
	assert.Equal(t, 1, files[0].Hands)
	assert.Equal(t, "Beta", files[1].Name)
	assert.Equal(t, 2, files[1].Hands)
	assert.Greater(t, files[1].Size, files[0].Size)
}

func TestFilesMissingDir(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing"), "")
	_, err := r.Files()
	assert.Error(t, err)
}
