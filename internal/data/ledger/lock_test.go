//go:build unix

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLockIsExclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := AcquireLock(dir)
	require.NoError(t, err)

	_, err = AcquireLock(dir)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Release())

	second, err := AcquireLock(dir)
	require.NoError(t, err)
	assert.NoError(t, second.Release())
	assert.NoError(t, second.Release())
}
