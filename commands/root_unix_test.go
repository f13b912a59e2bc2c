//go:build unix

package commands

import (
	"testing"

	"github.com/penwyp/psvr-exporter/internal/data/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertRefusesWhileLocked(t *testing.T) {
	c := newCLI(t)
	lock, err := ledger.AcquireLock(c.stateDir)
	require.NoError(t, err)
	defer lock.Release()

	_, err = c.exec("", "convert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another exporter")
}
