package ledger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*MemoryStore
	err error
}

func (s *failingStore) Set(values map[string]string) error {
	return s.err
}

func TestOpenEmptyStore(t *testing.T) {
	l, err := Open(NewMemoryStore())
	require.NoError(t, err)

	snap := l.Snapshot()
	assert.True(t, snap.Cursor.IsZero())
	assert.Equal(t, int64(0), snap.LastID)
	assert.Equal(t, int64(1), l.NextID())
	assert.False(t, l.AlreadyConverted(time.Date(2019, 2, 5, 14, 53, 7, 0, time.UTC)))
}

func TestOpenRejectsCorruptValues(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"bad cursor", map[string]string{model.KeyLastConvertedHandTime: "yesterday"}},
		{"bad id", map[string]string{model.KeyLastIdUsed: "forty-two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Set(tt.values))

			_, err := Open(store)
			assert.Error(t, err)
		})
	}
}

func TestDedupBoundary(t *testing.T) {
	l, err := Open(NewMemoryStore())
	require.NoError(t, err)

	cursor := time.Date(2019, 2, 5, 14, 53, 7, 0, time.UTC)
	require.NoError(t, l.Commit(cursor, 1))

	assert.True(t, l.AlreadyConverted(cursor.Add(-time.Second)))
	assert.True(t, l.AlreadyConverted(cursor), "equal timestamp must be skipped")
	assert.False(t, l.AlreadyConverted(cursor.Add(time.Second)))
}

func TestCommitAdvancesAndPersists(t *testing.T) {
	store := NewMemoryStore()
	l, err := Open(store)
	require.NoError(t, err)

	played := time.Date(2019, 2, 5, 14, 53, 7, 0, time.UTC)
	require.NoError(t, l.Commit(played, l.NextID()))
	require.NoError(t, l.Commit(played.Add(time.Minute), l.NextID()))

	assert.Equal(t, int64(3), l.NextID())

	cursor, ok, err := store.Get(model.KeyLastConvertedHandTime)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2019-02-05T14:54:07Z", cursor)

	id, _, _ := store.Get(model.KeyLastIdUsed)
	assert.Equal(t, "2", id)

	// A new ledger over the same store resumes where the old one stopped
	reopened, err := Open(store)
	require.NoError(t, err)
	assert.Equal(t, l.Snapshot(), reopened.Snapshot())
}

func TestCommitConflicts(t *testing.T) {
	l, err := Open(NewMemoryStore())
	require.NoError(t, err)

	played := time.Date(2019, 2, 5, 14, 53, 7, 0, time.UTC)
	require.NoError(t, l.Commit(played, 1))

	t.Run("reused id", func(t *testing.T) {
		assert.ErrorIs(t, l.Commit(played.Add(time.Minute), 1), model.ErrLedgerConflict)
	})

	t.Run("skipped id", func(t *testing.T) {
		assert.ErrorIs(t, l.Commit(played.Add(time.Minute), 3), model.ErrLedgerConflict)
	})

	t.Run("cursor moving backwards", func(t *testing.T) {
		assert.ErrorIs(t, l.Commit(played.Add(-time.Minute), 2), model.ErrLedgerConflict)
	})

	assert.Equal(t, Snapshot{Cursor: played, LastID: 1}, l.Snapshot())
}

func TestCommitStoreFailureLeavesStateUnchanged(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), err: errors.New("disk full")}
	l, err := Open(store)
	require.NoError(t, err)

	err = l.Commit(time.Date(2019, 2, 5, 14, 53, 7, 0, time.UTC), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int64(1), l.NextID())
	assert.True(t, l.Snapshot().Cursor.IsZero())
}

func TestResetCursorKeepsIDs(t *testing.T) {
	store := NewMemoryStore()
	l, err := Open(store)
	require.NoError(t, err)

	played := time.Date(2019, 2, 5, 14, 53, 7, 0, time.UTC)
	require.NoError(t, l.Commit(played, 1))
	require.NoError(t, l.ResetCursor())

	assert.False(t, l.AlreadyConverted(played))
	assert.Equal(t, int64(2), l.NextID())

	reopened, err := Open(store)
	require.NoError(t, err)
	assert.True(t, reopened.Snapshot().Cursor.IsZero())
	assert.Equal(t, int64(1), reopened.Snapshot().LastID)
}

func TestOpenStoreKinds(t *testing.T) {
	dir := t.TempDir()

	for _, kind := range []string{model.StoreMemory, model.StoreJSON, model.StoreSQLite} {
		t.Run(kind, func(t *testing.T) {
			store, err := OpenStore(kind, filepath.Join(dir, kind))
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.Set(map[string]string{"k": "v"}))
			v, ok, err := store.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v", v)
		})
	}

	_, err := OpenStore("redis", dir)
	assert.Error(t, err)
}

func TestForkIsIsolated(t *testing.T) {
	store := NewMemoryStore()
	l, err := Open(store)
	require.NoError(t, err)

	played := time.Date(2019, 2, 5, 14, 53, 7, 0, time.UTC)
	require.NoError(t, l.Commit(played, 1))

	fork := l.Fork()
	assert.Equal(t, l.Snapshot(), fork.Snapshot())
	require.NoError(t, fork.Commit(played.Add(time.Minute), 2))

	assert.Equal(t, int64(2), l.NextID())
	assert.Equal(t, int64(3), fork.NextID())

	id, _, _ := store.Get(model.KeyLastIdUsed)
	assert.Equal(t, "1", id)
}
