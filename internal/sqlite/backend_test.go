package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// setupBackend creates an attached Backend over a temp data dir, ready
// for ledger operations.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

// mustCreate creates an item and fails the test on error.
func mustCreate(t *testing.T, b *Backend, item types.NewItem) *types.Item {
	t.Helper()
	created, err := b.Create(item)
	require.NoError(t, err)
	return created
}

func TestAttachDetach(t *testing.T) {
	t.Run("attach twice returns ErrAlreadyAttached", func(t *testing.T) {
		b := setupBackend(t)
		err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	})

	t.Run("detach is idempotent", func(t *testing.T) {
		b := setupBackend(t)
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach())
	})

	t.Run("operations on detached backend fail", func(t *testing.T) {
		b := setupBackend(t)
		require.NoError(t, b.Detach())

		_, err := b.Create(types.NewItem{ItemName: "Milk", Location: types.LocationFridge, Quantity: 1})
		assert.ErrorIs(t, err, types.ErrLedgerDetached)

		_, err = b.Get(1)
		assert.ErrorIs(t, err, types.ErrLedgerDetached)

		_, err = b.Expiring(3)
		assert.ErrorIs(t, err, types.ErrLedgerDetached)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		b := NewBackend()
		err := b.Attach(types.Config{Backend: "postgres"})
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})
}

func TestDataSurvivesReattach(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	created := mustCreate(t, b, types.NewItem{
		ItemName: "Jasmine Rice",
		Location: types.LocationPantry,
		Quantity: 2.0,
		Unit:     "kg",
	})
	require.NoError(t, b.Detach())

	// The database file is the source of truth: rows survive re-attach
	// and IDs keep counting from where they left off.
	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	t.Cleanup(func() { b2.Detach() })

	got, err := b2.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jasmine Rice", got.ItemName)
	assert.Equal(t, 2.0, got.Quantity)

	next := mustCreate(t, b2, types.NewItem{ItemName: "Milk", Location: types.LocationFridge, Quantity: 1})
	assert.Greater(t, next.ID, created.ID, "IDs are never reused")
}
