// Tests for the versioned migration sequence: fresh databases, legacy
// base-generation databases, and idempotent re-runs.
package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// openRaw opens the database file directly, without a Backend.
func openRaw(t *testing.T, dataDir string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedLegacyDB creates a base-generation database: no parent_id column,
// status constraint still using the old "wasted" spelling.
func seedLegacyDB(t *testing.T, dataDir string) {
	t.Helper()
	db := openRaw(t, dataDir)

	ddl := inventoryDDL("inventory", baseStatuses, effectiveLocations(nil), false)
	_, err := db.Exec(ddl)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO inventory (item_name, location, quantity, created_at, updated_at, status)
         VALUES ('Old Bread', 'pantry', 1, '2026-01-02T10:00:00Z', '2026-01-05T10:00:00Z', 'wasted'),
                ('Rice', 'pantry', 2, '2026-01-02T10:00:00Z', '2026-01-02T10:00:00Z', 'in_stock')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestMigrateFreshDatabase(t *testing.T) {
	dataDir := t.TempDir()
	db := openRaw(t, dataDir)

	require.NoError(t, migrate(db, effectiveLocations(nil)))

	versions, err := appliedVersions(db)
	require.NoError(t, err)
	assert.Equal(t, []int{versionBase, versionParentTracking, versionImportAudit}, versions)

	hasParent, err := columnExists(db, "inventory", "parent_id")
	require.NoError(t, err)
	assert.True(t, hasParent)

	hasProcessed, err := tableSQLContains(db, "inventory", "'processed'")
	require.NoError(t, err)
	assert.True(t, hasProcessed)

	hasBatches, err := tableExists(db, "import_batches")
	require.NoError(t, err)
	assert.True(t, hasBatches)
}

func TestMigrateIsIdempotent(t *testing.T) {
	dataDir := t.TempDir()
	db := openRaw(t, dataDir)

	require.NoError(t, migrate(db, effectiveLocations(nil)))
	require.NoError(t, migrate(db, effectiveLocations(nil)))
	require.NoError(t, migrate(db, effectiveLocations(nil)))

	versions, err := appliedVersions(db)
	require.NoError(t, err)
	assert.Equal(t, []int{versionBase, versionParentTracking, versionImportAudit}, versions,
		"re-runs must not duplicate version records")
}

func TestMigrateLegacyDatabase(t *testing.T) {
	dataDir := t.TempDir()
	seedLegacyDB(t, dataDir)

	db := openRaw(t, dataDir)
	require.NoError(t, migrate(db, effectiveLocations(nil)))

	// Row count preserved; legacy "wasted" spelling rewritten.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM inventory").Scan(&count))
	assert.Equal(t, 2, count)

	var status string
	require.NoError(t, db.QueryRow(
		"SELECT status FROM inventory WHERE item_name = 'Old Bread'").Scan(&status))
	assert.Equal(t, types.StatusWaste, status)

	require.NoError(t, db.QueryRow(
		"SELECT status FROM inventory WHERE item_name = 'Rice'").Scan(&status))
	assert.Equal(t, types.StatusInStock, status)

	// The rebuilt table accepts the statuses the old constraint rejected.
	_, err := db.Exec(
		`INSERT INTO inventory (item_name, location, quantity, created_at, updated_at, status)
         VALUES ('Split Pork', 'freezer', 1, '2026-01-06T10:00:00Z', '2026-01-06T10:00:00Z', 'processed')`)
	assert.NoError(t, err)

	// And re-running against the migrated state stays silent.
	require.NoError(t, migrate(db, effectiveLocations(nil)))
}

func TestMigratePreservesIDsAcrossRebuild(t *testing.T) {
	dataDir := t.TempDir()
	seedLegacyDB(t, dataDir)

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	t.Cleanup(func() { b.Detach() })

	first, err := b.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Old Bread", first.ItemName)
	assert.Equal(t, types.StatusWaste, first.Status)

	created, err := b.Create(types.NewItem{ItemName: "Milk", Location: types.LocationFridge, Quantity: 1})
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(2), "new IDs continue past migrated rows")
}

func TestMigrateWidensLocationSet(t *testing.T) {
	dataDir := t.TempDir()

	// First generation: no extra locations configured.
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	milk, err := b.Create(types.NewItem{ItemName: "Milk", Location: types.LocationFridge, Quantity: 1})
	require.NoError(t, err)

	_, err = b.Create(types.NewItem{ItemName: "Sourdough Starter", Location: "counter", Quantity: 1})
	assert.ErrorIs(t, err, types.ErrValidation)
	require.NoError(t, b.Detach())

	// The extra location arrives in the configuration after the table
	// already exists; re-attaching must widen the constraint.
	b = NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend:        types.BackendSQLite,
		DataDir:        dataDir,
		ExtraLocations: []string{"counter"},
	}))
	t.Cleanup(func() { b.Detach() })

	starter, err := b.Create(types.NewItem{ItemName: "Sourdough Starter", Location: "counter", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "counter", starter.Location)

	moved, err := b.Relocate(milk.ID, "counter")
	require.NoError(t, err)
	assert.Equal(t, "counter", moved.Location)

	// Rows and IDs survive the rebuild.
	kept, err := b.Get(milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", kept.ItemName)
}

func TestMigrateLocationSetIsIdempotent(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{
		Backend:        types.BackendSQLite,
		DataDir:        dataDir,
		ExtraLocations: []string{"counter"},
	}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	created, err := b.Create(types.NewItem{ItemName: "Basil", Location: "counter", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// Re-attaching with the same extras must not rebuild again or lose rows.
	b = NewBackend()
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })

	kept, err := b.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basil", kept.ItemName)
	assert.Equal(t, "counter", kept.Location)
}
