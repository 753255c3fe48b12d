// Idempotent schema migrations. Every step probes the live schema before
// altering it, so re-running the sequence against any intermediate state
// succeeds silently and never drops data.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrate brings the database up to the current schema version.
// Safe to call on a fresh database, a base-generation database, or a
// fully migrated one.
func migrate(db *sql.DB, locations []string) error {
	if _, err := db.Exec(createSchemaMigrations); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	if err := migrateBase(db, locations); err != nil {
		return fmt.Errorf("base schema: %w", err)
	}
	if err := migrateParentTracking(db, locations); err != nil {
		return fmt.Errorf("parent tracking: %w", err)
	}
	if err := migrateLocationSet(db, locations); err != nil {
		return fmt.Errorf("location set: %w", err)
	}
	if err := migrateImportAudit(db); err != nil {
		return fmt.Errorf("import audit: %w", err)
	}

	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	return nil
}

// migrateBase creates the inventory table in its first-generation form
// when no inventory table exists at all.
func migrateBase(db *sql.DB, locations []string) error {
	exists, err := tableExists(db, "inventory")
	if err != nil {
		return err
	}
	if exists {
		return recordVersion(db, versionBase)
	}

	ddl := inventoryDDL("inventory", baseStatuses, locations, false)
	if _, err := db.Exec(ddl); err != nil {
		return err
	}
	return recordVersion(db, versionBase)
}

// migrateParentTracking adds the parent_id lineage column, widens the
// status set to include processed, and renames the legacy "wasted"
// status to "waste". SQLite cannot alter CHECK constraints in place, so
// the step rebuilds the table and copies every row across, rewriting
// legacy status values. Skipped entirely when the live schema already
// carries both the column and the widened constraint.
func migrateParentTracking(db *sql.DB, locations []string) error {
	hasParent, err := columnExists(db, "inventory", "parent_id")
	if err != nil {
		return err
	}
	hasProcessed, err := tableSQLContains(db, "inventory", "'processed'")
	if err != nil {
		return err
	}
	if hasParent && hasProcessed {
		return recordVersion(db, versionParentTracking)
	}

	copyParent := "parent_id"
	if !hasParent {
		copyParent = "NULL"
	}
	selectList := fmt.Sprintf(`id, item_name, category, location, quantity, unit, expire_date, created_at, updated_at,
        CASE status WHEN 'wasted' THEN 'waste' ELSE status END,
        %s`, copyParent)
	if err := rebuildInventory(db, selectList, locations); err != nil {
		return err
	}
	return recordVersion(db, versionParentTracking)
}

// migrateLocationSet widens the location CHECK constraint when the
// configured location set has grown since the table was last built.
// The constraint is frozen into the stored CREATE statement, so a new
// extra location added to the configuration after the fact forces one
// more rebuild. A shrunken set is left alone: existing rows may still
// carry the removed location and only Go-side validation gates new
// writes.
func migrateLocationSet(db *sql.DB, locations []string) error {
	for _, loc := range locations {
		present, err := tableSQLContains(db, "inventory", quoteList([]string{loc}))
		if err != nil {
			return err
		}
		if !present {
			return rebuildInventory(db, itemColumns, locations)
		}
	}
	return nil
}

// rebuildInventory recreates the inventory table under the current
// schema generation and copies every row across, selecting selectList
// from the old table. SQLite cannot alter a CHECK constraint in place;
// any constraint change goes through this path. Row IDs are preserved
// and the AUTOINCREMENT sequence continues past the copied maximum.
func rebuildInventory(db *sql.DB, selectList string, locations []string) error {
	// Disable foreign keys around the rebuild; the pragma has no effect
	// inside an open transaction.
	if _, err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disabling foreign keys for rebuild: %w", err)
	}
	defer db.Exec("PRAGMA foreign_keys = ON")

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ddl := inventoryDDL("inventory_new", currentStatuses, locations, true)
	if _, err := tx.Exec(ddl); err != nil {
		return fmt.Errorf("creating rebuilt table: %w", err)
	}

	copySQL := fmt.Sprintf(`INSERT INTO inventory_new
    (%s)
    SELECT %s FROM inventory`, itemColumns, selectList)
	if _, err := tx.Exec(copySQL); err != nil {
		return fmt.Errorf("copying rows: %w", err)
	}

	if _, err := tx.Exec("DROP TABLE inventory"); err != nil {
		return fmt.Errorf("dropping old table: %w", err)
	}
	if _, err := tx.Exec("ALTER TABLE inventory_new RENAME TO inventory"); err != nil {
		return fmt.Errorf("renaming rebuilt table: %w", err)
	}

	return tx.Commit()
}

// migrateImportAudit creates the import_batches audit table.
func migrateImportAudit(db *sql.DB) error {
	exists, err := tableExists(db, "import_batches")
	if err != nil {
		return err
	}
	if !exists {
		if _, err := db.Exec(createImportBatches); err != nil {
			return err
		}
	}
	return recordVersion(db, versionImportAudit)
}

// tableExists reports whether a table is present in the live schema.
func tableExists(db *sql.DB, table string) (bool, error) {
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// columnExists reports whether a column is present on a table.
func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid           int
			name, colType string
			notNull, pk   int
			defaultVal    sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// tableSQLContains reports whether the stored CREATE statement of a
// table contains the given fragment. Used to probe CHECK constraints,
// which PRAGMA table_info does not expose.
func tableSQLContains(db *sql.DB, table, fragment string) (bool, error) {
	var ddl sql.NullString
	err := db.QueryRow(
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&ddl)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ddl.Valid && strings.Contains(ddl.String, fragment), nil
}

// recordVersion marks a migration step as applied. Re-recording an
// already applied version is a no-op.
func recordVersion(db *sql.DB, version int) error {
	_, err := db.Exec(
		"INSERT OR IGNORE INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		version, nowUTC().Format(timeFormat),
	)
	return err
}

// appliedVersions returns the recorded migration versions in order.
func appliedVersions(db *sql.DB) ([]int, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
