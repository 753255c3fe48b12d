// This file implements batch ingestion: a JSON array of item records is
// loaded in one transaction and an audit row identifies the batch. The
// ingestion collaborator (receipt/photo/voice extraction) produces these
// files; the ledger only validates and stores them.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// importRecord is one entry of an import file. Quantity and status are
// optional; missing fields take the creation defaults.
type importRecord struct {
	ItemName   string   `json:"item_name"`
	Category   string   `json:"category"`
	Location   string   `json:"location"`
	Quantity   *float64 `json:"quantity"`
	Unit       string   `json:"unit"`
	ExpireDate string   `json:"expire_date"`
	Status     string   `json:"status"`
	ParentID   *int64   `json:"parent_id"`
}

// ImportItems loads a JSON array of item records from path. The whole
// batch commits or none of it does, and an import_batches row records
// the batch under a fresh UUID v7.
func (b *Backend) ImportItems(path string) (*types.ImportResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: import file contains no records", types.ErrValidation)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := nowUTC().Format(timeFormat)
	for i, rec := range records {
		if err := b.importOne(tx, rec, now); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	batchID := generateBatchID()
	_, err = tx.Exec(
		"INSERT INTO import_batches (batch_id, source, item_count, created_at) VALUES (?, ?, ?, ?)",
		batchID, filepath.Base(path), len(records), now,
	)
	if err != nil {
		return nil, fmt.Errorf("recording import batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	return &types.ImportResult{
		BatchID:  batchID,
		Source:   filepath.Base(path),
		Imported: len(records),
	}, nil
}

// importOne validates and inserts a single record inside the batch
// transaction.
func (b *Backend) importOne(tx *sql.Tx, rec importRecord, now string) error {
	status := rec.Status
	if status == "" {
		status = types.StatusInStock
	}
	if !types.ValidStatus(status) {
		return types.ErrValidation
	}

	quantity := 1.0
	if rec.Quantity != nil {
		quantity = *rec.Quantity
	}

	var expire *time.Time
	if rec.ExpireDate != "" {
		d, err := time.Parse(dateFormat, rec.ExpireDate)
		if err != nil {
			return fmt.Errorf("%w: bad expire_date %q", types.ErrValidation, rec.ExpireDate)
		}
		expire = &d
	}

	item := types.NewItem{
		ItemName:   rec.ItemName,
		Category:   rec.Category,
		Location:   rec.Location,
		Quantity:   quantity,
		Unit:       rec.Unit,
		ExpireDate: expire,
	}
	if err := item.Validate(b.extraLocations()); err != nil {
		return err
	}

	if rec.ParentID != nil {
		if err := b.checkLineage(tx, *rec.ParentID); err != nil {
			return err
		}
	}

	_, err := tx.Exec(
		`INSERT INTO inventory (item_name, category, location, quantity, unit, expire_date, created_at, updated_at, status, parent_id)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ItemName, nullableText(item.Category), item.Location, round2(item.Quantity),
		nullableText(item.Unit), nullableDate(item.ExpireDate),
		now, now, status, nullableParent(rec.ParentID),
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// checkLineage verifies that parentID names an existing item whose
// ancestry chain is acyclic. The relational constraint alone cannot
// rule out cycles in pre-existing data, so the chain is walked with a
// visited set.
func (b *Backend) checkLineage(tx *sql.Tx, parentID int64) error {
	visited := make(map[int64]bool)
	current := parentID
	for {
		if visited[current] {
			return types.ErrReferentialIntegrity
		}
		visited[current] = true

		var next sql.NullInt64
		err := tx.QueryRow("SELECT parent_id FROM inventory WHERE id = ?", current).Scan(&next)
		if errors.Is(err, sql.ErrNoRows) {
			// Missing ancestor, including a parentID that names no row.
			return fmt.Errorf("%w: parent %d does not exist", types.ErrReferentialIntegrity, current)
		}
		if err != nil {
			return fmt.Errorf("walking lineage of parent %d: %w", parentID, err)
		}
		if !next.Valid {
			return nil
		}
		current = next.Int64
	}
}

// nullableParent renders an optional parent reference for storage.
func nullableParent(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// generateBatchID generates a UUID v7 for import batch identifiers.
func generateBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}
