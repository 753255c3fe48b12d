// This file implements the mutating operations of the inventory ledger:
// creation, consumption (including the split), terminal transitions,
// relocation, and manual quantity restore. Every mutation refreshes
// updated_at and executes in a single transaction.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// itemColumns is the SELECT column list matching hydrateItem.
const itemColumns = "id, item_name, category, location, quantity, unit, expire_date, created_at, updated_at, status, parent_id"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateItem scans one inventory row into a *types.Item.
func hydrateItem(row rowScanner) (*types.Item, error) {
	var (
		it         types.Item
		category   sql.NullString
		unit       sql.NullString
		expireDate sql.NullString
		createdAt  string
		updatedAt  string
		parentID   sql.NullInt64
	)

	err := row.Scan(&it.ID, &it.ItemName, &category, &it.Location, &it.Quantity,
		&unit, &expireDate, &createdAt, &updatedAt, &it.Status, &parentID)
	if err != nil {
		return nil, err
	}

	it.Category = category.String
	it.Unit = unit.String
	if expireDate.Valid && expireDate.String != "" {
		d, err := time.Parse(dateFormat, expireDate.String)
		if err != nil {
			return nil, fmt.Errorf("parsing expire_date: %w", err)
		}
		it.ExpireDate = &d
	}
	if it.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if it.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	if parentID.Valid {
		it.ParentID = &parentID.Int64
	}
	return &it, nil
}

// nullableDate renders an optional expiry date for storage.
func nullableDate(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(dateFormat)
}

// nullableText stores empty strings as NULL.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create records a new in_stock item with a fresh ID and timestamps.
func (b *Backend) Create(item types.NewItem) (*types.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	if err := item.Validate(b.extraLocations()); err != nil {
		return nil, err
	}

	now := nowUTC()
	res, err := b.db.Exec(
		`INSERT INTO inventory (item_name, category, location, quantity, unit, expire_date, created_at, updated_at, status)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ItemName, nullableText(item.Category), item.Location, round2(item.Quantity),
		nullableText(item.Unit), nullableDate(item.ExpireDate),
		now.Format(timeFormat), now.Format(timeFormat), types.StatusInStock,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new item ID: %w", err)
	}
	return b.getLocked(id)
}

// Get retrieves an item by ID.
func (b *Backend) Get(id int64) (*types.Item, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	return b.getLocked(id)
}

// getLocked fetches one row. The caller must hold b.mu.
func (b *Backend) getLocked(id int64) (*types.Item, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	row := b.db.QueryRow("SELECT "+itemColumns+" FROM inventory WHERE id = ?", id)
	it, err := hydrateItem(row)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}
	return it, nil
}

// Consume records consumption of amount from an in_stock item.
//
// Full consumption (amount equals the current quantity) retires the
// record in place: status consumed, quantity 0, no child created.
// Partial consumption splits the record: the original becomes the
// consumed portion (quantity = amount, status consumed) and a new
// in_stock child carries the remainder with parent_id set. The two
// writes commit together; a reader never observes the split torn.
func (b *Backend) Consume(id int64, amount float64) (*types.SplitResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	amount = round2(amount)
	if amount <= 0 {
		return nil, types.ErrValidation
	}

	it, err := b.getLocked(id)
	if err != nil {
		return nil, err
	}
	if !it.InStock() {
		return nil, types.ErrInvalidTransition
	}
	if amount > round2(it.Quantity) {
		return nil, types.ErrInsufficientQuantity
	}

	now := nowUTC()
	remainder := round2(it.Quantity - amount)

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	consumedQty := amount
	if remainder == 0 {
		// Full consumption: the whole record is the consumed portion.
		consumedQty = 0
	}
	_, err = tx.Exec(
		"UPDATE inventory SET quantity = ?, status = ?, updated_at = ? WHERE id = ?",
		consumedQty, types.StatusConsumed, now.Format(timeFormat), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating consumed item: %w", err)
	}

	var childID int64
	if remainder > 0 {
		res, err := tx.Exec(
			`INSERT INTO inventory (item_name, category, location, quantity, unit, expire_date, created_at, updated_at, status, parent_id)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ItemName, nullableText(it.Category), it.Location, remainder,
			nullableText(it.Unit), nullableDate(it.ExpireDate),
			now.Format(timeFormat), now.Format(timeFormat), types.StatusInStock, id,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting remainder: %w", err)
		}
		if childID, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("reading remainder ID: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing consume: %w", err)
	}

	result := &types.SplitResult{}
	if result.Consumed, err = b.getLocked(id); err != nil {
		return nil, err
	}
	if childID != 0 {
		if result.Remainder, err = b.getLocked(childID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// MarkWaste retires the whole remaining quantity as waste.
// Status and updated_at change; quantity stays, recording how much was
// thrown away.
func (b *Backend) MarkWaste(id int64) (*types.Item, error) {
	return b.transition(id, types.StatusWaste)
}

// MarkProcessed retires the item as processed.
func (b *Backend) MarkProcessed(id int64) (*types.Item, error) {
	return b.transition(id, types.StatusProcessed)
}

// transition applies a terminal status transition to an in_stock item.
func (b *Backend) transition(id int64, status string) (*types.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}

	it, err := b.getLocked(id)
	if err != nil {
		return nil, err
	}
	if err := it.Transition(status); err != nil {
		return nil, err
	}

	_, err = b.db.Exec(
		"UPDATE inventory SET status = ?, updated_at = ? WHERE id = ?",
		it.Status, it.UpdatedAt.Truncate(time.Second).Format(timeFormat), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}
	return b.getLocked(id)
}

// Relocate moves an in_stock item to another storage location.
func (b *Backend) Relocate(id int64, newLocation string) (*types.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	if !types.ValidLocation(newLocation, b.extraLocations()) {
		return nil, types.ErrValidation
	}

	it, err := b.getLocked(id)
	if err != nil {
		return nil, err
	}
	if !it.InStock() {
		return nil, types.ErrInvalidTransition
	}

	_, err = b.db.Exec(
		"UPDATE inventory SET location = ?, updated_at = ? WHERE id = ?",
		newLocation, nowUTC().Format(timeFormat), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating location: %w", err)
	}
	return b.getLocked(id)
}

// Restore corrects the quantity of an in_stock item. Intended for
// manual fixes after a miscounted entry; no other field changes.
func (b *Backend) Restore(id int64, quantity float64) (*types.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	if quantity < 0 {
		return nil, types.ErrValidation
	}

	it, err := b.getLocked(id)
	if err != nil {
		return nil, err
	}
	if !it.InStock() {
		return nil, types.ErrInvalidTransition
	}

	_, err = b.db.Exec(
		"UPDATE inventory SET quantity = ?, updated_at = ? WHERE id = ?",
		round2(quantity), nowUTC().Format(timeFormat), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating quantity: %w", err)
	}
	return b.getLocked(id)
}
