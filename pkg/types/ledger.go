package types

import "time"

// Ledger is the single authoritative store of inventory items and the
// sole enforcer of the status state machine and lineage integrity.
// Callers attach to a backend, invoke operations, and detach when done.
//
// Every mutating operation refreshes UpdatedAt and executes as a single
// all-or-nothing transaction; readers never observe a torn split.
type Ledger interface {
	// Attach connects the Ledger to the backend described by config.
	// Creates the DataDir if it does not exist and brings the schema up
	// to date. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrLedgerDetached.
	Detach() error

	// Create records a new in_stock item with a fresh ID and timestamps.
	// Returns ErrValidation if the location is not enumerated, the name
	// is empty, or the quantity is negative.
	Create(item NewItem) (*Item, error)

	// Get retrieves the item with the given ID.
	// Returns ErrNotFound if no item exists with that ID.
	Get(id int64) (*Item, error)

	// List returns items matching the filter, ordered by ID ascending.
	List(filter ListFilter) ([]*Item, error)

	// Children returns the direct offspring of an item, ordered by ID.
	// Returns ErrNotFound if the parent does not exist.
	Children(id int64) ([]*Item, error)

	// Consume records consumption of amount from an in_stock item.
	// Full consumption retires the record as consumed with quantity 0.
	// Partial consumption splits it: the original becomes the consumed
	// portion and a new in_stock child carries the remainder, linked by
	// ParentID. Total quantity is preserved across the split.
	Consume(id int64, amount float64) (*SplitResult, error)

	// MarkWaste retires the whole remaining quantity as waste.
	MarkWaste(id int64) (*Item, error)

	// MarkProcessed retires the item as processed (e.g. a raw ingredient
	// converted into a prepared dish).
	MarkProcessed(id int64) (*Item, error)

	// Relocate moves an in_stock item to another storage location.
	// Mutates location and UpdatedAt only.
	Relocate(id int64, newLocation string) (*Item, error)

	// Restore corrects the quantity of an in_stock item. Intended for
	// manual fixes; it does not touch any other field.
	Restore(id int64, quantity float64) (*Item, error)

	// Expiring returns all in_stock items whose expire date falls on or
	// before today plus withinDays, earliest expiry first, ties broken
	// by ID. Already-expired items are included.
	Expiring(withinDays int) ([]*Item, error)

	// BelowThreshold reports, for each tracked key whose summed in_stock
	// quantity is below its threshold, the shortfall.
	BelowThreshold(thresholds Thresholds) ([]Shortfall, error)

	// WasteCost sums the price-weighted quantity of items transitioned
	// to waste within [from, to).
	WasteCost(from, to time.Time, prices PriceList) (*WasteCostReport, error)

	// ImportItems loads a JSON array of item records from path in one
	// transaction and records an audit row for the batch.
	ImportItems(path string) (*ImportResult, error)
}
