package types

import (
	"strings"
	"time"
)

// Item statuses. An item starts in_stock and is retired by transitioning
// to one of the terminal statuses; it is never physically deleted.
const (
	StatusInStock   = "in_stock"
	StatusConsumed  = "consumed"
	StatusProcessed = "processed"
	StatusWaste     = "waste"
)

// Statuses lists all recognized status values in display order.
var Statuses = []string{StatusInStock, StatusConsumed, StatusProcessed, StatusWaste}

// validStatuses is the set of recognized status values.
var validStatuses = map[string]bool{
	StatusInStock:   true,
	StatusConsumed:  true,
	StatusProcessed: true,
	StatusWaste:     true,
}

// Storage locations tracked by the ledger.
const (
	LocationFridge  = "fridge"
	LocationFreezer = "freezer"
	LocationPantry  = "pantry"
)

// BaseLocations lists the built-in storage locations. Deployments may
// extend the set through Config.ExtraLocations.
var BaseLocations = []string{LocationFridge, LocationFreezer, LocationPantry}

// ValidStatus reports whether s is a recognized status value.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// TerminalStatus reports whether s is a status from which no further
// transition is permitted.
func TerminalStatus(s string) bool {
	return s == StatusConsumed || s == StatusProcessed || s == StatusWaste
}

// ValidLocation reports whether loc is one of the base locations or one
// of the extra locations.
func ValidLocation(loc string, extra []string) bool {
	for _, l := range BaseLocations {
		if loc == l {
			return true
		}
	}
	for _, l := range extra {
		if loc == l {
			return true
		}
	}
	return false
}

// Item represents one physical or logical unit of food tracked by the
// ledger. One row per unit; lineage of split operations is recorded
// through ParentID.
type Item struct {
	ID         int64      `json:"id"`                    // Auto-assigned, unique, never reused.
	ItemName   string     `json:"item_name"`             // Required, non-empty.
	Category   string     `json:"category,omitempty"`    // Free-form (e.g. Grain, Dairy, Meat).
	Location   string     `json:"location"`              // One of the enumerated storage locations.
	Quantity   float64    `json:"quantity"`              // Always >= 0.
	Unit       string     `json:"unit,omitempty"`        // Standardized unit (kg, L, pcs).
	ExpireDate *time.Time `json:"expire_date,omitempty"` // Best-before date.
	CreatedAt  time.Time  `json:"created_at"`            // Set once at creation, immutable.
	UpdatedAt  time.Time  `json:"updated_at"`            // Refreshed on every mutation.
	Status     string     `json:"status"`                // One of the Status constants.
	ParentID   *int64     `json:"parent_id,omitempty"`   // Back reference to the split source.
}

// Transition moves the item to the given status.
// Returns ErrValidation if the target status is not recognized, and
// ErrInvalidTransition unless the item is currently in_stock and the
// target is a terminal status. Terminal statuses permit no further
// transitions.
func (it *Item) Transition(status string) error {
	if !validStatuses[status] {
		return ErrValidation
	}
	if it.Status != StatusInStock || !TerminalStatus(status) {
		return ErrInvalidTransition
	}
	it.Status = status
	it.UpdatedAt = time.Now().UTC()
	return nil
}

// InStock reports whether the item is currently available.
func (it *Item) InStock() bool {
	return it.Status == StatusInStock
}

// NewItem carries the caller-supplied fields for Ledger.Create.
// ID, timestamps, status, and parent linkage are assigned by the ledger.
type NewItem struct {
	ItemName   string     `json:"item_name"`
	Category   string     `json:"category,omitempty"`
	Location   string     `json:"location"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit,omitempty"`
	ExpireDate *time.Time `json:"expire_date,omitempty"`
}

// Validate checks the caller-supplied fields against the creation rules.
// extraLocations widens the location set beyond BaseLocations.
func (n NewItem) Validate(extraLocations []string) error {
	if strings.TrimSpace(n.ItemName) == "" {
		return ErrValidation
	}
	if !ValidLocation(n.Location, extraLocations) {
		return ErrValidation
	}
	if n.Quantity < 0 {
		return ErrValidation
	}
	return nil
}
