// Package sqlite implements the SQLite storage backend for the Larder
// inventory ledger. The database file is the source of truth: rows
// survive across runs, IDs are monotonic and never reused, and items are
// retired by status transition rather than deletion.
package sqlite

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "larder.db"

// Timestamp formats used in the database. Timestamps are RFC3339 UTC;
// expiry dates carry only the date part.
const (
	timeFormat = time.RFC3339
	dateFormat = "2006-01-02"
)

// Compile-time interface check: Backend must implement Ledger.
var _ types.Ledger = (*Backend)(nil)

// Backend implements the Ledger interface using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, opens the database file, and
// brings the schema up to date through the versioned migration sequence.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db, effectiveLocations(config.ExtraLocations)); err != nil {
		db.Close()
		return fmt.Errorf("migrating schema: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrLedgerDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// extraLocations returns the configured location extensions.
// The caller must hold b.mu (read or write lock).
func (b *Backend) extraLocations() []string {
	return b.config.ExtraLocations
}

// nowUTC returns the current time truncated to second precision in UTC,
// matching the stored timestamp resolution.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// round2 rounds a quantity to two decimal places, the precision kept
// for the quantity column.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
