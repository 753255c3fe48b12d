// Schema DDL for the inventory ledger. The schema is defined once as a
// versioned migration sequence; divergent ad-hoc copies of the table
// definition are deliberately avoided.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Schema versions applied by Migrate, in order.
const (
	versionBase           = 1 // inventory table, pre parent tracking
	versionParentTracking = 2 // parent_id, processed status, waste rename
	versionImportAudit    = 3 // import_batches table
)

const createSchemaMigrations = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);`

// Statuses accepted by each schema generation. The base generation
// predates the processed status and spelled the waste status "wasted";
// the parent-tracking migration reconciles both.
var (
	baseStatuses    = []string{types.StatusInStock, types.StatusConsumed, "wasted"}
	currentStatuses = []string{types.StatusInStock, types.StatusConsumed, types.StatusProcessed, types.StatusWaste}
)

// inventoryDDL renders the CREATE TABLE statement for the inventory
// table under the given name, status set, and location set, with or
// without the parent_id lineage column.
func inventoryDDL(tableName string, statuses, locations []string, parentTracking bool) string {
	parentCols := ""
	if parentTracking {
		parentCols = `,
    parent_id INTEGER REFERENCES inventory(id)`
	}
	return fmt.Sprintf(`CREATE TABLE %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    item_name TEXT NOT NULL,
    category TEXT,
    location TEXT NOT NULL CHECK (location IN (%s)),
    quantity REAL NOT NULL DEFAULT 1.0 CHECK (quantity >= 0),
    unit TEXT,
    expire_date TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'in_stock' CHECK (status IN (%s))%s
);`, tableName, quoteList(locations), quoteList(statuses), parentCols)
}

const createImportBatches = `CREATE TABLE import_batches (
    batch_id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    item_count INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

// Index DDL for common queries. IF NOT EXISTS keeps re-runs silent.
var indexDDL = []string{
	`CREATE INDEX IF NOT EXISTS idx_inventory_parent_id ON inventory(parent_id);`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_status ON inventory(status);`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_expire_date ON inventory(expire_date);`,
}

// quoteList renders a SQL string list: 'a','b','c'.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ",")
}

// effectiveLocations returns the base location set widened by the
// configured extras, dropping duplicates.
func effectiveLocations(extra []string) []string {
	seen := make(map[string]bool, len(types.BaseLocations)+len(extra))
	out := make([]string, 0, len(types.BaseLocations)+len(extra))
	for _, l := range types.BaseLocations {
		seen[l] = true
		out = append(out, l)
	}
	for _, l := range extra {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
