// This file implements the read surface consumed by the analytics side:
// listing, lineage, expiry scans, shortfall reports, and waste cost.
// Queries are advisory and re-entrant; re-running one produces the same
// result set absent intervening writes.
package sqlite

import (
	"fmt"
	"sort"
	"time"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// List returns items matching the filter, ordered by ID ascending.
func (b *Backend) List(filter types.ListFilter) ([]*types.Item, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}

	query := "SELECT " + itemColumns + " FROM inventory WHERE 1=1"
	var args []any
	if filter.Status != "" {
		if !types.ValidStatus(filter.Status) {
			return nil, types.ErrValidation
		}
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Location != "" {
		query += " AND location = ?"
		args = append(args, filter.Location)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY id ASC"

	return b.queryItems(query, args...)
}

// Children returns the direct offspring of an item, ordered by ID.
func (b *Backend) Children(id int64) ([]*types.Item, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	if _, err := b.getLocked(id); err != nil {
		return nil, err
	}

	return b.queryItems(
		"SELECT "+itemColumns+" FROM inventory WHERE parent_id = ? ORDER BY id ASC", id)
}

// Expiring returns all in_stock items whose expire date falls on or
// before today plus withinDays, earliest expiry first, ties broken by
// ID ascending. Items already past their date are included.
func (b *Backend) Expiring(withinDays int) ([]*types.Item, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	if withinDays < 0 {
		return nil, types.ErrValidation
	}

	cutoff := nowUTC().AddDate(0, 0, withinDays).Format(dateFormat)
	return b.queryItems(
		`SELECT `+itemColumns+` FROM inventory
         WHERE status = ? AND expire_date IS NOT NULL AND expire_date <= ?
         ORDER BY expire_date ASC, id ASC`,
		types.StatusInStock, cutoff)
}

// BelowThreshold reports each tracked key whose summed in_stock quantity
// is below its configured minimum. Item-name keys come first, then
// category keys, each sorted for deterministic output.
func (b *Backend) BelowThreshold(thresholds types.Thresholds) ([]types.Shortfall, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}

	byItem, err := b.sumInStock("item_name")
	if err != nil {
		return nil, err
	}
	byCategory, err := b.sumInStock("category")
	if err != nil {
		return nil, err
	}

	var out []types.Shortfall
	out = append(out, shortfalls(types.ShortfallByItem, thresholds.Items, byItem)...)
	out = append(out, shortfalls(types.ShortfallByCategory, thresholds.Categories, byCategory)...)
	return out, nil
}

// sumInStock sums in_stock quantity grouped by the given column.
func (b *Backend) sumInStock(column string) (map[string]float64, error) {
	rows, err := b.db.Query(fmt.Sprintf(
		"SELECT %s, SUM(quantity) FROM inventory WHERE status = ? AND %s IS NOT NULL GROUP BY %s",
		column, column, column), types.StatusInStock)
	if err != nil {
		return nil, fmt.Errorf("summing by %s: %w", column, err)
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var key string
		var total float64
		if err := rows.Scan(&key, &total); err != nil {
			return nil, err
		}
		sums[key] = round2(total)
	}
	return sums, rows.Err()
}

// shortfalls compares thresholds against available sums. Keys with no
// in_stock rows count as zero available.
func shortfalls(keyType string, thresholds, available map[string]float64) []types.Shortfall {
	keys := make([]string, 0, len(thresholds))
	for k := range thresholds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []types.Shortfall
	for _, k := range keys {
		want := thresholds[k]
		have := available[k]
		if have >= want {
			continue
		}
		out = append(out, types.Shortfall{
			KeyType:   keyType,
			Key:       k,
			Threshold: want,
			Available: have,
			Shortfall: round2(want - have),
		})
	}
	return out
}

// WasteCost sums the price-weighted quantity of items transitioned to
// waste within [from, to). Price data lives outside the schema; wasted
// items missing from the price list contribute zero and are counted in
// the Unpriced field.
func (b *Backend) WasteCost(from, to time.Time, prices types.PriceList) (*types.WasteCostReport, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	if !to.After(from) {
		return nil, types.ErrValidation
	}

	items, err := b.queryItems(
		`SELECT `+itemColumns+` FROM inventory
         WHERE status = ? AND updated_at >= ? AND updated_at < ?
         ORDER BY id ASC`,
		types.StatusWaste,
		from.UTC().Format(timeFormat), to.UTC().Format(timeFormat))
	if err != nil {
		return nil, err
	}

	report := &types.WasteCostReport{From: from.UTC(), To: to.UTC()}
	for _, it := range items {
		report.Items++
		price, ok := prices[it.ItemName]
		if !ok {
			report.Unpriced++
			continue
		}
		report.Total += price * it.Quantity
	}
	report.Total = round2(report.Total)
	return report, nil
}

// queryItems runs a SELECT over itemColumns and hydrates every row.
// The caller must hold b.mu.
func (b *Backend) queryItems(query string, args ...any) ([]*types.Item, error) {
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []*types.Item
	for rows.Next() {
		it, err := hydrateItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
