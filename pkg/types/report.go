package types

import "time"

// SplitResult is the outcome of a Consume call. Consumed is the record
// holding the consumed portion. Remainder is the in_stock child created
// by a partial consumption, linked to Consumed through ParentID; it is
// nil when the item was consumed in full.
type SplitResult struct {
	Consumed  *Item `json:"consumed"`
	Remainder *Item `json:"remainder,omitempty"`
}

// Thresholds maps tracked keys to the minimum in_stock quantity expected
// for them. Items keys match item_name, Categories keys match category.
type Thresholds struct {
	Items      map[string]float64 `json:"items" yaml:"items"`
	Categories map[string]float64 `json:"categories" yaml:"categories"`
}

// Empty reports whether no thresholds are configured.
func (t Thresholds) Empty() bool {
	return len(t.Items) == 0 && len(t.Categories) == 0
}

// Shortfall keys.
const (
	ShortfallByItem     = "item_name"
	ShortfallByCategory = "category"
)

// Shortfall reports one tracked key whose summed in_stock quantity is
// below its threshold.
type Shortfall struct {
	KeyType   string  `json:"key_type"` // ShortfallByItem or ShortfallByCategory.
	Key       string  `json:"key"`
	Threshold float64 `json:"threshold"`
	Available float64 `json:"available"`
	Shortfall float64 `json:"shortfall"` // threshold - available.
}

// PriceList maps item_name to a unit price for waste-cost reporting.
// Price data lives outside the inventory schema; callers supply it.
type PriceList map[string]float64

// WasteCostReport summarizes the price-weighted quantity of items
// transitioned to waste within a date range.
type WasteCostReport struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Total    float64   `json:"total"`
	Items    int       `json:"items"`    // Wasted items counted in the range.
	Unpriced int       `json:"unpriced"` // Items with no entry in the price list.
}

// ImportResult summarizes one batch import.
type ImportResult struct {
	BatchID  string `json:"batch_id"` // UUID v7.
	Source   string `json:"source"`
	Imported int    `json:"imported"`
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	Status   string `json:"status,omitempty"`
	Location string `json:"location,omitempty"`
	Category string `json:"category,omitempty"`
}
