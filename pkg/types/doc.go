// Package types defines the Ledger interface, the inventory item entity,
// its status state machine, and the standard error types for the Larder
// inventory system.
package types
