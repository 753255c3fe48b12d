package types

import "errors"

// Ledger lifecycle errors.
var (
	ErrLedgerDetached  = errors.New("ledger is detached")
	ErrAlreadyAttached = errors.New("ledger is already attached")
)

// Operation errors. All are recoverable by the caller; none are fatal to
// the ledger itself.
var (
	ErrNotFound             = errors.New("item not found")
	ErrInvalidID            = errors.New("invalid item ID")
	ErrValidation           = errors.New("invalid item data")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrReferentialIntegrity = errors.New("parent reference is missing or cyclic")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)
