// Shared helpers for larder CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mesh-intelligence/larder/internal/sqlite"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend,
// and attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:        types.BackendSQLite,
		DataDir:        dataDir,
		ExtraLocations: configExtraLocations,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// userError reports whether the error is the caller's fault rather than
// the system's, for exit code selection.
func userError(err error) bool {
	return errors.Is(err, types.ErrValidation) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrInvalidID) ||
		errors.Is(err, types.ErrInvalidTransition) ||
		errors.Is(err, types.ErrInsufficientQuantity) ||
		errors.Is(err, types.ErrReferentialIntegrity)
}

// fail prints the error and exits with the matching code.
func fail(context string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", context, err)
	if userError(err) {
		os.Exit(exitUserError)
	}
	os.Exit(exitSysError)
}

// parseID parses a positional item ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an item ID", types.ErrInvalidID, arg)
	}
	return id, nil
}

// parseQuantity parses a positional quantity argument.
func parseQuantity(arg string) (float64, error) {
	q, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a quantity", types.ErrValidation, arg)
	}
	return q, nil
}

// parseDate parses a YYYY-MM-DD argument.
func parseDate(arg string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date (want YYYY-MM-DD)", types.ErrValidation, arg)
	}
	return d, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail("marshal JSON", err)
	}
	fmt.Println(string(out))
}

// printItem writes one item in human-readable form.
func printItem(it *types.Item) {
	expire := "-"
	if it.ExpireDate != nil {
		expire = it.ExpireDate.Format("2006-01-02")
	}
	parent := ""
	if it.ParentID != nil {
		parent = fmt.Sprintf("  parent=%d", *it.ParentID)
	}
	fmt.Printf("%4d  %-24s %8.2f %-5s @ %-8s %-10s exp %s%s\n",
		it.ID, it.ItemName, it.Quantity, it.Unit, it.Location, it.Status, expire, parent)
}

// printItems writes a list of items, or a placeholder when empty.
func printItems(items []*types.Item) {
	if len(items) == 0 {
		fmt.Println("No items.")
		return
	}
	for _, it := range items {
		printItem(it)
	}
}
