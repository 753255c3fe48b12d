// Tests for the mutating ledger operations: creation defaults, the
// consume/split contract, terminal transitions, relocation, and manual
// quantity restore.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/larder/pkg/types"
)

func TestCreate(t *testing.T) {
	t.Run("create sets defaults", func(t *testing.T) {
		b := setupBackend(t)
		expire := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

		created := mustCreate(t, b, types.NewItem{
			ItemName:   "Jasmine Rice",
			Category:   "Grain",
			Location:   types.LocationPantry,
			Quantity:   2.0,
			Unit:       "kg",
			ExpireDate: &expire,
		})

		assert.Positive(t, created.ID)
		assert.Equal(t, types.StatusInStock, created.Status)
		assert.Nil(t, created.ParentID)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
		require.NotNil(t, created.ExpireDate)
		assert.Equal(t, expire, *created.ExpireDate)
	})

	t.Run("validation failures", func(t *testing.T) {
		b := setupBackend(t)
		tests := []struct {
			name string
			item types.NewItem
		}{
			{name: "empty name", item: types.NewItem{Location: types.LocationFridge, Quantity: 1}},
			{name: "unknown location", item: types.NewItem{ItemName: "Milk", Location: "counter", Quantity: 1}},
			{name: "negative quantity", item: types.NewItem{ItemName: "Milk", Location: types.LocationFridge, Quantity: -1}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := b.Create(tt.item)
				assert.ErrorIs(t, err, types.ErrValidation)
			})
		}
	})

	t.Run("extra location accepted when configured", func(t *testing.T) {
		b := NewBackend()
		config := types.Config{
			Backend:        types.BackendSQLite,
			DataDir:        t.TempDir(),
			ExtraLocations: []string{"counter"},
		}
		require.NoError(t, b.Attach(config))
		t.Cleanup(func() { b.Detach() })

		created, err := b.Create(types.NewItem{ItemName: "Bread", Location: "counter", Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, "counter", created.Location)
	})
}

func TestGet(t *testing.T) {
	b := setupBackend(t)

	_, err := b.Get(99)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = b.Get(0)
	assert.ErrorIs(t, err, types.ErrInvalidID)

	created := mustCreate(t, b, types.NewItem{ItemName: "Milk", Location: types.LocationFridge, Quantity: 1})
	got, err := b.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestConsumeFull(t *testing.T) {
	b := setupBackend(t)
	created := mustCreate(t, b, types.NewItem{
		ItemName: "Milk", Location: types.LocationFridge, Quantity: 1.0, Unit: "L",
	})

	result, err := b.Consume(created.ID, 1.0)
	require.NoError(t, err)

	// Full consumption yields exactly one record; no child is created.
	assert.Nil(t, result.Remainder)
	assert.Equal(t, types.StatusConsumed, result.Consumed.Status)
	assert.Equal(t, 0.0, result.Consumed.Quantity)
	assert.Nil(t, result.Consumed.ParentID)

	all, err := b.List(types.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConsumePartialSplit(t *testing.T) {
	b := setupBackend(t)
	created := mustCreate(t, b, types.NewItem{
		ItemName: "Jasmine Rice",
		Category: "Grain",
		Location: types.LocationPantry,
		Quantity: 2.0,
		Unit:     "kg",
	})

	result, err := b.Consume(created.ID, 0.5)
	require.NoError(t, err)
	require.NotNil(t, result.Remainder)

	// The original becomes the consumed portion.
	assert.Equal(t, created.ID, result.Consumed.ID)
	assert.Equal(t, types.StatusConsumed, result.Consumed.Status)
	assert.Equal(t, 0.5, result.Consumed.Quantity)

	// The child carries the remainder, linked to its parent.
	assert.Equal(t, types.StatusInStock, result.Remainder.Status)
	assert.Equal(t, 1.5, result.Remainder.Quantity)
	require.NotNil(t, result.Remainder.ParentID)
	assert.Equal(t, created.ID, *result.Remainder.ParentID)
	assert.Equal(t, "Jasmine Rice", result.Remainder.ItemName)
	assert.Equal(t, "kg", result.Remainder.Unit)
	assert.Equal(t, types.LocationPantry, result.Remainder.Location)

	// Total quantity is preserved across exactly two records.
	assert.Equal(t, 2.0, result.Consumed.Quantity+result.Remainder.Quantity)

	children, err := b.Children(created.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, result.Remainder.ID, children[0].ID)
}

func TestConsumeErrors(t *testing.T) {
	b := setupBackend(t)
	created := mustCreate(t, b, types.NewItem{
		ItemName: "Milk", Location: types.LocationFridge, Quantity: 1.0,
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := b.Consume(999, 0.5)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("amount exceeds quantity", func(t *testing.T) {
		_, err := b.Consume(created.ID, 1.5)
		assert.ErrorIs(t, err, types.ErrInsufficientQuantity)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := b.Consume(created.ID, 0)
		assert.ErrorIs(t, err, types.ErrValidation)
		_, err = b.Consume(created.ID, -1)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("terminal item rejects consume", func(t *testing.T) {
		_, err := b.Consume(created.ID, 1.0)
		require.NoError(t, err)
		_, err = b.Consume(created.ID, 0.5)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
	})
}

func TestMarkWasteAndProcessed(t *testing.T) {
	b := setupBackend(t)

	t.Run("waste keeps quantity", func(t *testing.T) {
		created := mustCreate(t, b, types.NewItem{
			ItemName: "Spinach", Location: types.LocationFridge, Quantity: 0.3, Unit: "kg",
		})
		got, err := b.MarkWaste(created.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusWaste, got.Status)
		assert.Equal(t, 0.3, got.Quantity)
	})

	t.Run("processed keeps quantity", func(t *testing.T) {
		created := mustCreate(t, b, types.NewItem{
			ItemName: "Pork Shoulder", Location: types.LocationFreezer, Quantity: 1.2, Unit: "kg",
		})
		got, err := b.MarkProcessed(created.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusProcessed, got.Status)
		assert.Equal(t, 1.2, got.Quantity)
	})

	t.Run("no transition out of a terminal state", func(t *testing.T) {
		created := mustCreate(t, b, types.NewItem{
			ItemName: "Yogurt", Location: types.LocationFridge, Quantity: 1,
		})
		_, err := b.MarkWaste(created.ID)
		require.NoError(t, err)

		_, err = b.MarkProcessed(created.ID)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
		_, err = b.MarkWaste(created.ID)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := b.MarkWaste(999)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestRelocate(t *testing.T) {
	b := setupBackend(t)
	created := mustCreate(t, b, types.NewItem{
		ItemName: "Chicken Thighs", Location: types.LocationFridge, Quantity: 0.8, Unit: "kg",
	})

	t.Run("moves location only", func(t *testing.T) {
		got, err := b.Relocate(created.ID, types.LocationFreezer)
		require.NoError(t, err)
		assert.Equal(t, types.LocationFreezer, got.Location)
		assert.Equal(t, types.StatusInStock, got.Status)
		assert.Equal(t, 0.8, got.Quantity)
		assert.Equal(t, created.CreatedAt, got.CreatedAt)
	})

	t.Run("unknown location rejected", func(t *testing.T) {
		_, err := b.Relocate(created.ID, "garage")
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("terminal item rejected", func(t *testing.T) {
		_, err := b.MarkWaste(created.ID)
		require.NoError(t, err)
		_, err = b.Relocate(created.ID, types.LocationFridge)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
	})
}

func TestRestore(t *testing.T) {
	b := setupBackend(t)
	created := mustCreate(t, b, types.NewItem{
		ItemName: "Eggs", Location: types.LocationFridge, Quantity: 6, Unit: "pcs",
	})

	t.Run("corrects quantity", func(t *testing.T) {
		got, err := b.Restore(created.ID, 12)
		require.NoError(t, err)
		assert.Equal(t, 12.0, got.Quantity)
		assert.Equal(t, types.StatusInStock, got.Status)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := b.Restore(created.ID, -3)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("terminal item rejected", func(t *testing.T) {
		_, err := b.MarkWaste(created.ID)
		require.NoError(t, err)
		_, err = b.Restore(created.ID, 6)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
	})
}
