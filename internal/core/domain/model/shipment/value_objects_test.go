package shipment_test

import (
	"testing"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("trims and keeps optional fields", func(t *testing.T) {
		a, err := shipment.NewAddress(" Ada Lovelace ", "", "1 Main St", "London", "", "N1 9GU", "GB")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "Ada Lovelace", a.FullName())
		assert.Empty(t, a.Phone())
		assert.Nil(t, a.Latitude())
	})

	t.Run("reports every missing required field", func(t *testing.T) {
		_, err := shipment.NewAddress("", "", "", "", "", "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"full_name", "street", "city", "postal_code", "country"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("coordinates are range checked", func(t *testing.T) {
		a, err := shipment.NewAddress("Ada", "", "1 Main St", "London", "", "N1", "GB")
		require.NoError(t, err)

		located, err := a.WithCoordinates(51.5, -0.12)
		require.NoError(t, err)
		assert.InDelta(t, 51.5, *located.Latitude(), 0.0001)

		_, err = a.WithCoordinates(91, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		_, err = a.WithCoordinates(0, -181)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, shipment.Address{}.Validate(), shipment.ErrAddressIsNotConstructed)
	})
}

func TestNewItem(t *testing.T) {
	weight := 2.5
	zero := 0.0

	t.Run("valid item", func(t *testing.T) {
		item, err := shipment.NewItem("Books", 3, &weight, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "Books", item.Description())
		assert.Equal(t, 3, item.Quantity())
		assert.InDelta(t, 2.5, *item.WeightKg(), 0.0001)
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		_, err := shipment.NewItem("Books", 0, nil, nil, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("measurements must be positive", func(t *testing.T) {
		_, err := shipment.NewItem("Books", 1, nil, &zero, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "length_cm")
	})

	t.Run("description is required", func(t *testing.T) {
		_, err := shipment.NewItem("  ", 1, nil, nil, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewPickupWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		w, err := shipment.NewPickupWindow("2026-10-20", "10:00-12:00")

		require.NoError(t, err)
		assert.Equal(t, "2026-10-20 (10:00-12:00)", w.String())
		assert.Equal(t, 20, w.Date().Day())
		assert.Equal(t, "10:00-12:00", w.TimeSlot())
	})

	tests := []struct {
		name, date, slot, field string
	}{
		{name: "bad date", date: "20/10/2026", slot: "10:00-12:00", field: "pickup_date"},
		{name: "bad slot format", date: "2026-10-20", slot: "morning", field: "time_slot"},
		{name: "slot ends before start", date: "2026-10-20", slot: "12:00-10:00", field: "time_slot"},
		{name: "impossible hour", date: "2026-10-20", slot: "10:00-25:00", field: "time_slot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shipment.NewPickupWindow(tt.date, tt.slot)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
