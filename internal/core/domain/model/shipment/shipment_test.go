package shipment_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookedAt = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()

	code, err := kernel.NewTrackingCode()
	require.NoError(t, err)
	pickup, err := shipment.NewAddress("Ada Lovelace", "+44 20 0000", "1 Main St", "London", "", "N1 9GU", "GB")
	require.NoError(t, err)
	delivery, err := shipment.NewAddress("Charles Babbage", "", "2 High St", "Cambridge", "", "CB2 1TN", "GB")
	require.NoError(t, err)
	item, err := shipment.NewItem("Difference engine parts", 2, nil, nil, nil, nil)
	require.NoError(t, err)

	s, err := shipment.NewShipment(kernel.NewUUID(), code, kernel.NewUUID(), pickup, delivery, []shipment.Item{item}, nil, bookedAt)
	require.NoError(t, err)
	return s
}

func newTestActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()

	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func TestNewShipment(t *testing.T) {
	t.Run("starts pending at version one", func(t *testing.T) {
		s := newTestShipment(t)

		require.NoError(t, s.Validate())
		assert.Equal(t, shipment.Pending, s.Status())
		assert.Equal(t, int64(1), s.Version())
		assert.Nil(t, s.PickupWindow())
		assert.Nil(t, s.AssignedPartner())
		assert.Len(t, s.Items(), 1)
		assert.Equal(t, bookedAt, s.CreatedAt())
	})

	t.Run("requires items", func(t *testing.T) {
		code, _ := kernel.NewTrackingCode()
		a, _ := shipment.NewAddress("A", "", "S", "C", "", "P", "GB")

		s, err := shipment.NewShipment(kernel.NewUUID(), code, kernel.NewUUID(), a, a, nil, nil, bookedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, s)
	})

	t.Run("rejects zero values", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.UUID{}, kernel.TrackingCode{}, kernel.UUID{},
			shipment.Address{}, shipment.Address{}, []shipment.Item{{}}, nil, bookedAt)

		require.Error(t, err)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrTrackingCodeIsNotConstructed)
		require.ErrorIs(t, err, shipment.ErrAddressIsNotConstructed)
		require.ErrorIs(t, err, shipment.ErrItemIsNotConstructed)
		assert.Nil(t, s)
	})

	t.Run("items are copied", func(t *testing.T) {
		s := newTestShipment(t)
		items := s.Items()
		items[0] = shipment.Item{}

		require.NoError(t, s.Items()[0].Validate())
	})
}

func TestRestoreShipment(t *testing.T) {
	original := newTestShipment(t)

	t.Run("keeps status and version", func(t *testing.T) {
		restored, err := shipment.RestoreShipment(original.ID(), original.TrackingCode(), original.OwnerID(),
			shipment.InTransit, original.PickupAddress(), original.DeliveryAddress(), original.Items(),
			nil, nil, nil, original.CreatedAt(), 7)

		require.NoError(t, err)
		assert.Equal(t, shipment.InTransit, restored.Status())
		assert.Equal(t, shipment.Revision{Status: shipment.InTransit, Version: 7}, restored.Revision())
	})

	t.Run("rejects version zero", func(t *testing.T) {
		_, err := shipment.RestoreShipment(original.ID(), original.TrackingCode(), original.OwnerID(),
			shipment.Pending, original.PickupAddress(), original.DeliveryAddress(), original.Items(),
			nil, nil, nil, original.CreatedAt(), 0)

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestShipment_Transition(t *testing.T) {
	partner := newTestActor(t, actor.Partner)
	at := bookedAt.Add(time.Hour)

	t.Run("moves status and returns unsequenced event", func(t *testing.T) {
		s := newTestShipment(t)

		event, err := s.Transition(shipment.PickedUp, partner, " collected ", "Depot 4", false, at)

		require.NoError(t, err)
		assert.Equal(t, shipment.PickedUp, s.Status())
		assert.Equal(t, int64(2), s.Version())
		assert.Equal(t, shipment.PickedUp, event.Status())
		assert.Equal(t, int64(0), event.Sequence())
		assert.True(t, event.ShipmentID().IsEqual(s.ID()))
		assert.True(t, event.ActorID().IsEqual(partner.ID()))
		assert.Equal(t, actor.Partner, event.ActorRole())
		assert.Equal(t, "collected", *event.Description())
		assert.Equal(t, "Depot 4", *event.Location())
		assert.False(t, event.IsOverride())
	})

	t.Run("self transition is rejected and nothing changes", func(t *testing.T) {
		s := newTestShipment(t)

		event, err := s.Transition(shipment.Pending, partner, "", "", false, at)

		require.ErrorIs(t, err, shipment.ErrInvalidTransition)
		assert.Nil(t, event)
		assert.Equal(t, int64(1), s.Version())
	})

	t.Run("override without reason is rejected and nothing changes", func(t *testing.T) {
		s := newTestShipment(t)
		admin := newTestActor(t, actor.Admin)

		_, err := s.Transition(shipment.Returned, admin, "   ", "", true, at)

		require.ErrorIs(t, err, shipment.ErrReasonRequired)
		assert.Equal(t, shipment.Pending, s.Status())
		assert.Equal(t, int64(1), s.Version())
	})

	t.Run("invalid target status", func(t *testing.T) {
		s := newTestShipment(t)

		_, err := s.Transition(shipment.Unknown, partner, "", "", false, at)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestShipment_SchedulePickup(t *testing.T) {
	window, err := shipment.NewPickupWindow("2026-10-20", "10:00-12:00")
	require.NoError(t, err)

	t.Run("records window and pending event", func(t *testing.T) {
		s := newTestShipment(t)
		customer := newTestActor(t, actor.Customer)

		event, err := s.SchedulePickup(window, customer, bookedAt)

		require.NoError(t, err)
		assert.Equal(t, shipment.Pending, s.Status())
		assert.Equal(t, shipment.Pending, event.Status())
		assert.Equal(t, "Pickup scheduled for 2026-10-20 (10:00-12:00)", *event.Description())
		assert.Equal(t, window, *s.PickupWindow())
		assert.Equal(t, int64(2), s.Version())
	})

	t.Run("only once", func(t *testing.T) {
		s := newTestShipment(t)
		customer := newTestActor(t, actor.Customer)
		_, err := s.SchedulePickup(window, customer, bookedAt)
		require.NoError(t, err)

		_, err = s.SchedulePickup(window, customer, bookedAt)

		require.ErrorIs(t, err, shipment.ErrPickupAlreadyScheduled)
	})

	t.Run("only while pending", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Transition(shipment.PickedUp, newTestActor(t, actor.Partner), "", "", false, bookedAt)
		require.NoError(t, err)

		_, err = s.SchedulePickup(window, newTestActor(t, actor.Customer), bookedAt)

		var invalid *shipment.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, shipment.PickedUp, invalid.Current)
	})
}

func TestShipment_AssignPartner(t *testing.T) {
	t.Run("assigns and bumps version", func(t *testing.T) {
		s := newTestShipment(t)
		partnerID := kernel.NewUUID()

		require.NoError(t, s.AssignPartner(partnerID))

		assert.True(t, s.IsAssignedTo(partnerID))
		assert.False(t, s.IsAssignedTo(kernel.NewUUID()))
		assert.Equal(t, int64(2), s.Version())
	})

	t.Run("terminal shipments cannot be assigned", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Transition(shipment.Cancelled, newTestActor(t, actor.Customer), "", "", false, bookedAt)
		require.NoError(t, err)

		require.ErrorIs(t, s.AssignPartner(kernel.NewUUID()), shipment.ErrShipmentIsTerminal)
	})

	t.Run("ownership", func(t *testing.T) {
		s := newTestShipment(t)

		assert.True(t, s.IsOwnedBy(s.OwnerID()))
		assert.False(t, s.IsOwnedBy(kernel.NewUUID()))
	})
}
