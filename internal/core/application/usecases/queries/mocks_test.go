package queries_test

import (
	"context"
	"iter"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct {
	mock.Mock
	ports.ShipmentRepository
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingCode(
	ctx context.Context,
	code kernel.TrackingCode,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockEventLedger struct {
	mock.Mock
	ports.EventLedger
}

func (m *MockEventLedger) ListByShipment(ctx context.Context, id kernel.UUID) iter.Seq2[*shipment.Event, error] {
	args := m.Called(ctx, id)
	return args.Get(0).(iter.Seq2[*shipment.Event, error])
}

type MockGate struct{ mock.Mock }

func (m *MockGate) Authorize(ctx context.Context, credential string) (actor.Actor, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(actor.Actor), args.Error(1)
}

type MockSnapshotUoW struct{ mock.Mock }

func (m *MockSnapshotUoW) BeginReadOnly(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockSnapshotUoW) EventLedger() ports.EventLedger {
	args := m.Called()
	return args.Get(0).(ports.EventLedger)
}

type MockSnapshotUoWFactory struct{ mock.Mock }

func (m *MockSnapshotUoWFactory) Create() queries.SnapshotUoW {
	args := m.Called()
	return args.Get(0).(queries.SnapshotUoW)
}

const storeTimeout = time.Second

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()

	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func restoreShipment(t *testing.T, owner kernel.UUID, status shipment.Status, partner *kernel.UUID) *shipment.Shipment {
	t.Helper()

	pickup, err := shipment.NewAddress("Jane Roe", "+1 555 0100", "1 Main St", "Springfield", "", "62701", "US")
	require.NoError(t, err)
	delivery, err := shipment.NewAddress("John Doe", "", "9 Elm Rd", "Shelbyville", "", "62565", "US")
	require.NoError(t, err)
	item, err := shipment.NewItem("Books", 2, nil, nil, nil, nil)
	require.NoError(t, err)
	code, err := kernel.NewTrackingCode()
	require.NoError(t, err)

	s, err := shipment.RestoreShipment(
		kernel.NewUUID(), code, owner, status,
		pickup, delivery, []shipment.Item{item}, nil, nil, partner,
		time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), 2,
	)
	require.NoError(t, err)
	return s
}

func newEvent(t *testing.T, s *shipment.Shipment, status shipment.Status, sequence int64) *shipment.Event {
	t.Helper()

	e, err := shipment.NewEvent(s.ID(), status, newActor(t, actor.Partner), "Scanned", "Hub 3", false,
		time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	e, err = e.WithSequence(sequence)
	require.NoError(t, err)
	return e
}

func eventsOf(events ...*shipment.Event) iter.Seq2[*shipment.Event, error] {
	return func(yield func(*shipment.Event, error) bool) {
		for _, e := range events {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func failingEvents(err error) iter.Seq2[*shipment.Event, error] {
	return func(yield func(*shipment.Event, error) bool) {
		yield(nil, err)
	}
}
