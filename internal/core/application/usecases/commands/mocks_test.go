package commands_test

import (
	"context"
	"iter"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/outbox"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment, expected shipment.Revision) error {
	args := m.Called(ctx, s, expected)
	return args.Error(0)
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

type MockEventLedger struct{ mock.Mock }

func (m *MockEventLedger) Append(ctx context.Context, e *shipment.Event) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventLedger) ListByShipment(ctx context.Context, id kernel.UUID) iter.Seq2[*shipment.Event, error] {
	args := m.Called(ctx, id)
	return args.Get(0).(iter.Seq2[*shipment.Event, error])
}

func (m *MockEventLedger) Latest(ctx context.Context, id kernel.UUID) (*shipment.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Event), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, messages ...*outbox.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

type MockGate struct{ mock.Mock }

func (m *MockGate) Authorize(ctx context.Context, credential string) (actor.Actor, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(actor.Actor), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) EventLedger() ports.EventLedger {
	args := m.Called()
	return args.Get(0).(ports.EventLedger)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

const storeTimeout = time.Second

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()

	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newAddress(t *testing.T, city string) shipment.Address {
	t.Helper()

	address, err := shipment.NewAddress("Jane Roe", "+1 555 0100", "1 Main St", city, "", "10001", "US")
	require.NoError(t, err)
	return address
}

func newItems(t *testing.T) []shipment.Item {
	t.Helper()

	item, err := shipment.NewItem("Books", 2, nil, nil, nil, nil)
	require.NoError(t, err)
	return []shipment.Item{item}
}

// restoreShipment builds a stored shipment in the given status.
func restoreShipment(
	t *testing.T,
	owner kernel.UUID,
	status shipment.Status,
	assignedPartner *kernel.UUID,
) *shipment.Shipment {
	t.Helper()

	code, err := kernel.NewTrackingCode()
	require.NoError(t, err)

	s, err := shipment.RestoreShipment(
		kernel.NewUUID(), code, owner, status,
		newAddress(t, "Springfield"), newAddress(t, "Shelbyville"),
		newItems(t), nil, nil, assignedPartner,
		time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), 3,
	)
	require.NoError(t, err)
	return s
}
