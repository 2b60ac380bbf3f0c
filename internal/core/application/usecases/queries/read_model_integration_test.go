package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/pgtest"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// ReadModelIntegrationTestSuite covers the SQL-backed admin queries.
type ReadModelIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
	admin    actor.Actor
	gate     *MockGate
}

func (suite *ReadModelIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres.NewGormUnitOfWorkFactory(database.DB, "shipment.status-changed")
	suite.admin = pgtest.NewActor(actor.Admin)
}

func (suite *ReadModelIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate(context.Background()))

	suite.gate = &MockGate{}
	suite.gate.On("Authorize", mock.Anything, "admin").Return(suite.admin, nil)
	suite.gate.On("Authorize", mock.Anything, "customer").Return(pgtest.NewActor(actor.Customer), nil)
}

func (suite *ReadModelIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ReadModelIntegrationTestSuite) addShipment(partner *kernel.UUID) *shipment.Shipment {
	ctx := context.Background()
	s, err := pgtest.NewShipment(kernel.NewUUID())
	suite.Require().NoError(err)
	if partner != nil {
		suite.Require().NoError(s.AssignPartner(*partner))
	}

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.Commit(ctx))

	// created_at drives the listing order
	time.Sleep(2 * time.Millisecond)
	return s
}

func (suite *ReadModelIntegrationTestSuite) advance(s *shipment.Shipment, to shipment.Status) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expected := s.Revision()
	event, err := s.Transition(to, suite.admin, "", "", false, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ShipmentRepository().Update(ctx, s, expected))
	_, err = uow.EventLedger().Append(ctx, event)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *ReadModelIntegrationTestSuite) list(
	credential string,
	status *shipment.Status,
	partner *kernel.UUID,
	limit, offset int,
) (queries.ListShipmentsResponse, error) {
	query, err := queries.NewListShipmentsQuery(credential, status, partner, limit, offset)
	suite.Require().NoError(err)
	return queries.NewListShipmentsQueryHandler(suite.database.DB, suite.gate, storeTimeout).
		Handle(context.Background(), query)
}

func (suite *ReadModelIntegrationTestSuite) TestListShipments_NewestFirstWithPaging() {
	first := suite.addShipment(nil)
	second := suite.addShipment(nil)
	third := suite.addShipment(nil)

	page, err := suite.list("admin", nil, nil, 2, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(3), page.Total)
	suite.Require().Len(page.Shipments, 2)
	suite.Equal(third.ID(), page.Shipments[0].ID)
	suite.Equal(second.ID(), page.Shipments[1].ID)
	suite.Equal("Shelbyville", page.Shipments[0].DeliveryCity)
	suite.Equal(third.TrackingCode().String(), page.Shipments[0].TrackingCode)

	page, err = suite.list("admin", nil, nil, 2, 2)
	suite.Require().NoError(err)
	suite.Equal(int64(3), page.Total)
	suite.Require().Len(page.Shipments, 1)
	suite.Equal(first.ID(), page.Shipments[0].ID)
}

func (suite *ReadModelIntegrationTestSuite) TestListShipments_Filters() {
	partnerID := kernel.NewUUID()
	assigned := suite.addShipment(&partnerID)
	moved := suite.addShipment(nil)
	suite.addShipment(nil)
	suite.advance(moved, shipment.PickedUp)

	pickedUp := shipment.PickedUp
	byStatus, err := suite.list("admin", &pickedUp, nil, 0, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(1), byStatus.Total)
	suite.Require().Len(byStatus.Shipments, 1)
	suite.Equal(moved.ID(), byStatus.Shipments[0].ID)
	suite.Equal(shipment.PickedUp, byStatus.Shipments[0].Status)

	byPartner, err := suite.list("admin", nil, &partnerID, 0, 0)
	suite.Require().NoError(err)
	suite.Require().Len(byPartner.Shipments, 1)
	suite.Equal(assigned.ID(), byPartner.Shipments[0].ID)
	suite.Require().NotNil(byPartner.Shipments[0].AssignedPartnerID)
	suite.Equal(partnerID, *byPartner.Shipments[0].AssignedPartnerID)
}

func (suite *ReadModelIntegrationTestSuite) TestListShipments_AdminOnly() {
	suite.addShipment(nil)

	_, err := suite.list("customer", nil, nil, 0, 0)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *ReadModelIntegrationTestSuite) TestFindLedgerInconsistencies() {
	ctx := context.Background()
	consistent := suite.addShipment(nil)
	suite.advance(consistent, shipment.PickedUp)
	suite.addShipment(nil)

	// A status changed behind the ledger's back.
	drifted := suite.addShipment(nil)
	suite.Require().NoError(suite.database.DB.Exec(
		"UPDATE shipments SET status = 'IN_TRANSIT' WHERE id = ?", drifted.ID().Bytes(),
	).Error)

	// A sequence starting at 2.
	gapped := suite.addShipment(nil)
	suite.Require().NoError(suite.database.DB.Exec(`
		INSERT INTO shipment_events (id, shipment_id, sequence, status, actor_id, actor_role, created_at)
		VALUES (?, ?, 2, 'PENDING', ?, 'admin', now())`,
		kernel.NewUUID().Bytes(), gapped.ID().Bytes(), suite.admin.ID().Bytes(),
	).Error)

	query, err := queries.NewFindLedgerInconsistenciesQuery(10)
	suite.Require().NoError(err)
	found, err := queries.NewFindLedgerInconsistenciesQueryHandler(suite.database.DB, storeTimeout).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(found, 2)

	suite.Equal(drifted.ID(), found[0].ShipmentID)
	suite.Equal("IN_TRANSIT", found[0].StoredStatus)
	suite.Nil(found[0].LatestEventStatus)
	suite.False(found[0].HasSequenceGap())

	suite.Equal(gapped.ID(), found[1].ShipmentID)
	suite.Require().NotNil(found[1].LatestEventStatus)
	suite.Equal("PENDING", *found[1].LatestEventStatus)
	suite.Equal(int64(1), found[1].EventCount)
	suite.Equal(int64(2), found[1].MaxSequence)
	suite.True(found[1].HasSequenceGap())
}

func (suite *ReadModelIntegrationTestSuite) TestFindLedgerInconsistencies_StoreUnavailable() {
	suite.addShipment(nil)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	query, err := queries.NewFindLedgerInconsistenciesQuery(10)
	suite.Require().NoError(err)
	found, err := queries.NewFindLedgerInconsistenciesQueryHandler(suite.database.DB, storeTimeout).Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrStoreUnavailable)
	suite.Nil(found)
}

func (suite *ReadModelIntegrationTestSuite) TestListShipments_StoreUnavailable() {
	suite.addShipment(nil)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	query, err := queries.NewListShipmentsQuery("admin", nil, nil, 0, 0)
	suite.Require().NoError(err)
	_, err = queries.NewListShipmentsQueryHandler(suite.database.DB, suite.gate, storeTimeout).Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrStoreUnavailable)
}

func TestReadModelIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelIntegrationTestSuite))
}
