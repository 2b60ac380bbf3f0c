package cmd

import (
	"errors"
	"log/slog"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/identity"
	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"
	"shipping/internal/pkg/ratelimit"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	gate       ports.AuthorizationGate
	logger     *slog.Logger

	publisher   *kafka.Publisher
	redisClient *redis.Client
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, config.KafkaShipmentChangedTopic),
		gate:       identity.NewJWTGate([]byte(config.JWTSecret), config.JWTIssuer),
		logger:     logger,
	}

	if len(config.KafkaHost) > 0 {
		publisher, err := kafka.NewPublisher(kafka.Config{
			Brokers: config.KafkaHost,
			Topic:   config.KafkaShipmentChangedTopic,
		})
		if err != nil {
			return nil, err
		}
		root.publisher = publisher
	}

	if config.RedisAddr != "" {
		root.redisClient = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	}

	return root, nil
}

// Close releases the broker and cache connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}
	if c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	return errors.Join(errs...)
}

// AuthorizationGate is shared by the use cases and the HTTP authentication
// middleware.
func (c *CompositionRoot) AuthorizationGate() ports.AuthorizationGate {
	return c.gate
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory(), c.gate, c.config.StoreTimeout)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(c.ledgerUoWFactory(), c.gate, c.config.StoreTimeout)
}

func (c *CompositionRoot) CreateSchedulePickupCommandHandler() commands.SchedulePickupCommandHandler {
	return commands.NewSchedulePickupCommandHandler(c.ledgerUoWFactory(), c.gate, c.config.StoreTimeout)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	return commands.NewAssignPartnerCommandHandler(c.shipmentUoWFactory(), c.gate, c.config.StoreTimeout)
}

// CreateRelayOutboxCommandHandler returns nil when no Kafka broker is
// configured.
func (c *CompositionRoot) CreateRelayOutboxCommandHandler() *commands.RelayOutboxCommandHandler {
	if c.publisher == nil {
		return nil
	}
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewRelayOutboxCommandHandler(f, c.publisher)
	return &handler
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	return queries.NewTrackShipmentQueryHandler(c.snapshotUoWFactory(), c.config.StoreTimeout)
}

func (c *CompositionRoot) CreateGetShipmentDetailsQueryHandler() queries.GetShipmentDetailsQueryHandler {
	return queries.NewGetShipmentDetailsQueryHandler(c.snapshotUoWFactory(), c.gate, c.config.StoreTimeout)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB, c.gate, c.config.StoreTimeout)
}

func (c *CompositionRoot) CreateFindLedgerInconsistenciesQueryHandler() queries.FindLedgerInconsistenciesQueryHandler {
	return queries.NewFindLedgerInconsistenciesQueryHandler(c.gormDB, c.config.StoreTimeout)
}

// CreateTrackLimiter shares counters through Redis when REDIS_ADDR is set.
func (c *CompositionRoot) CreateTrackLimiter() ratelimit.Limiter {
	if c.redisClient == nil {
		return ratelimit.NewInMemory(c.config.TrackRateWindow)
	}
	return ratelimit.NewRedis(c.redisClient, c.config.TrackRateWindow, c.logger)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateShipment:     c.CreateCreateShipmentCommandHandler(),
		RequestTransition:  c.CreateRequestTransitionCommandHandler(),
		SchedulePickup:     c.CreateSchedulePickupCommandHandler(),
		AssignPartner:      c.CreateAssignPartnerCommandHandler(),
		TrackShipment:      c.CreateTrackShipmentQueryHandler(),
		GetShipmentDetails: c.CreateGetShipmentDetailsQueryHandler(),
		ListShipments:      c.CreateListShipmentsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var relayer jobs.OutboxRelayer
	if handler := c.CreateRelayOutboxCommandHandler(); handler != nil {
		relayer = handler
	} else {
		c.logger.Warn("KAFKA_HOST is not set; outbox messages stay pending")
	}

	return jobs.NewJobManager(relayer, c.CreateFindLedgerInconsistenciesQueryHandler(), jobs.Config{
		OutboxRelaySchedule: c.config.OutboxRelaySchedule,
		OutboxBatchSize:     c.config.OutboxBatchSize,
		LedgerAuditSchedule: c.config.LedgerAuditSchedule,
	}, c.logger)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) snapshotUoWFactory() queries.SnapshotUoWFactory {
	return FuncSnapshotUoWFactory(func() queries.SnapshotUoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncSnapshotUoWFactory func() queries.SnapshotUoW

func (f FuncSnapshotUoWFactory) Create() queries.SnapshotUoW {
	return f()
}
