// Package postgres provides the GORM-based Unit of Work of the shipment store.
//
// A unit of work spans one database transaction. Repositories obtained from it
// share that transaction and report every aggregate they persist back to it;
// on Commit the unit of work turns the ledger events among them into outbox
// messages inside the same transaction, so a status change, its ledger entry
// and its notification become visible together or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, "shipment.status-changed")
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ShipmentRepository().Update(ctx, s, expected); err != nil {
//	    return err
//	}
//	if _, err := uow.EventLedger().Append(ctx, event); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Snapshot reads use BeginReadOnly, a REPEATABLE READ read-only transaction,
// so a shipment and its events come from the same point in time.
//
// Each UnitOfWork instance is single-goroutine; concurrent operations use
// separate instances.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"shipping/internal/adapters/out/postgres/eventledger"
	"shipping/internal/adapters/out/postgres/outboxrepo"
	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate persisted during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool. Outbox messages for ledger events are written to topic.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	topic string
}

// NewGormUnitOfWorkFactory creates a factory over the shared pool.
//
// Example:
//
//	factory := NewGormUnitOfWorkFactory(db, "shipment.status-changed")
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//	// ... repositories and ledger share the transaction
//	err := uow.Commit(ctx)
func NewGormUnitOfWorkFactory(db *gorm.DB, topic string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, topic: topic}
}

// Create produces a fresh unit of work with no transaction and no tracked
// aggregates.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		topic:             f.topic,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the aggregates
// persisted through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	topic             string
	readOnly          bool
	trackedAggregates []trackedAggregate
}

// Begin starts a read-write transaction. Calling Begin again while a
// transaction is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	return uow.begin(ctx, nil)
}

// BeginReadOnly starts a REPEATABLE READ read-only transaction.
func (uow *GormUnitOfWork) BeginReadOnly(ctx context.Context) error {
	return uow.begin(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

func (uow *GormUnitOfWork) begin(ctx context.Context, opts *sql.TxOptions) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(opts)
	if tx.Error != nil {
		return pgerr.Classify(tx.Error, "begin transaction", "transaction", nil)
	}

	uow.tx = tx
	uow.readOnly = opts != nil && opts.ReadOnly
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit writes outbox messages for the ledger events appended in this
// transaction and then commits. On failure the transaction stays open so
// that the caller's deferred Rollback releases it.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.writeOutbox(ctx); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return pgerr.Classify(err, "commit transaction", "shipment", nil)
}

// Rollback discards the current transaction. It returns
// gorm.ErrInvalidTransaction when there is nothing to roll back, which is the
// normal outcome of a deferred Rollback after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// ShipmentRepository returns a repository bound to the current transaction,
// or to the connection pool when none is active.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

// EventLedger returns a ledger bound to the current transaction, or to the
// connection pool when none is active.
func (uow *GormUnitOfWork) EventLedger() ports.EventLedger {
	return eventledger.NewGormEventLedger(uow.conn(), uow)
}

// OutboxRepository returns an outbox repository bound to the current
// transaction, or to the connection pool when none is active.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate persisted within this unit of work.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) writeOutbox(ctx context.Context) error {
	if uow.readOnly {
		return nil
	}

	codes := make(map[kernel.UUID]string)
	for _, tracked := range uow.trackedAggregates {
		if s, ok := tracked.Aggregate.(*shipment.Shipment); ok {
			codes[tracked.ID] = s.TrackingCode().String()
		}
	}

	outboxRepo := outboxrepo.NewGormOutboxRepository(uow.tx)
	for _, tracked := range uow.trackedAggregates {
		event, ok := tracked.Aggregate.(*shipment.Event)
		if !ok {
			continue
		}

		code, known := codes[event.ShipmentID()]
		if !known {
			s, err := uow.ShipmentRepository().Get(ctx, event.ShipmentID())
			if err != nil {
				return err
			}
			code = s.TrackingCode().String()
			codes[event.ShipmentID()] = code
		}

		message, err := outboxrepo.NewStatusChangedMessage(uow.topic, code, event)
		if err != nil {
			return err
		}
		if err = outboxRepo.Add(ctx, message); err != nil {
			return err
		}
	}

	return nil
}
