package outboxrepo_test

import (
	"encoding/json"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/outboxrepo"
	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusChangedMessage(t *testing.T) {
	admin, err := actor.NewActor(kernel.NewUUID(), actor.Admin)
	require.NoError(t, err)
	shipmentID := kernel.NewUUID()
	at := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	event, err := shipment.NewEvent(shipmentID, shipment.Returned, admin, "damaged in transit", "", true, at)
	require.NoError(t, err)
	event, err = event.WithSequence(3)
	require.NoError(t, err)

	msg, err := outboxrepo.NewStatusChangedMessage("shipment.status-changed", "SHP7K2M9Q4XZA", event)
	require.NoError(t, err)

	assert.Equal(t, "shipment.status-changed", msg.Topic())
	assert.Equal(t, shipmentID.String(), msg.Key())
	assert.Equal(t, at, msg.CreatedAt())

	var body outboxrepo.StatusChangedNotification
	require.NoError(t, json.Unmarshal(msg.Payload(), &body))
	assert.Equal(t, event.ID().String(), body.EventID)
	assert.Equal(t, "SHP7K2M9Q4XZA", body.TrackingCode)
	assert.Equal(t, int64(3), body.Sequence)
	assert.Equal(t, "RETURNED", body.Status)
	assert.True(t, body.IsOverride)
	assert.Nil(t, body.Location)
	require.NotNil(t, body.Description)
	assert.Equal(t, "damaged in transit", *body.Description)
}

func TestNewStatusChangedMessage_UnconstructedEvent(t *testing.T) {
	_, err := outboxrepo.NewStatusChangedMessage("topic", "SHP7K2M9Q4XZA", &shipment.Event{})

	require.ErrorIs(t, err, shipment.ErrEventIsNotConstructed)
}
