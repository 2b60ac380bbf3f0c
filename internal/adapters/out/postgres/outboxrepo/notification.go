package outboxrepo

import (
	"encoding/json"
	"time"

	"shipping/internal/core/domain/model/outbox"
	"shipping/internal/core/domain/model/shipment"
)

// StatusChangedNotification is the JSON body of a shipment status message.
type StatusChangedNotification struct {
	EventID      string    `json:"event_id"`
	ShipmentID   string    `json:"shipment_id"`
	TrackingCode string    `json:"tracking_code"`
	Sequence     int64     `json:"sequence"`
	Status       string    `json:"status"`
	IsOverride   bool      `json:"is_override"`
	Location     *string   `json:"location"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewStatusChangedMessage builds the outbox message announcing a sequenced
// ledger event. Messages are keyed by shipment id so that a broker keeps the
// events of one shipment in order.
func NewStatusChangedMessage(topic, trackingCode string, event *shipment.Event) (*outbox.Message, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(StatusChangedNotification{
		EventID:      event.ID().String(),
		ShipmentID:   event.ShipmentID().String(),
		TrackingCode: trackingCode,
		Sequence:     event.Sequence(),
		Status:       event.Status().String(),
		IsOverride:   event.IsOverride(),
		Location:     event.Location(),
		Description:  event.Description(),
		CreatedAt:    event.CreatedAt(),
	})
	if err != nil {
		return nil, err
	}

	return outbox.NewMessage(topic, event.ShipmentID().String(), payload, event.CreatedAt())
}
