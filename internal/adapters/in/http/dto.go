package http

import (
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

type AddressBody struct {
	FullName   string   `json:"full_name"`
	Phone      string   `json:"phone,omitempty"`
	Street     string   `json:"street"`
	City       string   `json:"city"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type ItemBody struct {
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	LengthCm    *float64 `json:"length_cm,omitempty"`
	WidthCm     *float64 `json:"width_cm,omitempty"`
	HeightCm    *float64 `json:"height_cm,omitempty"`
}

type NewShipmentBody struct {
	PickupAddress   AddressBody `json:"pickup_address"`
	DeliveryAddress AddressBody `json:"delivery_address"`
	Items           []ItemBody  `json:"items"`
	TotalWeightKg   *float64    `json:"total_weight_kg,omitempty"`
}

type PickupBody struct {
	PickupDate string `json:"pickup_date"`
	TimeSlot   string `json:"time_slot"`
}

type CancelBody struct {
	Reason string `json:"reason"`
}

type ScanBody struct {
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type StatusBody struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type AssignBody struct {
	PartnerID string `json:"partner_id"`
}

type PickupWindowResponse struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

type LedgerEventResponse struct {
	ID          string    `json:"id"`
	Sequence    int64     `json:"sequence"`
	Status      string    `json:"status"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	ActorID     string    `json:"actor_id"`
	ActorRole   string    `json:"actor_role"`
	IsOverride  bool      `json:"is_override"`
	CreatedAt   time.Time `json:"created_at"`
}

type ShipmentResponse struct {
	ID                string                `json:"id"`
	TrackingCode      string                `json:"tracking_code"`
	Status            string                `json:"status"`
	OwnerID           string                `json:"owner_id"`
	PickupAddress     AddressBody           `json:"pickup_address"`
	DeliveryAddress   AddressBody           `json:"delivery_address"`
	Items             []ItemBody            `json:"items"`
	TotalWeightKg     *float64              `json:"total_weight_kg"`
	PickupWindow      *PickupWindowResponse `json:"pickup_window"`
	AssignedPartnerID *string               `json:"assigned_partner_id"`
	Version           int64                 `json:"version"`
	CreatedAt         time.Time             `json:"created_at"`
	Events            []LedgerEventResponse `json:"events"`
}

type TrackingEventResponse struct {
	Status      string    `json:"status"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

type TrackingResponse struct {
	TrackingCode string                  `json:"tracking_code"`
	Status       string                  `json:"status"`
	Events       []TrackingEventResponse `json:"events"`
}

type TransitionResponse struct {
	ShipmentID   string              `json:"shipment_id"`
	TrackingCode string              `json:"tracking_code"`
	Status       string              `json:"status"`
	Version      int64               `json:"version"`
	Event        LedgerEventResponse `json:"event"`
}

type ShipmentSummaryResponse struct {
	ID                string    `json:"id"`
	TrackingCode      string    `json:"tracking_code"`
	Status            string    `json:"status"`
	OwnerID           string    `json:"owner_id"`
	AssignedPartnerID *string   `json:"assigned_partner_id"`
	DeliveryCity      string    `json:"delivery_city"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ShipmentPageResponse struct {
	Shipments []ShipmentSummaryResponse `json:"shipments"`
	Total     int64                     `json:"total"`
	Limit     int                       `json:"limit"`
	Offset    int                       `json:"offset"`
}

func (b AddressBody) toDomain() (shipment.Address, error) {
	address, err := shipment.NewAddress(b.FullName, b.Phone, b.Street, b.City, b.State, b.PostalCode, b.Country)
	if err != nil {
		return shipment.Address{}, err
	}
	if b.Latitude != nil && b.Longitude != nil {
		return address.WithCoordinates(*b.Latitude, *b.Longitude)
	}
	return address, nil
}

func (b ItemBody) toDomain() (shipment.Item, error) {
	return shipment.NewItem(b.Description, b.Quantity, b.WeightKg, b.LengthCm, b.WidthCm, b.HeightCm)
}

func addressResponse(a shipment.Address) AddressBody {
	return AddressBody{
		FullName:   a.FullName(),
		Phone:      a.Phone(),
		Street:     a.Street(),
		City:       a.City(),
		State:      a.State(),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
		Latitude:   a.Latitude(),
		Longitude:  a.Longitude(),
	}
}

func itemResponse(i shipment.Item) ItemBody {
	return ItemBody{
		Description: i.Description(),
		Quantity:    i.Quantity(),
		WeightKg:    i.WeightKg(),
		LengthCm:    i.LengthCm(),
		WidthCm:     i.WidthCm(),
		HeightCm:    i.HeightCm(),
	}
}

func ledgerEventResponse(e *shipment.Event) LedgerEventResponse {
	return LedgerEventResponse{
		ID:          e.ID().String(),
		Sequence:    e.Sequence(),
		Status:      e.Status().String(),
		Description: e.Description(),
		Location:    e.Location(),
		ActorID:     e.ActorID().String(),
		ActorRole:   e.ActorRole().String(),
		IsOverride:  e.IsOverride(),
		CreatedAt:   e.CreatedAt(),
	}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func shipmentResponse(s *shipment.Shipment, events []*shipment.Event) ShipmentResponse {
	response := ShipmentResponse{
		ID:                s.ID().String(),
		TrackingCode:      s.TrackingCode().String(),
		Status:            s.Status().String(),
		OwnerID:           s.OwnerID().String(),
		PickupAddress:     addressResponse(s.PickupAddress()),
		DeliveryAddress:   addressResponse(s.DeliveryAddress()),
		Items:             make([]ItemBody, 0, len(s.Items())),
		TotalWeightKg:     s.TotalWeightKg(),
		AssignedPartnerID: optionalID(s.AssignedPartner()),
		Version:           s.Version(),
		CreatedAt:         s.CreatedAt(),
		Events:            make([]LedgerEventResponse, 0, len(events)),
	}
	for _, item := range s.Items() {
		response.Items = append(response.Items, itemResponse(item))
	}
	if w := s.PickupWindow(); w != nil {
		response.PickupWindow = &PickupWindowResponse{
			Date:     w.Date().Format(time.DateOnly),
			TimeSlot: w.TimeSlot(),
		}
	}
	for _, e := range events {
		response.Events = append(response.Events, ledgerEventResponse(e))
	}
	return response
}

func transitionResponse(r commands.TransitionResult) TransitionResponse {
	return TransitionResponse{
		ShipmentID:   r.Shipment.ID().String(),
		TrackingCode: r.Shipment.TrackingCode().String(),
		Status:       r.Shipment.Status().String(),
		Version:      r.Shipment.Version(),
		Event:        ledgerEventResponse(r.Event),
	}
}

func trackingResponse(r queries.TrackShipmentResponse) TrackingResponse {
	response := TrackingResponse{
		TrackingCode: r.TrackingCode,
		Status:       r.Status.String(),
		Events:       make([]TrackingEventResponse, 0, len(r.Events)),
	}
	for _, e := range r.Events {
		response.Events = append(response.Events, TrackingEventResponse{
			Status:      e.Status.String(),
			Description: e.Description,
			Location:    e.Location,
			CreatedAt:   e.CreatedAt,
		})
	}
	return response
}

func pageResponse(r queries.ListShipmentsResponse, limit, offset int) ShipmentPageResponse {
	response := ShipmentPageResponse{
		Shipments: make([]ShipmentSummaryResponse, 0, len(r.Shipments)),
		Total:     r.Total,
		Limit:     limit,
		Offset:    offset,
	}
	for _, s := range r.Shipments {
		response.Shipments = append(response.Shipments, ShipmentSummaryResponse{
			ID:                s.ID.String(),
			TrackingCode:      s.TrackingCode,
			Status:            s.Status.String(),
			OwnerID:           s.OwnerID.String(),
			AssignedPartnerID: optionalID(s.AssignedPartnerID),
			DeliveryCity:      s.DeliveryCity,
			CreatedAt:         s.CreatedAt,
			UpdatedAt:         s.UpdatedAt,
		})
	}
	return response
}
