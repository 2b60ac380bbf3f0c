// Package shipmentrepo persists shipment aggregates with their addresses and
// items, and maps them between the domain and the shipments tables.
package shipmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

const pickupDateLayout = "2006-01-02"

// ShipmentDTO is the row of the shipments table.
type ShipmentDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingCode      string     `gorm:"size:13;uniqueIndex:ux_shipments_tracking_code"`
	OwnerID           uuid.UUID  `gorm:"type:uuid;index"`
	Status            string     `gorm:"size:32;index"`
	Pickup            AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery          AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	TotalWeightKg     *float64
	PickupDate        *time.Time `gorm:"type:date"`
	PickupTimeSlot    *string    `gorm:"size:11"`
	AssignedPartnerID *uuid.UUID `gorm:"type:uuid;index"`
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Items             []ItemDTO `gorm:"foreignKey:ShipmentID;references:ID"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// AddressDTO is embedded twice in ShipmentDTO, once per address role.
type AddressDTO struct {
	FullName   string
	Phone      string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Latitude   *float64
	Longitude  *float64
}

// ItemDTO is the row of the shipment_items table; Position keeps the
// booking order.
type ItemDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index"`
	Position    int
	Description string
	Quantity    int
	WeightKg    *float64
	LengthCm    *float64
	WidthCm     *float64
	HeightCm    *float64
}

func (ItemDTO) TableName() string {
	return "shipment_items"
}

func fromDomain(aggregate *shipment.Shipment, updatedAt time.Time) ShipmentDTO {
	dto := ShipmentDTO{
		ID:            aggregate.ID().Bytes(),
		TrackingCode:  aggregate.TrackingCode().String(),
		OwnerID:       aggregate.OwnerID().Bytes(),
		Status:        aggregate.Status().String(),
		Pickup:        addressFromDomain(aggregate.PickupAddress()),
		Delivery:      addressFromDomain(aggregate.DeliveryAddress()),
		TotalWeightKg: aggregate.TotalWeightKg(),
		Version:       aggregate.Version(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     updatedAt.UTC(),
	}

	if window := aggregate.PickupWindow(); window != nil {
		date := window.Date()
		slot := window.TimeSlot()
		dto.PickupDate = &date
		dto.PickupTimeSlot = &slot
	}

	if partnerID := aggregate.AssignedPartner(); partnerID != nil {
		raw := partnerID.Bytes()
		dto.AssignedPartnerID = &raw
	}

	for i, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ShipmentID:  dto.ID,
			Position:    i,
			Description: item.Description(),
			Quantity:    item.Quantity(),
			WeightKg:    item.WeightKg(),
			LengthCm:    item.LengthCm(),
			WidthCm:     item.WidthCm(),
			HeightCm:    item.HeightCm(),
		})
	}

	return dto
}

func addressFromDomain(a shipment.Address) AddressDTO {
	return AddressDTO{
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

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	code, err := kernel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	delivery, err := addressToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	items := make([]shipment.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := shipment.NewItem(
			itemDTO.Description, itemDTO.Quantity,
			itemDTO.WeightKg, itemDTO.LengthCm, itemDTO.WidthCm, itemDTO.HeightCm,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var window *shipment.PickupWindow
	if dto.PickupDate != nil && dto.PickupTimeSlot != nil {
		w, windowErr := shipment.NewPickupWindow(dto.PickupDate.Format(pickupDateLayout), *dto.PickupTimeSlot)
		if windowErr != nil {
			return nil, windowErr
		}
		window = &w
	}

	var partnerID *kernel.UUID
	if dto.AssignedPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.AssignedPartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	return shipment.RestoreShipment(
		id, code, ownerID, status,
		pickup, delivery, items,
		dto.TotalWeightKg, window, partnerID,
		dto.CreatedAt, dto.Version,
	)
}

func addressToDomain(dto AddressDTO) (shipment.Address, error) {
	address, err := shipment.NewAddress(
		dto.FullName, dto.Phone, dto.Street, dto.City, dto.State, dto.PostalCode, dto.Country,
	)
	if err != nil {
		return shipment.Address{}, err
	}

	if dto.Latitude != nil && dto.Longitude != nil {
		return address.WithCoordinates(*dto.Latitude, *dto.Longitude)
	}
	return address, nil
}
