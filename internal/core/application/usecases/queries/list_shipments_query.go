package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ListShipmentsQuery is the admin listing, newest first. A zero limit selects
// DefaultListLimit.
type ListShipmentsQuery struct {
	credential string
	status     *shipment.Status
	partnerID  *kernel.UUID
	limit      int
	offset     int

	guard guard.ConstructorGuard
}

func NewListShipmentsQuery(
	credential string,
	status *shipment.Status,
	partnerID *kernel.UUID,
	limit, offset int,
) (ListShipmentsQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var statusErr, partnerErr, limitErr, offsetErr error
	if status != nil {
		statusErr = status.Validate()
	}
	if partnerID != nil {
		partnerErr = partnerID.Validate()
	}
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if err := errors.Join(statusErr, partnerErr, limitErr, offsetErr); err != nil {
		return ListShipmentsQuery{}, err
	}

	return ListShipmentsQuery{
		credential: credential,
		status:     status,
		partnerID:  partnerID,
		limit:      limit,
		offset:     offset,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Credential() string {
	return q.credential
}

func (q ListShipmentsQuery) Status() *shipment.Status {
	return q.status
}

func (q ListShipmentsQuery) PartnerID() *kernel.UUID {
	return q.partnerID
}

func (q ListShipmentsQuery) Limit() int {
	return q.limit
}

func (q ListShipmentsQuery) Offset() int {
	return q.offset
}

// ShipmentSummary is one row of the admin listing.
type ShipmentSummary struct {
	ID                kernel.UUID
	TrackingCode      string
	Status            shipment.Status
	OwnerID           kernel.UUID
	AssignedPartnerID *kernel.UUID
	DeliveryCity      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ListShipmentsResponse struct {
	Shipments []ShipmentSummary
	Total     int64
}
