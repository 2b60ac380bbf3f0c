package http

import (
	"context"
	"net/http"
	"strings"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Use case ports of the server. The command and query handlers satisfy them.
type (
	CreateShipmentHandler interface {
		Handle(ctx context.Context, command commands.CreateShipmentCommand) (*shipment.Shipment, error)
	}
	RequestTransitionHandler interface {
		Handle(ctx context.Context, command commands.RequestTransitionCommand) (commands.TransitionResult, error)
	}
	SchedulePickupHandler interface {
		Handle(ctx context.Context, command commands.SchedulePickupCommand) (commands.TransitionResult, error)
	}
	AssignPartnerHandler interface {
		Handle(ctx context.Context, command commands.AssignPartnerCommand) (*shipment.Shipment, error)
	}
	TrackShipmentHandler interface {
		Handle(ctx context.Context, query queries.TrackShipmentQuery) (queries.TrackShipmentResponse, error)
	}
	GetShipmentDetailsHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentDetailsQuery) (queries.GetShipmentDetailsResponse, error)
	}
	ListShipmentsHandler interface {
		Handle(ctx context.Context, query queries.ListShipmentsQuery) (queries.ListShipmentsResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateShipment     CreateShipmentHandler
	RequestTransition  RequestTransitionHandler
	SchedulePickup     SchedulePickupHandler
	AssignPartner      AssignPartnerHandler
	TrackShipment      TrackShipmentHandler
	GetShipmentDetails GetShipmentDetailsHandler
	ListShipments      ListShipmentsHandler
}

// Server implements ServerInterface by translating requests into commands
// and queries. Authorization is left to the use cases: the server only
// forwards the raw bearer credential.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// TrackShipment handles GET /api/v1/track/{trackingCode}.
func (s *Server) TrackShipment(ctx echo.Context, trackingCode string) error {
	query, err := queries.NewTrackShipmentQuery(trackingCode)
	if err != nil {
		return err
	}

	view, err := s.handlers.TrackShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, trackingResponse(view))
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body NewShipmentBody
	if err := ctx.Bind(&body); err != nil {
		return newBindingError("", err)
	}

	pickup, err := body.PickupAddress.toDomain()
	if err != nil {
		return err
	}
	delivery, err := body.DeliveryAddress.toDomain()
	if err != nil {
		return err
	}
	items := make([]shipment.Item, 0, len(body.Items))
	for _, b := range body.Items {
		item, itemErr := b.toDomain()
		if itemErr != nil {
			return itemErr
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateShipmentCommand(bearerToken(ctx), pickup, delivery, items, body.TotalWeightKg)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, shipmentResponse(created, nil))
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(ctx echo.Context, id uuid.UUID) error {
	shipmentID, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return err
	}
	query, err := queries.NewGetShipmentDetailsQuery(shipmentID, bearerToken(ctx))
	if err != nil {
		return err
	}

	details, err := s.handlers.GetShipmentDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, shipmentResponse(details.Shipment, details.Events))
}

// SchedulePickup handles POST /api/v1/shipments/{id}/pickup.
func (s *Server) SchedulePickup(ctx echo.Context, id uuid.UUID) error {
	var body PickupBody
	if err := ctx.Bind(&body); err != nil {
		return newBindingError("", err)
	}

	shipmentID, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return err
	}
	window, err := shipment.NewPickupWindow(body.PickupDate, body.TimeSlot)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSchedulePickupCommand(shipmentID, bearerToken(ctx), window)
	if err != nil {
		return err
	}

	result, err := s.handlers.SchedulePickup.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, transitionResponse(result))
}

// CancelShipment handles POST /api/v1/shipments/{id}/cancel.
func (s *Server) CancelShipment(ctx echo.Context, id uuid.UUID) error {
	var body CancelBody
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return newBindingError("", err)
		}
	}

	return s.transition(ctx, id, shipment.Cancelled.String(), body.Reason, "", "", false)
}

// ScanShipment handles POST /api/v1/partner/shipments/{id}/scan.
func (s *Server) ScanShipment(ctx echo.Context, id uuid.UUID) error {
	var body ScanBody
	if err := ctx.Bind(&body); err != nil {
		return newBindingError("", err)
	}

	return s.transition(ctx, id, body.Status, "", body.Location, body.Description, false)
}

// SetShipmentStatus handles POST /api/v1/admin/shipments/{id}/status.
func (s *Server) SetShipmentStatus(ctx echo.Context, id uuid.UUID) error {
	var body StatusBody
	if err := ctx.Bind(&body); err != nil {
		return newBindingError("", err)
	}

	return s.transition(ctx, id, body.Status, body.Reason, "", "", false)
}

// ForceShipmentStatus handles POST /api/v1/admin/shipments/{id}/force-status.
func (s *Server) ForceShipmentStatus(ctx echo.Context, id uuid.UUID) error {
	var body StatusBody
	if err := ctx.Bind(&body); err != nil {
		return newBindingError("", err)
	}

	return s.transition(ctx, id, body.Status, body.Reason, "", "", true)
}

func (s *Server) transition(
	ctx echo.Context,
	id uuid.UUID,
	status, reason, location, description string,
	override bool,
) error {
	shipmentID, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return err
	}
	requested, err := shipment.ParseStatus(status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRequestTransitionCommand(
		shipmentID, requested, bearerToken(ctx), reason, location, description, override,
	)
	if err != nil {
		return err
	}

	result, err := s.handlers.RequestTransition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, transitionResponse(result))
}

// AssignPartner handles POST /api/v1/admin/shipments/{id}/assign.
func (s *Server) AssignPartner(ctx echo.Context, id uuid.UUID) error {
	var body AssignBody
	if err := ctx.Bind(&body); err != nil {
		return newBindingError("", err)
	}

	shipmentID, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return err
	}
	partnerID, err := kernel.UUIDFromString(body.PartnerID)
	if err != nil {
		return newBindingError("partner_id", err)
	}
	cmd, err := commands.NewAssignPartnerCommand(shipmentID, partnerID, bearerToken(ctx))
	if err != nil {
		return err
	}

	assigned, err := s.handlers.AssignPartner.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, shipmentResponse(assigned, nil))
}

// ListShipments handles GET /api/v1/admin/shipments.
func (s *Server) ListShipments(ctx echo.Context, params ListShipmentsParams) error {
	var status *shipment.Status
	if params.Status != nil {
		parsed, err := shipment.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	var partnerID *kernel.UUID
	if params.PartnerID != nil {
		parsed, err := kernel.UUIDFromString(params.PartnerID.String())
		if err != nil {
			return newBindingError("partner_id", err)
		}
		partnerID = &parsed
	}

	limit, offset := 0, 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	query, err := queries.NewListShipmentsQuery(bearerToken(ctx), status, partnerID, limit, offset)
	if err != nil {
		return err
	}

	page, err := s.handlers.ListShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, pageResponse(page, query.Limit(), query.Offset()))
}

// bearerToken returns the credential of an "Authorization: Bearer" header,
// or an empty string, which the authorization gate rejects.
func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
