package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListShipmentsParams are the query parameters of the admin listing.
type ListShipmentsParams struct {
	Status    *string
	PartnerID *uuid.UUID
	Limit     *int
	Offset    *int
}

// ServerInterface lists the operations of the HTTP API with their path and
// query parameters already bound.
type ServerInterface interface {
	TrackShipment(ctx echo.Context, trackingCode string) error
	CreateShipment(ctx echo.Context) error
	GetShipment(ctx echo.Context, id uuid.UUID) error
	SchedulePickup(ctx echo.Context, id uuid.UUID) error
	CancelShipment(ctx echo.Context, id uuid.UUID) error
	ScanShipment(ctx echo.Context, id uuid.UUID) error
	ListShipments(ctx echo.Context, params ListShipmentsParams) error
	SetShipmentStatus(ctx echo.Context, id uuid.UUID) error
	ForceShipmentStatus(ctx echo.Context, id uuid.UUID) error
	AssignPartner(ctx echo.Context, id uuid.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) TrackShipment(ctx echo.Context) error {
	var trackingCode string
	if err := bindPath(ctx, "trackingCode", &trackingCode); err != nil {
		return err
	}
	return w.Handler.TrackShipment(ctx, trackingCode)
}

func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	return w.Handler.CreateShipment(ctx)
}

func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	id, err := bindShipmentID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) SchedulePickup(ctx echo.Context) error {
	id, err := bindShipmentID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SchedulePickup(ctx, id)
}

func (w *ServerInterfaceWrapper) CancelShipment(ctx echo.Context) error {
	id, err := bindShipmentID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) ScanShipment(ctx echo.Context) error {
	id, err := bindShipmentID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ScanShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) ListShipments(ctx echo.Context) error {
	var params ListShipmentsParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		return newBindingError("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "partner_id", query, &params.PartnerID); err != nil {
		return newBindingError("partner_id", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		return newBindingError("limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", query, &params.Offset); err != nil {
		return newBindingError("offset", err)
	}

	return w.Handler.ListShipments(ctx, params)
}

func (w *ServerInterfaceWrapper) SetShipmentStatus(ctx echo.Context) error {
	id, err := bindShipmentID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SetShipmentStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) ForceShipmentStatus(ctx echo.Context) error {
	id, err := bindShipmentID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ForceShipmentStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) AssignPartner(ctx echo.Context) error {
	id, err := bindShipmentID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AssignPartner(ctx, id)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	Add(method string, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route
}

// RouteMiddleware holds the chain for each audience. Public applies to
// tracking, Customer to the shipment routes, Partner to scans and Admin to
// the admin routes.
type RouteMiddleware struct {
	Public   []echo.MiddlewareFunc
	Customer []echo.MiddlewareFunc
	Partner  []echo.MiddlewareFunc
	Admin    []echo.MiddlewareFunc
}

// RegisterHandlers mounts the API under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string, m RouteMiddleware) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.Add(http.MethodGet, baseURL+"/track/:trackingCode", w.TrackShipment, m.Public...)
	router.Add(http.MethodPost, baseURL+"/shipments", w.CreateShipment, m.Customer...)
	router.Add(http.MethodGet, baseURL+"/shipments/:id", w.GetShipment, m.Customer...)
	router.Add(http.MethodPost, baseURL+"/shipments/:id/pickup", w.SchedulePickup, m.Customer...)
	router.Add(http.MethodPost, baseURL+"/shipments/:id/cancel", w.CancelShipment, m.Customer...)
	router.Add(http.MethodPost, baseURL+"/partner/shipments/:id/scan", w.ScanShipment, m.Partner...)
	router.Add(http.MethodGet, baseURL+"/admin/shipments", w.ListShipments, m.Admin...)
	router.Add(http.MethodPost, baseURL+"/admin/shipments/:id/status", w.SetShipmentStatus, m.Admin...)
	router.Add(http.MethodPost, baseURL+"/admin/shipments/:id/force-status", w.ForceShipmentStatus, m.Admin...)
	router.Add(http.MethodPost, baseURL+"/admin/shipments/:id/assign", w.AssignPartner, m.Admin...)
}

func bindShipmentID(ctx echo.Context) (uuid.UUID, error) {
	var id uuid.UUID
	err := bindPath(ctx, "id", &id)
	return id, err
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return newBindingError(name, err)
	}
	return nil
}
