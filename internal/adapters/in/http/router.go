package http

import (
	"errors"
	"log/slog"
	"net/http"

	"shipping/internal/adapters/in/http/docs"
	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const BaseURL = "/api/v1"

type RouterConfig struct {
	Logger       *slog.Logger
	Gate         ports.AuthorizationGate
	TrackLimiter ratelimit.Limiter
	TrackLimit   int
}

// NewRouter assembles the echo instance: shared middleware, health check,
// swagger UI and the validated API routes. Authentication and rate limiting
// run ahead of request validation.
func NewRouter(server ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	if cfg.Gate == nil {
		return nil, errors.New("http router requires an authorization gate")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	doc, err := docs.Load()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var public []echo.MiddlewareFunc
	if cfg.TrackLimiter != nil {
		public = append(public, RateLimit(cfg.TrackLimiter, cfg.TrackLimit))
	}

	api := e.Group(BaseURL)
	RegisterHandlers(api, server, "", RouteMiddleware{
		Public:   append(public, validator),
		Customer: []echo.MiddlewareFunc{Authenticate(cfg.Gate), validator},
		Partner:  []echo.MiddlewareFunc{Authenticate(cfg.Gate, actor.Partner, actor.Admin), validator},
		Admin:    []echo.MiddlewareFunc{Authenticate(cfg.Gate, actor.Admin), validator},
	})

	return e, nil
}
