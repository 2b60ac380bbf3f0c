package http

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// validationError reports a request that does not match the API contract.
type validationError struct {
	field string
	cause error
}

func newBindingError(field string, cause error) error {
	return &validationError{field: field, cause: cause}
}

func (e *validationError) Error() string {
	if e.field == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("invalid %s: %v", e.field, e.cause)
}

func (e *validationError) Unwrap() error {
	return e.cause
}

// rateLimitedError rejects a request over the tracking quota.
type rateLimitedError struct {
	retryAfter time.Duration
}

func (e *rateLimitedError) Error() string {
	return "too many requests"
}

func (e *rateLimitedError) retryAfterSeconds() string {
	return strconv.Itoa(int(math.Ceil(e.retryAfter.Seconds())))
}

// NewErrorHandler renders errors returned by handlers and middleware.
// Server-side failures are logged; client errors are not.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"error", err,
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}

		var invalid *validationError
		if errors.As(err, &invalid) {
			logger.DebugContext(c.Request().Context(), "request rejected",
				"error", err,
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
			)
		}

		var limited *rateLimitedError
		if errors.As(err, &limited) {
			c.Response().Header().Set("Retry-After", limited.retryAfterSeconds())
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}

func mapError(err error) (int, ErrorResponse) {
	var (
		invalidTransition *shipment.InvalidTransitionError
		validation        *validationError
		limited           *rateLimitedError
		httpErr           *echo.HTTPError
	)

	switch {
	case errors.As(err, &limited):
		return http.StatusTooManyRequests, ErrorResponse{Code: "rate_limited", Message: limited.Error()}
	case errors.As(err, &validation):
		return http.StatusBadRequest, contractError(validation.field)
	case errors.Is(err, errs.ErrCredentialExpired):
		return http.StatusUnauthorized, ErrorResponse{Code: "credential_expired", Message: "credential has expired"}
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorResponse{Code: "unauthenticated", Message: "valid credential required"}
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Code: "forbidden", Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ErrorResponse{Code: "not_found", Message: err.Error()}
	case errors.As(err, &invalidTransition):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "invalid_transition",
			Message: err.Error(),
			Details: map[string]any{
				"current_status":   invalidTransition.Current.String(),
				"requested_status": invalidTransition.Requested.String(),
			},
		}
	case errors.Is(err, shipment.ErrReasonRequired):
		return http.StatusBadRequest, ErrorResponse{
			Code:    "reason_required",
			Message: "a reason is required for this status change",
			Details: map[string]any{"field": "reason"},
		}
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, ErrorResponse{
			Code:    "conflict",
			Message: "shipment was modified concurrently; reload and retry",
		}
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{
			Code:    "store_unavailable",
			Message: "storage is temporarily unavailable",
		}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest, fieldError("validation_error", paramName(err), err)
	case errors.As(err, &httpErr):
		return httpErr.Code, ErrorResponse{
			Code:    strings.ReplaceAll(strings.ToLower(http.StatusText(httpErr.Code)), " ", "_"),
			Message: fmt.Sprint(httpErr.Message),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: "internal_error", Message: "internal server error"}
	}
}

// contractError keeps validator and binder internals out of the response;
// the full cause is logged instead.
func contractError(field string) ErrorResponse {
	if field == "" {
		return ErrorResponse{Code: "validation_error", Message: "request does not match the API contract"}
	}
	return ErrorResponse{
		Code:    "validation_error",
		Message: "invalid " + field,
		Details: map[string]any{"field": field},
	}
}

func fieldError(code, field string, err error) ErrorResponse {
	response := ErrorResponse{Code: code, Message: err.Error()}
	if field != "" {
		response.Details = map[string]any{"field": field}
	}
	return response
}

// paramName finds the field a domain validation error is about.
func paramName(err error) string {
	var (
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
		version    *errs.VersionIsInvalidError
	)
	switch {
	case errors.As(err, &required):
		return required.ParamName
	case errors.As(err, &invalid):
		return invalid.ParamName
	case errors.As(err, &outOfRange):
		return outOfRange.ParamName
	case errors.As(err, &version):
		return version.ParamName
	default:
		return ""
	}
}

// requestValidationError converts an OpenAPI validation failure into a
// validationError naming the offending field.
func requestValidationError(err error) error {
	var (
		requestErr *openapi3filter.RequestError
		schemaErr  *openapi3.SchemaError
	)

	field := ""
	if errors.As(err, &requestErr) && requestErr.Parameter != nil {
		field = requestErr.Parameter.Name
	}
	if errors.As(err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = strings.Join(pointer, ".")
		}
	}

	return &validationError{field: field, cause: err}
}
