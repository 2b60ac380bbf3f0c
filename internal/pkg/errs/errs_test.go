package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipmentId", "123")

		assert.Equal(t, "shipmentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("no rows in result set")
		err := errs.NewObjectNotFoundErrorWithCause("shipmentId", "123", cause)

		assert.Equal(t, "shipmentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shipmentId, ID is: 123 (cause: no rows in result set)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("sequence", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("tracking_code")

		assert.Equal(t, "tracking_code", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: tracking_code", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("lowercase prefix")
		err := errs.NewValueIsInvalidErrorWithCause("tracking_code", cause)

		assert.Equal(t, "tracking_code", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: tracking_code (cause: lowercase prefix)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 120)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is quantity, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("limit", -5, 0, 100, cause)

		assert.Equal(t, "limit", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is limit, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("location", "Hub\nWest", 0, 10)
		assert.Contains(t, err.Error(), "Hub West")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("reason")

		assert.Equal(t, "reason", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: reason", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("override without reason")
		err := errs.NewValueIsRequiredErrorWithCause("reason", cause)

		assert.Equal(t, "reason", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: reason (cause: override without reason)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("NewVersionIsInvalidError", func(t *testing.T) {
		cause := errors.New("stale version 3")
		err := errs.NewVersionIsInvalidError("version", cause)

		assert.Equal(t, "version", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "version is invalid: version (cause: stale version 3)", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("NewVersionIsInvalidErrorWithCause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithCause("version")

		assert.Equal(t, "version", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "version is invalid: version", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrVersionIsInvalid)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("shipmentId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("tracking_code")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("reason")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		versionInvalidErr := errs.NewVersionIsInvalidError("version", errors.New("test"))
		require.ErrorIs(t, versionInvalidErr, errs.ErrVersionIsInvalid)

		require.ErrorIs(t, errs.NewUnauthenticatedError("missing"), errs.ErrUnauthenticated)
		require.ErrorIs(t, errs.NewCredentialExpiredError(nil), errs.ErrCredentialExpired)
		require.ErrorIs(t, errs.NewForbiddenError("override", "partner"), errs.ErrForbidden)
		require.ErrorIs(t, errs.NewConflictError("shipment", "abc"), errs.ErrConflict)
		require.ErrorIs(t, errs.NewStoreUnavailableError("commit", nil), errs.ErrStoreUnavailable)
	})

	t.Run("wrapped errors keep their kind", func(t *testing.T) {
		err := fmt.Errorf("handle: %w", errs.NewConflictError("shipment", "abc"))

		var conflict *errs.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "abc", conflict.ID)
		require.NotErrorIs(t, err, errs.ErrStoreUnavailable)
	})
}

func TestAuthenticationErrors(t *testing.T) {
	t.Run("unauthenticated and expired are distinct", func(t *testing.T) {
		unauthenticated := errs.NewUnauthenticatedError("credential is missing")
		expired := errs.NewCredentialExpiredError(errors.New("token has invalid claims: token is expired"))

		require.NotErrorIs(t, unauthenticated, errs.ErrCredentialExpired)
		require.NotErrorIs(t, expired, errs.ErrUnauthenticated)
	})

	t.Run("messages", func(t *testing.T) {
		assert.Equal(t, "unauthenticated: credential is missing", errs.NewUnauthenticatedError("credential is missing").Error())
		assert.Equal(t,
			"unauthenticated: signature is invalid (cause: boom)",
			errs.NewUnauthenticatedErrorWithCause("signature is invalid", errors.New("boom")).Error())
		assert.Equal(t, "credential expired", errs.NewCredentialExpiredError(nil).Error())
		assert.Equal(t, "credential expired (cause: exp)", errs.NewCredentialExpiredError(errors.New("exp")).Error())
	})
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("override", "partner")

	assert.Equal(t, "override", err.Action)
	assert.Equal(t, "partner", err.Role)
	assert.Equal(t, "forbidden: override is not permitted for role partner", err.Error())
	assert.Equal(t, errs.ErrForbidden, err.Unwrap())
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("shipment", "42")

		require.NoError(t, err.Cause)
		assert.Equal(t, "conflict: shipment 42 was modified concurrently", err.Error())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		err := errs.NewConflictErrorWithCause("shipment", "42", errors.New("duplicate key"))

		assert.Equal(t, "conflict: shipment 42 was modified concurrently (cause: duplicate key)", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})
}

func TestStoreUnavailableError(t *testing.T) {
	err := errs.NewStoreUnavailableError("begin transaction", context.DeadlineExceeded)

	assert.Equal(t, "store unavailable: begin transaction (cause: context deadline exceeded)", err.Error())
	assert.Equal(t, errs.ErrStoreUnavailable, err.Unwrap())
	assert.Equal(t, "store unavailable: commit", errs.NewStoreUnavailableError("commit", nil).Error())
}
