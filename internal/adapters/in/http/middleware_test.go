package http

import (
	"net/http"
	"testing"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRouter_RequiresGate(t *testing.T) {
	_, err := NewRouter(NewServer(Handlers{}), RouterConfig{})
	require.Error(t, err)
}

func TestAuthenticate_RunsBeforeValidation(t *testing.T) {
	target := "/api/v1/admin/shipments/" + kernel.NewUUID().String() + "/force-status"

	tests := []struct {
		name  string
		token string
		code  string
	}{
		{name: "missing credential", token: "", code: "unauthenticated"},
		{name: "unknown credential", token: "forged", code: "unauthenticated"},
		{name: "expired credential", token: "expired-tok", code: "credential_expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t, 10)

			rec := f.doAs(tt.token, http.MethodPost, target, `{"status": 42}`)
			require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
			f.transition.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthenticate_RoleGates(t *testing.T) {
	id := kernel.NewUUID().String()

	tests := []struct {
		name   string
		token  string
		method string
		target string
		body   string
	}{
		{
			name:   "partner on force-status",
			token:  "partner-tok",
			method: http.MethodPost,
			target: "/api/v1/admin/shipments/" + id + "/force-status",
			body:   `{"status": "RETURNED", "reason": "lost"}`,
		},
		{
			name:   "customer on admin listing",
			token:  "customer-tok",
			method: http.MethodGet,
			target: "/api/v1/admin/shipments",
		},
		{
			name:   "customer on scan",
			token:  "customer-tok",
			method: http.MethodPost,
			target: "/api/v1/partner/shipments/" + id + "/scan",
			body:   `{"status": "IN_TRANSIT"}`,
		},
		{
			name:   "partner with malformed admin body",
			token:  "partner-tok",
			method: http.MethodPost,
			target: "/api/v1/admin/shipments/" + id + "/assign",
			body:   `{"partner_id": "someone"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t, 10)

			rec := f.doAs(tt.token, tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
			assert.Equal(t, "forbidden", decodeError(t, rec).Code)
			f.transition.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			f.list.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			f.assign.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthenticate_AdminMayScan(t *testing.T) {
	f := newAPIFixture(t, 10)
	result := newTransitionResult(t, shipment.InTransit, false)
	f.transition.On("Handle", mock.Anything, mock.Anything).Return(result, nil)

	rec := f.doAs("tok", http.MethodPost, "/api/v1/partner/shipments/"+result.Shipment.ID().String()+"/scan",
		`{"status": "IN_TRANSIT"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestTrackShipment_NoCredentialNeeded(t *testing.T) {
	f := newAPIFixture(t, 10)
	f.track.On("Handle", mock.Anything, mock.Anything).
		Return(queries.TrackShipmentResponse{TrackingCode: "SHP7K2M9Q4XZA", Status: shipment.Pending}, nil)

	rec := f.doAs("", http.MethodGet, "/api/v1/track/SHP7K2M9Q4XZA", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestTrackShipment_MalformedRequestsCountAgainstLimit(t *testing.T) {
	f := newAPIFixture(t, 2)
	f.track.On("Handle", mock.Anything, mock.Anything).
		Return(queries.TrackShipmentResponse{TrackingCode: "SHP7K2M9Q4XZA", Status: shipment.Pending}, nil)

	for range 2 {
		rec := f.doAs("", http.MethodGet, "/api/v1/track/nope", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	rec := f.doAs("", http.MethodGet, "/api/v1/track/SHP7K2M9Q4XZA", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limited", decodeError(t, rec).Code)

	rec = f.doAs("", http.MethodGet, "/api/v1/track/nope", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	f.track.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}
