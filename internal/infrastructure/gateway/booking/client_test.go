package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/domain/gateway"
)

func TestClient_GetBooking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bookings/bk-1", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		json.NewEncoder(w).Encode(gateway.Booking{
			ID:          "bk-1",
			HostID:      "host-1",
			ListingID:   10,
			TotalPrice:  120.005,
			Currency:    "AUD",
			BookingType: "instant",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	booking, err := client.GetBooking(context.Background(), "bk-1")

	require.NoError(t, err)
	assert.Equal(t, "bk-1", booking.ID)
	assert.Equal(t, "host-1", booking.HostID)
	assert.Equal(t, 120.005, booking.TotalPrice)
}

func TestClient_GetBooking_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	booking, err := client.GetBooking(context.Background(), "missing")

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, gateway.ErrBookingNotFound)
}

func TestClient_Transition_RequestBooking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/bookings/request/bk-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"bookingState": "pending"})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	state, err := client.Transition(context.Background(), "bk-1", gateway.BookingTypeRequest)

	require.NoError(t, err)
	assert.Equal(t, "pending", state)
}

func TestClient_Transition_InstantBookingApproves(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/approve/bk-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"bookingState": "approved"})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	state, err := client.Transition(context.Background(), "bk-1", "instant")

	require.NoError(t, err)
	assert.Equal(t, "approved", state)
}

func TestClient_Annotate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/bookings/bk-1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "card_1", body["sourceId"])
		assert.Equal(t, "ch_1", body["chargeId"])

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	err := client.Annotate(context.Background(), "bk-1", "card_1", "ch_1")

	assert.NoError(t, err)
}

func TestClient_ErrorResponseCarriesCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "ALREADY_PAID",
			"message": "booking already paid",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.Transition(context.Background(), "bk-1", "instant")

	require.Error(t, err)
	var gwErr *gateway.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "ALREADY_PAID", gwErr.Code)
}
