package gateway

import (
	"context"
	"errors"
)

// ErrBookingNotFound is returned when the booking API has no record for the
// requested id.
var ErrBookingNotFound = errors.New("gateway: booking not found")

// BookingTypeRequest marks bookings that need host approval; any other type
// is confirmed immediately on payment.
const BookingTypeRequest = "request"

// Booking is the external booking record. The payment service references it
// but never owns it.
type Booking struct {
	ID               string  `json:"id"`
	HostID           string  `json:"hostId"`
	ListingID        int64   `json:"listingId"`
	TotalPrice       float64 `json:"totalPrice"`
	BasePrice        float64 `json:"basePrice"`
	Currency         string  `json:"currency"`
	BookingType      string  `json:"bookingType"`
	CheckIn          string  `json:"checkIn"`
	CheckOut         string  `json:"checkOut"`
	ConfirmationCode string  `json:"confirmationCode"`
	State            string  `json:"bookingState"`
}

// BookingGateway is the remote booking-lifecycle API.
type BookingGateway interface {
	// GetBooking fetches a booking by id.
	GetBooking(ctx context.Context, bookingID string) (*Booking, error)

	// Transition advances the booking after a successful charge: a
	// "request" booking moves to its pending-request state, anything else
	// straight to approved. The resulting state is returned.
	Transition(ctx context.Context, bookingID, bookingType string) (string, error)

	// Annotate attaches the funding source and charge ids to the booking
	// record.
	Annotate(ctx context.Context, bookingID, sourceID, chargeID string) error
}

// GatewayError carries the booking API's error code alongside a message.
type GatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *GatewayError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
