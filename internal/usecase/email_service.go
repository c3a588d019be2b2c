package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/domain/gateway"
	"github.com/roomstays/payment-service/internal/domain/model"
)

// EmailService posts booking confirmation notifications to the external
// emails API. Delivery is strictly best-effort: failures are logged and
// never reach the checkout path.
type EmailService struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewEmailService(baseURL string, logger *zap.Logger) *EmailService {
	return &EmailService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// SendBookingConfirmation notifies host and guest after a successful
// payment. Request bookings get the approval-pending templates, everything
// else the instant-confirmation ones.
func (s *EmailService) SendBookingConfirmation(
	ctx context.Context,
	booking *gateway.Booking,
	listing *model.Listing,
	location *model.Location,
	host *model.User,
	guest *model.User,
) {
	hostTemplate := "booking-instant-email-host"
	guestTemplate := "booking-instant-email-guest"
	if booking.BookingType == gateway.BookingTypeRequest {
		hostTemplate = "booking-request-email-host"
		guestTemplate = "booking-request-email-guest"
	}

	s.send(ctx, hostTemplate, host.Email, map[string]interface{}{
		"user":             host.FirstName,
		"hostName":         host.FirstName,
		"guestName":        guest.FirstName,
		"listTitle":        listing.Title,
		"listAddress":      location.Address(),
		"checkInDate":      booking.CheckIn,
		"checkOutDate":     booking.CheckOut,
		"basePrice":        booking.BasePrice,
		"total":            booking.TotalPrice,
		"confirmationCode": booking.ConfirmationCode,
	})

	s.send(ctx, guestTemplate, guest.Email, map[string]interface{}{
		"user":             guest.FirstName,
		"hostName":         host.FirstName,
		"guestName":        guest.FirstName,
		"listTitle":        listing.Title,
		"city":             location.City,
		"checkInDate":      booking.CheckIn,
		"confirmationCode": booking.ConfirmationCode,
	})
}

func (s *EmailService) send(ctx context.Context, template, destination string, data map[string]interface{}) {
	data["email"] = destination
	payload := map[string]interface{}{
		"template": template,
		"data":     data,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("failed to serialize email payload",
			zap.String("template", template),
			zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/email/send", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		s.logger.Warn("failed to create email request",
			zap.String("template", template),
			zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("failed to send email",
			zap.String("template", template),
			zap.String("destination", destination),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		s.logger.Warn("emails API rejected notification",
			zap.String("template", template),
			zap.String("destination", destination),
			zap.Int("status", resp.StatusCode))
		return
	}

	s.logger.Info("email notification sent",
		zap.String("template", template),
		zap.String("destination", destination))
}
