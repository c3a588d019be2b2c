package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/domain/gateway"
)

// Client calls the booking-lifecycle API over HTTP. It implements
// gateway.BookingGateway.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// GetBooking fetches a booking by id.
// GET /bookings/{id}
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*gateway.Booking, error) {
	url := fmt.Sprintf("%s/bookings/%s", c.baseURL, bookingID)

	respBody, status, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, gateway.ErrBookingNotFound
	}
	if status != http.StatusOK {
		return nil, apiError(status, respBody)
	}

	var booking gateway.Booking
	if err := json.Unmarshal(respBody, &booking); err != nil {
		return nil, &gateway.GatewayError{
			Code:    "PARSE_ERROR",
			Message: "failed to parse booking response",
			Details: err.Error(),
		}
	}
	return &booking, nil
}

// Transition advances the booking state after a successful charge. Request
// bookings go to the pending-request state, everything else to approved.
// PUT /bookings/request/{id} | PUT /bookings/approve/{id}
func (c *Client) Transition(ctx context.Context, bookingID, bookingType string) (string, error) {
	action := "approve"
	if bookingType == gateway.BookingTypeRequest {
		action = "request"
	}
	url := fmt.Sprintf("%s/bookings/%s/%s", c.baseURL, action, bookingID)

	respBody, status, err := c.do(ctx, http.MethodPut, url, nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", gateway.ErrBookingNotFound
	}
	if status != http.StatusOK {
		return "", apiError(status, respBody)
	}

	var result struct {
		State string `json:"bookingState"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &gateway.GatewayError{
			Code:    "PARSE_ERROR",
			Message: "failed to parse transition response",
			Details: err.Error(),
		}
	}

	c.logger.Info("booking state advanced",
		zap.String("booking_id", bookingID),
		zap.String("action", action),
		zap.String("state", result.State))

	return result.State, nil
}

// Annotate attaches the funding source and charge ids to the booking.
// PUT /bookings/{id}
func (c *Client) Annotate(ctx context.Context, bookingID, sourceID, chargeID string) error {
	url := fmt.Sprintf("%s/bookings/%s", c.baseURL, bookingID)
	body := map[string]string{
		"sourceId": sourceID,
		"chargeId": chargeID,
	}

	respBody, status, err := c.do(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return gateway.ErrBookingNotFound
	}
	if status != http.StatusOK {
		return apiError(status, respBody)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body interface{}) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, 0, &gateway.GatewayError{
				Code:    "MARSHAL_ERROR",
				Message: "failed to prepare request",
				Details: err.Error(),
			}
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, &gateway.GatewayError{
			Code:    "REQUEST_ERROR",
			Message: "failed to create request",
			Details: err.Error(),
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("booking API request failed",
			zap.String("url", url),
			zap.Error(err))
		return nil, 0, &gateway.GatewayError{
			Code:    "API_ERROR",
			Message: "booking API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &gateway.GatewayError{
			Code:    "RESPONSE_ERROR",
			Message: "failed to read response",
			Details: err.Error(),
		}
	}
	return respBody, resp.StatusCode, nil
}

func apiError(status int, body []byte) error {
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	// An unparseable body falls through to the defaults below.
	_ = json.Unmarshal(body, &errResp)

	if errResp.Code == "" {
		errResp.Code = fmt.Sprintf("HTTP_%d", status)
	}
	if errResp.Message == "" {
		errResp.Message = "booking API returned an error"
	}
	return &gateway.GatewayError{
		Code:    errResp.Code,
		Message: errResp.Message,
		Details: string(body),
	}
}
