package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/middleware/auth"
	"github.com/roomstays/payment-service/internal/usecase"
)

type CheckoutHandler struct {
	checkout *usecase.CheckoutService
	ledger   *usecase.LedgerService
	logger   *zap.Logger
}

func NewCheckoutHandler(checkout *usecase.CheckoutService, ledger *usecase.LedgerService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		ledger:   ledger,
		logger:   logger,
	}
}

type doPaymentRequest struct {
	CardID string `json:"cardId"`
}

// DoPayment charges the authenticated guest for a booking.
func (h *CheckoutHandler) DoPayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	bookingID := c.Param("bookingId")

	var req doPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request body",
			"code":  "INVALID_INPUT",
		})
	}

	h.logger.Info("payment requested",
		zap.String("user_id", user.UserID),
		zap.String("booking_id", bookingID))

	result, err := h.checkout.DoPayment(c.Request().Context(), user.UserID, req.CardID, bookingID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetTransactions lists the ledger entries recorded for a booking.
func (h *CheckoutHandler) GetTransactions(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	bookingID := c.Param("bookingId")

	entries, err := h.ledger.History(c.Request().Context(), bookingID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"transactions": entries})
}
