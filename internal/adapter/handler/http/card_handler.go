package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/domain/provider"
	"github.com/roomstays/payment-service/internal/usecase"
)

type CardHandler struct {
	cards  *usecase.CardService
	logger *zap.Logger
}

func NewCardHandler(cards *usecase.CardService, logger *zap.Logger) *CardHandler {
	return &CardHandler{
		cards:  cards,
		logger: logger,
	}
}

func (h *CardHandler) GetCustomer(c echo.Context) error {
	userID := c.Param("userId")

	customer, err := h.cards.GetOrCreateCustomer(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, customer)
}

func (h *CardHandler) GetCards(c echo.Context) error {
	userID := c.Param("userId")

	cards, err := h.cards.GetCards(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"cards": cards})
}

func (h *CardHandler) AddCard(c echo.Context) error {
	userID := c.Param("userId")

	var details provider.CardDetails
	if err := c.Bind(&details); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request body",
			"code":  "INVALID_INPUT",
		})
	}

	customer, err := h.cards.AddCard(c.Request().Context(), userID, details)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, customer)
}

func (h *CardHandler) RemoveCard(c echo.Context) error {
	userID := c.Param("userId")
	cardID := c.Param("cardId")

	customer, err := h.cards.RemoveCard(c.Request().Context(), userID, cardID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, customer)
}

func (h *CardHandler) UpdateDefaultCard(c echo.Context) error {
	userID := c.Param("userId")
	cardID := c.Param("cardId")

	customer, err := h.cards.UpdateDefaultCard(c.Request().Context(), userID, cardID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, customer)
}
