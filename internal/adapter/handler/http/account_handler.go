package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/domain/provider"
	"github.com/roomstays/payment-service/internal/usecase"
)

type AccountHandler struct {
	accounts *usecase.AccountService
	logger   *zap.Logger
}

func NewAccountHandler(accounts *usecase.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	userID := c.Param("userId")

	account, err := h.accounts.Get(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "OK",
		"account": account,
	})
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	userID := c.Param("userId")

	var details provider.AccountDetails
	if err := c.Bind(&details); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid request body",
			"code":  "INVALID_INPUT",
		})
	}
	// The acceptance IP is taken from the connection, not the payload.
	details.TOSAcceptanceIP = c.RealIP()

	account, err := h.accounts.Create(c.Request().Context(), userID, details)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "OK",
		"account": account,
	})
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID := c.Param("userId")

	result, err := h.accounts.Delete(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, result)
}
