package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/roomstays/payment-service/internal/domain/errors"
)

// writeError translates a domain error into the transport response. Errors
// outside the taxonomy become opaque 500s.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	var domErr *domainErrors.Error
	if errors.As(err, &domErr) {
		return c.JSON(statusFor(domErr.Kind), echo.Map{
			"error":    domErr.Message,
			"code":     string(domErr.Kind),
			"resource": domErr.Resource,
		})
	}

	logger.Error("unhandled error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "internal server error",
		"code":  "INTERNAL",
	})
}

func statusFor(kind domainErrors.Kind) int {
	switch kind {
	case domainErrors.KindInvalidInput:
		return http.StatusBadRequest
	case domainErrors.KindNotFound, domainErrors.KindNoAccount:
		return http.StatusNotFound
	case domainErrors.KindConflict:
		return http.StatusConflict
	case domainErrors.KindPrecondition:
		return http.StatusPreconditionFailed
	case domainErrors.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
