package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/radheshyamgupta01/TLF-sub001/pkg/logger"
)

// RequestID tags each request with a unique id and a request-scoped logger.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Request().Header.Set("X-Request-ID", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Set("logger", logger.GetLogger().With(zap.String("request_id", requestID)))

		return next(c)
	}
}
