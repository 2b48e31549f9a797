package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxRequestIDLength = 128

// RequestID tags each request with an ID, reusing the caller's X-Request-ID when it is sane,
// and attaches a logger carrying that ID to the request context
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" || len(requestID) > maxRequestIDLength {
				requestID = uuid.New().String()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.Set("request_id", requestID)

			logger := log.With().Str("request_id", requestID).Logger()
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))

			return next(c)
		}
	}
}

// Logger returns the request scoped logger, or the global one outside RequestID
func Logger(c echo.Context) *zerolog.Logger {
	if l := zerolog.Ctx(c.Request().Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
