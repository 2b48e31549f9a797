package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Telemetry middleware adds OpenTelemetry tracing. Without a configured provider the
// global no-op tracer is used.
func Telemetry() echo.MiddlewareFunc {
	tracer := otel.Tracer("storefront-api")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			spanName := c.Request().Method + " " + c.Path()
			ctx, span := tracer.Start(c.Request().Context(), spanName)
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", c.Request().Method),
				attribute.String("http.url", c.Request().URL.String()),
				attribute.String("http.route", c.Path()),
				attribute.String("user_agent", c.Request().UserAgent()),
			)

			if requestID, ok := c.Get("request_id").(string); ok {
				span.SetAttributes(attribute.String("request.id", requestID))
			}

			if id := c.Param("id"); id != "" {
				if _, err := uuid.Parse(id); err == nil {
					span.SetAttributes(attribute.String("resource.id", id))
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			span.SetAttributes(attribute.Int("http.status_code", c.Response().Status))

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return err
		}
	}
}
