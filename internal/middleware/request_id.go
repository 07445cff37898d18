package middleware

import (
	"storefrontReco/business/recommendation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID reuses an incoming X-Request-ID or assigns a new uuid, echoes it
// in the response and stores it as the trace id on the request context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" || len(rid) > 128 {
				rid = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			c.Set("request_id", rid)
			c.SetRequest(req.WithContext(recommendation.WithTraceID(req.Context(), rid)))

			return next(c)
		}
	}
}
