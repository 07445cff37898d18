package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefrontReco/business/recommendation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestRequestID(t *testing.T) {
	e := echo.New()
	var traceID string
	e.GET("/", func(c echo.Context) error {
		traceID = recommendation.TraceIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}, RequestID())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(traceID); err != nil {
		t.Fatalf("trace id %q is not a uuid", traceID)
	}
	if got := rec.Header().Get(echo.HeaderXRequestID); got != traceID {
		t.Fatalf("header = %q, trace = %q", got, traceID)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "upstream-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if traceID != "upstream-123" {
		t.Fatalf("incoming request id not reused: %q", traceID)
	}
}
