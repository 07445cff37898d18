package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefrontReco/pkg/utils"

	"github.com/labstack/echo/v4"
)

type stubValidator struct {
	userID string
	err    error
}

func (s stubValidator) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.userID, s.err
}

func whoAmI(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}

func serve(t *testing.T, mw []echo.MiddlewareFunc, header string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/me", whoAmI, mw...)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func mustToken(t *testing.T, userID, role string) string {
	t.Helper()
	utils.InitJWT("middleware-secret")
	token, err := utils.GenerateJWT(userID, role, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	valid := mustToken(t, "7", "customer")
	zero := mustToken(t, "0", "customer")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"zero user id", "Bearer " + zero, http.StatusForbidden},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, []echo.MiddlewareFunc{AuthMiddleware()}, tt.header)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareWithRedis(t *testing.T) {
	token := mustToken(t, "7", "customer")

	tests := []struct {
		name      string
		validator stubValidator
		want      int
	}{
		{"session found", stubValidator{userID: "7"}, http.StatusOK},
		{"session missing", stubValidator{err: errors.New("token not found")}, http.StatusUnauthorized},
		{"session of other user", stubValidator{userID: "8"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, []echo.MiddlewareFunc{AuthMiddlewareWithRedis(tt.validator)}, "Bearer "+token)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	admin := mustToken(t, "1", "ADMIN")
	customer := mustToken(t, "2", "customer")
	chain := []echo.MiddlewareFunc{AuthMiddleware(), AdminOnly()}

	if rec := serve(t, chain, "Bearer "+admin); rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d", rec.Code)
	}
	if rec := serve(t, chain, "Bearer "+customer); rec.Code != http.StatusForbidden {
		t.Fatalf("customer status = %d", rec.Code)
	}
}
