package rest

import (
	"context"
	"net/http"
	"time"

	"storefrontReco/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	BehaviorHandler struct {
		validate *validator.Validate
		service  BehaviorService
		timeout  time.Duration
	}

	BehaviorService interface {
		TrackBehavior(ctx context.Context, event domain.BehaviorEvent) (*domain.BehaviorEvent, error)
	}

	TrackBehaviorRequest struct {
		ProductID  *uint64                `json:"product_id" validate:"omitempty,gt=0"`
		ActionType string                 `json:"action_type" validate:"required,oneof=view cart_add purchase review search"`
		Metadata   map[string]interface{} `json:"metadata"`
		SessionID  string                 `json:"session_id" validate:"omitempty,max=255"`
	}
)

func NewBehaviorHandler(svc BehaviorService) *BehaviorHandler {
	return &BehaviorHandler{
		validate: validator.New(),
		service:  svc,
		timeout:  10 * time.Second,
	}
}

// POST /api/v1/behaviors
func (h *BehaviorHandler) Track(c echo.Context) error {
	userID, ok := authUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req TrackBehaviorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.ProductID != nil && *req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	event := domain.BehaviorEvent{
		UserID:     userID,
		ProductID:  req.ProductID,
		ActionType: req.ActionType,
		Metadata:   req.Metadata,
	}
	if req.SessionID != "" {
		event.SessionID = &req.SessionID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.service.TrackBehavior(ctx, event)
	if err != nil {
		return serviceError(c, err, "Failed to track behavior")
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(saved))
}
