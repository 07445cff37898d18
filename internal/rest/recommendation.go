package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefrontReco/business/recommendation"
	"storefrontReco/domain"
	"storefrontReco/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate     *validator.Validate
		service      RecommendationService
		timeout      time.Duration
		batchTimeout time.Duration
	}

	RecommendationService interface {
		GenerateForUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
		GenerateByStrategy(ctx context.Context, userID uint, strategy string, limit int) ([]domain.Recommendation, error)
		BatchGenerate(ctx context.Context) ([]domain.BatchResult, error)
		Query(ctx context.Context, filter domain.RecommendationFilter) ([]domain.RecommendationView, error)
		UpdateInteraction(ctx context.Context, userID uint, productID uint64, upd domain.InteractionUpdate) (int64, error)
		Stats(ctx context.Context, userID *uint) (*domain.RecommendationStats, error)
	}

	GenerateRequest struct {
		Limit int `json:"limit" query:"limit" validate:"gte=0"`
	}

	ListQuery struct {
		Strategies []string `query:"strategy"`
		Limit      int      `query:"limit" validate:"gte=0"`
		SortBy     string   `query:"sort_by" validate:"omitempty,oneof=score createdAt"`
		SortOrder  string   `query:"sort_order"`
	}

	InteractionRequest struct {
		IsViewed    *bool    `json:"is_viewed"`
		IsClicked   *bool    `json:"is_clicked"`
		IsPurchased *bool    `json:"is_purchased"`
		Score       *float64 `json:"score" validate:"omitempty,gte=0,lte=1"`
		Reason      *string  `json:"reason" validate:"omitempty,max=500"`
	}

	BatchResponse struct {
		Users     int                  `json:"users"`
		Succeeded int                  `json:"succeeded"`
		Failed    int                  `json:"failed"`
		Results   []domain.BatchResult `json:"results"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:     validator.New(),
		service:      svc,
		timeout:      10 * time.Second,
		batchTimeout: 5 * time.Minute,
	}
}

// POST /api/v1/recommendations/generate
func (h *RecommendationHandler) Generate(c echo.Context) error {
	userID, ok := authUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	return h.generate(c, userID, "")
}

// POST /api/v1/admin/recommendations/users/:id/generate
// POST /api/v1/admin/recommendations/users/:id/generate/:strategy
func (h *RecommendationHandler) AdminGenerate(c echo.Context) error {
	userID, err := parseUserIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	return h.generate(c, userID, c.Param("strategy"))
}

func (h *RecommendationHandler) generate(c echo.Context, userID uint, strategy string) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var (
		recs []domain.Recommendation
		err  error
	)
	if strategy == "" {
		recs, err = h.service.GenerateForUser(ctx, userID, req.Limit)
	} else {
		recs, err = h.service.GenerateByStrategy(ctx, userID, strategy, req.Limit)
	}
	if err != nil {
		return serviceError(c, err, "Failed to generate recommendations")
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(recs))
}

// POST /api/v1/admin/recommendations/batch
func (h *RecommendationHandler) Batch(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.batchTimeout)
	defer cancel()

	results, err := h.service.BatchGenerate(ctx)
	if err != nil {
		return serviceError(c, err, "Failed to run batch generation")
	}

	resp := BatchResponse{Users: len(results), Results: results}
	for _, r := range results {
		if r.Error != "" {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}

	logger.Info("Batch generation finished", "users", resp.Users, "failed", resp.Failed,
		"trace_id", recommendation.TraceIDFromContext(ctx))

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}

// GET /api/v1/recommendations
func (h *RecommendationHandler) List(c echo.Context) error {
	userID, ok := authUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	return h.list(c, &userID)
}

// GET /api/v1/admin/recommendations?user_id=
func (h *RecommendationHandler) AdminList(c echo.Context) error {
	userID, err := optionalUserID(c.QueryParam("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	return h.list(c, userID)
}

func (h *RecommendationHandler) list(c echo.Context, userID *uint) error {
	var q ListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	filter := domain.RecommendationFilter{
		UserID:     userID,
		Strategies: splitStrategies(q.Strategies),
		Limit:      q.Limit,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	views, err := h.service.Query(ctx, filter)
	if err != nil {
		return serviceError(c, err, "Failed to query recommendations")
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(views))
}

// PATCH /api/v1/recommendations/:product_id/interaction
func (h *RecommendationHandler) UpdateInteraction(c echo.Context) error {
	userID, ok := authUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req InteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	affected, err := h.service.UpdateInteraction(ctx, userID, productID, domain.InteractionUpdate{
		IsViewed:    req.IsViewed,
		IsClicked:   req.IsClicked,
		IsPurchased: req.IsPurchased,
		Score:       req.Score,
		Reason:      req.Reason,
	})
	if err != nil {
		return serviceError(c, err, "Failed to update recommendation interaction")
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]int64{"updated": affected}))
}

// GET /api/v1/recommendations/stats
func (h *RecommendationHandler) Stats(c echo.Context) error {
	userID, ok := authUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	return h.stats(c, &userID)
}

// GET /api/v1/admin/recommendations/stats?user_id=
func (h *RecommendationHandler) AdminStats(c echo.Context) error {
	userID, err := optionalUserID(c.QueryParam("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	return h.stats(c, userID)
}

func (h *RecommendationHandler) stats(c echo.Context, userID *uint) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.service.Stats(ctx, userID)
	if err != nil {
		return serviceError(c, err, "Failed to compute recommendation stats")
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

func optionalUserID(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, recommendation.ErrInvalidUserID
	}
	uid := uint(id)
	return &uid, nil
}

// splitStrategies accepts both ?strategy=a&strategy=b and ?strategy=a,b.
func splitStrategies(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, s := range strings.Split(r, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
