package router

import (
	"net/http"

	"storefrontReco/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.List)
	reco.POST("/generate", handler.Generate)
	reco.GET("/stats", handler.Stats)
	reco.PATCH("/:product_id/interaction", handler.UpdateInteraction)
}

func SetBehaviorRoutes(api *echo.Group, handler *rest.BehaviorHandler, authRequired echo.MiddlewareFunc) {
	behaviors := api.Group("/behaviors", authRequired)
	behaviors.POST("", handler.Track)
}

func SetAdminRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/recommendations", authRequired, adminOnly)

	admin.GET("", handler.AdminList)
	admin.GET("/stats", handler.AdminStats)
	admin.POST("/batch", handler.Batch)
	admin.POST("/users/:id/generate", handler.AdminGenerate)
	admin.POST("/users/:id/generate/:strategy", handler.AdminGenerate)
}

func SetOpsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
