package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rapporteur_backend/internal/handlers"
	"rapporteur_backend/pkg/apperrors"
)

// RegisterRoutes wires the API groups, the metrics endpoint and the
// fallback handlers. Presentation pages are registered only when a
// PagesHandler is supplied, so API-only deployments and tests can skip
// the template layer entirely.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	api := router.Group("/api")
	h.ReportHandler.RegisterRoutes(api)
	h.ContactHandler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if h.PagesHandler != nil {
		h.PagesHandler.RegisterRoutes(router)
	}

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewMethodNotAllowedError())
	})
	router.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Route not found"))
	})
}
