package http

import (
	"admissions-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.Auth())
	{
		api.POST("/campaigns/:campaign_id/metrics", h.CreateMetric)
		api.GET("/campaigns/:campaign_id/metrics", h.ListMetrics)
		api.PUT("/metrics/:metric_id", h.UpdateMetric)
		api.DELETE("/metrics/:metric_id", h.DeleteMetric)
	}
}
