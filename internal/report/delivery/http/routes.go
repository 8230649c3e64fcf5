package http

import (
	"admissions-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1/reports")

	// Worker callback, authenticated by the internal service key.
	webhooks := api.Group("/webhooks")
	webhooks.Use(mw.InternalAuth())
	{
		webhooks.POST("/completion", h.CompleteReport)
	}

	api.Use(mw.Auth())
	{
		api.POST("", h.CreateReport)
		api.GET("", h.ListReports)
		api.GET("/:report_id", h.GetReport)
		api.GET("/:report_id/download", h.DownloadReport)
		api.DELETE("/:report_id", h.DeleteReport)
	}
}
