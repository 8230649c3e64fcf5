package http

import (
	"admissions-srv/internal/metric"
	"admissions-srv/internal/middleware"
	"admissions-srv/pkg/discord"
	"admissions-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l       log.Logger
	uc      metric.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc metric.UseCase, discord discord.IDiscord) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		discord: discord,
	}
}
