package httpserver

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	campaignPostgre "admissions-srv/internal/campaign/repository/postgre"
	metricPostgre "admissions-srv/internal/metric/repository/postgre"
	"admissions-srv/internal/middleware"
	reportHTTP "admissions-srv/internal/report/delivery/http"
	reportProducer "admissions-srv/internal/report/delivery/kafka/producer"
	reportPostgre "admissions-srv/internal/report/repository/postgre"
	reportRedis "admissions-srv/internal/report/repository/redis"
	reportUsecase "admissions-srv/internal/report/usecase"
)

func (srv *HTTPServer) setupReportDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	repo := reportPostgre.New(srv.postgresDB, srv.l)
	cache := reportRedis.New(srv.redisClient, srv.l, time.Duration(srv.config.Report.CacheTTLSeconds)*time.Second)
	campaignRepo := campaignPostgre.New(srv.postgresDB, srv.l)
	metricRepo := metricPostgre.New(srv.postgresDB, srv.l)
	producer := reportProducer.New(srv.l, srv.producer)

	uc := reportUsecase.New(
		srv.l,
		repo,
		cache,
		campaignRepo,
		metricRepo,
		srv.minioClient,
		srv.dispatcher,
		producer,
		reportUsecase.Config{
			Bucket:        srv.config.MinIO.Bucket,
			WebhookURL:    completionWebhookURL(srv.config.Report.WebhookBaseURL),
			PresignExpiry: time.Duration(srv.config.Report.PresignExpirySeconds) * time.Second,
		},
	)

	handler := reportHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Report domain registered")
	return nil
}

func completionWebhookURL(base string) string {
	return strings.TrimRight(base, "/") + "/api/v1/reports/webhooks/completion"
}
