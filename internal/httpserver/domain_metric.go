package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	campaignPostgre "admissions-srv/internal/campaign/repository/postgre"
	metricHTTP "admissions-srv/internal/metric/delivery/http"
	metricPostgre "admissions-srv/internal/metric/repository/postgre"
	metricUsecase "admissions-srv/internal/metric/usecase"
	"admissions-srv/internal/middleware"
)

func (srv *HTTPServer) setupMetricDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	repo := metricPostgre.New(srv.postgresDB, srv.l)
	campaignRepo := campaignPostgre.New(srv.postgresDB, srv.l)

	uc := metricUsecase.New(repo, campaignRepo, srv.l)

	handler := metricHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Metric domain registered")
	return nil
}
