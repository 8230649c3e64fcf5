package repository

import (
	"context"

	"admissions-srv/internal/model"
)

//go:generate mockery --name MetricRepository
type MetricRepository interface {
	CreateMetric(ctx context.Context, opts CreateMetricOptions) (*model.CampaignMetric, error)
	GetMetricByID(ctx context.Context, id int64) (*model.CampaignMetric, error)
	UpdateMetric(ctx context.Context, opts UpdateMetricOptions) (*model.CampaignMetric, error)
	DeleteMetric(ctx context.Context, id int64) error
	ListMetrics(ctx context.Context, opts ListMetricsOptions) ([]*model.CampaignMetric, error)
}
