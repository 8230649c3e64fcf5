package metric

import (
	"context"

	"admissions-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	CreateMetric(ctx context.Context, sc model.Scope, input CreateMetricInput) (*model.CampaignMetric, error)
	UpdateMetric(ctx context.Context, sc model.Scope, input UpdateMetricInput) (*model.CampaignMetric, error)
	DeleteMetric(ctx context.Context, sc model.Scope, metricID int64) error
	ListByCampaign(ctx context.Context, sc model.Scope, input ListMetricsInput) ([]*model.CampaignMetric, error)
}
