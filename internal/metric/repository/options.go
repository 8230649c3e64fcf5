package repository

import (
	"time"

	"admissions-srv/internal/metric"
)

type CreateMetricOptions struct {
	CampaignID        int64
	MetricDate        time.Time
	EnrolledStudents  int
	TotalApplications int
	CampaignBudget    float64
	AdvertisingCosts  float64
	TotalRevenue      float64
	Derived           metric.DerivedMetrics
}

// UpdateMetricOptions rewrites the tracked figures and every derived
// indicator of one record in a single statement.
type UpdateMetricOptions struct {
	MetricID          int64
	MetricDate        time.Time
	EnrolledStudents  int
	TotalApplications int
	CampaignBudget    float64
	AdvertisingCosts  float64
	TotalRevenue      float64
	Derived           metric.DerivedMetrics
}

type ListMetricsOptions struct {
	CampaignID int64
	StartDate  *time.Time
	EndDate    *time.Time
}
