package model

import "time"

// CampaignMetric holds the tracked figures for a campaign alongside the
// indicators derived from them. Derived values are nil when their
// denominator is zero.
type CampaignMetric struct {
	ID         int64
	CampaignID int64

	// Tracked figures. The budget feeds no derived indicator.
	MetricDate        time.Time
	EnrolledStudents  int
	TotalApplications int
	CampaignBudget    float64
	AdvertisingCosts  float64
	TotalRevenue      float64

	// Derived indicators.
	CostPerApplication *float64
	ConversionRate     *float64
	CostPerEnrolled    *float64
	ROI                *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
