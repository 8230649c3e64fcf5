package metric

// Metric field names accepted in report parameters. These are the names
// the report worker renders, so they are part of the wire contract.
const (
	FieldEnrolledStudents   = "enrolled_students"
	FieldTotalApplications  = "total_applications"
	FieldCampaignBudget     = "campaign_budget"
	FieldAdvertisingCosts   = "advertising_costs"
	FieldTotalRevenue       = "total_revenue"
	FieldCostPerApplication = "cost_per_application"
	FieldCostPerEnrolled    = "cost_per_enrolled"
	FieldConversionRate     = "conversion_rate"
	FieldROI                = "roi"
)

// KnownFields lists every metric field a caller may reference.
var KnownFields = []string{
	FieldEnrolledStudents,
	FieldTotalApplications,
	FieldCampaignBudget,
	FieldAdvertisingCosts,
	FieldTotalRevenue,
	FieldCostPerApplication,
	FieldCostPerEnrolled,
	FieldConversionRate,
	FieldROI,
}

// IsKnownField reports whether name is a recognized metric field.
func IsKnownField(name string) bool {
	for _, f := range KnownFields {
		if f == name {
			return true
		}
	}
	return false
}

type CreateMetricInput struct {
	CampaignID        int64
	MetricDate        string // YYYY-MM-DD
	EnrolledStudents  int
	TotalApplications int
	CampaignBudget    float64
	AdvertisingCosts  float64
	TotalRevenue      float64
}

// UpdateMetricInput carries a partial update. Nil fields keep their
// stored values; any change to a figure that feeds a formula recomputes
// every derived indicator.
type UpdateMetricInput struct {
	MetricID          int64
	MetricDate        *string
	EnrolledStudents  *int
	TotalApplications *int
	CampaignBudget    *float64
	AdvertisingCosts  *float64
	TotalRevenue      *float64
}

type ListMetricsInput struct {
	CampaignID int64
	StartDate  string // optional, YYYY-MM-DD
	EndDate    string // optional, YYYY-MM-DD
}
