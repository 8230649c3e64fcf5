package http

import (
	"admissions-srv/internal/metric"
	"admissions-srv/internal/model"
	"admissions-srv/pkg/util"
)

type createMetricReq struct {
	MetricDate        string  `json:"metric_date" binding:"required"`
	EnrolledStudents  int     `json:"enrolled_students"`
	TotalApplications int     `json:"total_applications"`
	CampaignBudget    float64 `json:"campaign_budget"`
	AdvertisingCosts  float64 `json:"advertising_costs"`
	TotalRevenue      float64 `json:"total_revenue"`
}

func (r createMetricReq) toInput(campaignID int64) metric.CreateMetricInput {
	return metric.CreateMetricInput{
		CampaignID:        campaignID,
		MetricDate:        r.MetricDate,
		EnrolledStudents:  r.EnrolledStudents,
		TotalApplications: r.TotalApplications,
		CampaignBudget:    r.CampaignBudget,
		AdvertisingCosts:  r.AdvertisingCosts,
		TotalRevenue:      r.TotalRevenue,
	}
}

type updateMetricReq struct {
	MetricDate        *string  `json:"metric_date,omitempty"`
	EnrolledStudents  *int     `json:"enrolled_students,omitempty"`
	TotalApplications *int     `json:"total_applications,omitempty"`
	CampaignBudget    *float64 `json:"campaign_budget,omitempty"`
	AdvertisingCosts  *float64 `json:"advertising_costs,omitempty"`
	TotalRevenue      *float64 `json:"total_revenue,omitempty"`
}

func (r updateMetricReq) toInput(metricID int64) metric.UpdateMetricInput {
	return metric.UpdateMetricInput{
		MetricID:          metricID,
		MetricDate:        r.MetricDate,
		EnrolledStudents:  r.EnrolledStudents,
		TotalApplications: r.TotalApplications,
		CampaignBudget:    r.CampaignBudget,
		AdvertisingCosts:  r.AdvertisingCosts,
		TotalRevenue:      r.TotalRevenue,
	}
}

type listMetricsReq struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

func (r listMetricsReq) toInput(campaignID int64) metric.ListMetricsInput {
	return metric.ListMetricsInput{
		CampaignID: campaignID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}

type metricResp struct {
	ID                 int64    `json:"id"`
	CampaignID         int64    `json:"campaign_id"`
	MetricDate         string   `json:"metric_date"`
	EnrolledStudents   int      `json:"enrolled_students"`
	TotalApplications  int      `json:"total_applications"`
	CampaignBudget     float64  `json:"campaign_budget"`
	AdvertisingCosts   float64  `json:"advertising_costs"`
	TotalRevenue       float64  `json:"total_revenue"`
	CostPerApplication *float64 `json:"cost_per_application"`
	ConversionRate     *float64 `json:"conversion_rate"`
	CostPerEnrolled    *float64 `json:"cost_per_enrolled"`
	ROI                *float64 `json:"roi"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

type listMetricsResp struct {
	Items []metricResp `json:"items"`
}

func (h *handler) newMetricResp(m *model.CampaignMetric) metricResp {
	return metricResp{
		ID:                 m.ID,
		CampaignID:         m.CampaignID,
		MetricDate:         util.DateToStr(m.MetricDate),
		EnrolledStudents:   m.EnrolledStudents,
		TotalApplications:  m.TotalApplications,
		CampaignBudget:     m.CampaignBudget,
		AdvertisingCosts:   m.AdvertisingCosts,
		TotalRevenue:       m.TotalRevenue,
		CostPerApplication: m.CostPerApplication,
		ConversionRate:     m.ConversionRate,
		CostPerEnrolled:    m.CostPerEnrolled,
		ROI:                m.ROI,
		CreatedAt:          util.DateTimeToStr(m.CreatedAt),
		UpdatedAt:          util.DateTimeToStr(m.UpdatedAt),
	}
}

func (h *handler) newListMetricsResp(metrics []*model.CampaignMetric) listMetricsResp {
	return listMetricsResp{Items: util.MapSlice(metrics, h.newMetricResp)}
}
