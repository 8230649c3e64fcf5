package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	campaignRepo "admissions-srv/internal/campaign/repository"
	"admissions-srv/internal/metric"
	metricRepo "admissions-srv/internal/metric/repository"
	"admissions-srv/internal/model"
	"admissions-srv/internal/report"
	"admissions-srv/pkg/util"
)

// assembleParameters validates the requested parameters and freezes the
// report document: campaign descriptors plus the requested metric records,
// snapshotted at creation time. Every referenced metric field must be a
// known one and every referenced campaign must exist.
func (uc *implUseCase) assembleParameters(ctx context.Context, params report.ReportParameters) (json.RawMessage, error) {
	if len(params.SelectedCampaigns) == 0 || len(params.ReportFields) == 0 {
		return nil, report.ErrInvalidParameters
	}

	for _, field := range params.ReportFields {
		if !metric.IsKnownField(field) {
			uc.l.Warnf(ctx, "report.usecase.assembleParameters: Unknown report field %q", field)
			return nil, report.ErrUnknownMetricField
		}
	}

	startDate, endDate, err := parseReportDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}

	assembled := report.AssembledParameters{
		SelectedCampaigns: make([]report.AssembledCampaign, 0, len(params.SelectedCampaigns)),
		ReportFields:      params.ReportFields,
	}
	if params.StartDate != "" {
		assembled.StartDate = &params.StartDate
	}
	if params.EndDate != "" {
		assembled.EndDate = &params.EndDate
	}

	for _, sel := range params.SelectedCampaigns {
		if sel.CampaignID <= 0 || len(sel.SelectedMetrics) == 0 {
			return nil, report.ErrInvalidParameters
		}
		for _, field := range sel.SelectedMetrics {
			if !metric.IsKnownField(field) {
				uc.l.Warnf(ctx, "report.usecase.assembleParameters: Unknown metric field %q for campaign %d", field, sel.CampaignID)
				return nil, report.ErrUnknownMetricField
			}
		}

		campaign, err := uc.campaignRepo.GetCampaignByID(ctx, sel.CampaignID)
		if err != nil {
			if errors.Is(err, campaignRepo.ErrCampaignNotFound) {
				return nil, report.ErrCampaignNotFound
			}
			uc.l.Errorf(ctx, "report.usecase.assembleParameters: Failed to get campaign %d: %v", sel.CampaignID, err)
			return nil, err
		}

		metrics, err := uc.metricRepo.ListMetrics(ctx, metricRepo.ListMetricsOptions{
			CampaignID: campaign.ID,
			StartDate:  startDate,
			EndDate:    endDate,
		})
		if err != nil {
			uc.l.Errorf(ctx, "report.usecase.assembleParameters: Failed to list metrics for campaign %d: %v", campaign.ID, err)
			return nil, err
		}

		assembled.SelectedCampaigns = append(assembled.SelectedCampaigns, report.AssembledCampaign{
			CampaignID:      campaign.ID,
			SelectedMetrics: sel.SelectedMetrics,
			MetricValues:    buildMetricRows(campaign, metrics, sel.SelectedMetrics),
		})
	}

	doc, err := json.Marshal(assembled)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.assembleParameters: Failed to marshal assembled parameters: %v", err)
		return nil, err
	}

	return doc, nil
}

// buildMetricRows flattens metric records into report rows carrying campaign
// descriptors and only the requested fields. The key names are the ones the
// report worker renders.
func buildMetricRows(campaign *model.Campaign, metrics []*model.CampaignMetric, fields []string) []report.MetricRow {
	rows := make([]report.MetricRow, 0, len(metrics))
	for _, m := range metrics {
		row := report.MetricRow{
			"name":        campaign.Name,
			"channel":     campaign.Channel,
			"start":       dateOrNil(campaign.StartDate),
			"end":         dateOrNil(campaign.EndDate),
			"id":          m.ID,
			"campaign_id": m.CampaignID,
			"record_date": util.DateToStr(m.MetricDate),
		}
		for _, field := range fields {
			row[field] = metricFieldValue(m, field)
		}
		rows = append(rows, row)
	}
	return rows
}

func metricFieldValue(m *model.CampaignMetric, field string) interface{} {
	switch field {
	case metric.FieldEnrolledStudents:
		return m.EnrolledStudents
	case metric.FieldTotalApplications:
		return m.TotalApplications
	case metric.FieldCampaignBudget:
		return m.CampaignBudget
	case metric.FieldAdvertisingCosts:
		return m.AdvertisingCosts
	case metric.FieldTotalRevenue:
		return m.TotalRevenue
	case metric.FieldCostPerApplication:
		return floatOrNil(m.CostPerApplication)
	case metric.FieldConversionRate:
		return floatOrNil(m.ConversionRate)
	case metric.FieldCostPerEnrolled:
		return floatOrNil(m.CostPerEnrolled)
	case metric.FieldROI:
		return floatOrNil(m.ROI)
	}
	return nil
}

func floatOrNil(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func dateOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return util.DateToStr(*t)
}

func parseReportDateRange(start, end string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != "" {
		t, err := util.StrToDate(start)
		if err != nil {
			return nil, nil, report.ErrInvalidDate
		}
		startDate = &t
	}
	if end != "" {
		t, err := util.StrToDate(end)
		if err != nil {
			return nil, nil, report.ErrInvalidDate
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, nil, report.ErrInvalidDateRange
	}

	return startDate, endDate, nil
}
