package usecase

import (
	"context"
	"errors"
	"time"

	campaignRepo "admissions-srv/internal/campaign/repository"
	"admissions-srv/internal/metric"
	"admissions-srv/internal/metric/repository"
	"admissions-srv/internal/model"
	"admissions-srv/pkg/util"
)

// CreateMetric records the tracked figures for one campaign day and
// computes every derived indicator from them.
func (uc *implUseCase) CreateMetric(ctx context.Context, sc model.Scope, input metric.CreateMetricInput) (*model.CampaignMetric, error) {
	if input.EnrolledStudents < 0 || input.TotalApplications < 0 || input.CampaignBudget < 0 ||
		input.AdvertisingCosts < 0 || input.TotalRevenue < 0 {
		return nil, metric.ErrNegativeValue
	}

	metricDate, err := util.StrToDate(input.MetricDate)
	if err != nil {
		return nil, metric.ErrInvalidDate
	}

	if _, err := uc.campaignRepo.GetCampaignByID(ctx, input.CampaignID); err != nil {
		if errors.Is(err, campaignRepo.ErrCampaignNotFound) {
			return nil, metric.ErrCampaignNotFound
		}
		uc.l.Errorf(ctx, "metric.usecase.CreateMetric: get campaign %d: %v", input.CampaignID, err)
		return nil, err
	}

	m, err := uc.repo.CreateMetric(ctx, repository.CreateMetricOptions{
		CampaignID:        input.CampaignID,
		MetricDate:        metricDate,
		EnrolledStudents:  input.EnrolledStudents,
		TotalApplications: input.TotalApplications,
		CampaignBudget:    input.CampaignBudget,
		AdvertisingCosts:  input.AdvertisingCosts,
		TotalRevenue:      input.TotalRevenue,
		Derived:           metric.ComputeDerived(input.TotalApplications, input.EnrolledStudents, input.AdvertisingCosts, input.TotalRevenue),
	})
	if err != nil {
		uc.l.Errorf(ctx, "metric.usecase.CreateMetric: create metric: %v", err)
		return nil, err
	}

	return m, nil
}

// UpdateMetric applies a partial update to the tracked figures. Any
// change recomputes all derived indicators as one batch so they never
// disagree with the figures they were derived from.
func (uc *implUseCase) UpdateMetric(ctx context.Context, sc model.Scope, input metric.UpdateMetricInput) (*model.CampaignMetric, error) {
	existing, err := uc.repo.GetMetricByID(ctx, input.MetricID)
	if err != nil {
		if errors.Is(err, repository.ErrMetricNotFound) {
			return nil, metric.ErrMetricNotFound
		}
		uc.l.Errorf(ctx, "metric.usecase.UpdateMetric: get metric %d: %v", input.MetricID, err)
		return nil, err
	}

	metricDate := existing.MetricDate
	if input.MetricDate != nil {
		metricDate, err = util.StrToDate(*input.MetricDate)
		if err != nil {
			return nil, metric.ErrInvalidDate
		}
	}

	enrolled := existing.EnrolledStudents
	if input.EnrolledStudents != nil {
		enrolled = *input.EnrolledStudents
	}
	applications := existing.TotalApplications
	if input.TotalApplications != nil {
		applications = *input.TotalApplications
	}
	budget := existing.CampaignBudget
	if input.CampaignBudget != nil {
		budget = *input.CampaignBudget
	}
	advertisingCosts := existing.AdvertisingCosts
	if input.AdvertisingCosts != nil {
		advertisingCosts = *input.AdvertisingCosts
	}
	revenue := existing.TotalRevenue
	if input.TotalRevenue != nil {
		revenue = *input.TotalRevenue
	}

	if enrolled < 0 || applications < 0 || budget < 0 || advertisingCosts < 0 || revenue < 0 {
		return nil, metric.ErrNegativeValue
	}

	m, err := uc.repo.UpdateMetric(ctx, repository.UpdateMetricOptions{
		MetricID:          input.MetricID,
		MetricDate:        metricDate,
		EnrolledStudents:  enrolled,
		TotalApplications: applications,
		CampaignBudget:    budget,
		AdvertisingCosts:  advertisingCosts,
		TotalRevenue:      revenue,
		Derived:           metric.ComputeDerived(applications, enrolled, advertisingCosts, revenue),
	})
	if err != nil {
		if errors.Is(err, repository.ErrMetricNotFound) {
			return nil, metric.ErrMetricNotFound
		}
		uc.l.Errorf(ctx, "metric.usecase.UpdateMetric: update metric %d: %v", input.MetricID, err)
		return nil, err
	}

	return m, nil
}

// DeleteMetric removes one metric record.
func (uc *implUseCase) DeleteMetric(ctx context.Context, sc model.Scope, metricID int64) error {
	if err := uc.repo.DeleteMetric(ctx, metricID); err != nil {
		if errors.Is(err, repository.ErrMetricNotFound) {
			return metric.ErrMetricNotFound
		}
		uc.l.Errorf(ctx, "metric.usecase.DeleteMetric: delete metric %d: %v", metricID, err)
		return err
	}

	return nil
}

// ListByCampaign returns the metric records of one campaign, oldest
// first, optionally bounded by a date range.
func (uc *implUseCase) ListByCampaign(ctx context.Context, sc model.Scope, input metric.ListMetricsInput) ([]*model.CampaignMetric, error) {
	if _, err := uc.campaignRepo.GetCampaignByID(ctx, input.CampaignID); err != nil {
		if errors.Is(err, campaignRepo.ErrCampaignNotFound) {
			return nil, metric.ErrCampaignNotFound
		}
		uc.l.Errorf(ctx, "metric.usecase.ListByCampaign: get campaign %d: %v", input.CampaignID, err)
		return nil, err
	}

	startDate, endDate, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	metrics, err := uc.repo.ListMetrics(ctx, repository.ListMetricsOptions{
		CampaignID: input.CampaignID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		uc.l.Errorf(ctx, "metric.usecase.ListByCampaign: list metrics for campaign %d: %v", input.CampaignID, err)
		return nil, err
	}

	return metrics, nil
}

func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != "" {
		t, err := util.StrToDate(start)
		if err != nil {
			return nil, nil, metric.ErrInvalidDate
		}
		startDate = &t
	}
	if end != "" {
		t, err := util.StrToDate(end)
		if err != nil {
			return nil, nil, metric.ErrInvalidDate
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, metric.ErrInvalidDateRange
	}

	return startDate, endDate, nil
}
