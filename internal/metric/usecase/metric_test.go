package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	campaignRepo "admissions-srv/internal/campaign/repository"
	"admissions-srv/internal/metric"
	"admissions-srv/internal/metric/repository"
	"admissions-srv/internal/model"
	"admissions-srv/pkg/log"
)

type fakeMetricRepo struct {
	metrics    map[int64]*model.CampaignMetric
	lastCreate *repository.CreateMetricOptions
	lastUpdate *repository.UpdateMetricOptions
}

func (f *fakeMetricRepo) CreateMetric(_ context.Context, opts repository.CreateMetricOptions) (*model.CampaignMetric, error) {
	f.lastCreate = &opts
	m := &model.CampaignMetric{
		ID:                 1,
		CampaignID:         opts.CampaignID,
		MetricDate:         opts.MetricDate,
		EnrolledStudents:   opts.EnrolledStudents,
		TotalApplications:  opts.TotalApplications,
		CampaignBudget:     opts.CampaignBudget,
		AdvertisingCosts:   opts.AdvertisingCosts,
		TotalRevenue:       opts.TotalRevenue,
		CostPerApplication: opts.Derived.CostPerApplication,
		ConversionRate:     opts.Derived.ConversionRate,
		CostPerEnrolled:    opts.Derived.CostPerEnrolled,
		ROI:                opts.Derived.ROI,
	}
	return m, nil
}

func (f *fakeMetricRepo) GetMetricByID(_ context.Context, id int64) (*model.CampaignMetric, error) {
	m, ok := f.metrics[id]
	if !ok {
		return nil, repository.ErrMetricNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMetricRepo) UpdateMetric(_ context.Context, opts repository.UpdateMetricOptions) (*model.CampaignMetric, error) {
	f.lastUpdate = &opts
	if _, ok := f.metrics[opts.MetricID]; !ok {
		return nil, repository.ErrMetricNotFound
	}
	m := &model.CampaignMetric{
		ID:                 opts.MetricID,
		MetricDate:         opts.MetricDate,
		EnrolledStudents:   opts.EnrolledStudents,
		TotalApplications:  opts.TotalApplications,
		CampaignBudget:     opts.CampaignBudget,
		AdvertisingCosts:   opts.AdvertisingCosts,
		TotalRevenue:       opts.TotalRevenue,
		CostPerApplication: opts.Derived.CostPerApplication,
		ConversionRate:     opts.Derived.ConversionRate,
		CostPerEnrolled:    opts.Derived.CostPerEnrolled,
		ROI:                opts.Derived.ROI,
	}
	return m, nil
}

func (f *fakeMetricRepo) DeleteMetric(_ context.Context, id int64) error {
	if _, ok := f.metrics[id]; !ok {
		return repository.ErrMetricNotFound
	}
	delete(f.metrics, id)
	return nil
}

func (f *fakeMetricRepo) ListMetrics(_ context.Context, opts repository.ListMetricsOptions) ([]*model.CampaignMetric, error) {
	var result []*model.CampaignMetric
	for _, m := range f.metrics {
		if m.CampaignID == opts.CampaignID {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakeCampaignRepo struct {
	campaigns map[int64]*model.Campaign
}

func (f *fakeCampaignRepo) GetCampaignByID(_ context.Context, id int64) (*model.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, campaignRepo.ErrCampaignNotFound
	}
	return c, nil
}

func newTestUseCase(mr *fakeMetricRepo, cr *fakeCampaignRepo) metric.UseCase {
	return New(mr, cr, log.NewNop())
}

func TestCreateMetric(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	t.Run("computes derived indicators on create", func(t *testing.T) {
		mr := &fakeMetricRepo{metrics: map[int64]*model.CampaignMetric{}}
		cr := &fakeCampaignRepo{campaigns: map[int64]*model.Campaign{7: {ID: 7, Name: "Open Day"}}}
		uc := newTestUseCase(mr, cr)

		m, err := uc.CreateMetric(context.Background(), sc, metric.CreateMetricInput{
			CampaignID:        7,
			MetricDate:        "2026-03-01",
			EnrolledStudents:  20,
			TotalApplications: 100,
			CampaignBudget:    10000,
			AdvertisingCosts:  500,
			TotalRevenue:      2000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.CostPerApplication == nil || *m.CostPerApplication != 5 {
			t.Errorf("unexpected cost per application: %v", m.CostPerApplication)
		}
		if m.ConversionRate == nil || *m.ConversionRate != 20 {
			t.Errorf("unexpected conversion rate: %v", m.ConversionRate)
		}
		if m.CostPerEnrolled == nil || *m.CostPerEnrolled != 25 {
			t.Errorf("unexpected cost per enrolled: %v", m.CostPerEnrolled)
		}
		if m.ROI == nil || *m.ROI != 300 {
			t.Errorf("unexpected return on investment: %v", m.ROI)
		}
	})

	t.Run("rejects negative figures", func(t *testing.T) {
		mr := &fakeMetricRepo{metrics: map[int64]*model.CampaignMetric{}}
		cr := &fakeCampaignRepo{campaigns: map[int64]*model.Campaign{7: {ID: 7}}}
		uc := newTestUseCase(mr, cr)

		_, err := uc.CreateMetric(context.Background(), sc, metric.CreateMetricInput{
			CampaignID:        7,
			MetricDate:        "2026-03-01",
			TotalApplications: -1,
		})
		if !errors.Is(err, metric.ErrNegativeValue) {
			t.Errorf("expected ErrNegativeValue, got %v", err)
		}
		if mr.lastCreate != nil {
			t.Error("expected no repository write on validation failure")
		}
	})

	t.Run("rejects unknown campaign", func(t *testing.T) {
		mr := &fakeMetricRepo{metrics: map[int64]*model.CampaignMetric{}}
		cr := &fakeCampaignRepo{campaigns: map[int64]*model.Campaign{}}
		uc := newTestUseCase(mr, cr)

		_, err := uc.CreateMetric(context.Background(), sc, metric.CreateMetricInput{
			CampaignID: 99,
			MetricDate: "2026-03-01",
		})
		if !errors.Is(err, metric.ErrCampaignNotFound) {
			t.Errorf("expected ErrCampaignNotFound, got %v", err)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		mr := &fakeMetricRepo{metrics: map[int64]*model.CampaignMetric{}}
		cr := &fakeCampaignRepo{campaigns: map[int64]*model.Campaign{7: {ID: 7}}}
		uc := newTestUseCase(mr, cr)

		_, err := uc.CreateMetric(context.Background(), sc, metric.CreateMetricInput{
			CampaignID: 7,
			MetricDate: "03/01/2026",
		})
		if !errors.Is(err, metric.ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestUpdateMetric(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	seed := func() *fakeMetricRepo {
		cpl := 5.0
		return &fakeMetricRepo{metrics: map[int64]*model.CampaignMetric{
			3: {
				ID:                 3,
				CampaignID:         7,
				MetricDate:         date,
				EnrolledStudents:   20,
				TotalApplications:  100,
				CampaignBudget:     10000,
				AdvertisingCosts:   500,
				TotalRevenue:       2000,
				CostPerApplication: &cpl,
			},
		}}
	}

	t.Run("changing one figure recomputes every indicator", func(t *testing.T) {
		mr := seed()
		uc := newTestUseCase(mr, &fakeCampaignRepo{})

		costs := 1000.0
		m, err := uc.UpdateMetric(context.Background(), sc, metric.UpdateMetricInput{
			MetricID:         3,
			AdvertisingCosts: &costs,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Untouched figures retained.
		if m.TotalApplications != 100 || m.EnrolledStudents != 20 || m.TotalRevenue != 2000 {
			t.Errorf("unexpected figures: %+v", m)
		}
		// Whole derived batch recomputed against the new costs.
		if m.CostPerApplication == nil || *m.CostPerApplication != 10 {
			t.Errorf("unexpected cost per application: %v", m.CostPerApplication)
		}
		if m.ConversionRate == nil || *m.ConversionRate != 20 {
			t.Errorf("unexpected conversion rate: %v", m.ConversionRate)
		}
		if m.CostPerEnrolled == nil || *m.CostPerEnrolled != 50 {
			t.Errorf("unexpected cost per enrolled: %v", m.CostPerEnrolled)
		}
		if m.ROI == nil || *m.ROI != 100 {
			t.Errorf("unexpected return on investment: %v", m.ROI)
		}
	})

	t.Run("zeroing applications nils dependent indicators", func(t *testing.T) {
		mr := seed()
		uc := newTestUseCase(mr, &fakeCampaignRepo{})

		apps := 0
		enrolled := 0
		m, err := uc.UpdateMetric(context.Background(), sc, metric.UpdateMetricInput{
			MetricID:          3,
			EnrolledStudents:  &enrolled,
			TotalApplications: &apps,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.CostPerApplication != nil || m.ConversionRate != nil || m.CostPerEnrolled != nil {
			t.Errorf("expected nil lead indicators, got %+v", m)
		}
		if m.ROI == nil {
			t.Error("expected return on investment to stay defined")
		}
	})

	t.Run("unknown metric", func(t *testing.T) {
		uc := newTestUseCase(&fakeMetricRepo{metrics: map[int64]*model.CampaignMetric{}}, &fakeCampaignRepo{})

		_, err := uc.UpdateMetric(context.Background(), sc, metric.UpdateMetricInput{MetricID: 404})
		if !errors.Is(err, metric.ErrMetricNotFound) {
			t.Errorf("expected ErrMetricNotFound, got %v", err)
		}
	})

	t.Run("rejects negative resulting figures", func(t *testing.T) {
		mr := seed()
		uc := newTestUseCase(mr, &fakeCampaignRepo{})

		revenue := -1.0
		_, err := uc.UpdateMetric(context.Background(), sc, metric.UpdateMetricInput{
			MetricID:     3,
			TotalRevenue: &revenue,
		})
		if !errors.Is(err, metric.ErrNegativeValue) {
			t.Errorf("expected ErrNegativeValue, got %v", err)
		}
		if mr.lastUpdate != nil {
			t.Error("expected no repository write on validation failure")
		}
	})
}

func TestListByCampaign(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	t.Run("campaign must exist", func(t *testing.T) {
		uc := newTestUseCase(&fakeMetricRepo{metrics: map[int64]*model.CampaignMetric{}}, &fakeCampaignRepo{campaigns: map[int64]*model.Campaign{}})

		_, err := uc.ListByCampaign(context.Background(), sc, metric.ListMetricsInput{CampaignID: 12})
		if !errors.Is(err, metric.ErrCampaignNotFound) {
			t.Errorf("expected ErrCampaignNotFound, got %v", err)
		}
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		cr := &fakeCampaignRepo{campaigns: map[int64]*model.Campaign{12: {ID: 12}}}
		uc := newTestUseCase(&fakeMetricRepo{metrics: map[int64]*model.CampaignMetric{}}, cr)

		_, err := uc.ListByCampaign(context.Background(), sc, metric.ListMetricsInput{
			CampaignID: 12,
			StartDate:  "2026-03-10",
			EndDate:    "2026-03-01",
		})
		if !errors.Is(err, metric.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}
