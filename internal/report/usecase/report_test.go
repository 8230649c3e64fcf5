package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	campaignRepo "admissions-srv/internal/campaign/repository"
	metricRepo "admissions-srv/internal/metric/repository"
	"admissions-srv/internal/model"
	"admissions-srv/internal/report"
	"admissions-srv/internal/report/repository"
	"admissions-srv/pkg/log"
	"admissions-srv/pkg/minio"
	"admissions-srv/pkg/paginator"
	"admissions-srv/pkg/taskqueue"
)

type fakeReportRepo struct {
	reports      map[int64]*model.Report
	outbox       []*model.ReportOutbox
	nextReportID int64
	markSentErr  error
	processing   []int64
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[int64]*model.Report{}}
}

func (f *fakeReportRepo) CreateReportWithOutbox(_ context.Context, opts repository.CreateReportOptions) (*model.Report, error) {
	f.nextReportID++
	now := time.Now()
	rp := &model.Report{
		ID:          f.nextReportID,
		Name:        opts.Name,
		Type:        opts.Type,
		Parameters:  opts.Parameters,
		Status:      model.ReportStatusPending,
		TaskID:      opts.TaskID,
		RequestedBy: opts.RequestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	payload, err := opts.BuildOutboxPayload(rp.ID)
	if err != nil {
		return nil, err
	}

	f.reports[rp.ID] = rp
	f.outbox = append(f.outbox, &model.ReportOutbox{
		ID:        int64(len(f.outbox) + 1),
		ReportID:  rp.ID,
		TaskID:    opts.TaskID,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: now,
	})

	cp := *rp
	return &cp, nil
}

func (f *fakeReportRepo) GetReportByID(_ context.Context, id int64) (*model.Report, error) {
	rp, ok := f.reports[id]
	if !ok {
		return nil, repository.ErrReportNotFound
	}
	cp := *rp
	return &cp, nil
}

func (f *fakeReportRepo) ListReports(_ context.Context, opts repository.ListReportsOptions) ([]*model.Report, paginator.Paginator, error) {
	var result []*model.Report
	for _, rp := range f.reports {
		if opts.Type != "" && rp.Type != opts.Type {
			continue
		}
		if opts.Status != "" && string(rp.Status) != opts.Status {
			continue
		}
		cp := *rp
		result = append(result, &cp)
	}
	pag := paginator.Paginator{
		Total:       int64(len(result)),
		Count:       int64(len(result)),
		PerPage:     opts.Paginate.Limit,
		CurrentPage: opts.Paginate.Page,
	}
	return result, pag, nil
}

func (f *fakeReportRepo) FinalizeReport(_ context.Context, opts repository.FinalizeReportOptions) (*model.Report, bool, error) {
	rp, ok := f.reports[opts.ReportID]
	if !ok {
		return nil, false, repository.ErrReportNotFound
	}
	if rp.Status.IsTerminal() {
		cp := *rp
		return &cp, false, nil
	}

	rp.Status = opts.Status
	rp.FilePath = opts.FilePath
	rp.FailureReason = opts.FailureReason
	rp.UpdatedAt = time.Now()
	now := time.Now()
	rp.CompletedAt = &now

	cp := *rp
	return &cp, true, nil
}

func (f *fakeReportRepo) MarkReportProcessing(_ context.Context, id int64) error {
	f.processing = append(f.processing, id)
	if rp, ok := f.reports[id]; ok && rp.Status == model.ReportStatusPending {
		rp.Status = model.ReportStatusProcessing
	}
	return nil
}

func (f *fakeReportRepo) DeleteReport(_ context.Context, id int64) error {
	if _, ok := f.reports[id]; !ok {
		return repository.ErrReportNotFound
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeReportRepo) ClaimPendingOutbox(_ context.Context, limit int) ([]*model.ReportOutbox, error) {
	var claimed []*model.ReportOutbox
	for _, entry := range f.outbox {
		if len(claimed) >= limit {
			break
		}
		if entry.Status != model.OutboxStatusPending {
			continue
		}
		entry.Attempts++
		cp := *entry
		claimed = append(claimed, &cp)
	}
	return claimed, nil
}

func (f *fakeReportRepo) MarkOutboxSent(_ context.Context, id int64) error {
	if f.markSentErr != nil {
		return f.markSentErr
	}
	for _, entry := range f.outbox {
		if entry.ID == id {
			now := time.Now()
			entry.Status = model.OutboxStatusSent
			entry.SentAt = &now
			return nil
		}
	}
	return repository.ErrOutboxEntryNotFound
}

func (f *fakeReportRepo) MarkOutboxFailed(_ context.Context, id int64) error {
	for _, entry := range f.outbox {
		if entry.ID == id {
			entry.Status = model.OutboxStatusFailed
			return nil
		}
	}
	return repository.ErrOutboxEntryNotFound
}

func (f *fakeReportRepo) CreateOutboxEntry(_ context.Context, opts repository.CreateOutboxOptions) (*model.ReportOutbox, error) {
	entry := &model.ReportOutbox{
		ID:        int64(len(f.outbox) + 1),
		ReportID:  opts.ReportID,
		TaskID:    opts.TaskID,
		Payload:   opts.Payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now(),
	}
	f.outbox = append(f.outbox, entry)
	cp := *entry
	return &cp, nil
}

func (f *fakeReportRepo) ListStaleReports(_ context.Context, opts repository.ListStaleReportsOptions) ([]*model.Report, error) {
	var stale []*model.Report
	for _, rp := range f.reports {
		if rp.Status.IsTerminal() || !rp.UpdatedAt.Before(opts.StaleBefore) {
			continue
		}
		hasPending := false
		for _, entry := range f.outbox {
			if entry.ReportID == rp.ID && entry.Status == model.OutboxStatusPending {
				hasPending = true
				break
			}
		}
		if hasPending {
			continue
		}
		cp := *rp
		stale = append(stale, &cp)
	}
	return stale, nil
}

func (f *fakeReportRepo) pendingOutboxCount() int {
	var n int
	for _, entry := range f.outbox {
		if entry.Status == model.OutboxStatusPending {
			n++
		}
	}
	return n
}

type fakeCacheRepo struct {
	saved       map[int64]*model.Report
	invalidated []int64
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{saved: map[int64]*model.Report{}}
}

func (f *fakeCacheRepo) GetReport(_ context.Context, id int64) (*model.Report, error) {
	rp, ok := f.saved[id]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	cp := *rp
	return &cp, nil
}

func (f *fakeCacheRepo) SaveReport(_ context.Context, rp *model.Report) error {
	cp := *rp
	f.saved[rp.ID] = &cp
	return nil
}

func (f *fakeCacheRepo) InvalidateReport(_ context.Context, id int64) error {
	delete(f.saved, id)
	f.invalidated = append(f.invalidated, id)
	return nil
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

type fakeMetricRepo struct {
	metrics []*model.CampaignMetric
}

func (f *fakeMetricRepo) CreateMetric(_ context.Context, _ metricRepo.CreateMetricOptions) (*model.CampaignMetric, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMetricRepo) GetMetricByID(_ context.Context, _ int64) (*model.CampaignMetric, error) {
	return nil, metricRepo.ErrMetricNotFound
}

func (f *fakeMetricRepo) UpdateMetric(_ context.Context, _ metricRepo.UpdateMetricOptions) (*model.CampaignMetric, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMetricRepo) DeleteMetric(_ context.Context, _ int64) error {
	return metricRepo.ErrMetricNotFound
}

func (f *fakeMetricRepo) ListMetrics(_ context.Context, opts metricRepo.ListMetricsOptions) ([]*model.CampaignMetric, error) {
	var result []*model.CampaignMetric
	for _, m := range f.metrics {
		if m.CampaignID != opts.CampaignID {
			continue
		}
		if opts.StartDate != nil && m.MetricDate.Before(*opts.StartDate) {
			continue
		}
		if opts.EndDate != nil && m.MetricDate.After(*opts.EndDate) {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

type fakeStorage struct {
	presignErr  error
	lastPresign *minio.PresignedURLRequest
	deleted     []string
}

func (f *fakeStorage) Connect(_ context.Context) error                 { return nil }
func (f *fakeStorage) ConnectWithRetry(_ context.Context, _ int) error { return nil }
func (f *fakeStorage) HealthCheck(_ context.Context) error             { return nil }
func (f *fakeStorage) Close() error                                    { return nil }

func (f *fakeStorage) UploadFile(_ context.Context, req *minio.UploadRequest) (*minio.FileInfo, error) {
	return &minio.FileInfo{BucketName: req.BucketName, ObjectName: req.ObjectName}, nil
}

func (f *fakeStorage) GetPresignedDownloadURL(_ context.Context, req *minio.PresignedURLRequest) (*minio.PresignedURLResponse, error) {
	if f.presignErr != nil {
		return nil, f.presignErr
	}
	f.lastPresign = req
	return &minio.PresignedURLResponse{
		URL:       "https://storage.local/" + req.BucketName + "/" + req.ObjectName,
		ExpiresAt: time.Now().Add(req.Expiry),
		Method:    req.Method,
	}, nil
}

func (f *fakeStorage) GetFileInfo(_ context.Context, bucketName, objectName string) (*minio.FileInfo, error) {
	return &minio.FileInfo{BucketName: bucketName, ObjectName: objectName}, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, _, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeStorage) FileExists(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

type fakeDispatcher struct {
	dispatched  []taskqueue.TaskMessage
	dispatchErr error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, msg taskqueue.TaskMessage) (string, error) {
	if f.dispatchErr != nil {
		return "", f.dispatchErr
	}
	f.dispatched = append(f.dispatched, msg)
	return msg.TaskID, nil
}

func (f *fakeDispatcher) Close() error { return nil }

type fakeProducer struct {
	created   []*model.Report
	finalized []*model.Report
}

func (f *fakeProducer) PublishReportCreated(_ context.Context, rp *model.Report) error {
	f.created = append(f.created, rp)
	return nil
}

func (f *fakeProducer) PublishReportFinalized(_ context.Context, rp *model.Report) error {
	f.finalized = append(f.finalized, rp)
	return nil
}

type testEnv struct {
	repo       *fakeReportRepo
	cache      *fakeCacheRepo
	campaigns  *fakeCampaignRepo
	metrics    *fakeMetricRepo
	storage    *fakeStorage
	dispatcher *fakeDispatcher
	producer   *fakeProducer
	uc         report.UseCase
}

const testWebhookURL = "http://localhost:8080/api/v1/reports/webhooks/completion"

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:       newFakeReportRepo(),
		cache:      newFakeCacheRepo(),
		campaigns:  &fakeCampaignRepo{campaigns: map[int64]*model.Campaign{}},
		metrics:    &fakeMetricRepo{},
		storage:    &fakeStorage{},
		dispatcher: &fakeDispatcher{},
		producer:   &fakeProducer{},
	}
	env.uc = New(
		log.NewNop(),
		env.repo,
		env.cache,
		env.campaigns,
		env.metrics,
		env.storage,
		env.dispatcher,
		env.producer,
		Config{
			Bucket:        "admissions-reports",
			WebhookURL:    testWebhookURL,
			PresignExpiry: 15 * time.Minute,
		},
	)
	return env
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func validCreateInput() report.CreateReportInput {
	return report.CreateReportInput{
		Name: "Spring intake performance",
		Type: "campaign_performance",
		Parameters: report.ReportParameters{
			SelectedCampaigns: []report.SelectedCampaign{
				{CampaignID: 7, SelectedMetrics: []string{"total_applications", "cost_per_application"}},
			},
			ReportFields: []string{"total_applications", "cost_per_application"},
		},
	}
}

func TestCreateReport(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	t.Run("freezes parameters and queues an outbox task", func(t *testing.T) {
		env := newTestEnv()
		env.campaigns.campaigns[7] = &model.Campaign{ID: 7, Name: "Open Day", Channel: "facebook"}
		cpl := 5.0
		env.metrics.metrics = []*model.CampaignMetric{{
			ID:                 11,
			CampaignID:         7,
			MetricDate:         mustDate(t, "2026-03-01"),
			TotalApplications:  100,
			CostPerApplication: &cpl,
		}}

		rp, err := env.uc.CreateReport(context.Background(), sc, validCreateInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rp.Status != model.ReportStatusPending {
			t.Errorf("unexpected status: %s", rp.Status)
		}
		if rp.RequestedBy != "user-1" {
			t.Errorf("unexpected requester: %s", rp.RequestedBy)
		}
		if rp.TaskID == "" {
			t.Error("expected a task id to be assigned")
		}

		var doc report.AssembledParameters
		if err := json.Unmarshal(rp.Parameters, &doc); err != nil {
			t.Fatalf("bad assembled parameters: %v", err)
		}
		if len(doc.SelectedCampaigns) != 1 {
			t.Fatalf("unexpected campaigns: %d", len(doc.SelectedCampaigns))
		}
		if doc.SelectedCampaigns[0].CampaignID != 7 {
			t.Errorf("unexpected campaign id: %d", doc.SelectedCampaigns[0].CampaignID)
		}
		rows := doc.SelectedCampaigns[0].MetricValues
		if len(rows) != 1 {
			t.Fatalf("unexpected rows: %d", len(rows))
		}
		if rows[0]["name"] != "Open Day" || rows[0]["channel"] != "facebook" {
			t.Errorf("unexpected campaign descriptors: %+v", rows[0])
		}
		if rows[0]["record_date"] != "2026-03-01" {
			t.Errorf("unexpected record date: %v", rows[0]["record_date"])
		}
		if rows[0]["total_applications"] != float64(100) {
			t.Errorf("unexpected applications value: %v", rows[0]["total_applications"])
		}
		if rows[0]["cost_per_application"] != 5.0 {
			t.Errorf("unexpected cost per application value: %v", rows[0]["cost_per_application"])
		}
		if _, ok := rows[0]["total_revenue"]; ok {
			t.Error("unselected field leaked into report row")
		}

		if len(env.repo.outbox) != 1 {
			t.Fatalf("expected one outbox entry, got %d", len(env.repo.outbox))
		}
		var msg taskqueue.TaskMessage
		if err := json.Unmarshal(env.repo.outbox[0].Payload, &msg); err != nil {
			t.Fatalf("bad outbox payload: %v", err)
		}
		if msg.TaskID != rp.TaskID {
			t.Errorf("outbox task id %s does not match report task id %s", msg.TaskID, rp.TaskID)
		}
		if msg.TaskData.ReportID != rp.ID {
			t.Errorf("unexpected report id in task: %d", msg.TaskData.ReportID)
		}
		if msg.Webhook.URL != testWebhookURL || msg.Webhook.Method != "POST" {
			t.Errorf("unexpected webhook: %+v", msg.Webhook)
		}

		if len(env.dispatcher.dispatched) != 0 {
			t.Error("create must not publish directly, the dispatcher owns delivery")
		}
		if len(env.producer.created) != 1 {
			t.Errorf("expected one created event, got %d", len(env.producer.created))
		}
	})

	t.Run("rejects a too short name", func(t *testing.T) {
		env := newTestEnv()
		input := validCreateInput()
		input.Name = "ab"

		if _, err := env.uc.CreateReport(context.Background(), sc, input); !errors.Is(err, report.ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
		if len(env.repo.reports) != 0 {
			t.Error("report must not be stored on validation failure")
		}
	})

	t.Run("rejects empty report fields", func(t *testing.T) {
		env := newTestEnv()
		input := validCreateInput()
		input.Parameters.ReportFields = nil

		if _, err := env.uc.CreateReport(context.Background(), sc, input); !errors.Is(err, report.ErrInvalidParameters) {
			t.Fatalf("expected ErrInvalidParameters, got %v", err)
		}
	})

	t.Run("rejects a campaign without selected metrics", func(t *testing.T) {
		env := newTestEnv()
		input := validCreateInput()
		input.Parameters.SelectedCampaigns[0].SelectedMetrics = nil

		if _, err := env.uc.CreateReport(context.Background(), sc, input); !errors.Is(err, report.ErrInvalidParameters) {
			t.Fatalf("expected ErrInvalidParameters, got %v", err)
		}
	})

	t.Run("rejects an unknown metric field", func(t *testing.T) {
		env := newTestEnv()
		env.campaigns.campaigns[7] = &model.Campaign{ID: 7, Name: "Open Day"}
		input := validCreateInput()
		input.Parameters.SelectedCampaigns[0].SelectedMetrics = []string{"total_applications", "click_through_rate"}

		if _, err := env.uc.CreateReport(context.Background(), sc, input); !errors.Is(err, report.ErrUnknownMetricField) {
			t.Fatalf("expected ErrUnknownMetricField, got %v", err)
		}
		if len(env.repo.reports) != 0 {
			t.Error("report must not be stored when a field is unknown")
		}
	})

	t.Run("rejects an unknown campaign", func(t *testing.T) {
		env := newTestEnv()

		if _, err := env.uc.CreateReport(context.Background(), sc, validCreateInput()); !errors.Is(err, report.ErrCampaignNotFound) {
			t.Fatalf("expected ErrCampaignNotFound, got %v", err)
		}
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		env := newTestEnv()
		env.campaigns.campaigns[7] = &model.Campaign{ID: 7, Name: "Open Day"}
		input := validCreateInput()
		input.Parameters.StartDate = "2026-04-01"
		input.Parameters.EndDate = "2026-03-01"

		if _, err := env.uc.CreateReport(context.Background(), sc, input); !errors.Is(err, report.ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}

func TestGetReport(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	t.Run("loads from repository and fills the cache", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[3] = &model.Report{ID: 3, Name: "Weekly", Status: model.ReportStatusPending}

		rp, err := env.uc.GetReport(context.Background(), sc, report.GetReportInput{ReportID: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rp.ID != 3 {
			t.Errorf("unexpected report: %+v", rp)
		}
		if _, ok := env.cache.saved[3]; !ok {
			t.Error("report was not cached after the miss")
		}
	})

	t.Run("serves a cache hit without touching the repository", func(t *testing.T) {
		env := newTestEnv()
		env.cache.saved[3] = &model.Report{ID: 3, Name: "Cached", Status: model.ReportStatusProcessing}

		rp, err := env.uc.GetReport(context.Background(), sc, report.GetReportInput{ReportID: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rp.Name != "Cached" {
			t.Errorf("unexpected report: %+v", rp)
		}
	})

	t.Run("unknown report", func(t *testing.T) {
		env := newTestEnv()

		if _, err := env.uc.GetReport(context.Background(), sc, report.GetReportInput{ReportID: 99}); !errors.Is(err, report.ErrReportNotFound) {
			t.Fatalf("expected ErrReportNotFound, got %v", err)
		}
	})
}

func TestDownloadReport(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	t.Run("presigns the file of a completed report", func(t *testing.T) {
		env := newTestEnv()
		filePath := "reports/3/spring-intake.xlsx"
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusCompleted, FilePath: &filePath}

		out, err := env.uc.DownloadReport(context.Background(), sc, report.DownloadReportInput{ReportID: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.FileName != "spring-intake.xlsx" {
			t.Errorf("unexpected file name: %s", out.FileName)
		}
		if out.DownloadURL == "" {
			t.Error("expected a download url")
		}
		if env.storage.lastPresign == nil || env.storage.lastPresign.ObjectName != filePath {
			t.Errorf("unexpected presign request: %+v", env.storage.lastPresign)
		}
		if env.storage.lastPresign.BucketName != "admissions-reports" {
			t.Errorf("unexpected bucket: %s", env.storage.lastPresign.BucketName)
		}
	})

	t.Run("pending report is not ready", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusPending}

		if _, err := env.uc.DownloadReport(context.Background(), sc, report.DownloadReportInput{ReportID: 3}); !errors.Is(err, report.ErrReportNotReady) {
			t.Fatalf("expected ErrReportNotReady, got %v", err)
		}
	})

	t.Run("cancelled report is not ready", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusCancelled}

		if _, err := env.uc.DownloadReport(context.Background(), sc, report.DownloadReportInput{ReportID: 3}); !errors.Is(err, report.ErrReportNotReady) {
			t.Fatalf("expected ErrReportNotReady, got %v", err)
		}
	})
}

func TestDeleteReport(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	t.Run("removes the row, the cache entry and the file", func(t *testing.T) {
		env := newTestEnv()
		filePath := "reports/3/spring-intake.xlsx"
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusCompleted, FilePath: &filePath}
		env.cache.saved[3] = env.repo.reports[3]

		if err := env.uc.DeleteReport(context.Background(), sc, report.DeleteReportInput{ReportID: 3}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := env.repo.reports[3]; ok {
			t.Error("report row was not deleted")
		}
		if _, ok := env.cache.saved[3]; ok {
			t.Error("cache entry was not invalidated")
		}
		if len(env.storage.deleted) != 1 || env.storage.deleted[0] != filePath {
			t.Errorf("unexpected deleted files: %v", env.storage.deleted)
		}
	})

	t.Run("unknown report", func(t *testing.T) {
		env := newTestEnv()

		if err := env.uc.DeleteReport(context.Background(), sc, report.DeleteReportInput{ReportID: 99}); !errors.Is(err, report.ErrReportNotFound) {
			t.Fatalf("expected ErrReportNotFound, got %v", err)
		}
	})
}
