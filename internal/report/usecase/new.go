package usecase

import (
	"time"

	campaignRepo "admissions-srv/internal/campaign/repository"
	metricRepo "admissions-srv/internal/metric/repository"
	"admissions-srv/internal/report"
	"admissions-srv/internal/report/repository"
	"admissions-srv/pkg/log"
	"admissions-srv/pkg/minio"
	"admissions-srv/pkg/taskqueue"
)

// Config holds the report usecase settings.
type Config struct {
	Bucket        string
	WebhookURL    string
	PresignExpiry time.Duration
}

type implUseCase struct {
	l            log.Logger
	repo         repository.ReportRepository
	cache        repository.CacheRepository
	campaignRepo campaignRepo.CampaignRepository
	metricRepo   metricRepo.MetricRepository
	storage      minio.MinIO
	dispatcher   taskqueue.IDispatcher
	producer     report.Producer
	cfg          Config
}

// New creates a new report usecase.
func New(
	l log.Logger,
	repo repository.ReportRepository,
	cache repository.CacheRepository,
	campaignRepo campaignRepo.CampaignRepository,
	metricRepo metricRepo.MetricRepository,
	storage minio.MinIO,
	dispatcher taskqueue.IDispatcher,
	producer report.Producer,
	cfg Config,
) report.UseCase {
	return &implUseCase{
		l:            l,
		repo:         repo,
		cache:        cache,
		campaignRepo: campaignRepo,
		metricRepo:   metricRepo,
		storage:      storage,
		dispatcher:   dispatcher,
		producer:     producer,
		cfg:          cfg,
	}
}
