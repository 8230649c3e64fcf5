package usecase

import (
	campaignRepo "admissions-srv/internal/campaign/repository"
	"admissions-srv/internal/metric"
	"admissions-srv/internal/metric/repository"
	"admissions-srv/pkg/log"
)

type implUseCase struct {
	repo         repository.MetricRepository
	campaignRepo campaignRepo.CampaignRepository
	l            log.Logger
}

// New creates a new metric UseCase implementation.
func New(
	repo repository.MetricRepository,
	campaignRepo campaignRepo.CampaignRepository,
	l log.Logger,
) metric.UseCase {
	return &implUseCase{
		repo:         repo,
		campaignRepo: campaignRepo,
		l:            l,
	}
}
