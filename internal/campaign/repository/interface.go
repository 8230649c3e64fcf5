package repository

import (
	"context"

	"admissions-srv/internal/model"
)

//go:generate mockery --name CampaignRepository
type CampaignRepository interface {
	GetCampaignByID(ctx context.Context, id int64) (*model.Campaign, error)
}
