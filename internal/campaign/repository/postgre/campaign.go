package postgre

import (
	"context"
	"database/sql"
	"errors"

	"admissions-srv/internal/campaign/repository"
	"admissions-srv/internal/model"
)

const getCampaignByIDQuery = `
	SELECT id, name, channel, status, budget, start_date, end_date, created_at, updated_at
	FROM campaigns
	WHERE id = $1`

// GetCampaignByID - Get campaign by primary key.
func (r *implRepository) GetCampaignByID(ctx context.Context, id int64) (*model.Campaign, error) {
	var c model.Campaign
	err := r.db.QueryRowContext(ctx, getCampaignByIDQuery, id).Scan(
		&c.ID,
		&c.Name,
		&c.Channel,
		&c.Status,
		&c.Budget,
		&c.StartDate,
		&c.EndDate,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrCampaignNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "campaign.repository.postgre.GetCampaignByID: Failed to get campaign: %v", err)
		return nil, err
	}

	return &c, nil
}
