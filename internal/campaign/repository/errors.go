package repository

import "errors"

var (
	ErrCampaignNotFound = errors.New("repository: campaign not found")
)
