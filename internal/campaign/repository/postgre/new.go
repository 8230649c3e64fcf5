package postgre

import (
	"database/sql"

	"admissions-srv/internal/campaign/repository"
	"admissions-srv/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

func New(db *sql.DB, l log.Logger) repository.CampaignRepository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
