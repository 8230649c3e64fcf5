package postgre

import (
	"database/sql"

	"admissions-srv/internal/report/repository"
	"admissions-srv/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed ReportRepository.
func New(db *sql.DB, l log.Logger) repository.ReportRepository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
