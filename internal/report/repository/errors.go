package repository

import "errors"

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrOutboxEntryNotFound = errors.New("outbox entry not found")
	ErrCreateFailed        = errors.New("failed to create report")
	ErrUpdateFailed        = errors.New("failed to update report")
	ErrDeleteFailed        = errors.New("failed to delete report")
	ErrCacheMiss           = errors.New("report not in cache")
)
