package repository

import (
	"context"

	"admissions-srv/internal/model"
	"admissions-srv/pkg/paginator"
)

//go:generate mockery --name ReportRepository
type ReportRepository interface {
	// CreateReportWithOutbox inserts the report row and its outbox entry in
	// one transaction so a stored report always has a deliverable task.
	CreateReportWithOutbox(ctx context.Context, opts CreateReportOptions) (*model.Report, error)
	GetReportByID(ctx context.Context, id int64) (*model.Report, error)
	ListReports(ctx context.Context, opts ListReportsOptions) ([]*model.Report, paginator.Paginator, error)
	// FinalizeReport applies a terminal status only when the report is still
	// pending or processing. The second return value reports whether the row
	// actually transitioned.
	FinalizeReport(ctx context.Context, opts FinalizeReportOptions) (*model.Report, bool, error)
	// MarkReportProcessing promotes a pending report to processing. Terminal
	// rows are left untouched.
	MarkReportProcessing(ctx context.Context, id int64) error
	DeleteReport(ctx context.Context, id int64) error

	// ClaimPendingOutbox picks up to limit pending outbox rows, bumping
	// their attempt counter. Rows stay pending until MarkOutboxSent.
	ClaimPendingOutbox(ctx context.Context, limit int) ([]*model.ReportOutbox, error)
	MarkOutboxSent(ctx context.Context, id int64) error
	// MarkOutboxFailed dead-letters an entry whose payload cannot be
	// delivered, so it is never reclaimed.
	MarkOutboxFailed(ctx context.Context, id int64) error
	CreateOutboxEntry(ctx context.Context, opts CreateOutboxOptions) (*model.ReportOutbox, error)
	// ListStaleReports returns non-terminal reports untouched since the
	// cutoff that have no pending outbox row left to deliver.
	ListStaleReports(ctx context.Context, opts ListStaleReportsOptions) ([]*model.Report, error)
}

//go:generate mockery --name CacheRepository
type CacheRepository interface {
	GetReport(ctx context.Context, id int64) (*model.Report, error)
	SaveReport(ctx context.Context, r *model.Report) error
	InvalidateReport(ctx context.Context, id int64) error
}
