package repository

import (
	"encoding/json"
	"time"

	"admissions-srv/internal/model"
	"admissions-srv/pkg/paginator"
)

type CreateReportOptions struct {
	Name        string
	Type        string
	Parameters  json.RawMessage
	TaskID      string
	RequestedBy string
	// BuildOutboxPayload produces the frozen task envelope for the worker
	// queue. It runs inside the create transaction once the report id is
	// assigned.
	BuildOutboxPayload func(reportID int64) (json.RawMessage, error)
}

type ListReportsOptions struct {
	Type     string
	Status   string
	Paginate paginator.PaginateQuery
}

type FinalizeReportOptions struct {
	ReportID      int64
	Status        model.ReportStatus
	FilePath      *string
	FailureReason *string
}

type CreateOutboxOptions struct {
	ReportID int64
	TaskID   string
	Payload  json.RawMessage
}

type ListStaleReportsOptions struct {
	StaleBefore time.Time
	Limit       int
}
