package report

import (
	"encoding/json"
	"time"

	"admissions-srv/internal/model"
	"admissions-srv/pkg/paginator"
)

const (
	MinNameLength = 3
	MaxNameLength = 255
	MinTypeLength = 3
	MaxTypeLength = 50
)

// SelectedCampaign names one campaign and the metric fields the requester
// wants included for it.
type SelectedCampaign struct {
	CampaignID      int64    `json:"campaignId"`
	SelectedMetrics []string `json:"selectedMetrics"`
}

// ReportParameters is the caller-supplied parameter document for a report
// request. StartDate and EndDate are optional "YYYY-MM-DD" bounds applied to
// metric records.
type ReportParameters struct {
	SelectedCampaigns []SelectedCampaign `json:"selectedCampaigns"`
	ReportFields      []string           `json:"reportFields"`
	StartDate         string             `json:"startDate,omitempty"`
	EndDate           string             `json:"endDate,omitempty"`
}

// MetricRow is one flattened metric record inside an assembled report
// document: campaign descriptors plus the whitelisted metric fields.
type MetricRow map[string]interface{}

// AssembledCampaign is the frozen per-campaign section of a report document.
type AssembledCampaign struct {
	CampaignID      int64       `json:"campaignId"`
	SelectedMetrics []string    `json:"selectedMetrics"`
	MetricValues    []MetricRow `json:"metricValues"`
}

// AssembledParameters is the document stored on the report row at creation
// time. It snapshots the requested data so later metric edits do not change
// what the generated file will contain.
type AssembledParameters struct {
	SelectedCampaigns []AssembledCampaign `json:"selectedCampaigns"`
	ReportFields      []string            `json:"reportFields"`
	StartDate         *string             `json:"startDate,omitempty"`
	EndDate           *string             `json:"endDate,omitempty"`
}

type CreateReportInput struct {
	Name       string
	Type       string
	Parameters ReportParameters
}

type GetReportInput struct {
	ReportID int64
}

type ListReportsInput struct {
	Type          string
	Status        string
	PaginateQuery paginator.PaginateQuery
}

type ListReportsOutput struct {
	Reports   []*model.Report
	Paginator paginator.Paginator
}

type DownloadReportInput struct {
	ReportID int64
}

// DownloadReportOutput carries a short-lived presigned URL for the generated
// file.
type DownloadReportOutput struct {
	ReportID    int64
	FileName    string
	DownloadURL string
	ExpiresAt   time.Time
}

type DeleteReportInput struct {
	ReportID int64
}

// FinalizeReportInput is the webhook completion payload. FilePath is required
// when Status is completed; FailureReason may accompany a cancelled status.
type FinalizeReportInput struct {
	ReportID      int64
	TaskID        string
	Status        model.ReportStatus
	FilePath      string
	FailureReason string
}

// FinalizeReportOutput reports the resulting row. AlreadyFinal is set when
// the report was already terminal and the call was absorbed as a no-op.
type FinalizeReportOutput struct {
	Report       *model.Report
	AlreadyFinal bool
}

type DispatchOutboxOutput struct {
	Claimed    int
	Dispatched int
}

type ReconcileOutput struct {
	TotalChecked int
	Requeued     int
	Duration     time.Duration
}

// TaskParameters returns the stored parameter document of a report as raw
// JSON for the worker task envelope.
func TaskParameters(r *model.Report) json.RawMessage {
	if len(r.Parameters) == 0 {
		return json.RawMessage(`{}`)
	}
	return r.Parameters
}
