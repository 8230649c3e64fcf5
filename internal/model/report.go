package model

import (
	"encoding/json"
	"time"
)

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusCancelled  ReportStatus = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusCompleted || s == ReportStatusCancelled
}

// IsValid reports whether the status is one of the known states.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusProcessing, ReportStatusCompleted, ReportStatusCancelled:
		return true
	}
	return false
}

// Report is a back-office report request and its generation state.
type Report struct {
	ID            int64
	Name          string
	Type          string
	Parameters    json.RawMessage
	Status        ReportStatus
	TaskID        string
	FilePath      *string
	FailureReason *string
	RequestedBy   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
}
