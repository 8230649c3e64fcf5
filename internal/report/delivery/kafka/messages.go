package kafka

import "time"

// ReportEventMessage is the envelope published to the report events topic.
type ReportEventMessage struct {
	EventType     string     `json:"event_type"`
	ReportID      int64      `json:"report_id"`
	ReportType    string     `json:"report_type"`
	TaskID        string     `json:"task_id"`
	Status        string     `json:"status"`
	RequestedBy   string     `json:"requested_by"`
	FilePath      *string    `json:"file_path,omitempty"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
