package model

import (
	"encoding/json"
	"time"
)

// OutboxStatus is the delivery state of an outbox entry.
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusSent    OutboxStatus = "sent"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// ReportOutbox is a durable record of a report task awaiting publication.
// A row is written in the same transaction as its report so a task is
// never lost between the database commit and the broker publish.
type ReportOutbox struct {
	ID        int64
	ReportID  int64
	TaskID    string
	Payload   json.RawMessage
	Status    OutboxStatus
	Attempts  int
	CreatedAt time.Time
	SentAt    *time.Time
}
