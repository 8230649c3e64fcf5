package kafka

// Producer topics.
const (
	TopicReportEvents = "report.events"
)

// Event types routed inside the report events topic.
const (
	EventTypeReportCreated   = "report.created"
	EventTypeReportFinalized = "report.finalized"
)
