package taskqueue

import (
	"encoding/json"

	"admissions-srv/pkg/log"
	"admissions-srv/pkg/rabbitmq"
)

// Config holds task queue configuration.
type Config struct {
	QueueName string
}

// TaskData carries the work description for a report generation task.
type TaskData struct {
	ReportID   int64           `json:"reportId"`
	ReportType string          `json:"reportType"`
	Parameters json.RawMessage `json:"parameters"`
}

// Webhook tells the worker where to deliver the completion callback.
type Webhook struct {
	URL    string `json:"url"`
	Method string `json:"method"`
}

// TaskMessage is the envelope published to the worker queue.
type TaskMessage struct {
	TaskID   string   `json:"taskId"`
	TaskData TaskData `json:"taskData"`
	Webhook  Webhook  `json:"webhook"`
}

// dispatcherImpl implements IDispatcher.
type dispatcherImpl struct {
	l         log.Logger
	ch        rabbitmq.IChannel
	queueName string
}
