package taskqueue

import (
	"context"
	"errors"

	"admissions-srv/pkg/log"
	"admissions-srv/pkg/rabbitmq"

	"github.com/google/uuid"
)

var (
	ErrQueueNameRequired = errors.New("taskqueue: queue name is required")
	ErrChannelRequired   = errors.New("taskqueue: channel is required")
)

// IDispatcher publishes report generation tasks to the worker queue.
// Implementations are safe for concurrent use.
type IDispatcher interface {
	// Dispatch publishes the envelope and returns its task id. A fresh
	// id is generated when the message does not carry one.
	Dispatch(ctx context.Context, msg TaskMessage) (string, error)
	Close() error
}

// NewTaskID generates a unique task identifier.
func NewTaskID() string {
	return uuid.New().String()
}

// NewDispatcher declares the worker queue and returns a dispatcher bound to it.
func NewDispatcher(l log.Logger, ch rabbitmq.IChannel, cfg Config) (IDispatcher, error) {
	if cfg.QueueName == "" {
		return nil, ErrQueueNameRequired
	}
	if ch == nil {
		return nil, ErrChannelRequired
	}

	if _, err := ch.QueueDeclare(rabbitmq.QueueArgs{
		Name:    cfg.QueueName,
		Durable: true,
	}); err != nil {
		return nil, err
	}

	return &dispatcherImpl{
		l:         l,
		ch:        ch,
		queueName: cfg.QueueName,
	}, nil
}
