package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// IRabbitMQ is the RabbitMQ interface. Implementations are safe for concurrent use.
type IRabbitMQ interface {
	Close()
	IsReady() bool
	IsClosed() bool
	Channel() (IChannel, error)
}

// IChannel is the publish side of an AMQP channel. The service only
// produces task messages; consuming them is the report workers' job.
// Implementations are safe for concurrent use.
type IChannel interface {
	QueueDeclare(queue QueueArgs) (amqp.Queue, error)
	Publish(ctx context.Context, publish PublishArgs) error
	Close() error
}

// NewRabbitMQ dials the broker. With retryWithoutTimeout the connection
// redials forever after a broker-side close instead of giving up after
// RetryConnectionTimeout.
func NewRabbitMQ(url string, retryWithoutTimeout bool) (IRabbitMQ, error) {
	conn := &connectionImpl{
		url:                 url,
		retryWithoutTimeout: retryWithoutTimeout,
	}
	if err := conn.connect(); err != nil {
		return nil, err
	}
	return conn, nil
}
