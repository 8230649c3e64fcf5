package taskqueue

import (
	"context"
	"encoding/json"
	"net/http"

	"admissions-srv/pkg/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Dispatch publishes the task envelope to the worker queue.
// The message is persistent so tasks survive a broker restart.
func (d *dispatcherImpl) Dispatch(ctx context.Context, msg TaskMessage) (string, error) {
	if msg.TaskID == "" {
		msg.TaskID = NewTaskID()
	}
	if msg.Webhook.Method == "" {
		msg.Webhook.Method = http.MethodPost
	}

	body, err := json.Marshal(msg)
	if err != nil {
		d.l.Errorf(ctx, "taskqueue.Dispatch: marshal task %s: %v", msg.TaskID, err)
		return "", err
	}

	if err := d.ch.Publish(ctx, rabbitmq.PublishArgs{
		RoutingKey: d.queueName,
		Msg: rabbitmq.Publishing{
			ContentType:  rabbitmq.ContentTypeJSON,
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.TaskID,
			Body:         body,
		},
	}); err != nil {
		d.l.Errorf(ctx, "taskqueue.Dispatch: publish task %s: %v", msg.TaskID, err)
		return "", err
	}

	return msg.TaskID, nil
}

// Close closes the underlying channel.
func (d *dispatcherImpl) Close() error {
	return d.ch.Close()
}
