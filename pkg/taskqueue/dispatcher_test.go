package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"admissions-srv/pkg/log"
	"admissions-srv/pkg/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	declared  []rabbitmq.QueueArgs
	published []rabbitmq.PublishArgs
	pubErr    error
	closed    bool
}

func (f *fakeChannel) QueueDeclare(q rabbitmq.QueueArgs) (amqp.Queue, error) {
	f.declared = append(f.declared, q)
	return amqp.Queue{Name: q.Name}, nil
}

func (f *fakeChannel) Publish(_ context.Context, p rabbitmq.PublishArgs) error {
	if f.pubErr != nil {
		return f.pubErr
	}
	f.published = append(f.published, p)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNewDispatcher(t *testing.T) {
	t.Run("declares durable queue", func(t *testing.T) {
		ch := &fakeChannel{}
		_, err := NewDispatcher(log.NewNop(), ch, Config{QueueName: "report.tasks"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ch.declared) != 1 {
			t.Fatalf("expected 1 queue declare, got %d", len(ch.declared))
		}
		if ch.declared[0].Name != "report.tasks" || !ch.declared[0].Durable {
			t.Errorf("unexpected queue args: %+v", ch.declared[0])
		}
	})

	t.Run("requires queue name", func(t *testing.T) {
		_, err := NewDispatcher(log.NewNop(), &fakeChannel{}, Config{})
		if !errors.Is(err, ErrQueueNameRequired) {
			t.Errorf("expected ErrQueueNameRequired, got %v", err)
		}
	})

	t.Run("requires channel", func(t *testing.T) {
		_, err := NewDispatcher(log.NewNop(), nil, Config{QueueName: "q"})
		if !errors.Is(err, ErrChannelRequired) {
			t.Errorf("expected ErrChannelRequired, got %v", err)
		}
	})
}

func TestDispatch(t *testing.T) {
	newDispatcher := func(t *testing.T, ch *fakeChannel) IDispatcher {
		t.Helper()
		d, err := NewDispatcher(log.NewNop(), ch, Config{QueueName: "report.tasks"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return d
	}

	t.Run("publishes persistent JSON envelope", func(t *testing.T) {
		ch := &fakeChannel{}
		d := newDispatcher(t, ch)

		msg := TaskMessage{
			TaskID: NewTaskID(),
			TaskData: TaskData{
				ReportID:   42,
				ReportType: "applications_summary",
				Parameters: json.RawMessage(`{"term":"2026-fall"}`),
			},
			Webhook: Webhook{URL: "https://api.example.com/api/v1/reports/webhooks/completion"},
		}
		taskID, err := d.Dispatch(context.Background(), msg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if taskID != msg.TaskID {
			t.Errorf("expected caller task id %s to be kept, got %s", msg.TaskID, taskID)
		}

		if len(ch.published) != 1 {
			t.Fatalf("expected 1 publish, got %d", len(ch.published))
		}
		pub := ch.published[0]
		if pub.RoutingKey != "report.tasks" {
			t.Errorf("unexpected routing key: %s", pub.RoutingKey)
		}
		if pub.Msg.DeliveryMode != amqp.Persistent {
			t.Errorf("expected persistent delivery mode, got %d", pub.Msg.DeliveryMode)
		}
		if pub.Msg.MessageId != msg.TaskID {
			t.Errorf("expected message id %s, got %s", msg.TaskID, pub.Msg.MessageId)
		}

		var decoded TaskMessage
		if err := json.Unmarshal(pub.Msg.Body, &decoded); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if decoded.TaskID != msg.TaskID {
			t.Errorf("expected task id %s, got %s", msg.TaskID, decoded.TaskID)
		}
		if decoded.TaskData.ReportID != 42 || decoded.TaskData.ReportType != "applications_summary" {
			t.Errorf("unexpected task data: %+v", decoded.TaskData)
		}
		if decoded.Webhook.Method != "POST" {
			t.Errorf("expected default POST method, got %s", decoded.Webhook.Method)
		}
	})

	t.Run("generates task id when absent", func(t *testing.T) {
		ch := &fakeChannel{}
		d := newDispatcher(t, ch)

		taskID, err := d.Dispatch(context.Background(), TaskMessage{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if taskID == "" {
			t.Fatal("expected a generated task id")
		}
		if ch.published[0].Msg.MessageId != taskID {
			t.Errorf("expected message id %s, got %s", taskID, ch.published[0].Msg.MessageId)
		}
	})

	t.Run("propagates publish error", func(t *testing.T) {
		pubErr := errors.New("broker down")
		ch := &fakeChannel{pubErr: pubErr}
		d := newDispatcher(t, ch)

		_, err := d.Dispatch(context.Background(), TaskMessage{TaskID: NewTaskID()})
		if !errors.Is(err, pubErr) {
			t.Errorf("expected publish error, got %v", err)
		}
	})
}
