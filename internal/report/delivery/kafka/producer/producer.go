package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"admissions-srv/internal/model"
	kafkaDelivery "admissions-srv/internal/report/delivery/kafka"
)

// PublishReportCreated publishes a report created event.
func (p *implProducer) PublishReportCreated(ctx context.Context, r *model.Report) error {
	if err := p.publish(kafkaDelivery.EventTypeReportCreated, r); err != nil {
		return err
	}

	p.l.Infof(ctx, "Published report created event for report %d", r.ID)
	return nil
}

// PublishReportFinalized publishes a report finalized event.
func (p *implProducer) PublishReportFinalized(ctx context.Context, r *model.Report) error {
	if err := p.publish(kafkaDelivery.EventTypeReportFinalized, r); err != nil {
		return err
	}

	p.l.Infof(ctx, "Published report finalized event for report %d: %s", r.ID, r.Status)
	return nil
}

func (p *implProducer) publish(eventType string, r *model.Report) error {
	msg := kafkaDelivery.ReportEventMessage{
		EventType:     eventType,
		ReportID:      r.ID,
		ReportType:    r.Type,
		TaskID:        r.TaskID,
		Status:        string(r.Status),
		RequestedBy:   r.RequestedBy,
		FilePath:      r.FilePath,
		FailureReason: r.FailureReason,
		OccurredAt:    time.Now(),
		CompletedAt:   r.CompletedAt,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	// Key by report id so events for one report stay ordered.
	key := []byte(strconv.FormatInt(r.ID, 10))
	if err := p.producer.Publish(key, body); err != nil {
		return fmt.Errorf("failed to publish report event: %w", err)
	}

	return nil
}
