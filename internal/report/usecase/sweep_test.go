package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"admissions-srv/internal/model"
	"admissions-srv/pkg/taskqueue"
)

func TestReconcile(t *testing.T) {
	staleAfter := 30 * time.Minute

	t.Run("requeues a stale report reusing its task id", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[3] = &model.Report{
			ID:        3,
			Type:      "campaign_performance",
			Status:    model.ReportStatusProcessing,
			TaskID:    "task-1",
			UpdatedAt: time.Now().Add(-time.Hour),
		}

		out, err := env.uc.Reconcile(context.Background(), staleAfter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TotalChecked != 1 || out.Requeued != 1 {
			t.Fatalf("unexpected result: %+v", out)
		}

		if len(env.repo.outbox) != 1 {
			t.Fatalf("expected one outbox entry, got %d", len(env.repo.outbox))
		}
		entry := env.repo.outbox[0]
		if entry.TaskID != "task-1" {
			t.Errorf("requeued entry must reuse the stored task id, got %s", entry.TaskID)
		}
		var msg taskqueue.TaskMessage
		if err := json.Unmarshal(entry.Payload, &msg); err != nil {
			t.Fatalf("bad requeued payload: %v", err)
		}
		if msg.TaskID != "task-1" || msg.TaskData.ReportID != 3 {
			t.Errorf("unexpected requeued task: %+v", msg)
		}
	})

	t.Run("skips reports that still have a pending delivery", func(t *testing.T) {
		env := newTestEnv()
		rp := seedReportWithOutbox(t, env, 7)
		env.repo.reports[rp.ID].UpdatedAt = time.Now().Add(-time.Hour)

		out, err := env.uc.Reconcile(context.Background(), staleAfter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Requeued != 0 {
			t.Fatalf("report with a pending entry was requeued: %+v", out)
		}
	})

	t.Run("skips fresh and terminal reports", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[1] = &model.Report{ID: 1, Status: model.ReportStatusProcessing, TaskID: "t1", UpdatedAt: time.Now()}
		env.repo.reports[2] = &model.Report{ID: 2, Status: model.ReportStatusCompleted, TaskID: "t2", UpdatedAt: time.Now().Add(-time.Hour)}

		out, err := env.uc.Reconcile(context.Background(), staleAfter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TotalChecked != 0 || out.Requeued != 0 {
			t.Fatalf("unexpected result: %+v", out)
		}
	})
}
