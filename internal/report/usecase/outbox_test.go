package usecase

import (
	"context"
	"errors"
	"testing"

	"admissions-srv/internal/model"
)

func seedReportWithOutbox(t *testing.T, env *testEnv, campaignID int64) *model.Report {
	t.Helper()

	env.campaigns.campaigns[campaignID] = &model.Campaign{ID: campaignID, Name: "Open Day"}
	input := validCreateInput()
	input.Parameters.SelectedCampaigns[0].CampaignID = campaignID

	rp, err := env.uc.CreateReport(context.Background(), model.Scope{UserID: "user-1"}, input)
	if err != nil {
		t.Fatalf("seed report: %v", err)
	}
	return rp
}

func TestDispatchOutbox(t *testing.T) {
	t.Run("publishes claimed entries and promotes their reports", func(t *testing.T) {
		env := newTestEnv()
		rp := seedReportWithOutbox(t, env, 7)

		out, err := env.uc.DispatchOutbox(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Claimed != 1 || out.Dispatched != 1 {
			t.Fatalf("unexpected result: %+v", out)
		}

		if len(env.dispatcher.dispatched) != 1 {
			t.Fatalf("expected one published task, got %d", len(env.dispatcher.dispatched))
		}
		msg := env.dispatcher.dispatched[0]
		if msg.TaskID != rp.TaskID {
			t.Errorf("published task id %s does not match report task id %s", msg.TaskID, rp.TaskID)
		}
		if msg.TaskData.ReportID != rp.ID {
			t.Errorf("unexpected report id in task: %d", msg.TaskData.ReportID)
		}

		if env.repo.pendingOutboxCount() != 0 {
			t.Error("dispatched entry was not marked sent")
		}
		if env.repo.reports[rp.ID].Status != model.ReportStatusProcessing {
			t.Errorf("report was not promoted, status is %s", env.repo.reports[rp.ID].Status)
		}
	})

	t.Run("a failed publish leaves the entry pending", func(t *testing.T) {
		env := newTestEnv()
		rp := seedReportWithOutbox(t, env, 7)
		env.dispatcher.dispatchErr = errors.New("broker unavailable")

		out, err := env.uc.DispatchOutbox(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Claimed != 1 || out.Dispatched != 0 {
			t.Fatalf("unexpected result: %+v", out)
		}
		if env.repo.pendingOutboxCount() != 1 {
			t.Error("entry must stay pending after a failed publish")
		}
		if env.repo.reports[rp.ID].Status != model.ReportStatusPending {
			t.Errorf("report must stay pending, status is %s", env.repo.reports[rp.ID].Status)
		}

		// Next sweep retries the same entry.
		env.dispatcher.dispatchErr = nil
		out, err = env.uc.DispatchOutbox(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Dispatched != 1 {
			t.Fatalf("retry did not dispatch: %+v", out)
		}
		if env.repo.outbox[0].Attempts != 2 {
			t.Errorf("unexpected attempt count: %d", env.repo.outbox[0].Attempts)
		}
	})

	t.Run("dead-letters an unreadable payload", func(t *testing.T) {
		env := newTestEnv()
		rp := seedReportWithOutbox(t, env, 7)
		env.repo.outbox[0].Payload = []byte("{not json")

		out, err := env.uc.DispatchOutbox(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Claimed != 1 || out.Dispatched != 0 {
			t.Fatalf("unexpected result: %+v", out)
		}
		if env.repo.outbox[0].Status != model.OutboxStatusFailed {
			t.Errorf("entry must be dead-lettered, status is %s", env.repo.outbox[0].Status)
		}
		if env.repo.reports[rp.ID].Status != model.ReportStatusPending {
			t.Errorf("report must stay pending, status is %s", env.repo.reports[rp.ID].Status)
		}

		// The next sweep must not reclaim it.
		out, err = env.uc.DispatchOutbox(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Claimed != 0 {
			t.Fatalf("dead-lettered entry was reclaimed: %+v", out)
		}
	})

	t.Run("respects the batch size", func(t *testing.T) {
		env := newTestEnv()
		seedReportWithOutbox(t, env, 7)
		seedReportWithOutbox(t, env, 8)
		seedReportWithOutbox(t, env, 9)

		out, err := env.uc.DispatchOutbox(context.Background(), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Claimed != 2 || out.Dispatched != 2 {
			t.Fatalf("unexpected result: %+v", out)
		}
		if env.repo.pendingOutboxCount() != 1 {
			t.Errorf("expected one entry left, got %d", env.repo.pendingOutboxCount())
		}
	})
}
