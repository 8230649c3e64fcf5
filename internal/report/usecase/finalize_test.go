package usecase

import (
	"context"
	"errors"
	"testing"

	"admissions-srv/internal/model"
	"admissions-srv/internal/report"
)

func TestFinalizeReport(t *testing.T) {
	t.Run("completes a processing report", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusProcessing, TaskID: "task-1"}
		env.cache.saved[3] = env.repo.reports[3]

		out, err := env.uc.FinalizeReport(context.Background(), report.FinalizeReportInput{
			ReportID: 3,
			TaskID:   "task-1",
			Status:   model.ReportStatusCompleted,
			FilePath: "reports/3/out.xlsx",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AlreadyFinal {
			t.Error("fresh transition reported as already final")
		}
		if out.Report.Status != model.ReportStatusCompleted {
			t.Errorf("unexpected status: %s", out.Report.Status)
		}
		if out.Report.FilePath == nil || *out.Report.FilePath != "reports/3/out.xlsx" {
			t.Errorf("unexpected file path: %v", out.Report.FilePath)
		}
		if out.Report.CompletedAt == nil {
			t.Error("completed report has no completion time")
		}
		if _, ok := env.cache.saved[3]; ok {
			t.Error("cache entry was not invalidated")
		}
		if len(env.producer.finalized) != 1 {
			t.Errorf("expected one finalized event, got %d", len(env.producer.finalized))
		}
	})

	t.Run("cancels with a failure reason", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusProcessing, TaskID: "task-1"}

		out, err := env.uc.FinalizeReport(context.Background(), report.FinalizeReportInput{
			ReportID:      3,
			Status:        model.ReportStatusCancelled,
			FailureReason: "worker ran out of memory",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Report.Status != model.ReportStatusCancelled {
			t.Errorf("unexpected status: %s", out.Report.Status)
		}
		if out.Report.FailureReason == nil || *out.Report.FailureReason != "worker ran out of memory" {
			t.Errorf("unexpected failure reason: %v", out.Report.FailureReason)
		}
		if out.Report.FilePath != nil {
			t.Errorf("cancelled report must not keep a file path, got %v", out.Report.FilePath)
		}
		if out.Report.CompletedAt == nil {
			t.Error("cancelled report has no completion time")
		}
	})

	t.Run("absorbs a duplicate callback", func(t *testing.T) {
		env := newTestEnv()
		filePath := "reports/3/out.xlsx"
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusCompleted, TaskID: "task-1", FilePath: &filePath}

		out, err := env.uc.FinalizeReport(context.Background(), report.FinalizeReportInput{
			ReportID: 3,
			TaskID:   "task-1",
			Status:   model.ReportStatusCancelled,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.AlreadyFinal {
			t.Error("duplicate callback was not reported as already final")
		}
		if out.Report.Status != model.ReportStatusCompleted {
			t.Errorf("terminal status was overwritten: %s", out.Report.Status)
		}
		if out.Report.FilePath == nil || *out.Report.FilePath != filePath {
			t.Errorf("file path was lost: %v", out.Report.FilePath)
		}
		if len(env.producer.finalized) != 0 {
			t.Error("duplicate callback must not publish an event")
		}
	})

	t.Run("requires a file path for completion", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusProcessing}

		_, err := env.uc.FinalizeReport(context.Background(), report.FinalizeReportInput{
			ReportID: 3,
			Status:   model.ReportStatusCompleted,
		})
		if !errors.Is(err, report.ErrFilePathRequired) {
			t.Fatalf("expected ErrFilePathRequired, got %v", err)
		}
	})

	t.Run("rejects a non-terminal status", func(t *testing.T) {
		env := newTestEnv()
		env.repo.reports[3] = &model.Report{ID: 3, Status: model.ReportStatusPending}

		_, err := env.uc.FinalizeReport(context.Background(), report.FinalizeReportInput{
			ReportID: 3,
			Status:   model.ReportStatusProcessing,
		})
		if !errors.Is(err, report.ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("unknown report", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.uc.FinalizeReport(context.Background(), report.FinalizeReportInput{
			ReportID: 99,
			Status:   model.ReportStatusCancelled,
		})
		if !errors.Is(err, report.ErrReportNotFound) {
			t.Fatalf("expected ErrReportNotFound, got %v", err)
		}
	})
}
