package postgre

import (
	"context"
	"database/sql"
	"errors"

	"admissions-srv/internal/model"
	"admissions-srv/internal/report/repository"
)

const reportColumns = `id, name, type, parameters, status, task_id, file_path, failure_reason, requested_by, created_at, updated_at, completed_at`

const createReportQuery = `
	INSERT INTO reports (name, type, parameters, status, task_id, requested_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING ` + reportColumns

const getReportByIDQuery = `
	SELECT ` + reportColumns + `
	FROM reports
	WHERE id = $1`

const finalizeReportQuery = `
	UPDATE reports
	SET status = $2,
		file_path = $3,
		failure_reason = $4,
		completed_at = NOW(),
		updated_at = NOW()
	WHERE id = $1 AND status IN ('pending', 'processing')
	RETURNING ` + reportColumns

const markReportProcessingQuery = `
	UPDATE reports
	SET status = 'processing', updated_at = NOW()
	WHERE id = $1 AND status = 'pending'`

const deleteReportQuery = `
	DELETE FROM reports
	WHERE id = $1`

const listStaleReportsQuery = `
	SELECT ` + reportColumns + `
	FROM reports r
	WHERE r.status IN ('pending', 'processing')
		AND r.updated_at < $1
		AND NOT EXISTS (
			SELECT 1 FROM report_outbox o
			WHERE o.report_id = r.id AND o.status = 'pending'
		)
	ORDER BY r.updated_at ASC
	LIMIT $2`

// CreateReportWithOutbox inserts the report and its outbox row in a single
// transaction.
func (r *implRepository) CreateReportWithOutbox(ctx context.Context, opts repository.CreateReportOptions) (*model.Report, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreateReportWithOutbox: Failed to begin transaction: %v", err)
		return nil, repository.ErrCreateFailed
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, createReportQuery,
		opts.Name,
		opts.Type,
		opts.Parameters,
		model.ReportStatusPending,
		opts.TaskID,
		opts.RequestedBy,
	)

	rp, err := scanReport(row)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreateReportWithOutbox: Failed to insert report: %v", err)
		return nil, repository.ErrCreateFailed
	}

	payload, err := opts.BuildOutboxPayload(rp.ID)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreateReportWithOutbox: Failed to build outbox payload: %v", err)
		return nil, repository.ErrCreateFailed
	}

	if _, err := tx.ExecContext(ctx, createOutboxQuery,
		rp.ID,
		opts.TaskID,
		payload,
		model.OutboxStatusPending,
	); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreateReportWithOutbox: Failed to insert outbox entry: %v", err)
		return nil, repository.ErrCreateFailed
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreateReportWithOutbox: Failed to commit transaction: %v", err)
		return nil, repository.ErrCreateFailed
	}

	return rp, nil
}

func (r *implRepository) GetReportByID(ctx context.Context, id int64) (*model.Report, error) {
	row := r.db.QueryRowContext(ctx, getReportByIDQuery, id)

	rp, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrReportNotFound
		}
		r.l.Errorf(ctx, "report.repository.postgre.GetReportByID: Failed to get report: %v", err)
		return nil, err
	}

	return rp, nil
}

// FinalizeReport applies the terminal status with a conditional UPDATE. When
// no row transitions, the current row is fetched so the caller can tell a
// missing report from an already terminal one.
func (r *implRepository) FinalizeReport(ctx context.Context, opts repository.FinalizeReportOptions) (*model.Report, bool, error) {
	row := r.db.QueryRowContext(ctx, finalizeReportQuery,
		opts.ReportID,
		opts.Status,
		opts.FilePath,
		opts.FailureReason,
	)

	rp, err := scanReport(row)
	if err == nil {
		return rp, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.l.Errorf(ctx, "report.repository.postgre.FinalizeReport: Failed to finalize report: %v", err)
		return nil, false, repository.ErrUpdateFailed
	}

	existing, err := r.GetReportByID(ctx, opts.ReportID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *implRepository) MarkReportProcessing(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, markReportProcessingQuery, id); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkReportProcessing: Failed to mark report processing: %v", err)
		return repository.ErrUpdateFailed
	}
	return nil
}

func (r *implRepository) DeleteReport(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteReportQuery, id)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.DeleteReport: Failed to delete report: %v", err)
		return repository.ErrDeleteFailed
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.DeleteReport: Failed to read affected rows: %v", err)
		return repository.ErrDeleteFailed
	}
	if affected == 0 {
		return repository.ErrReportNotFound
	}

	return nil
}

func (r *implRepository) ListStaleReports(ctx context.Context, opts repository.ListStaleReportsOptions) ([]*model.Report, error) {
	rows, err := r.db.QueryContext(ctx, listStaleReportsQuery, opts.StaleBefore, opts.Limit)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListStaleReports: Failed to list stale reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			r.l.Errorf(ctx, "report.repository.postgre.ListStaleReports: Failed to scan report: %v", err)
			return nil, err
		}
		reports = append(reports, rp)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListStaleReports: Failed to iterate reports: %v", err)
		return nil, err
	}

	return reports, nil
}

func scanReport(row interface{ Scan(...interface{}) error }) (*model.Report, error) {
	var rp model.Report
	if err := row.Scan(
		&rp.ID,
		&rp.Name,
		&rp.Type,
		&rp.Parameters,
		&rp.Status,
		&rp.TaskID,
		&rp.FilePath,
		&rp.FailureReason,
		&rp.RequestedBy,
		&rp.CreatedAt,
		&rp.UpdatedAt,
		&rp.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &rp, nil
}
