package postgre

import (
	"context"
	"database/sql"
	"errors"

	"admissions-srv/internal/model"
	"admissions-srv/internal/report/repository"
)

const outboxColumns = `id, report_id, task_id, payload, status, attempts, created_at, sent_at`

const createOutboxQuery = `
	INSERT INTO report_outbox (report_id, task_id, payload, status, attempts, created_at)
	VALUES ($1, $2, $3, $4, 0, NOW())`

const createOutboxReturningQuery = `
	INSERT INTO report_outbox (report_id, task_id, payload, status, attempts, created_at)
	VALUES ($1, $2, $3, $4, 0, NOW())
	RETURNING ` + outboxColumns

// claimPendingOutboxQuery bumps the attempt counter on up to limit pending
// rows. SKIP LOCKED keeps concurrent dispatchers from claiming the same row.
// Rows stay pending until MarkOutboxSent so a crash before publish is
// retried on the next sweep.
const claimPendingOutboxQuery = `
	UPDATE report_outbox
	SET attempts = attempts + 1
	WHERE id IN (
		SELECT id FROM report_outbox
		WHERE status = 'pending'
		ORDER BY id ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING ` + outboxColumns

const markOutboxSentQuery = `
	UPDATE report_outbox
	SET status = 'sent', sent_at = NOW()
	WHERE id = $1`

const markOutboxFailedQuery = `
	UPDATE report_outbox
	SET status = 'failed'
	WHERE id = $1`

func (r *implRepository) ClaimPendingOutbox(ctx context.Context, limit int) ([]*model.ReportOutbox, error) {
	rows, err := r.db.QueryContext(ctx, claimPendingOutboxQuery, limit)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ClaimPendingOutbox: Failed to claim outbox entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []*model.ReportOutbox
	for rows.Next() {
		entry, err := scanOutbox(rows)
		if err != nil {
			r.l.Errorf(ctx, "report.repository.postgre.ClaimPendingOutbox: Failed to scan outbox entry: %v", err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ClaimPendingOutbox: Failed to iterate outbox entries: %v", err)
		return nil, err
	}

	return entries, nil
}

func (r *implRepository) MarkOutboxSent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, markOutboxSentQuery, id)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkOutboxSent: Failed to mark outbox entry sent: %v", err)
		return repository.ErrUpdateFailed
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkOutboxSent: Failed to read affected rows: %v", err)
		return repository.ErrUpdateFailed
	}
	if affected == 0 {
		return repository.ErrOutboxEntryNotFound
	}

	return nil
}

func (r *implRepository) MarkOutboxFailed(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, markOutboxFailedQuery, id)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkOutboxFailed: Failed to mark outbox entry failed: %v", err)
		return repository.ErrUpdateFailed
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkOutboxFailed: Failed to read affected rows: %v", err)
		return repository.ErrUpdateFailed
	}
	if affected == 0 {
		return repository.ErrOutboxEntryNotFound
	}

	return nil
}

func (r *implRepository) CreateOutboxEntry(ctx context.Context, opts repository.CreateOutboxOptions) (*model.ReportOutbox, error) {
	row := r.db.QueryRowContext(ctx, createOutboxReturningQuery,
		opts.ReportID,
		opts.TaskID,
		opts.Payload,
		model.OutboxStatusPending,
	)

	entry, err := scanOutbox(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrCreateFailed
		}
		r.l.Errorf(ctx, "report.repository.postgre.CreateOutboxEntry: Failed to create outbox entry: %v", err)
		return nil, repository.ErrCreateFailed
	}

	return entry, nil
}

func scanOutbox(row interface{ Scan(...interface{}) error }) (*model.ReportOutbox, error) {
	var entry model.ReportOutbox
	if err := row.Scan(
		&entry.ID,
		&entry.ReportID,
		&entry.TaskID,
		&entry.Payload,
		&entry.Status,
		&entry.Attempts,
		&entry.CreatedAt,
		&entry.SentAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}
