package postgre

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"admissions-srv/internal/metric/repository"
	"admissions-srv/internal/model"
)

const metricColumns = `id, campaign_id, metric_date, enrolled_students, total_applications, campaign_budget,
	advertising_costs, total_revenue, cost_per_application, conversion_rate, cost_per_enrolled, roi,
	created_at, updated_at`

const createMetricQuery = `
	INSERT INTO campaign_metrics (
		campaign_id, metric_date, enrolled_students, total_applications, campaign_budget,
		advertising_costs, total_revenue, cost_per_application, conversion_rate, cost_per_enrolled, roi
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + metricColumns

const getMetricByIDQuery = `
	SELECT ` + metricColumns + `
	FROM campaign_metrics
	WHERE id = $1`

const updateMetricQuery = `
	UPDATE campaign_metrics
	SET metric_date = $2,
		enrolled_students = $3,
		total_applications = $4,
		campaign_budget = $5,
		advertising_costs = $6,
		total_revenue = $7,
		cost_per_application = $8,
		conversion_rate = $9,
		cost_per_enrolled = $10,
		roi = $11,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + metricColumns

const deleteMetricQuery = `DELETE FROM campaign_metrics WHERE id = $1`

func scanMetric(row interface{ Scan(...interface{}) error }) (*model.CampaignMetric, error) {
	var m model.CampaignMetric
	err := row.Scan(
		&m.ID,
		&m.CampaignID,
		&m.MetricDate,
		&m.EnrolledStudents,
		&m.TotalApplications,
		&m.CampaignBudget,
		&m.AdvertisingCosts,
		&m.TotalRevenue,
		&m.CostPerApplication,
		&m.ConversionRate,
		&m.CostPerEnrolled,
		&m.ROI,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMetric - Insert a new metric record with its derived indicators.
func (r *implRepository) CreateMetric(ctx context.Context, opts repository.CreateMetricOptions) (*model.CampaignMetric, error) {
	row := r.db.QueryRowContext(ctx, createMetricQuery,
		opts.CampaignID,
		opts.MetricDate,
		opts.EnrolledStudents,
		opts.TotalApplications,
		opts.CampaignBudget,
		opts.AdvertisingCosts,
		opts.TotalRevenue,
		opts.Derived.CostPerApplication,
		opts.Derived.ConversionRate,
		opts.Derived.CostPerEnrolled,
		opts.Derived.ROI,
	)

	m, err := scanMetric(row)
	if err != nil {
		r.l.Errorf(ctx, "metric.repository.postgre.CreateMetric: Failed to insert metric: %v", err)
		return nil, repository.ErrMetricCreateFailed
	}

	return m, nil
}

// GetMetricByID - Get metric by primary key.
func (r *implRepository) GetMetricByID(ctx context.Context, id int64) (*model.CampaignMetric, error) {
	m, err := scanMetric(r.db.QueryRowContext(ctx, getMetricByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrMetricNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "metric.repository.postgre.GetMetricByID: Failed to get metric: %v", err)
		return nil, err
	}

	return m, nil
}

// UpdateMetric - Rewrite the tracked figures and derived indicators of one record.
func (r *implRepository) UpdateMetric(ctx context.Context, opts repository.UpdateMetricOptions) (*model.CampaignMetric, error) {
	row := r.db.QueryRowContext(ctx, updateMetricQuery,
		opts.MetricID,
		opts.MetricDate,
		opts.EnrolledStudents,
		opts.TotalApplications,
		opts.CampaignBudget,
		opts.AdvertisingCosts,
		opts.TotalRevenue,
		opts.Derived.CostPerApplication,
		opts.Derived.ConversionRate,
		opts.Derived.CostPerEnrolled,
		opts.Derived.ROI,
	)

	m, err := scanMetric(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrMetricNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "metric.repository.postgre.UpdateMetric: Failed to update metric: %v", err)
		return nil, repository.ErrMetricUpdateFailed
	}

	return m, nil
}

// DeleteMetric - Hard delete one metric record.
func (r *implRepository) DeleteMetric(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, deleteMetricQuery, id)
	if err != nil {
		r.l.Errorf(ctx, "metric.repository.postgre.DeleteMetric: Failed to delete metric: %v", err)
		return repository.ErrMetricDeleteFailed
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "metric.repository.postgre.DeleteMetric: Failed to read rows affected: %v", err)
		return repository.ErrMetricDeleteFailed
	}
	if affected == 0 {
		return repository.ErrMetricNotFound
	}

	return nil
}

// ListMetrics - List metric records for a campaign, oldest first, with optional date range.
func (r *implRepository) ListMetrics(ctx context.Context, opts repository.ListMetricsOptions) ([]*model.CampaignMetric, error) {
	query, args := r.buildListMetricsQuery(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "metric.repository.postgre.ListMetrics: Failed to list metrics: %v", err)
		return nil, err
	}
	defer rows.Close()

	var result []*model.CampaignMetric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			r.l.Errorf(ctx, "metric.repository.postgre.ListMetrics: Failed to scan metric: %v", err)
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "metric.repository.postgre.ListMetrics: Rows iteration failed: %v", err)
		return nil, err
	}

	return result, nil
}

func (r *implRepository) buildListMetricsQuery(opts repository.ListMetricsOptions) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT " + metricColumns + " FROM campaign_metrics WHERE campaign_id = $1")
	args := []interface{}{opts.CampaignID}

	if opts.StartDate != nil {
		args = append(args, *opts.StartDate)
		sb.WriteString(" AND metric_date >= $" + strconv.Itoa(len(args)))
	}
	if opts.EndDate != nil {
		args = append(args, *opts.EndDate)
		sb.WriteString(" AND metric_date <= $" + strconv.Itoa(len(args)))
	}

	sb.WriteString(" ORDER BY metric_date ASC, id ASC")

	return sb.String(), args
}
