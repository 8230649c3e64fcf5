package postgre

import (
	"context"
	"strconv"
	"strings"

	"admissions-srv/internal/model"
	"admissions-srv/internal/report/repository"
	"admissions-srv/pkg/paginator"
)

// buildListReportsQuery assembles the filtered list query and its matching
// count query.
func buildListReportsQuery(opts repository.ListReportsOptions) (listQuery string, countQuery string, args []interface{}) {
	var where strings.Builder

	if opts.Type != "" {
		args = append(args, opts.Type)
		where.WriteString(" AND type = $" + strconv.Itoa(len(args)))
	}
	if opts.Status != "" {
		args = append(args, opts.Status)
		where.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}

	base := `FROM reports WHERE 1=1` + where.String()
	countQuery = `SELECT COUNT(*) ` + base

	var list strings.Builder
	list.WriteString(`SELECT ` + reportColumns + ` ` + base)
	list.WriteString(` ORDER BY created_at DESC, id DESC`)

	args = append(args, opts.Paginate.Limit)
	list.WriteString(` LIMIT $` + strconv.Itoa(len(args)))
	args = append(args, opts.Paginate.Offset())
	list.WriteString(` OFFSET $` + strconv.Itoa(len(args)))

	return list.String(), countQuery, args
}

func (r *implRepository) ListReports(ctx context.Context, opts repository.ListReportsOptions) ([]*model.Report, paginator.Paginator, error) {
	opts.Paginate.Adjust()

	listQuery, countQuery, args := buildListReportsQuery(opts)

	var total int64
	countArgs := args[:len(args)-2]
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListReports: Failed to count reports: %v", err)
		return nil, paginator.Paginator{}, err
	}

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListReports: Failed to list reports: %v", err)
		return nil, paginator.Paginator{}, err
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			r.l.Errorf(ctx, "report.repository.postgre.ListReports: Failed to scan report: %v", err)
			return nil, paginator.Paginator{}, err
		}
		reports = append(reports, rp)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListReports: Failed to iterate reports: %v", err)
		return nil, paginator.Paginator{}, err
	}

	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(reports)),
		PerPage:     opts.Paginate.Limit,
		CurrentPage: opts.Paginate.Page,
	}

	return reports, pag, nil
}
