package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"admissions-srv/internal/model"
	"admissions-srv/internal/report/repository"
)

// GetReport retrieves a cached report row by id.
func (r *implCacheRepository) GetReport(ctx context.Context, id int64) (*model.Report, error) {
	data, err := r.redis.Get(ctx, reportCacheKey(id))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		r.l.Errorf(ctx, "report.repository.redis.GetReport: Failed to get report from cache: %v", err)
		return nil, err
	}

	var rp model.Report
	if err := json.Unmarshal([]byte(data), &rp); err != nil {
		r.l.Errorf(ctx, "report.repository.redis.GetReport: Failed to unmarshal report from cache: %v", err)
		return nil, err
	}

	return &rp, nil
}

// SaveReport stores a report row in cache with the configured TTL.
func (r *implCacheRepository) SaveReport(ctx context.Context, rp *model.Report) error {
	data, err := json.Marshal(rp)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.redis.SaveReport: Failed to marshal report: %v", err)
		return err
	}

	if err := r.redis.Set(ctx, reportCacheKey(rp.ID), string(data), r.ttl); err != nil {
		r.l.Errorf(ctx, "report.repository.redis.SaveReport: Failed to set report in cache: %v", err)
		return err
	}
	return nil
}

// InvalidateReport removes a report row from cache.
func (r *implCacheRepository) InvalidateReport(ctx context.Context, id int64) error {
	if err := r.redis.Delete(ctx, reportCacheKey(id)); err != nil {
		r.l.Errorf(ctx, "report.repository.redis.InvalidateReport: Failed to delete report from cache: %v", err)
		return err
	}
	return nil
}

func reportCacheKey(id int64) string {
	return fmt.Sprintf("report:%d", id)
}
