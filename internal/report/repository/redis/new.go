package redis

import (
	"time"

	"admissions-srv/internal/report/repository"
	"admissions-srv/pkg/log"
	"admissions-srv/pkg/redis"
)

type implCacheRepository struct {
	redis redis.IRedis
	l     log.Logger
	ttl   time.Duration
}

// New creates a new CacheRepository backed by Redis.
func New(redis redis.IRedis, l log.Logger, ttl time.Duration) repository.CacheRepository {
	return &implCacheRepository{
		redis: redis,
		l:     l,
		ttl:   ttl,
	}
}
