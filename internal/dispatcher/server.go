package dispatcher

import (
	"database/sql"

	"admissions-srv/config"
	"admissions-srv/pkg/discord"
	pkgKafka "admissions-srv/pkg/kafka"
	"admissions-srv/pkg/log"
	"admissions-srv/pkg/minio"
	"admissions-srv/pkg/redis"
	"admissions-srv/pkg/taskqueue"
)

// DispatcherServer drains the report outbox into the worker queue and
// periodically reconciles stale reports.
type DispatcherServer struct {
	// Core Configuration
	l      log.Logger
	config *config.Config

	// Infrastructure clients
	postgresDB    *sql.DB
	redisClient   redis.IRedis
	minioClient   minio.MinIO
	kafkaProducer pkgKafka.IProducer
	taskQueue     taskqueue.IDispatcher

	// Monitoring & Notification
	discord discord.IDiscord
}

// Config holds all dependencies for the dispatcher server
type Config struct {
	// Core Configuration
	Logger log.Logger
	Config *config.Config

	// Infrastructure clients
	PostgresDB    *sql.DB
	RedisClient   redis.IRedis
	MinIOClient   minio.MinIO
	KafkaProducer pkgKafka.IProducer
	TaskQueue     taskqueue.IDispatcher

	// Monitoring & Notification
	Discord discord.IDiscord
}
