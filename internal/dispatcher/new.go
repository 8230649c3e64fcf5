package dispatcher

import (
	"fmt"
)

// New creates a new dispatcher server with dependency validation
func New(cfg Config) (*DispatcherServer, error) {
	srv := &DispatcherServer{
		l:             cfg.Logger,
		config:        cfg.Config,
		postgresDB:    cfg.PostgresDB,
		redisClient:   cfg.RedisClient,
		minioClient:   cfg.MinIOClient,
		kafkaProducer: cfg.KafkaProducer,
		taskQueue:     cfg.TaskQueue,
		discord:       cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided
func (srv *DispatcherServer) validate() error {
	if srv.l == nil {
		return fmt.Errorf("logger is required")
	}
	if srv.config == nil {
		return fmt.Errorf("config is required")
	}

	if srv.postgresDB == nil {
		return fmt.Errorf("postgres db is required")
	}
	if srv.redisClient == nil {
		return fmt.Errorf("redis client is required")
	}
	if srv.minioClient == nil {
		return fmt.Errorf("minio client is required")
	}
	if srv.kafkaProducer == nil {
		return fmt.Errorf("kafka producer is required")
	}
	if srv.taskQueue == nil {
		return fmt.Errorf("task queue dispatcher is required")
	}

	// discord is optional

	return nil
}
