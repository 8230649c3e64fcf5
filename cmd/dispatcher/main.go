package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"admissions-srv/config"
	configKafka "admissions-srv/config/kafka"
	configMinio "admissions-srv/config/minio"
	configPostgre "admissions-srv/config/postgre"
	configRabbit "admissions-srv/config/rabbitmq"
	configRedis "admissions-srv/config/redis"
	"admissions-srv/internal/dispatcher"
	"admissions-srv/pkg/discord"
	"admissions-srv/pkg/log"
	"admissions-srv/pkg/taskqueue"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Admissions Report Dispatcher...")

	// PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Info(ctx, "PostgreSQL client initialized")

	// Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Info(ctx, "Redis client initialized")

	// MinIO
	minioClient, err := configMinio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
		return
	}
	defer configMinio.Disconnect()
	logger.Info(ctx, "MinIO client initialized")

	// Kafka producer (report lifecycle events)
	kafkaProducer, err := configKafka.ConnectProducer(cfg.Kafka)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Kafka producer: %v", err)
		return
	}
	defer configKafka.DisconnectProducer()
	logger.Info(ctx, "Kafka producer initialized")

	// RabbitMQ task queue
	amqpConn, err := configRabbit.Connect(cfg.RabbitMQ)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to RabbitMQ: %v", err)
		return
	}
	defer configRabbit.Disconnect()

	amqpChannel, err := amqpConn.Channel()
	if err != nil {
		logger.Errorf(ctx, "Failed to open RabbitMQ channel: %v", err)
		return
	}

	taskQueue, err := taskqueue.NewDispatcher(logger, amqpChannel, taskqueue.Config{
		QueueName: cfg.RabbitMQ.TaskQueue,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize task queue: %v", err)
		return
	}
	defer taskQueue.Close()
	logger.Infof(ctx, "Task queue ready on %s", cfg.RabbitMQ.TaskQueue)

	// Discord (optional)
	discordClient, err := discord.New(logger, &discord.DiscordWebhook{
		ID:    cfg.Discord.WebhookID,
		Token: cfg.Discord.WebhookToken,
	})
	if err != nil {
		logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
		discordClient = nil
	}

	// Dispatcher server
	srv, err := dispatcher.New(dispatcher.Config{
		Logger:        logger,
		Config:        cfg,
		PostgresDB:    postgresDB,
		RedisClient:   redisClient,
		MinIOClient:   minioClient,
		KafkaProducer: kafkaProducer,
		TaskQueue:     taskQueue,
		Discord:       discordClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create dispatcher server: %v", err)
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Dispatcher server error: %v", err)
		return
	}

	logger.Info(ctx, "Dispatcher stopped gracefully")
}
