package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admissions-srv/config"
	configKafka "admissions-srv/config/kafka"
	configMinio "admissions-srv/config/minio"
	configPostgre "admissions-srv/config/postgre"
	configRabbit "admissions-srv/config/rabbitmq"
	configRedis "admissions-srv/config/redis"
	"admissions-srv/internal/httpserver"
	"admissions-srv/pkg/discord"
	pkgJWT "admissions-srv/pkg/jwt"
	"admissions-srv/pkg/log"
	"admissions-srv/pkg/taskqueue"
)

// @title       Admissions Reporting Service API
// @description Back-office report generation and campaign analytics API.
// @version     1
// @BasePath    /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// 3. Register graceful shutdown
	registerGracefulShutdown(logger)

	ctx := context.Background()

	// 4. Initialize PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// 5. Initialize Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)

	// 6. Initialize MinIO
	minioClient, err := configMinio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Error(ctx, "Failed to connect to MinIO: ", err)
		return
	}
	defer configMinio.Disconnect()
	logger.Infof(ctx, "MinIO connected successfully to %s (bucket %s)", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)

	// 7. Initialize Kafka producer
	kafkaProducer, err := configKafka.ConnectProducer(cfg.Kafka)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Kafka: ", err)
		return
	}
	defer configKafka.DisconnectProducer()
	logger.Infof(ctx, "Kafka producer connected to %v (topic %s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)

	// 8. Initialize RabbitMQ and the task queue dispatcher
	amqpConn, err := configRabbit.Connect(cfg.RabbitMQ)
	if err != nil {
		logger.Error(ctx, "Failed to connect to RabbitMQ: ", err)
		return
	}
	defer configRabbit.Disconnect()

	amqpChannel, err := amqpConn.Channel()
	if err != nil {
		logger.Error(ctx, "Failed to open RabbitMQ channel: ", err)
		return
	}

	taskQueue, err := taskqueue.NewDispatcher(logger, amqpChannel, taskqueue.Config{
		QueueName: cfg.RabbitMQ.TaskQueue,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize task queue: ", err)
		return
	}
	defer taskQueue.Close()
	logger.Infof(ctx, "Task queue ready on %s", cfg.RabbitMQ.TaskQueue)

	// 9. Initialize Discord (optional)
	discordClient, err := discord.New(logger, &discord.DiscordWebhook{
		ID:    cfg.Discord.WebhookID,
		Token: cfg.Discord.WebhookToken,
	})
	if err != nil {
		logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
		discordClient = nil
	} else {
		logger.Infof(ctx, "Discord webhook initialized successfully")
	}

	// 10. Initialize JWT Manager
	jwtManager, err := pkgJWT.New(pkgJWT.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		TTL:       time.Duration(cfg.JWT.TTL) * time.Second,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize JWT manager: ", err)
		return
	}
	logger.Infof(ctx, "JWT Manager initialized with issuer: %s", cfg.JWT.Issuer)

	// 11. Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		PostgresDB:  postgresDB,
		RedisClient: redisClient,
		MinIOClient: minioClient,
		Producer:    kafkaProducer,
		Dispatcher:  taskQueue,

		Config:     cfg,
		JWTManager: jwtManager,

		Discord: discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}

// registerGracefulShutdown registers a signal handler for graceful shutdown.
func registerGracefulShutdown(logger log.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info(context.Background(), "Shutting down gracefully...")

		logger.Info(context.Background(), "Cleanup completed")
		os.Exit(0)
	}()
}
