package httpserver

import (
	"database/sql"
	"errors"

	"admissions-srv/config"
	"admissions-srv/pkg/discord"
	"admissions-srv/pkg/jwt"
	"admissions-srv/pkg/kafka"
	"admissions-srv/pkg/log"
	"admissions-srv/pkg/minio"
	"admissions-srv/pkg/redis"
	"admissions-srv/pkg/taskqueue"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	// Infrastructure
	postgresDB  *sql.DB
	redisClient redis.IRedis
	minioClient minio.MinIO
	producer    kafka.IProducer
	dispatcher  taskqueue.IDispatcher

	// Authentication & Security Configuration
	config     *config.Config
	jwtManager jwt.IManager

	// Monitoring & Notification Configuration
	discord discord.IDiscord
}

type Config struct {
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	PostgresDB  *sql.DB
	RedisClient redis.IRedis
	MinIOClient minio.MinIO
	Producer    kafka.IProducer
	Dispatcher  taskqueue.IDispatcher

	Config     *config.Config
	JWTManager jwt.IManager

	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		postgresDB:  cfg.PostgresDB,
		redisClient: cfg.RedisClient,
		minioClient: cfg.MinIOClient,
		producer:    cfg.Producer,
		dispatcher:  cfg.Dispatcher,

		config:     cfg.Config,
		jwtManager: cfg.JWTManager,

		discord: cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}

	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.minioClient == nil {
		return errors.New("minioClient is required")
	}
	if srv.producer == nil {
		return errors.New("producer is required")
	}
	if srv.dispatcher == nil {
		return errors.New("dispatcher is required")
	}

	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.jwtManager == nil {
		return errors.New("jwtManager is required")
	}

	// discord is optional

	return nil
}
