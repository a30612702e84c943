package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymwell/gym-app/internal/api"
	"gymwell/gym-app/internal/config"
	"gymwell/gym-app/internal/logging"
	"gymwell/gym-app/internal/metrics"
	"gymwell/gym-app/internal/repository/mongo"
	"gymwell/gym-app/internal/repository/postgres"
	"gymwell/gym-app/internal/security"
	"gymwell/gym-app/internal/service"
	"gymwell/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// @title Gym API
// @version 1.0
// @description Exercise catalog, routines, progress tracking and trainer assignment for a gym.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   true,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Info("starting gym api server")

	ctx := context.Background()

	// --- Document store ---
	mongoClient, err := mongo.ConnectDB(cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	appDB := mongoClient.Database(cfg.Mongo.Name)
	log.Infof("connected to MongoDB database %s", cfg.Mongo.Name)

	go func() {
		indexCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(indexCtx, appDB)
	}()

	// --- Relational store ---
	pgDB, err := postgres.Connect(ctx, postgres.Options{
		Host:        cfg.Postgres.Host,
		Port:        cfg.Postgres.Port,
		User:        cfg.Postgres.User,
		Password:    cfg.Postgres.Password,
		Name:        cfg.Postgres.Name,
		SSLMode:     cfg.Postgres.SSLMode,
		AutoMigrate: cfg.Postgres.AutoMigrate,
	})
	if err != nil {
		_ = mongo.DisconnectDB(mongoClient)
		log.Fatalf("could not connect to PostgreSQL: %v", err)
	}
	log.Infof("connected to PostgreSQL %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Name)

	// --- Optional: object storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Info("s3 bucket not configured, video uploads disabled")
	}

	// --- Optional: metrics ---
	var (
		metricsManager *metrics.Manager
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metricsManager = metrics.NewManager(metrics.Namespace, metrics.Subsystem, registry)
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	// --- Optional: login rate limiting ---
	var (
		redisClient  *redis.Client
		loginLimiter gin.HandlerFunc
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warnf("redis ping failed, login rate limiting will fail open: %v", err)
		}
		cancel()
		limiter := api.NewRateLimiter(api.NewRedisLimitStore(redisClient), metricsManager)
		loginLimiter = limiter.Limit("login", cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
	} else {
		log.Info("redis not configured, login rate limiting disabled")
	}

	// --- Repositories ---
	identityRepo := postgres.NewIdentityRepository(pgDB)
	assignmentRepo := postgres.NewAssignmentRepository(pgDB)
	statsRepo := postgres.NewStatsRepository(pgDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	recRepo := mongo.NewMongoRecommendationRepository(appDB)

	// --- Services ---
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	services := api.Services{
		Auth:           service.NewAuthService(identityRepo, tokens, security.NewPasswordHasher()),
		Exercise:       service.NewExerciseService(exerciseRepo, fileStorage),
		Routine:        service.NewRoutineService(routineRepo, exerciseRepo),
		Progress:       service.NewProgressService(progressRepo, routineRepo, exerciseRepo),
		Recommendation: service.NewRecommendationService(recRepo, identityRepo),
		Admin:          service.NewAdminService(identityRepo, assignmentRepo),
		Stats:          service.NewStatsService(statsRepo),
	}

	// --- HTTP ---
	if logging.GetLevel(cfg.Log.Level) < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.SetupRoutes(router, services, api.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        metricsManager,
		MetricsHandler: metricsHandler,
		LoginLimiter:   loginLimiter,
		VideoUploads:   fileStorage != nil,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	if err := mongo.DisconnectDB(mongoClient); err != nil {
		log.Errorf("failed to disconnect MongoDB: %v", err)
	}
	if err := postgres.Close(pgDB); err != nil {
		log.Errorf("failed to close PostgreSQL pool: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client: %v", err)
		}
	}

	log.Info("server exiting")
}
