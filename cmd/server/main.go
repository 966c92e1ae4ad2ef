package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rsawant/invest-engine/internal/collaborator"
	"github.com/rsawant/invest-engine/internal/config"
	"github.com/rsawant/invest-engine/internal/handler"
	"github.com/rsawant/invest-engine/internal/repository"
	"github.com/rsawant/invest-engine/internal/scheme"
	"github.com/rsawant/invest-engine/internal/service"
	"github.com/rsawant/invest-engine/pkg/logger"
	"github.com/rsawant/invest-engine/pkg/response"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Repositories
	entityRepo := repository.NewEntityRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	// Collaborators (log-backed until the platform services are wired in)
	identity := &collaborator.LogIdentityIssuer{Log: log}
	notifier := &collaborator.LogNotifier{Log: log}
	escrow := &collaborator.LogEscrowSettler{Log: log}

	// Services
	projector := scheme.NewProjector(redisClient, cfg.GetProjectionCacheTTL(), log)
	reviewService := service.NewReviewService(
		entityRepo, scheduleRepo, identity, notifier, escrow, log,
		cfg.Review.ReferenceSchedules,
	)
	schemeService := service.NewSchemeService(entityRepo, depositRepo, scheduleRepo, projector, log)

	// Handlers
	reviewHandler := handler.NewReviewHandler(reviewService)
	schemeHandler := handler.NewSchemeHandler(schemeService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(reviewHandler, schemeHandler, healthHandler, log)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	reviewHandler *handler.ReviewHandler,
	schemeHandler *handler.SchemeHandler,
	healthHandler *handler.HealthHandler,
	log *logrus.Logger,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(log))

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/entities", reviewHandler.CreateEntity).Methods("POST")
	api.HandleFunc("/entities/{entityId}", reviewHandler.GetEntity).Methods("GET")
	api.HandleFunc("/entities/{entityId}/decision", reviewHandler.Decide).Methods("POST")
	api.HandleFunc("/entities/{entityId}/resubmit", reviewHandler.Resubmit).Methods("POST")

	api.HandleFunc("/schemes", schemeHandler.CreateScheme).Methods("POST")
	api.HandleFunc("/schemes/{schemeId}", schemeHandler.GetScheme).Methods("GET")
	api.HandleFunc("/schemes/{schemeId}/schedule", schemeHandler.GetReferenceSchedule).Methods("GET")
	api.HandleFunc("/schemes/{schemeId}/projection", schemeHandler.Project).Methods("GET")
	api.HandleFunc("/schemes/{schemeId}/deposits", schemeHandler.RegisterDeposit).Methods("POST")
	api.HandleFunc("/deposits/{depositId}/schedule", schemeHandler.GetDepositSchedule).Methods("GET")

	return router
}
