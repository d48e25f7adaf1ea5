package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/armour_safety/internal/alert"
	"github.com/shenikar/armour_safety/internal/config"
	"github.com/shenikar/armour_safety/internal/dispatch"
	v1 "github.com/shenikar/armour_safety/internal/handler/http/v1"
	"github.com/shenikar/armour_safety/internal/repository"
	"github.com/shenikar/armour_safety/internal/risk"
	"github.com/shenikar/armour_safety/internal/service"
	"github.com/shenikar/armour_safety/internal/zone"
	"github.com/shenikar/armour_safety/pkg/logger"
	"github.com/shenikar/armour_safety/pkg/postgres"
	redisclient "github.com/shenikar/armour_safety/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/armour_safety/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Armour Safety API
// @version 1.0
// @description Personal safety API: location risk assessment, nearby help and SOS alerts.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация репозиториев
	zoneRepo := repository.NewZoneRepository(dbpool, redisClient, cfg.ZoneCacheTTL)
	volunteerRepo := repository.NewVolunteerRepository(dbpool)

	// Реестр зон загружается один раз и дальше только читается
	registry, err := zone.Load(ctx, zoneRepo)
	if err != nil {
		log.Fatalf("Failed to load risk zones: %v", err)
	}
	log.WithField("zones", registry.Len()).Info("Risk zones loaded")

	classifier := risk.NewClassifier(registry)
	sender := dispatch.NewHTTPSender(cfg, log)

	// Диспетчер оповещений: очередь Redis с воркером или отправка внутри процесса
	var dispatcher alert.Dispatcher
	var startDispatch func(context.Context, dispatch.ResultHandler)
	switch cfg.DispatchMode {
	case config.DispatchModeInline:
		inline := dispatch.NewInlineDispatcher(sender, log)
		dispatcher, startDispatch = inline, inline.Start
		defer inline.Wait()
	default:
		worker := dispatch.NewWorker(redisClient, sender, log)
		dispatcher, startDispatch = dispatch.NewQueuePublisher(redisClient), worker.Start
	}

	// Инициализация сервисов
	locations := service.NewLocationStore()
	timeline := service.NewTimeline(cfg.TimelineLimit, nil, log)
	riskService := service.NewRiskService(registry, volunteerRepo, locations, timeline, log, cfg)
	alertService := service.NewAlertService(classifier, dispatcher, locations, log, cfg,
		service.WithTransitionObserver(timeline),
	)
	defer alertService.Stop()

	startDispatch(ctx, alertService)
	log.WithField("mode", cfg.DispatchMode).Info("Alert dispatch started")

	// Инициализация хэндлеров
	handler := v1.NewHandler(riskService, alertService, timeline, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.CORSMiddleware(cfg.CORSAllowedOrigins))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	cancel()

	log.Info("Server gracefully stopped")
}
