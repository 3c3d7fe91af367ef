package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkMigrationHandler "github.com/m04kA/SMC-TenantService/internal/api/handlers/check_migration"
	getTenantConfigHandler "github.com/m04kA/SMC-TenantService/internal/api/handlers/get_tenant_config"
	invalidateConfigHandler "github.com/m04kA/SMC-TenantService/internal/api/handlers/invalidate_config"
	onboardBusinessHandler "github.com/m04kA/SMC-TenantService/internal/api/handlers/onboard_business"
	validateConfigHandler "github.com/m04kA/SMC-TenantService/internal/api/handlers/validate_config"
	"github.com/m04kA/SMC-TenantService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-TenantService/internal/infra/storage/availability"
	businessRepo "github.com/m04kA/SMC-TenantService/internal/infra/storage/business"
	catalogRepo "github.com/m04kA/SMC-TenantService/internal/infra/storage/catalog"
	ownershipRepo "github.com/m04kA/SMC-TenantService/internal/infra/storage/ownership"
	userRepo "github.com/m04kA/SMC-TenantService/internal/infra/storage/user"
	loaderService "github.com/m04kA/SMC-TenantService/internal/service/loader"
	parserService "github.com/m04kA/SMC-TenantService/internal/service/parser"
	"github.com/m04kA/SMC-TenantService/internal/service/validation"
	checkMigrationUC "github.com/m04kA/SMC-TenantService/internal/usecase/check_migration"
	onboardBusinessUC "github.com/m04kA/SMC-TenantService/internal/usecase/onboard_business"
	"github.com/m04kA/SMC-TenantService/pkg/logger"
	"github.com/m04kA/SMC-TenantService/pkg/metrics"
	"github.com/m04kA/SMC-TenantService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TenantService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории
	businessRepository := businessRepo.NewRepository(db)
	userRepository := userRepo.NewRepository(db)
	ownershipRepository := ownershipRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	availabilityRepository := availabilityRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы: валидатор, парсер, загрузчик конфигураций
	validator := validation.NewValidator()
	parser := parserService.NewParser(validator)

	loaderOpts := []loaderService.Option{
		loaderService.WithCacheTTL(time.Duration(cfg.Cache.TTLSeconds) * time.Second),
	}
	if cfg.Metrics.Enabled {
		loaderOpts = append(loaderOpts, loaderService.WithCacheMetrics(metricsCollector))
	}
	loader := loaderService.NewService(
		businessRepository,
		catalogRepository,
		availabilityRepository,
		parser,
		validator,
		log,
		loaderOpts...,
	)

	// Периодическая уборка протухших записей кэша
	stopSweepCh := make(chan struct{})
	go func() {
		interval := time.Duration(cfg.Cache.SweepIntervalSeconds) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := loader.Sweep(); removed > 0 {
					log.Debug("Cache sweep removed %d expired entries", removed)
				}
			case <-stopSweepCh:
				return
			}
		}
	}()

	// Инициализируем use cases
	onboardBusinessUseCase := onboardBusinessUC.NewUsecase(
		parser,
		businessRepository,
		userRepository,
		ownershipRepository,
		catalogRepository,
		availabilityRepository,
		txMgr,
		&validation.RealTimeProvider{},
		log,
		cfg.App.BaseURL,
	)
	checkMigrationUseCase := checkMigrationUC.NewUsecase(parser, log)

	// Инициализируем handlers
	getTenantConfig := getTenantConfigHandler.NewHandler(loader, log)
	validateConfig := validateConfigHandler.NewHandler(parser, log)
	checkMigration := checkMigrationHandler.NewHandler(checkMigrationUseCase, log)
	onboardBusiness := onboardBusinessHandler.NewHandler(onboardBusinessUseCase, log)
	invalidateConfig := invalidateConfigHandler.NewHandler(loader, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Резолв конфигурации тенанта (страница бронирования)
	api.HandleFunc("/tenants/{tenantKey}/config", getTenantConfig.Handle).Methods(http.MethodGet)

	// Сухой прогон валидации документа конфигурации
	api.HandleFunc("/config/validate", validateConfig.Handle).Methods(http.MethodPost)

	// Проверка безопасности миграции конфигурации
	api.HandleFunc("/config/check-migration", checkMigration.Handle).Methods(http.MethodPost)

	// Онбординг нового бизнеса
	api.HandleFunc("/onboarding", onboardBusiness.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Инвалидация кэша конфигурации тенанта
	protected.HandleFunc("/tenants/{tenantKey}/config/invalidate", invalidateConfig.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем уборку кэша
	close(stopSweepCh)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
