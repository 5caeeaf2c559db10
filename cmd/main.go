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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkSlotAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_slot_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getCollectiveSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_collective_slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
	scheduleCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/schedule"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	calendarServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/calendarservice"
	checkSlotAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	getCollectiveSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_collective_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// ScheduleSource источник расписаний для use cases (репозиторий или кеш поверх него)
type ScheduleSource interface {
	getAvailableSlotsUC.ScheduleRepository
	checkSlotAvailabilityUC.ScheduleRepository
	getCollectiveSlotsUC.ScheduleRepository
}

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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	scheduleRepository := scheduleRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)

	// Кеш расписаний в Redis (если включен)
	var schedules ScheduleSource = scheduleRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кеш не обязателен: при недоступности Redis запросы идут в БД
			log.Warn("Redis is unavailable at %s, schedule cache will fall back to database: %v", cfg.Redis.Addr, err)
		}
		cancel()

		schedules = scheduleCache.NewCache(
			scheduleRepository,
			redisClient,
			time.Duration(cfg.Redis.TTL)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Schedule cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Инициализируем интеграционных клиентов
	calendarClient := calendarServiceClient.NewClient(
		cfg.CalendarService.URL,
		time.Duration(cfg.CalendarService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CalendarService=%s timeout=%ds)",
		cfg.CalendarService.URL, cfg.CalendarService.Timeout)

	// Движок расчёта доступности
	availabilityEngine := engine.New(engine.RealClock{})

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		schedules,
		bookingRepository,
		calendarClient,
		availabilityEngine,
		metricsCollector,
		getAvailableSlotsUC.Defaults{
			EventLength:   cfg.Availability.DefaultEventLength,
			MinimumNotice: cfg.Availability.DefaultMinimumNotice,
			MaxWindowDays: cfg.Availability.MaxWindowDays,
		},
		log,
	)

	getCollectiveSlotsUseCase := getCollectiveSlotsUC.NewUseCase(
		schedules,
		bookingRepository,
		calendarClient,
		availabilityEngine,
		metricsCollector,
		getCollectiveSlotsUC.Defaults{
			EventLength:   cfg.Availability.DefaultEventLength,
			MinimumNotice: cfg.Availability.DefaultMinimumNotice,
			MaxWindowDays: cfg.Availability.MaxWindowDays,
		},
		log,
	)

	checkSlotAvailabilityUseCase := checkSlotAvailabilityUC.NewUseCase(
		schedules,
		bookingRepository,
		calendarClient,
		availabilityEngine,
		metricsCollector,
		cfg.Availability.DefaultMinimumNotice,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCollectiveSlots := getCollectiveSlotsHandler.NewHandler(getCollectiveSlotsUseCase, log)
	checkSlotAvailability := checkSlotAvailabilityHandler.NewHandler(checkSlotAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Паника в handler превращается в 500 и попадает в метрики
	r.Use(middleware.RecoveryMiddleware(log))

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Доступные слоты расписания за период
	api.HandleFunc("/schedules/{scheduleId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Общие слоты нескольких расписаний
	api.HandleFunc("/schedules/collective-slots",
		getCollectiveSlots.Handle).Methods(http.MethodGet)

	// Проверка конкретного слота перед бронированием
	api.HandleFunc("/schedules/{scheduleId}/slot-availability",
		checkSlotAvailability.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
