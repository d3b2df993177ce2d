package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/pkg/tx"
	"github.com/athebyme/storefront-platform/services/catalog-service/config"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/cache"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/logger"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/messaging"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/storage"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/api"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/api/handlers"
	apimiddleware "github.com/athebyme/storefront-platform/services/catalog-service/internal/api/middleware"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/services"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// метрики для Prometheus
var (
	httpDurations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_durations_seconds",
		Help:    "Длительность HTTP запросов",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	requestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Общее количество HTTP запросов",
	}, []string{"method", "path", "status"})

	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_active_requests",
		Help: "Количество активных HTTP запросов",
	})
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.ENV == "production")
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	log.Info("Инициализация сервиса",
		interfaces.LogField{Key: "app_name", Value: cfg.AppName},
		interfaces.LogField{Key: "version", Value: cfg.Version},
		interfaces.LogField{Key: "env", Value: cfg.ENV},
	)

	postgresCon, err := utils.GenerateConnectionString(
		cfg.Postgres.Host,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
		cfg.Postgres.Port,
		cfg.Postgres.PoolSize,
		cfg.Postgres.Timeout,
	)
	if err != nil {
		log.Fatal("Ошибка формирования строки подключения",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}

	db, err := storage.NewCatalogStorage(ctx, postgresCon)
	if err != nil {
		log.Fatal("Ошибка инициализации хранилища",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
	defer db.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err = db.Ping(pingCtx); err != nil {
		log.Fatal("Ошибка подключения к PostgreSQL",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
	log.Info("Хранилище инициализировано")

	cacheClient, err := cache.NewRedisCache(
		ctx,
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		log.Fatal("Ошибка инициализации кэша",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
	defer cacheClient.Close()
	log.Info("Кэш инициализирован")

	var messagingClient interfaces.MessagingPort
	if cfg.Kafka.Enabled {
		messagingClient, err = messaging.NewKafkaMessaging(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
		if err != nil {
			log.Fatal("Ошибка инициализации системы обмена сообщениями",
				interfaces.LogField{Key: "error", Value: err.Error()})
		}
		defer messagingClient.Close()
		log.Info("Система обмена сообщениями инициализирована")
	} else {
		log.Info("Kafka отключена, события каталога не публикуются")
	}

	txManager := tx.NewTxManager(db.Pool())

	productService := services.NewProductService(db, cacheClient, messagingClient, log, cfg.Redis.DefaultExpiration)
	flagService := services.NewFlagService(db, txManager, messagingClient, log)
	categoryService := services.NewCategoryService(db)
	log.Info("Сервисы каталога инициализированы")

	routerCfg := api.RouterConfig{
		CORSAllowOrigins: cfg.Security.CORSAllowOrigins,
		RateLimitPerSec:  100,
		RequestTimeout:   cfg.Server.WriteTimeout,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = &apimiddleware.HTTPMetrics{
			RequestsTotal:   requestsCounter,
			RequestDuration: httpDurations,
			ActiveRequests:  activeRequests,
		}
	}

	router := api.NewRouter(
		handlers.NewProductHandler(productService, log),
		handlers.NewFlagHandler(flagService, log),
		handlers.NewCategoryHandler(categoryService, log),
		log,
		routerCfg,
	)
	log.Info("Маршрутизатор настроен")

	if cfg.Metrics.Enabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Info("Метрики доступны", interfaces.LogField{Key: "address", Value: addr + "/metrics"})
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				log.Error("Ошибка сервера метрик",
					interfaces.LogField{Key: "error", Value: err.Error()})
			}
		}()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Сервер запущен", interfaces.LogField{Key: "address", Value: server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Ошибка запуска сервера",
				interfaces.LogField{Key: "error", Value: err.Error()})
		}
	}()

	go func() {
		<-quit
		log.Info("Получен сигнал завершения, выполняется graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Ошибка при graceful shutdown",
				interfaces.LogField{Key: "error", Value: err.Error()})
		}
		log.Info("HTTP сервер остановлен")

		if messagingClient != nil {
			if err := messagingClient.Close(); err != nil {
				log.Error("Ошибка при закрытии Kafka",
					interfaces.LogField{Key: "error", Value: err.Error()})
			}
		}

		if err := cacheClient.Close(); err != nil {
			log.Error("Ошибка при закрытии Redis",
				interfaces.LogField{Key: "error", Value: err.Error()})
		}

		if err := db.Close(); err != nil {
			log.Error("Ошибка при закрытии БД",
				interfaces.LogField{Key: "error", Value: err.Error()})
		}

		close(done)
	}()

	<-done
	log.Info("Сервер корректно завершил работу")
	_ = log.Sync()
}
