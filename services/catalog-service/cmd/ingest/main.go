package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/services/catalog-service/config"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/files"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/logger"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/notify"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/storage"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/ingest"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// метрики прогона загрузки
var (
	recordsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_records_total",
		Help: "Количество обработанных записей манифеста по результату",
	}, []string{"outcome"})

	runDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ingest_run_duration_seconds",
		Help: "Длительность последнего прогона загрузки",
	})
)

func main() {
	manifestPath := flag.String("manifest", "", "путь к манифесту загрузки (перекрывает конфигурацию)")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}
	if *manifestPath != "" {
		cfg.Ingest.ManifestPath = *manifestPath
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.ENV == "production")
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	log.Info("Запуск массовой загрузки каталога",
		interfaces.LogField{Key: "app_name", Value: cfg.AppName},
		interfaces.LogField{Key: "manifest", Value: cfg.Ingest.ManifestPath},
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

	// Недоступное хранилище - единственная причина прервать прогон
	// до обработки первой записи
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err = db.Ping(pingCtx); err != nil {
		log.Fatal("Хранилище недоступно, прогон прерван",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
	log.Info("Хранилище доступно")

	fileStorage, err := files.NewLocalFileStorage(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal("Ошибка инициализации файлового хранилища",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}

	var notifier interfaces.NotifierPort
	if cfg.Telegram.Enabled {
		notifier, err = notify.NewTelegramNotifier(cfg.Telegram.APIBase, cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			// Уведомления не критичны для прогона
			log.Warn("Уведомления Telegram отключены",
				interfaces.LogField{Key: "error", Value: err.Error()})
			notifier = nil
		}
	}

	if cfg.Metrics.Enabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				log.Error("Ошибка сервера метрик",
					interfaces.LogField{Key: "error", Value: err.Error()})
			}
		}()
	}

	records, err := ingest.LoadManifest(cfg.Ingest.ManifestPath)
	if err != nil {
		log.Fatal("Ошибка чтения манифеста",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
	log.Info("Манифест прочитан", interfaces.LogField{Key: "records", Value: len(records)})

	orchestrator := ingest.NewOrchestrator(
		ingest.NewReferenceResolver(db, db),
		ingest.NewImageFetcher(fileStorage, cfg.Ingest.FetchTimeout),
		db,
		fileStorage,
		log,
	)

	start := time.Now()
	summary := orchestrator.Run(ctx, records)
	runDuration.Set(time.Since(start).Seconds())
	recordsProcessed.WithLabelValues("succeeded").Add(float64(summary.Succeeded))
	recordsProcessed.WithLabelValues("failed").Add(float64(summary.Failed))

	report := ingest.FormatSummary(summary)
	log.Info(report,
		interfaces.LogField{Key: "succeeded", Value: summary.Succeeded},
		interfaces.LogField{Key: "failed", Value: summary.Failed},
		interfaces.LogField{Key: "duration", Value: time.Since(start).String()},
	)
	fmt.Println(report)

	if notifier != nil {
		notifyCtx, notifyCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer notifyCancel()
		if err := notifier.Notify(notifyCtx, report); err != nil {
			log.Warn("Не удалось отправить уведомление",
				interfaces.LogField{Key: "error", Value: err.Error()})
		}
	}

	_ = log.Sync()
}
