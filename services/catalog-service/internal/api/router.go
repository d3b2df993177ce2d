package api

import (
	"net/http"
	"time"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/api/handlers"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// RouterConfig параметры сборки HTTP-роутера
type RouterConfig struct {
	CORSAllowOrigins []string
	RateLimitPerSec  int
	RequestTimeout   time.Duration
	Metrics          *middleware.HTTPMetrics // nil отключает сбор метрик
}

// NewRouter собирает роутер каталога со всеми обработчиками и middleware
func NewRouter(
	productHandler *handlers.ProductHandler,
	flagHandler *handlers.FlagHandler,
	categoryHandler *handlers.CategoryHandler,
	logger interfaces.LoggerPort,
	cfg RouterConfig,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(cfg.CORSAllowOrigins))
	if cfg.RateLimitPerSec > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitPerSec))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})

		r.Route("/flags", func(r chi.Router) {
			r.Get("/", flagHandler.ListFlags)
			r.Post("/", flagHandler.CreateFlag)
			r.Put("/positions", flagHandler.ReorderFlags)
			r.Put("/{id}", flagHandler.UpdateFlag)
			r.Delete("/{id}", flagHandler.DeleteFlag)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.ListCategories)
			r.Get("/search", categoryHandler.GetCategoryByName)
			r.Post("/", categoryHandler.CreateCategory)
		})
	})

	return r
}
