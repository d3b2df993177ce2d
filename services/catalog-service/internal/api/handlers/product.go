package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	pkgutils "github.com/athebyme/storefront-platform/pkg/utils"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/services"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ProductHandler обработчик запросов для товаров каталога
type ProductHandler struct {
	productService *services.ProductService
	logger         interfaces.LoggerPort
}

// NewProductHandler создает новый обработчик товаров
func NewProductHandler(productService *services.ProductService, logger interfaces.LoggerPort) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// GetProduct обрабатывает запрос на получение товара по ID
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "ID товара не указан",
		})
		return
	}

	product, err := h.productService.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{
				Error:   "not_found",
				Code:    http.StatusNotFound,
				Message: "Товар не найден",
			})
			return
		}

		h.logger.ErrorWithContext(r.Context(), "Ошибка получения товара",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка получения товара",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    product,
	})
}

// ListProducts обрабатывает запрос на получение списка товаров
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get("page_size"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := &models.ProductFilter{}

	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		filter.CategoryID = categoryID
	}

	if flagID := r.URL.Query().Get("flag_id"); flagID != "" {
		filter.FlagID = flagID
	}

	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = name
	}

	if query := r.URL.Query().Get("q"); query != "" {
		filter.SearchQuery = query
	}

	pagination := pkgutils.NewPagination(page, pageSize, "created_at", true)

	products, err := h.productService.ListProducts(r.Context(), filter, pagination)
	if err != nil {
		h.logger.ErrorWithContext(r.Context(), "Ошибка получения списка товаров",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка получения списка товаров",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    products,
		Meta: map[string]interface{}{
			"pagination": pagination,
		},
	})
}

// DeleteProduct обрабатывает запрос на удаление товара
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "ID товара не указан",
		})
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), productID); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{
				Error:   "not_found",
				Code:    http.StatusNotFound,
				Message: "Товар не найден",
			})
			return
		}

		h.logger.ErrorWithContext(r.Context(), "Ошибка удаления товара",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка удаления товара",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data: map[string]interface{}{
			"id":      productID,
			"deleted": true,
		},
	})
}
