package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/services"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
	"github.com/go-chi/render"
)

// CategoryHandler обработчик запросов для категорий
type CategoryHandler struct {
	categoryService *services.CategoryService
	logger          interfaces.LoggerPort
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(categoryService *services.CategoryService, logger interfaces.LoggerPort) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// categoryRequest тело запроса создания категории
type categoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory обрабатывает запрос на создание категории
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "validation_error",
			Code:    http.StatusBadRequest,
			Message: "Название категории не может быть пустым",
		})
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.logger.ErrorWithContext(r.Context(), "Ошибка создания категории",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка создания категории",
		})
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response{
		Success: true,
		Data:    category,
	})
}

// ListCategories обрабатывает запрос на получение всех категорий
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		h.logger.ErrorWithContext(r.Context(), "Ошибка получения списка категорий",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка получения списка категорий",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    categories,
	})
}

// GetCategoryByName обрабатывает запрос на поиск категории по точному имени
func (h *CategoryHandler) GetCategoryByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "Имя категории не указано",
		})
		return
	}

	category, err := h.categoryService.GetCategoryByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{
				Error:   "not_found",
				Code:    http.StatusNotFound,
				Message: "Категория не найдена",
			})
			return
		}

		h.logger.ErrorWithContext(r.Context(), "Ошибка поиска категории",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка поиска категории",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    category,
	})
}
