package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/services"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// FlagHandler обработчик запросов для меток товаров
type FlagHandler struct {
	flagService *services.FlagService
	logger      interfaces.LoggerPort
}

// NewFlagHandler создает новый обработчик меток
func NewFlagHandler(flagService *services.FlagService, logger interfaces.LoggerPort) *FlagHandler {
	return &FlagHandler{
		flagService: flagService,
		logger:      logger,
	}
}

// flagRequest тело запроса создания и переименования метки
type flagRequest struct {
	Name string `json:"name"`
}

// reorderRequest тело запроса перестановки меток
type reorderRequest struct {
	IDs []string `json:"ids"`
}

// CreateFlag обрабатывает запрос на создание метки
func (h *FlagHandler) CreateFlag(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "Некорректный формат данных",
		})
		return
	}

	if req.Name == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "validation_error",
			Code:    http.StatusBadRequest,
			Message: "Название метки не может быть пустым",
		})
		return
	}

	flag, err := h.flagService.CreateFlag(r.Context(), req.Name)
	if err != nil {
		h.logger.ErrorWithContext(r.Context(), "Ошибка создания метки",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка создания метки",
		})
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response{
		Success: true,
		Data:    flag,
	})
}

// ListFlags обрабатывает запрос на получение меток в порядке позиций
func (h *FlagHandler) ListFlags(w http.ResponseWriter, r *http.Request) {
	flags, err := h.flagService.ListFlags(r.Context())
	if err != nil {
		h.logger.ErrorWithContext(r.Context(), "Ошибка получения списка меток",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка получения списка меток",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    flags,
	})
}

// UpdateFlag обрабатывает запрос на переименование метки
func (h *FlagHandler) UpdateFlag(w http.ResponseWriter, r *http.Request) {
	flagID := chi.URLParam(r, "id")
	if flagID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "ID метки не указан",
		})
		return
	}

	var req flagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "validation_error",
			Code:    http.StatusBadRequest,
			Message: "Название метки не может быть пустым",
		})
		return
	}

	flag, err := h.flagService.UpdateFlag(r.Context(), flagID, req.Name)
	if err != nil {
		if errors.Is(err, utils.ErrFlagNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{
				Error:   "not_found",
				Code:    http.StatusNotFound,
				Message: "Метка не найдена",
			})
			return
		}

		h.logger.ErrorWithContext(r.Context(), "Ошибка обновления метки",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка обновления метки",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    flag,
	})
}

// DeleteFlag обрабатывает запрос на удаление метки
func (h *FlagHandler) DeleteFlag(w http.ResponseWriter, r *http.Request) {
	flagID := chi.URLParam(r, "id")
	if flagID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "ID метки не указан",
		})
		return
	}

	if err := h.flagService.DeleteFlag(r.Context(), flagID); err != nil {
		if errors.Is(err, utils.ErrFlagNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{
				Error:   "not_found",
				Code:    http.StatusNotFound,
				Message: "Метка не найдена",
			})
			return
		}

		h.logger.ErrorWithContext(r.Context(), "Ошибка удаления метки",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Ошибка удаления метки",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data: map[string]interface{}{
			"id":      flagID,
			"deleted": true,
		},
	})
}

// ReorderFlags обрабатывает запрос на перестановку меток.
// Позиции переписываются по порядку идентификаторов в теле запроса
func (h *FlagHandler) ReorderFlags(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "validation_error",
			Code:    http.StatusBadRequest,
			Message: "Список идентификаторов меток пуст",
		})
		return
	}

	if err := h.flagService.ReorderFlags(r.Context(), req.IDs); err != nil {
		h.logger.ErrorWithContext(r.Context(), "Ошибка перестановки меток",
			interfaces.LogField{Key: "error", Value: err.Error()})
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse{
			Error:   "unprocessable_entity",
			Code:    http.StatusUnprocessableEntity,
			Message: "Не удалось переставить метки",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data: map[string]interface{}{
			"reordered": true,
		},
	})
}
