package catalog_options

import (
	"errors"
	"net/http"

	"github.com/jiholee0/CHS-BookingService/internal/api/handlers"
	"github.com/jiholee0/CHS-BookingService/internal/api/middleware"
	"github.com/jiholee0/CHS-BookingService/internal/service/catalog"
	"github.com/jiholee0/CHS-BookingService/internal/service/catalog/models"
	"github.com/jiholee0/CHS-BookingService/pkg/ptr"
)

const (
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOptionID    = "некорректный идентификатор опции"
	msgOptionNotFound     = "опция не найдена"
	msgOptionInUse        = "опция используется в бронированиях и не может быть удалена"
	msgAccessDenied       = "доступ запрещен"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/options?category=cleaning&includeInactive=true
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListOptionsRequest{
		UserID:          handlers.OptionalUserID(r),
		IncludeInactive: query.Get("includeInactive") == "true",
	}
	if category := query.Get("category"); category != "" {
		req.Category = ptr.Ptr(category)
	}

	result, err := h.service.ListOptions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("GET /options - Access denied for includeInactive request")
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /options - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /options - Failed to list options: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/options
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateOptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /options - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateOption(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /options - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /options - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /options - Failed to create option: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /options - Option created: option_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/options/{optionId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	optionID, err := handlers.PathInt64(r, "optionId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidOptionID)
		return
	}

	var req models.UpdateOptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /options/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateOption(r.Context(), userID, optionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrOptionNotFound):
			h.logger.Warn("PUT /options/{id} - Option not found: option_id=%d", optionID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /options/{id} - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /options/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /options/{id} - Failed to update option: option_id=%d, error=%v", optionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /options/{id} - Option updated: option_id=%d, user_id=%d", optionID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/options/{optionId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	optionID, err := handlers.PathInt64(r, "optionId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidOptionID)
		return
	}

	if err := h.service.DeleteOption(r.Context(), userID, optionID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrOptionNotFound):
			h.logger.Warn("DELETE /options/{id} - Option not found: option_id=%d", optionID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, catalog.ErrOptionInUse):
			h.logger.Warn("DELETE /options/{id} - Option in use: option_id=%d", optionID)
			handlers.RespondConflict(w, msgOptionInUse)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /options/{id} - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /options/{id} - Failed to delete option: option_id=%d, error=%v", optionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /options/{id} - Option deleted: option_id=%d, user_id=%d", optionID, userID)
	handlers.RespondNoContent(w)
}
