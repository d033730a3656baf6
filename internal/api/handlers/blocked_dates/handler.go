package blocked_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jiholee0/CHS-BookingService/internal/api/handlers"
	"github.com/jiholee0/CHS-BookingService/internal/api/middleware"
	"github.com/jiholee0/CHS-BookingService/internal/service/availability"
	"github.com/jiholee0/CHS-BookingService/internal/service/availability/models"
	"github.com/jiholee0/CHS-BookingService/pkg/ptr"
)

const (
	msgUnauthorized         = "пользователь не аутентифицирован"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidBlockedDateID = "некорректный идентификатор блокировки"
	msgDateNotFound         = "блокировка не найдена"
	msgDuplicateDate        = "дата уже заблокирована"
	msgAccessDenied         = "доступ запрещен"
	msgInvalidInput         = "некорректные входные данные"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/blocked-dates?from=2025-10-01&to=2025-12-31
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListBlockedDatesRequest{}
	if from := query.Get("from"); from != "" {
		req.From = ptr.Ptr(from)
	}
	if to := query.Get("to"); to != "" {
		req.To = ptr.Ptr(to)
	}

	result, err := h.service.ListBlockedDates(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /blocked-dates - Failed to list blocked dates: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/blocked-dates
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BlockDate(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrDuplicateDate):
			h.logger.Warn("POST /blocked-dates - Date already blocked: date=%s", req.Date)
			handlers.RespondConflict(w, msgDuplicateDate)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /blocked-dates - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /blocked-dates - Failed to block date: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocked-dates - Date blocked: date=%s, id=%d, user_id=%d", req.Date, result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleBulkCreate POST /api/v1/blocked-dates/bulk
func (h *Handler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.BulkBlockDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-dates/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BulkBlockDates(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /blocked-dates/bulk - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /blocked-dates/bulk - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /blocked-dates/bulk - Failed to block dates: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocked-dates/bulk - Dates blocked: created=%d, skipped=%d, user_id=%d",
		len(result.Created), len(result.Skipped), userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleDelete DELETE /api/v1/blocked-dates/{blockedDateId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	blockedDateID, err := handlers.PathInt64(r, "blockedDateId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlockedDateID)
		return
	}

	if err := h.service.UnblockDate(r.Context(), userID, blockedDateID); err != nil {
		h.respondUnblockError(w, err, userID)
		return
	}

	h.logger.Info("DELETE /blocked-dates/{id} - Blocked date removed: id=%d, user_id=%d", blockedDateID, userID)
	handlers.RespondNoContent(w)
}

// HandleDeleteByDate DELETE /api/v1/blocked-dates/date/{date}
func (h *Handler) HandleDeleteByDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	rawDate := mux.Vars(r)["date"]

	if err := h.service.UnblockDateByDate(r.Context(), userID, rawDate); err != nil {
		h.respondUnblockError(w, err, userID)
		return
	}

	h.logger.Info("DELETE /blocked-dates/date/{date} - Blocked date removed: date=%s, user_id=%d", rawDate, userID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondUnblockError(w http.ResponseWriter, err error, userID int64) {
	switch {
	case errors.Is(err, availability.ErrDateNotFound):
		h.logger.Warn("DELETE /blocked-dates - Blocked date not found")
		handlers.RespondNotFound(w, msgDateNotFound)

	case errors.Is(err, availability.ErrAccessDenied):
		h.logger.Warn("DELETE /blocked-dates - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("DELETE /blocked-dates - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("DELETE /blocked-dates - Failed to unblock date: error=%v", err)
		handlers.RespondInternalError(w)
	}
}
