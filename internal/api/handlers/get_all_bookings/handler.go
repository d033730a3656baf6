package get_all_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jiholee0/CHS-BookingService/internal/api/handlers"
	"github.com/jiholee0/CHS-BookingService/internal/api/middleware"
	"github.com/jiholee0/CHS-BookingService/internal/service/bookings"
	"github.com/jiholee0/CHS-BookingService/internal/service/bookings/models"
	"github.com/jiholee0/CHS-BookingService/pkg/ptr"
)

const (
	msgUnauthorized     = "пользователь не аутентифицирован"
	msgAccessDenied     = "доступ запрещен"
	msgInvalidServiceID = "некорректный идентификатор услуги"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?status=pending&date=2025-10-15&serviceId=1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.GetAllBookingsRequest{UserID: userID}
	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}
	if date := query.Get("date"); date != "" {
		req.Date = ptr.Ptr(date)
	}
	if rawServiceID := query.Get("serviceId"); rawServiceID != "" {
		serviceID, err := strconv.ParseInt(rawServiceID, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	result, err := h.service.GetAllBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
