package submit_quote

import (
	"errors"
	"net/http"

	"github.com/jiholee0/CHS-BookingService/internal/api/handlers"
	"github.com/jiholee0/CHS-BookingService/internal/api/middleware"
	submitQuote "github.com/jiholee0/CHS-BookingService/internal/usecase/submit_quote"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для заказа"
	msgAreaRequired       = "для этой услуги необходимо указать площадь"
	msgAreaTooSmall       = "площадь меньше минимальной для этой услуги"
	msgInvalidDate        = "некорректная дата бронирования"
	msgDateBlocked        = "выбранная дата недоступна для записи"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotNotAvailable   = "выбранный временной слот уже занят"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase SubmitQuoteUseCase
	logger  Logger
}

func NewHandler(useCase SubmitQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SubmitQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitQuote.ErrSlotNotAvailable):
			h.logger.Warn("POST /quotes - Slot not available: user_id=%d, date=%s, time=%s",
				userID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, submitQuote.ErrServiceNotFound):
			h.logger.Warn("POST /quotes - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, submitQuote.ErrServiceInactive):
			h.logger.Warn("POST /quotes - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, submitQuote.ErrAreaRequired):
			h.logger.Warn("POST /quotes - Area required: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgAreaRequired)

		case errors.Is(err, submitQuote.ErrAreaTooSmall):
			h.logger.Warn("POST /quotes - Area too small: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgAreaTooSmall)

		case errors.Is(err, submitQuote.ErrInvalidDate):
			h.logger.Warn("POST /quotes - Invalid booking date: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, submitQuote.ErrDateBlocked):
			h.logger.Warn("POST /quotes - Date blocked: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondConflict(w, msgDateBlocked)

		case errors.Is(err, submitQuote.ErrInvalidTimeSlot):
			h.logger.Warn("POST /quotes - Invalid time slot: user_id=%d, time=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, submitQuote.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /quotes - Failed to submit quote: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Booking created successfully: booking_id=%d, user_id=%d, total=%d",
		result.ID, userID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
