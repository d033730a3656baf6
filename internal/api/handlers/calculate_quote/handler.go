package calculate_quote

import (
	"errors"
	"net/http"

	"github.com/jiholee0/CHS-BookingService/internal/api/handlers"
	calculateQuote "github.com/jiholee0/CHS-BookingService/internal/usecase/calculate_quote"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для заказа"
	msgAreaRequired       = "для этой услуги необходимо указать площадь"
	msgAreaTooSmall       = "площадь меньше минимальной для этой услуги"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CalculateQuoteUseCase
	logger  Logger
}

func NewHandler(useCase CalculateQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes/calculate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CalculateQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes/calculate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, calculateQuote.ErrServiceNotFound):
			h.logger.Warn("POST /quotes/calculate - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, calculateQuote.ErrServiceInactive):
			h.logger.Warn("POST /quotes/calculate - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, calculateQuote.ErrAreaRequired):
			h.logger.Warn("POST /quotes/calculate - Area required: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgAreaRequired)

		case errors.Is(err, calculateQuote.ErrAreaTooSmall):
			h.logger.Warn("POST /quotes/calculate - Area too small: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgAreaTooSmall)

		case errors.Is(err, calculateQuote.ErrInvalidInput):
			h.logger.Warn("POST /quotes/calculate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /quotes/calculate - Failed to calculate quote: service_id=%d, error=%v",
				req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes/calculate - Quote calculated: service_id=%d, total=%d",
		result.ServiceID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
