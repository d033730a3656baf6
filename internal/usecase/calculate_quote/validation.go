package calculate_quote

import (
	"fmt"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Area != nil && *req.Area <= 0 {
		return fmt.Errorf("%w: area must be positive", ErrInvalidInput)
	}

	for _, sel := range req.Options {
		if sel.OptionID <= 0 {
			return fmt.Errorf("%w: optionID must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// validateArea проверяет требования услуги к площади.
// Для домашней уборки площадь обязательна - вся цена считается от неё.
func validateArea(service *domain.Service, area *int64) error {
	if service.Category == domain.CategoryHome && area == nil {
		return ErrAreaRequired
	}

	if service.MinArea != nil {
		if area == nil {
			return ErrAreaRequired
		}
		if *area < *service.MinArea {
			return ErrAreaTooSmall
		}
	}

	return nil
}
