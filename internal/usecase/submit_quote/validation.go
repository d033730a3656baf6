package submit_quote

import (
	"fmt"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	if len(req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address is too long", ErrInvalidInput)
	}

	if req.SpecialRequest != nil && len(*req.SpecialRequest) > domain.MaxSpecialRequestLength {
		return fmt.Errorf("%w: special request is too long", ErrInvalidInput)
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
