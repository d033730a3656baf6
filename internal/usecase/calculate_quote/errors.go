package calculate_quote

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("calculate_quote: service not found")

	// ErrServiceInactive возвращается для выключенной из каталога услуги
	ErrServiceInactive = errors.New("calculate_quote: service is not active")

	// ErrAreaRequired возвращается, когда услуге нужна площадь, а она не указана
	ErrAreaRequired = errors.New("calculate_quote: area is required for this service")

	// ErrAreaTooSmall возвращается, когда площадь меньше минимальной для услуги
	ErrAreaTooSmall = errors.New("calculate_quote: area is below the service minimum")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calculate_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_quote: internal error")
)
