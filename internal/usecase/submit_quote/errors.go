package submit_quote

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("submit_quote: service not found")

	// ErrServiceInactive возвращается для выключенной из каталога услуги
	ErrServiceInactive = errors.New("submit_quote: service is not active")

	// ErrAreaRequired возвращается, когда услуге нужна площадь, а она не указана
	ErrAreaRequired = errors.New("submit_quote: area is required for this service")

	// ErrAreaTooSmall возвращается, когда площадь меньше минимальной для услуги
	ErrAreaTooSmall = errors.New("submit_quote: area is below the service minimum")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("submit_quote: invalid booking date")

	// ErrDateBlocked возвращается при попытке записи на заблокированную дату
	ErrDateBlocked = errors.New("submit_quote: date is blocked for booking")

	// ErrInvalidTimeSlot возвращается, когда время начала не входит в рабочую сетку слотов
	ErrInvalidTimeSlot = errors.New("submit_quote: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда выбранное окно уже занято
	ErrSlotNotAvailable = errors.New("submit_quote: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_quote: internal error")
)
