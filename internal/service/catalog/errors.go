package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrOptionNotFound возвращается, когда опция не найдена
	ErrOptionNotFound = errors.New("option not found")

	// ErrServiceInUse возвращается при удалении услуги с бронированиями
	ErrServiceInUse = errors.New("service is referenced by bookings")

	// ErrOptionInUse возвращается при удалении опции с бронированиями
	ErrOptionInUse = errors.New("option is referenced by bookings")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
