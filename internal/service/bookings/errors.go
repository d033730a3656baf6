package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotEdit возвращается, когда бронирование уже нельзя редактировать
	ErrCannotEdit = errors.New("booking can no longer be edited")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено клиентом
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotDelete возвращается, когда бронирование нельзя удалить из истории
	ErrCannotDelete = errors.New("booking cannot be deleted")

	// ErrInvalidStatusTransition возвращается при недопустимой смене статуса
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrInvalidBookingDate возвращается при дате бронирования в прошлом
	ErrInvalidBookingDate = errors.New("booking date is in the past")

	// ErrDateBlocked возвращается при переносе на заблокированную дату
	ErrDateBlocked = errors.New("date is blocked for booking")

	// ErrSlotNotAvailable возвращается, когда выбранное время уже занято
	ErrSlotNotAvailable = errors.New("time slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
