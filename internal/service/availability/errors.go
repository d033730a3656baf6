package availability

import "errors"

var (
	// ErrDateNotFound возвращается, когда заблокированная дата не найдена
	ErrDateNotFound = errors.New("blocked date not found")

	// ErrDuplicateDate возвращается при повторной блокировке даты
	ErrDuplicateDate = errors.New("date already blocked")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
