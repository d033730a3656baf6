package identity

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("identity client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identity client: invalid response")

	// ErrServiceUnavailable возвращается, когда сервис идентификации недоступен.
	// Проверки прав при этом завершаются отказом, а не молчаливым пропуском.
	ErrServiceUnavailable = errors.New("identity client: service unavailable")
)
