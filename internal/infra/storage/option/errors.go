package option

import "errors"

var (
	// ErrOptionNotFound возвращается, когда опция не найдена
	ErrOptionNotFound = errors.New("option.repository: option not found")

	// ErrOptionInUse возвращается при удалении опции, на которую ссылаются бронирования
	ErrOptionInUse = errors.New("option.repository: option is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("option.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("option.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("option.repository: failed to scan row")
)
