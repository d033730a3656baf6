package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// OptionalUserID читает X-User-ID из заголовка публичного запроса.
// Отсутствующий или некорректный заголовок не является ошибкой:
// запрос обрабатывается как анонимный.
func OptionalUserID(r *http.Request) *int64 {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// PathInt64 извлекает числовой параметр из пути запроса
func PathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
