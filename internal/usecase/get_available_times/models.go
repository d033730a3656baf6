package get_available_times

import "time"

// Request модель запроса доступного времени на дату
type Request struct {
	Date time.Time
}

// BookedSlot занятое окно в течение дня
type BookedSlot struct {
	StartTime string // "08:00"
	EndTime   string // "12:00"
}

// Response модель ответа со свободными слотами.
// Для заблокированного или прошедшего дня список свободных слотов пуст,
// занятые окна при блокировке дня всё равно отдаются.
type Response struct {
	Date           string       // "2025-10-15"
	BookedSlots    []BookedSlot // занятые окна активных бронирований
	AvailableTimes []string     // ["08:00", "14:00"]
}
