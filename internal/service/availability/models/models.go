package models

import (
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
)

// Request модели

// ListBlockedDatesRequest запрос на получение заблокированных дат.
// Пустые границы заменяются значением по умолчанию: от сегодня на три месяца вперёд.
type ListBlockedDatesRequest struct {
	From *string `json:"from,omitempty"` // "2025-10-01"
	To   *string `json:"to,omitempty"`
}

// BlockDateRequest запрос на блокировку даты
type BlockDateRequest struct {
	Date   string  `json:"date"` // "2025-10-15"
	Reason *string `json:"reason,omitempty"`
}

// BulkBlockDatesRequest запрос на массовую блокировку дат
type BulkBlockDatesRequest struct {
	Dates  []string `json:"dates"`
	Reason *string  `json:"reason,omitempty"`
}

// Response модели

// BlockedDateResponse ответ с данными блокировки
type BlockedDateResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // "2025-10-15"
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedDateListResponse ответ со списком блокировок
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// BulkBlockDatesResponse результат массовой блокировки.
// Уже заблокированные даты не считаются ошибкой и попадают в skipped.
type BulkBlockDatesResponse struct {
	Created []BlockedDateResponse `json:"created"`
	Skipped []string              `json:"skipped"`
}

// Методы конвертации

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}

	return &BlockedDateResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список domain моделей в DTO
func FromDomainBlockedDateList(dates []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{
		BlockedDates: make([]BlockedDateResponse, 0, len(dates)),
	}
	for _, d := range dates {
		resp.BlockedDates = append(resp.BlockedDates, *FromDomainBlockedDate(d))
	}
	return resp
}
