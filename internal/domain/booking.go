package domain

import (
	"time"

	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Booking represents a scheduled cleaning appointment in the system
type Booking struct {
	ID          int64
	CustomerID  int64
	ServiceID   int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	Address        string
	DetailAddress  *string
	Area           *int64 // используется для услуг с расчётом по площади
	SpecialRequest *string

	// Снимок цены на момент оформления. Никогда не пересчитывается
	// из текущих цен каталога, даже если каталог изменился.
	ServicePrice int64
	OptionsPrice int64
	TotalPrice   int64

	// Заполняются только при переводе в статус completed
	BeforeImages []string
	AfterImages  []string
	CompletedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Связанные данные (заполняются репозиторием при чтении)
	Service *Service
	Options []BookingOption
}

// BookingOption represents an add-on attached to a booking with its price snapshot.
// Created atomically with the booking and immutable afterward.
type BookingOption struct {
	ID        int64
	BookingID int64
	OptionID  int64
	Quantity  int
	Price     int64

	Option *AdditionalOption
}

// IsActive returns true if the booking occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeEditedByCustomer returns true if the owner may still edit date/time/address
func (b *Booking) CanBeEditedByCustomer() bool {
	return b.Status == StatusPending
}

// CanBeCancelledByCustomer returns true if the owner may cancel (hard-delete) the booking
func (b *Booking) CanBeCancelledByCustomer() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeDeletedByAdmin returns true if an administrator may purge the booking
func (b *Booking) CanBeDeletedByAdmin() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Прямая цепочка идёт строго по одному шагу:
// pending -> confirmed -> in_progress -> completed.
// Отмена доступна из любого нетерминального статуса.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if next == StatusCancelled {
		return !b.IsTerminal()
	}

	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

// ToBookingStatus конвертирует строку в BookingStatus с валидацией
func ToBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}

// BookingUpdate изменяемые владельцем поля бронирования.
// nil означает "оставить как есть".
type BookingUpdate struct {
	BookingDate    *time.Time
	StartTime      *types.TimeString
	EndTime        *types.TimeString
	Address        *string
	DetailAddress  *string
	SpecialRequest *string

	// PrevStatus - статус, при котором обновление применяется.
	// Запись с другим статусом не изменяется (защита от параллельной
	// смены статуса между чтением и записью).
	PrevStatus BookingStatus
}

// BookingStatusUpdate смена статуса с сопутствующими полями завершения.
// PrevStatus работает как compare-and-swap: переход применяется только
// если статус в базе всё ещё равен прочитанному.
type BookingStatusUpdate struct {
	Status       BookingStatus
	PrevStatus   BookingStatus
	BeforeImages []string
	AfterImages  []string
	CompletedAt  *time.Time
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	CustomerID       *int64
	ServiceID        *int64
	Status           *BookingStatus
	Date             *time.Time // конкретный календарный день
	ExcludeCancelled bool       // для подсчёта занятых слотов
}

// BookedSlot занятое временное окно в рамках одного дня
type BookedSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
