package bookings

import (
	"context"
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	"github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateFields(ctx context.Context, id int64, upd domain.BookingUpdate) error
	UpdateStatus(ctx context.Context, id int64, upd domain.BookingStatusUpdate) error
	Delete(ctx context.Context, id int64) error
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.BlockedDate, error)
}

// IdentityClient интерфейс клиента сервиса идентификации
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*identity.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
