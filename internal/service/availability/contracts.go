package availability

import (
	"context"
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	"github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
)

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	Create(ctx context.Context, date time.Time, reason *string) (*domain.BlockedDate, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.BlockedDate, error)
	List(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error)
	Delete(ctx context.Context, id int64) error
	DeleteByDate(ctx context.Context, date time.Time) error
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
