package calculate_quote

import (
	"context"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// OptionRepository интерфейс репозитория дополнительных опций
type OptionRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.AdditionalOption, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
