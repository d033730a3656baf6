package catalog

import (
	"context"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	"github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error)
	Update(ctx context.Context, id int64, upd domain.ServiceUpdate) error
	Delete(ctx context.Context, id int64) error
}

// OptionRepository интерфейс репозитория дополнительных опций
type OptionRepository interface {
	Create(ctx context.Context, opt *domain.AdditionalOption) (*domain.AdditionalOption, error)
	GetByID(ctx context.Context, id int64) (*domain.AdditionalOption, error)
	List(ctx context.Context, filter domain.OptionsFilter) ([]*domain.AdditionalOption, error)
	Update(ctx context.Context, id int64, upd domain.OptionUpdate) error
	Delete(ctx context.Context, id int64) error
}

// IdentityClient интерфейс клиента сервиса идентификации
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*identity.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
