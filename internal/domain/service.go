package domain

import "time"

// ServiceCategory категория услуги клининга
type ServiceCategory string

const (
	CategoryHome    ServiceCategory = "HOME"
	CategoryOffice  ServiceCategory = "OFFICE"
	CategoryMove    ServiceCategory = "MOVE"
	CategorySpecial ServiceCategory = "SPECIAL"
)

// IsValid returns true if the category is one of the known values
func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategoryHome, CategoryOffice, CategoryMove, CategorySpecial:
		return true
	}
	return false
}

// Service represents a cleaning service offered in the catalog
type Service struct {
	ID              int64
	Name            string
	Description     string
	Category        ServiceCategory
	BasePrice       int64 // в целых денежных единицах
	PricePerArea    int64 // добавка за единицу площади
	MinArea         *int64
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate проверяет инварианты услуги
func (s *Service) Validate() error {
	if s.Name == "" {
		return ErrEmptyServiceName
	}
	if !s.Category.IsValid() {
		return ErrInvalidServiceCategory
	}
	if s.BasePrice < 0 {
		return ErrNegativePrice
	}
	if s.PricePerArea < 0 {
		return ErrNegativePrice
	}
	if s.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// ServiceUpdate частичное обновление услуги, nil - оставить как есть
type ServiceUpdate struct {
	Name            *string
	Description     *string
	Category        *ServiceCategory
	BasePrice       *int64
	PricePerArea    *int64
	MinArea         *int64
	DurationMinutes *int
	IsActive        *bool
}

// ServicesFilter фильтр для выборки услуг каталога
type ServicesFilter struct {
	Category        *ServiceCategory
	IncludeInactive bool // только для администраторов
}
