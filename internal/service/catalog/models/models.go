package models

import (
	"errors"
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
)

var (
	// ErrInvalidCategory возвращается при некорректной категории
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidPriceType возвращается при некорректном типе цены
	ErrInvalidPriceType = errors.New("invalid price type")
)

// Request модели

// ListServicesRequest запрос на получение каталога услуг
type ListServicesRequest struct {
	UserID          *int64  `json:"userId,omitempty"` // nil для публичного запроса
	Category        *string `json:"category,omitempty"`
	IncludeInactive bool    `json:"includeInactive,omitempty"` // только для администраторов
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	BasePrice       int64  `json:"basePrice"`
	PricePerArea    int64  `json:"pricePerArea"`
	MinArea         *int64 `json:"minArea,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	IsActive        *bool  `json:"isActive,omitempty"` // по умолчанию true
}

// UpdateServiceRequest запрос на частичное обновление услуги
type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	BasePrice       *int64  `json:"basePrice,omitempty"`
	PricePerArea    *int64  `json:"pricePerArea,omitempty"`
	MinArea         *int64  `json:"minArea,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ListOptionsRequest запрос на получение каталога опций
type ListOptionsRequest struct {
	UserID          *int64  `json:"userId,omitempty"`
	Category        *string `json:"category,omitempty"`
	IncludeInactive bool    `json:"includeInactive,omitempty"`
}

// CreateOptionRequest запрос на создание опции
type CreateOptionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
	PriceType   string  `json:"priceType"`
	BasePrice   int64   `json:"basePrice"`
	Unit        *string `json:"unit,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateOptionRequest запрос на частичное обновление опции
type UpdateOptionRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	PriceType   *string `json:"priceType,omitempty"`
	BasePrice   *int64  `json:"basePrice,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	BasePrice       int64     `json:"basePrice"`
	PricePerArea    int64     `json:"pricePerArea"`
	MinArea         *int64    `json:"minArea,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// OptionResponse ответ с данными опции
type OptionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	PriceType   string    `json:"priceType"`
	BasePrice   int64     `json:"basePrice"`
	Unit        *string   `json:"unit,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OptionListResponse ответ со списком опций
type OptionListResponse struct {
	Options []OptionResponse `json:"options"`
}

// Методы конвертации

// ToDomainService конвертирует запрос создания в domain модель
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		Category:        domain.ServiceCategory(r.Category),
		BasePrice:       r.BasePrice,
		PricePerArea:    r.PricePerArea,
		MinArea:         r.MinArea,
		DurationMinutes: r.DurationMinutes,
		IsActive:        isActive,
	}
}

// ToDomainUpdate конвертирует запрос обновления в domain модель
func (r *UpdateServiceRequest) ToDomainUpdate() (domain.ServiceUpdate, error) {
	upd := domain.ServiceUpdate{
		Name:            r.Name,
		Description:     r.Description,
		BasePrice:       r.BasePrice,
		PricePerArea:    r.PricePerArea,
		MinArea:         r.MinArea,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
	}

	if r.Category != nil {
		category := domain.ServiceCategory(*r.Category)
		if !category.IsValid() {
			return upd, ErrInvalidCategory
		}
		upd.Category = &category
	}

	return upd, nil
}

// ToDomainOption конвертирует запрос создания в domain модель
func (r *CreateOptionRequest) ToDomainOption() *domain.AdditionalOption {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &domain.AdditionalOption{
		Name:        r.Name,
		Description: r.Description,
		Category:    domain.OptionCategory(r.Category),
		PriceType:   domain.PriceType(r.PriceType),
		BasePrice:   r.BasePrice,
		Unit:        r.Unit,
		IsActive:    isActive,
	}
}

// ToDomainUpdate конвертирует запрос обновления в domain модель
func (r *UpdateOptionRequest) ToDomainUpdate() (domain.OptionUpdate, error) {
	upd := domain.OptionUpdate{
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		Unit:        r.Unit,
		IsActive:    r.IsActive,
	}

	if r.Category != nil {
		category := domain.OptionCategory(*r.Category)
		if !category.IsValid() {
			return upd, ErrInvalidCategory
		}
		upd.Category = &category
	}
	if r.PriceType != nil {
		priceType := domain.PriceType(*r.PriceType)
		if !priceType.IsValid() {
			return upd, ErrInvalidPriceType
		}
		upd.PriceType = &priceType
	}

	return upd, nil
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Category:        string(s.Category),
		BasePrice:       s.BasePrice,
		PricePerArea:    s.PricePerArea,
		MinArea:         s.MinArea,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}

// FromDomainOption конвертирует domain модель в DTO
func FromDomainOption(o *domain.AdditionalOption) *OptionResponse {
	if o == nil {
		return nil
	}

	return &OptionResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Category:    string(o.Category),
		PriceType:   string(o.PriceType),
		BasePrice:   o.BasePrice,
		Unit:        o.Unit,
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// FromDomainOptionList конвертирует список domain моделей в DTO
func FromDomainOptionList(options []*domain.AdditionalOption) *OptionListResponse {
	resp := &OptionListResponse{
		Options: make([]OptionResponse, 0, len(options)),
	}
	for _, o := range options {
		resp.Options = append(resp.Options, *FromDomainOption(o))
	}
	return resp
}
