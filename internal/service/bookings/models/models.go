package models

import (
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetAllBookingsRequest запрос администратора на получение всех бронирований
type GetAllBookingsRequest struct {
	UserID    int64   `json:"userId"`
	Status    *string `json:"status,omitempty"`
	Date      *string `json:"date,omitempty"` // "2025-10-15"
	ServiceID *int64  `json:"serviceId,omitempty"`
}

// UpdateBookingRequest запрос владельца на редактирование бронирования
type UpdateBookingRequest struct {
	UserID         int64   `json:"userId"`
	BookingDate    *string `json:"bookingDate,omitempty"` // "2025-10-15"
	StartTime      *string `json:"startTime,omitempty"`   // "14:00"
	Address        *string `json:"address,omitempty"`
	DetailAddress  *string `json:"detailAddress,omitempty"`
	SpecialRequest *string `json:"specialRequest,omitempty"`
}

// UpdateStatusRequest запрос администратора на смену статуса
type UpdateStatusRequest struct {
	UserID       int64      `json:"userId"`
	Status       string     `json:"status"`
	BeforeImages []string   `json:"beforeImages,omitempty"`
	AfterImages  []string   `json:"afterImages,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// Response модели

// BookingOptionResponse опция бронирования со снимком цены
type BookingOptionResponse struct {
	OptionID int64  `json:"optionId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "14:00"
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`

	Address        string  `json:"address"`
	DetailAddress  *string `json:"detailAddress,omitempty"`
	Area           *int64  `json:"area,omitempty"`
	SpecialRequest *string `json:"specialRequest,omitempty"`

	// Снимок цены на момент оформления
	ServicePrice int64 `json:"servicePrice"`
	OptionsPrice int64 `json:"optionsPrice"`
	TotalPrice   int64 `json:"totalPrice"`

	ServiceName     string `json:"serviceName"`
	ServiceCategory string `json:"serviceCategory"`

	Options []BookingOptionResponse `json:"options"`

	BeforeImages []string `json:"beforeImages,omitempty"`
	AfterImages  []string `json:"afterImages,omitempty"`
	CompletedAt  *string  `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		CustomerID:     b.CustomerID,
		ServiceID:      b.ServiceID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		Status:         string(b.Status),
		Address:        b.Address,
		DetailAddress:  b.DetailAddress,
		Area:           b.Area,
		SpecialRequest: b.SpecialRequest,
		ServicePrice:   b.ServicePrice,
		OptionsPrice:   b.OptionsPrice,
		TotalPrice:     b.TotalPrice,
		BeforeImages:   b.BeforeImages,
		AfterImages:    b.AfterImages,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.Service != nil {
		resp.ServiceName = b.Service.Name
		resp.ServiceCategory = string(b.Service.Category)
	}

	if b.CompletedAt != nil {
		completedAt := b.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedAt
	}

	resp.Options = make([]BookingOptionResponse, 0, len(b.Options))
	for _, opt := range b.Options {
		optResp := BookingOptionResponse{
			OptionID: opt.OptionID,
			Quantity: opt.Quantity,
			Price:    opt.Price,
		}
		if opt.Option != nil {
			optResp.Name = opt.Option.Name
		}
		resp.Options = append(resp.Options, optResp)
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
