package update_booking

import (
	"github.com/jiholee0/CHS-BookingService/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	BookingDate    *string `json:"bookingDate,omitempty"` // "2025-10-15"
	StartTime      *string `json:"startTime,omitempty"`   // "14:00"
	Address        *string `json:"address,omitempty"`
	DetailAddress  *string `json:"detailAddress,omitempty"`
	SpecialRequest *string `json:"specialRequest,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest(userID int64) *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		UserID:         userID,
		BookingDate:    r.BookingDate,
		StartTime:      r.StartTime,
		Address:        r.Address,
		DetailAddress:  r.DetailAddress,
		SpecialRequest: r.SpecialRequest,
	}
}
