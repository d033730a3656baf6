package update_booking_status

import (
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status       string     `json:"status"`
	BeforeImages []string   `json:"beforeImages,omitempty"`
	AfterImages  []string   `json:"afterImages,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID:       userID,
		Status:       r.Status,
		BeforeImages: r.BeforeImages,
		AfterImages:  r.AfterImages,
		CompletedAt:  r.CompletedAt,
	}
}
