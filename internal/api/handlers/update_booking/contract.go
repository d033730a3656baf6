package update_booking

import (
	"context"

	"github.com/jiholee0/CHS-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
