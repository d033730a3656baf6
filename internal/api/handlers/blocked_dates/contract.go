package blocked_dates

import (
	"context"

	"github.com/jiholee0/CHS-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListBlockedDates(ctx context.Context, req *models.ListBlockedDatesRequest) (*models.BlockedDateListResponse, error)
	BlockDate(ctx context.Context, userID int64, req *models.BlockDateRequest) (*models.BlockedDateResponse, error)
	BulkBlockDates(ctx context.Context, userID int64, req *models.BulkBlockDatesRequest) (*models.BulkBlockDatesResponse, error)
	UnblockDate(ctx context.Context, userID, blockedDateID int64) error
	UnblockDateByDate(ctx context.Context, userID int64, rawDate string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
