package catalog_options

import (
	"context"

	"github.com/jiholee0/CHS-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListOptions(ctx context.Context, req *models.ListOptionsRequest) (*models.OptionListResponse, error)
	CreateOption(ctx context.Context, userID int64, req *models.CreateOptionRequest) (*models.OptionResponse, error)
	UpdateOption(ctx context.Context, userID, optionID int64, req *models.UpdateOptionRequest) (*models.OptionResponse, error)
	DeleteOption(ctx context.Context, userID, optionID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
