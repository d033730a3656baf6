package catalog_services

import (
	"context"

	"github.com/jiholee0/CHS-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error)
	CreateService(ctx context.Context, userID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	UpdateService(ctx context.Context, userID, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
	DeleteService(ctx context.Context, userID, serviceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
