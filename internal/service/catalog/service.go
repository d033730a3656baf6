package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	optionRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/option"
	serviceRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/service"
	identityClient "github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
	"github.com/jiholee0/CHS-BookingService/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг и опций
type Service struct {
	serviceRepo    ServiceRepository
	optionRepo     OptionRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	optionRepo OptionRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:    serviceRepo,
		optionRepo:     optionRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// ListServices получает каталог услуг.
// Публичный запрос видит только активные записи,
// includeInactive доступен только администраторам.
func (s *Service) ListServices(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services, includeInactive=%v", req.IncludeInactive)

	filter := domain.ServicesFilter{}
	if req.Category != nil {
		category := domain.ServiceCategory(*req.Category)
		if !category.IsValid() {
			s.logger.Warn("ListServices: invalid category=%s", *req.Category)
			return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
		}
		filter.Category = &category
	}

	if req.IncludeInactive {
		if req.UserID == nil {
			return nil, ErrAccessDenied
		}
		if err := s.checkAdminAccess(ctx, *req.UserID); err != nil {
			return nil, err
		}
		filter.IncludeInactive = true
	}

	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// CreateService создает услугу в каталоге. Только для администраторов.
func (s *Service) CreateService(ctx context.Context, userID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service name=%s by user=%d", req.Name, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return nil, err
	}

	service := req.ToDomainService()
	if err := service.Validate(); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// UpdateService частично обновляет услугу. Только для администраторов.
func (s *Service) UpdateService(ctx context.Context, userID, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: updating service id=%d by user=%d", serviceID, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return nil, err
	}

	upd, err := req.ToDomainUpdate()
	if err != nil {
		s.logger.Warn("UpdateService: invalid update for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.serviceRepo.Update(ctx, serviceID, upd); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	updated, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		s.logger.Error("UpdateService: failed to reload service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%d", serviceID)
	return models.FromDomainService(updated), nil
}

// DeleteService удаляет услугу из каталога. Только для администраторов.
// Услуга с бронированиями защищена внешним ключом и не удаляется.
func (s *Service) DeleteService(ctx context.Context, userID, serviceID int64) error {
	s.logger.Info("DeleteService: deleting service id=%d by user=%d", serviceID, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found", serviceID)
			return ErrServiceNotFound
		}
		if errors.Is(err, serviceRepo.ErrServiceInUse) {
			s.logger.Warn("DeleteService: service id=%d is referenced by bookings", serviceID)
			return ErrServiceInUse
		}
		s.logger.Error("DeleteService: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: successfully deleted service id=%d", serviceID)
	return nil
}

// ListOptions получает каталог дополнительных опций
func (s *Service) ListOptions(ctx context.Context, req *models.ListOptionsRequest) (*models.OptionListResponse, error) {
	s.logger.Info("ListOptions: fetching options, includeInactive=%v", req.IncludeInactive)

	filter := domain.OptionsFilter{}
	if req.Category != nil {
		category := domain.OptionCategory(*req.Category)
		if !category.IsValid() {
			s.logger.Warn("ListOptions: invalid category=%s", *req.Category)
			return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
		}
		filter.Category = &category
	}

	if req.IncludeInactive {
		if req.UserID == nil {
			return nil, ErrAccessDenied
		}
		if err := s.checkAdminAccess(ctx, *req.UserID); err != nil {
			return nil, err
		}
		filter.IncludeInactive = true
	}

	options, err := s.optionRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListOptions: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOptions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOptions: successfully fetched %d options", len(options))
	return models.FromDomainOptionList(options), nil
}

// CreateOption создает опцию в каталоге. Только для администраторов.
func (s *Service) CreateOption(ctx context.Context, userID int64, req *models.CreateOptionRequest) (*models.OptionResponse, error) {
	s.logger.Info("CreateOption: creating option name=%s by user=%d", req.Name, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return nil, err
	}

	opt := req.ToDomainOption()
	if err := opt.Validate(); err != nil {
		s.logger.Warn("CreateOption: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.optionRepo.Create(ctx, opt)
	if err != nil {
		s.logger.Error("CreateOption: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateOption - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOption: successfully created option id=%d", created.ID)
	return models.FromDomainOption(created), nil
}

// UpdateOption частично обновляет опцию. Только для администраторов.
func (s *Service) UpdateOption(ctx context.Context, userID, optionID int64, req *models.UpdateOptionRequest) (*models.OptionResponse, error) {
	s.logger.Info("UpdateOption: updating option id=%d by user=%d", optionID, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return nil, err
	}

	upd, err := req.ToDomainUpdate()
	if err != nil {
		s.logger.Warn("UpdateOption: invalid update for option id=%d: %v", optionID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.optionRepo.Update(ctx, optionID, upd); err != nil {
		if errors.Is(err, optionRepo.ErrOptionNotFound) {
			s.logger.Warn("UpdateOption: option id=%d not found", optionID)
			return nil, ErrOptionNotFound
		}
		s.logger.Error("UpdateOption: repository error for option id=%d: %v", optionID, err)
		return nil, fmt.Errorf("%w: UpdateOption - repository error: %v", ErrInternal, err)
	}

	updated, err := s.optionRepo.GetByID(ctx, optionID)
	if err != nil {
		s.logger.Error("UpdateOption: failed to reload option id=%d: %v", optionID, err)
		return nil, fmt.Errorf("%w: UpdateOption - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateOption: successfully updated option id=%d", optionID)
	return models.FromDomainOption(updated), nil
}

// DeleteOption удаляет опцию из каталога. Только для администраторов.
func (s *Service) DeleteOption(ctx context.Context, userID, optionID int64) error {
	s.logger.Info("DeleteOption: deleting option id=%d by user=%d", optionID, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.optionRepo.Delete(ctx, optionID); err != nil {
		if errors.Is(err, optionRepo.ErrOptionNotFound) {
			s.logger.Warn("DeleteOption: option id=%d not found", optionID)
			return ErrOptionNotFound
		}
		if errors.Is(err, optionRepo.ErrOptionInUse) {
			s.logger.Warn("DeleteOption: option id=%d is referenced by bookings", optionID)
			return ErrOptionInUse
		}
		s.logger.Error("DeleteOption: repository error for option id=%d: %v", optionID, err)
		return fmt.Errorf("%w: DeleteOption - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOption: successfully deleted option id=%d", optionID)
	return nil
}

// checkAdminAccess проверяет, что пользователь является администратором
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	user, err := s.identityClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			s.logger.Warn("checkAdminAccess: user=%d not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdminAccess: failed to get user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%d is not an administrator", userID)
		return ErrAccessDenied
	}

	return nil
}
