package calculate_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	serviceRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/service"
	"github.com/jiholee0/CHS-BookingService/internal/pricing"
)

// UseCase use case предварительного расчёта стоимости
type UseCase struct {
	serviceRepo ServiceRepository
	optionRepo  OptionRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	optionRepo OptionRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo: serviceRepo,
		optionRepo:  optionRepo,
		logger:      logger,
	}
}

// Execute выполняет расчёт стоимости по текущим ценам каталога.
// Результат не сохраняется: при оформлении заказа цена считается заново.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CalculateQuote: service=%d, options=%d, appliances=%d",
		req.ServiceID, len(req.Options), len(req.ApplianceIDs))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CalculateQuote: validation failed: %v", err)
		return nil, err
	}

	service, err := uc.getActiveService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	if err := validateArea(service, req.Area); err != nil {
		uc.logger.Warn("CalculateQuote: area validation failed for service=%d: %v", req.ServiceID, err)
		return nil, err
	}

	options, err := uc.resolveOptions(ctx, req.Options)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.Calculate(pricing.Input{
		Service:         service,
		Area:            areaValue(req.Area),
		SelectedOptions: toPricingSelection(req.Options),
		Options:         options,
		ApplianceIDs:    req.ApplianceIDs,
	})

	uc.logger.Info("CalculateQuote: service=%d total=%d", req.ServiceID, breakdown.TotalPrice)
	return buildResponse(service, req.Area, breakdown), nil
}

// getActiveService загружает услугу и проверяет, что она активна
func (uc *UseCase) getActiveService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CalculateQuote: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CalculateQuote: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CalculateQuote: service id=%d is not active", serviceID)
		return nil, ErrServiceInactive
	}

	return service, nil
}

// resolveOptions загружает выбранные опции из каталога
func (uc *UseCase) resolveOptions(ctx context.Context, selected []SelectedOption) ([]*domain.AdditionalOption, error) {
	if len(selected) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(selected))
	for _, sel := range selected {
		ids = append(ids, sel.OptionID)
	}

	options, err := uc.optionRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CalculateQuote: failed to get options: %v", err)
		return nil, fmt.Errorf("%w: failed to get options: %v", ErrInternal, err)
	}

	return options, nil
}

func toPricingSelection(selected []SelectedOption) []pricing.SelectedOption {
	result := make([]pricing.SelectedOption, 0, len(selected))
	for _, sel := range selected {
		result = append(result, pricing.SelectedOption{
			OptionID: sel.OptionID,
			Quantity: sel.Quantity,
		})
	}
	return result
}

func buildResponse(service *domain.Service, area *int64, breakdown pricing.Breakdown) *Response {
	resp := &Response{
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		ServiceCategory: string(service.Category),
		Area:            area,
		ServicePrice:    breakdown.ServicePrice,
		OptionsPrice:    breakdown.OptionsPrice,
		TotalPrice:      breakdown.TotalPrice,
		Options:         make([]OptionQuote, 0, len(breakdown.Options)),
		Appliances:      make([]ApplianceQuote, 0, len(breakdown.Appliances)),
	}

	for _, opt := range breakdown.Options {
		resp.Options = append(resp.Options, OptionQuote{
			OptionID: opt.OptionID,
			Name:     opt.Name,
			Quantity: opt.Quantity,
			Price:    opt.Price,
		})
	}

	for _, appliance := range breakdown.Appliances {
		resp.Appliances = append(resp.Appliances, ApplianceQuote{
			ID:    appliance.ID,
			Name:  appliance.Name,
			Price: appliance.Price,
		})
	}

	return resp
}

func areaValue(area *int64) int64 {
	if area == nil {
		return 0
	}
	return *area
}
