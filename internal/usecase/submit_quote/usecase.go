package submit_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	blockedRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	serviceRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/service"
	"github.com/jiholee0/CHS-BookingService/internal/pricing"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

// UseCase use case оформления заказа из сметы
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	optionRepo   OptionRepository
	blockedRepo  BlockedDateRepository
	txManager    TransactionManager
	slotUniverse []types.TimeString
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	optionRepo OptionRepository,
	blockedRepo BlockedDateRepository,
	txManager TransactionManager,
	slotUniverse []types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		optionRepo:   optionRepo,
		blockedRepo:  blockedRepo,
		txManager:    txManager,
		slotUniverse: slotUniverse,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute оформляет заказ.
// Стоимость пересчитывается на сервере по текущим ценам каталога,
// присланные клиентом суммы игнорируются. Проверка занятости слота
// и создание заказа выполняются в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitQuote: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.BookingDate.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitQuote: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if domain.IsDateInPast(req.BookingDate, now) {
		uc.logger.Warn("SubmitQuote: date=%s is in the past", req.BookingDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	if !uc.isSlotInUniverse(req.StartTime) {
		uc.logger.Warn("SubmitQuote: startTime=%s is outside working slots", req.StartTime)
		return nil, ErrInvalidTimeSlot
	}

	service, err := uc.getActiveService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	if err := validateArea(service, req.Area); err != nil {
		uc.logger.Warn("SubmitQuote: area validation failed for service=%d: %v", req.ServiceID, err)
		return nil, err
	}

	// Клиент может прислать своё время окончания, иначе оно
	// выводится из длительности услуги
	var endTime types.TimeString
	if req.EndTime != nil {
		if !req.StartTime.IsBefore(*req.EndTime) {
			uc.logger.Warn("SubmitQuote: endTime=%s is not after startTime=%s", *req.EndTime, req.StartTime)
			return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidTimeSlot)
		}
		endTime = *req.EndTime
	} else {
		computed, err := req.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			uc.logger.Warn("SubmitQuote: booking does not fit into the day, start=%s duration=%d",
				req.StartTime, service.DurationMinutes)
			return nil, fmt.Errorf("%w: booking does not fit into the day", ErrInvalidTimeSlot)
		}
		endTime = computed
	}

	var (
		result         *domain.Booking
		priceBreakdown pricing.Breakdown
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Заблокированный день проверяется внутри транзакции,
		// чтобы не проскочить блокировку, добавленную параллельно
		if _, err := uc.blockedRepo.GetByDate(txCtx, req.BookingDate); err == nil {
			uc.logger.Warn("SubmitQuote: date=%s is blocked", req.BookingDate.Format(domain.DateFormat))
			return ErrDateBlocked
		} else if !errors.Is(err, blockedRepo.ErrDateNotFound) {
			uc.logger.Error("SubmitQuote: blocked date check failed: %v", err)
			return fmt.Errorf("%w: blocked date check failed: %v", ErrInternal, err)
		}

		// Бронирования дня читаются с блокировкой FOR UPDATE
		existing, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			Date:             &req.BookingDate,
			ExcludeCancelled: true,
		})
		if err != nil {
			uc.logger.Error("SubmitQuote: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if overlaps(req.StartTime, endTime, existing) {
			uc.logger.Warn("SubmitQuote: slot %s-%s on %s is not available",
				req.StartTime, endTime, req.BookingDate.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		options, err := uc.resolveOptions(txCtx, req.Options)
		if err != nil {
			return err
		}

		priceBreakdown = pricing.Calculate(pricing.Input{
			Service:         service,
			Area:            areaValue(req.Area),
			SelectedOptions: toPricingSelection(req.Options),
			Options:         options,
			ApplianceIDs:    req.ApplianceIDs,
		})

		booking := &domain.Booking{
			CustomerID:     req.UserID,
			ServiceID:      req.ServiceID,
			BookingDate:    req.BookingDate,
			StartTime:      req.StartTime,
			EndTime:        endTime,
			Status:         domain.StatusPending,
			Address:        req.Address,
			DetailAddress:  req.DetailAddress,
			Area:           req.Area,
			SpecialRequest: req.SpecialRequest,
			ServicePrice:   priceBreakdown.ServicePrice,
			OptionsPrice:   priceBreakdown.OptionsPrice,
			TotalPrice:     priceBreakdown.TotalPrice,
			Options:        toBookingOptions(priceBreakdown.Options),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("SubmitQuote: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitQuote: successfully created booking id=%d total=%d", result.ID, result.TotalPrice)
	return buildResponse(result, service, priceBreakdown.Options), nil
}

// getActiveService загружает услугу и проверяет, что она активна
func (uc *UseCase) getActiveService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("SubmitQuote: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("SubmitQuote: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("SubmitQuote: service id=%d is not active", serviceID)
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
		uc.logger.Error("SubmitQuote: failed to get options: %v", err)
		return nil, fmt.Errorf("%w: failed to get options: %v", ErrInternal, err)
	}

	return options, nil
}

// isSlotInUniverse проверяет, что время входит в рабочую сетку слотов
func (uc *UseCase) isSlotInUniverse(start types.TimeString) bool {
	for _, slot := range uc.slotUniverse {
		if slot == start {
			return true
		}
	}
	return false
}

// overlaps проверяет пересечение окна с существующими бронированиями.
// Отменённые бронирования слот не занимают. Граничные случаи
// (конец одного равен началу другого) пересечением не считаются.
func overlaps(start, end types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.StartTime.IsBefore(end) && start.IsBefore(booking.EndTime) {
			return true
		}
	}
	return false
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

func toBookingOptions(breakdowns []pricing.OptionBreakdown) []domain.BookingOption {
	options := make([]domain.BookingOption, 0, len(breakdowns))
	for _, opt := range breakdowns {
		options = append(options, domain.BookingOption{
			OptionID: opt.OptionID,
			Quantity: opt.Quantity,
			Price:    opt.Price,
		})
	}
	return options
}

func buildResponse(booking *domain.Booking, service *domain.Service, breakdowns []pricing.OptionBreakdown) *Response {
	resp := &Response{
		ID:             booking.ID,
		CustomerID:     booking.CustomerID,
		ServiceID:      booking.ServiceID,
		BookingDate:    booking.BookingDate,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		Status:         string(booking.Status),
		Address:        booking.Address,
		DetailAddress:  booking.DetailAddress,
		Area:           booking.Area,
		SpecialRequest: booking.SpecialRequest,
		ServicePrice:   booking.ServicePrice,
		OptionsPrice:   booking.OptionsPrice,
		TotalPrice:     booking.TotalPrice,
		ServiceName:    service.Name,
		Options:        make([]OptionSnapshot, 0, len(booking.Options)),
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}

	// Строки опций созданы из этого же расчёта, порядок совпадает
	for i, opt := range booking.Options {
		snapshot := OptionSnapshot{
			OptionID: opt.OptionID,
			Quantity: opt.Quantity,
			Price:    opt.Price,
		}
		if i < len(breakdowns) {
			snapshot.Name = breakdowns[i].Name
		}
		resp.Options = append(resp.Options, snapshot)
	}

	return resp
}

func areaValue(area *int64) int64 {
	if area == nil {
		return 0
	}
	return *area
}
