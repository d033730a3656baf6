package get_available_times

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	blockedRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

// UseCase use case получения свободных слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedDateRepository
	slotUniverse []types.TimeString
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedDateRepository,
	slotUniverse []types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		slotUniverse: slotUniverse,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные слоты рабочей сетки на дату.
// Заблокированный день и день в прошлом отдают пустой список - это
// штатный ответ, а не ошибка. Для сегодняшнего дня уже прошедшие
// слоты не показываются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetAvailableTimes: date=%s", dateStr)

	resp := &Response{
		Date:           dateStr,
		BookedSlots:    make([]BookedSlot, 0, len(uc.slotUniverse)),
		AvailableTimes: make([]string, 0, len(uc.slotUniverse)),
	}

	now := uc.timeProvider.Now()
	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableTimes: date=%s is in the past", dateStr)
		return resp, nil
	}

	booked, err := uc.bookingRepo.GetBookedSlots(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}
	for _, b := range booked {
		resp.BookedSlots = append(resp.BookedSlots, BookedSlot{
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
		})
	}

	// Заблокированный день: занятые окна отдаем, свободных слотов нет
	if _, err := uc.blockedRepo.GetByDate(ctx, req.Date); err == nil {
		uc.logger.Info("GetAvailableTimes: date=%s is blocked", dateStr)
		return resp, nil
	} else if !errors.Is(err, blockedRepo.ErrDateNotFound) {
		uc.logger.Error("GetAvailableTimes: blocked date check failed: %v", err)
		return nil, fmt.Errorf("%w: blocked date check failed: %v", ErrInternal, err)
	}

	isToday := domain.IsSameDay(req.Date, now)
	currentTime := types.NewTimeString(now)

	for _, slot := range uc.slotUniverse {
		if isToday && !currentTime.IsBefore(slot) {
			continue
		}
		if isSlotTaken(slot, booked) {
			continue
		}
		resp.AvailableTimes = append(resp.AvailableTimes, slot.String())
	}

	uc.logger.Info("GetAvailableTimes: date=%s, %d of %d slots available",
		dateStr, len(resp.AvailableTimes), len(uc.slotUniverse))
	return resp, nil
}

// isSlotTaken проверяет, что начало слота попадает в занятое окно
func isSlotTaken(slot types.TimeString, booked []domain.BookedSlot) bool {
	for _, b := range booked {
		if !slot.IsBefore(b.StartTime) && slot.IsBefore(b.EndTime) {
			return true
		}
	}
	return false
}
