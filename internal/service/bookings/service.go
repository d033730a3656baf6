package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	blockedRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	bookingRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/booking"
	identityClient "github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
	"github.com/jiholee0/CHS-BookingService/internal/service/bookings/models"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	blockedRepo    BlockedDateRepository
	identityClient IdentityClient
	slotUniverse   []types.TimeString
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	blockedRepo BlockedDateRepository,
	identityClient IdentityClient,
	slotUniverse []types.TimeString,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		blockedRepo:    blockedRepo,
		identityClient: identityClient,
		slotUniverse:   slotUniverse,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно владельцу бронирования и администраторам.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID {
		if err := s.checkAdminAccess(ctx, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, ErrAccessDenied
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", req.UserID)

	filter := domain.BookingsFilter{CustomerID: &req.UserID}
	if req.Status != nil {
		status, ok := domain.ToBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAllBookings получает бронирования всех клиентов с фильтрацией.
// Только для администраторов.
func (s *Service) GetAllBookings(ctx context.Context, req *models.GetAllBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAllBookings: fetching bookings for admin user=%d", req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{ServiceID: req.ServiceID}
	if req.Status != nil {
		status, ok := domain.ToBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetAllBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}
	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			s.logger.Warn("GetAllBookings: invalid date=%s", *req.Date)
			return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
		}
		filter.Date = &date
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update редактирует бронирование. Доступно только владельцу
// и только пока бронирование в статусе pending.
// При переносе даты или времени заново проверяется доступность слота.
func (s *Service) Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, bookingID, "Update")
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != req.UserID {
		s.logger.Warn("Update: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeEditedByCustomer() {
		s.logger.Warn("Update: booking id=%d in status=%s cannot be edited", bookingID, booking.Status)
		return nil, ErrCannotEdit
	}

	upd, err := s.buildUpdate(ctx, booking, req)
	if err != nil {
		return nil, err
	}

	// Редактирование применяется только пока бронирование всё ещё pending
	upd.PrevStatus = domain.StatusPending

	if err := s.bookingRepo.UpdateFields(ctx, bookingID, upd); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Update: booking id=%d changed status concurrently", bookingID)
			return nil, ErrCannotEdit
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, bookingID, "Update")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// UpdateStatus меняет статус бронирования. Только для администраторов.
// Прямые переходы идут строго по одному шагу, отмена доступна из любого
// нетерминального статуса. При завершении прикрепляются фотографии работ.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	booking, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	newStatus, ok := domain.ToBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return nil, ErrInvalidStatusTransition
	}

	upd := domain.BookingStatusUpdate{
		Status:       newStatus,
		PrevStatus:   booking.Status,
		BeforeImages: req.BeforeImages,
		AfterImages:  req.AfterImages,
	}
	if newStatus == domain.StatusCompleted {
		completedAt := s.timeProvider.Now()
		if req.CompletedAt != nil {
			completedAt = *req.CompletedAt
		}
		upd.CompletedAt = &completedAt
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, upd); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: booking id=%d changed status concurrently", bookingID)
			return nil, ErrInvalidStatusTransition
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование физически.
// Владелец может удалить своё бронирование в статусах pending/confirmed
// (это и есть клиентская отмена). Администратор подчищает историю:
// удаляются только завершённые и отменённые бронирования.
func (s *Service) Delete(ctx context.Context, bookingID, userID int64) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, bookingID, "Delete")
	if err != nil {
		return err
	}

	if booking.CustomerID == userID {
		if !booking.CanBeCancelledByCustomer() {
			s.logger.Warn("Delete: booking id=%d in status=%s cannot be cancelled by customer", bookingID, booking.Status)
			return ErrCannotCancel
		}
	} else {
		if err := s.checkAdminAccess(ctx, userID); err != nil {
			s.logger.Warn("Delete: access denied for user=%d to booking id=%d", userID, bookingID)
			return ErrAccessDenied
		}
		if !booking.CanBeDeletedByAdmin() {
			s.logger.Warn("Delete: booking id=%d in status=%s cannot be deleted by admin", bookingID, booking.Status)
			return ErrCannotDelete
		}
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// buildUpdate валидирует запрос редактирования и собирает domain обновление
func (s *Service) buildUpdate(ctx context.Context, booking *domain.Booking, req *models.UpdateBookingRequest) (domain.BookingUpdate, error) {
	var upd domain.BookingUpdate

	if req.Address != nil {
		if *req.Address == "" || len(*req.Address) > domain.MaxAddressLength {
			return upd, fmt.Errorf("%w: invalid address", ErrInvalidInput)
		}
		upd.Address = req.Address
	}
	if req.DetailAddress != nil {
		upd.DetailAddress = req.DetailAddress
	}
	if req.SpecialRequest != nil {
		if len(*req.SpecialRequest) > domain.MaxSpecialRequestLength {
			return upd, fmt.Errorf("%w: special request is too long", ErrInvalidInput)
		}
		upd.SpecialRequest = req.SpecialRequest
	}

	if req.BookingDate == nil && req.StartTime == nil {
		return upd, nil
	}

	// Перенос: целевые дата и время берутся из запроса,
	// недостающая часть - из текущего бронирования
	newDate := booking.BookingDate
	if req.BookingDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *req.BookingDate)
		if err != nil {
			s.logger.Warn("Update: invalid bookingDate=%s for booking id=%d", *req.BookingDate, booking.ID)
			return upd, fmt.Errorf("%w: invalid booking date format", ErrInvalidInput)
		}
		newDate = parsed
	}

	newStart := booking.StartTime
	if req.StartTime != nil {
		parsed, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			s.logger.Warn("Update: invalid startTime=%s for booking id=%d", *req.StartTime, booking.ID)
			return upd, fmt.Errorf("%w: invalid start time format", ErrInvalidInput)
		}
		newStart = parsed
	}

	if domain.IsDateInPast(newDate, s.timeProvider.Now()) {
		return upd, ErrInvalidBookingDate
	}

	if !s.isSlotInUniverse(newStart) {
		return upd, fmt.Errorf("%w: start time is outside working slots", ErrInvalidInput)
	}

	if _, err := s.blockedRepo.GetByDate(ctx, newDate); err == nil {
		return upd, ErrDateBlocked
	} else if !errors.Is(err, blockedRepo.ErrDateNotFound) {
		s.logger.Error("Update: blocked date check failed for booking id=%d: %v", booking.ID, err)
		return upd, fmt.Errorf("%w: Update - blocked date check failed: %v", ErrInternal, err)
	}

	if booking.Service == nil {
		s.logger.Error("Update: booking id=%d loaded without service", booking.ID)
		return upd, fmt.Errorf("%w: Update - booking has no service", ErrInternal)
	}

	newEnd, err := newStart.AddMinutes(booking.Service.DurationMinutes)
	if err != nil {
		return upd, fmt.Errorf("%w: booking does not fit into the day", ErrInvalidInput)
	}

	if err := s.checkSlotAvailable(ctx, booking.ID, newDate, newStart, newEnd); err != nil {
		return upd, err
	}

	upd.BookingDate = &newDate
	upd.StartTime = &newStart
	upd.EndTime = &newEnd
	return upd, nil
}

// checkSlotAvailable проверяет, что окно не пересекается с чужими бронированиями
func (s *Service) checkSlotAvailable(ctx context.Context, bookingID int64, date time.Time, start, end types.TimeString) error {
	existing, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		Date:             &date,
		ExcludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("checkSlotAvailable: repository error: %v", err)
		return fmt.Errorf("%w: checkSlotAvailable - repository error: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if other.ID == bookingID || !other.IsActive() {
			continue
		}
		if start.IsBefore(other.EndTime) && other.StartTime.IsBefore(end) {
			s.logger.Warn("checkSlotAvailable: slot %s-%s on %s overlaps booking id=%d",
				start, end, date.Format(domain.DateFormat), other.ID)
			return ErrSlotNotAvailable
		}
	}

	return nil
}

// isSlotInUniverse проверяет, что время входит в рабочую сетку слотов
func (s *Service) isSlotInUniverse(start types.TimeString) bool {
	for _, slot := range s.slotUniverse {
		if slot == start {
			return true
		}
	}
	return false
}

// getBooking загружает бронирование, транслируя отсутствие в ErrBookingNotFound
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
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
