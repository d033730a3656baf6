package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	blockedRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	identityClient "github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
	"github.com/jiholee0/CHS-BookingService/internal/service/availability/models"
)

// Горизонт выборки блокировок по умолчанию
const defaultHorizonMonths = 3

// Service сервис для управления заблокированными датами
type Service struct {
	blockedRepo    BlockedDateRepository
	identityClient IdentityClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса заблокированных дат
func NewService(
	blockedRepo BlockedDateRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		blockedRepo:    blockedRepo,
		identityClient: identityClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// ListBlockedDates получает блокировки в диапазоне дат.
// Без явных границ возвращает блокировки от сегодня на три месяца вперёд.
func (s *Service) ListBlockedDates(ctx context.Context, req *models.ListBlockedDatesRequest) (*models.BlockedDateListResponse, error) {
	now := s.timeProvider.Now()

	from := domain.NormalizeDate(now)
	if req.From != nil {
		parsed, err := time.Parse(domain.DateFormat, *req.From)
		if err != nil {
			s.logger.Warn("ListBlockedDates: invalid from=%s", *req.From)
			return nil, fmt.Errorf("%w: invalid from date", ErrInvalidInput)
		}
		from = parsed
	}

	to := from.AddDate(0, defaultHorizonMonths, 0)
	if req.To != nil {
		parsed, err := time.Parse(domain.DateFormat, *req.To)
		if err != nil {
			s.logger.Warn("ListBlockedDates: invalid to=%s", *req.To)
			return nil, fmt.Errorf("%w: invalid to date", ErrInvalidInput)
		}
		to = parsed
	}

	if to.Before(from) {
		s.logger.Warn("ListBlockedDates: to=%s is before from=%s", to.Format(domain.DateFormat), from.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: to date is before from date", ErrInvalidInput)
	}

	dates, err := s.blockedRepo.List(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlockedDates: successfully fetched %d blocked dates", len(dates))
	return models.FromDomainBlockedDateList(dates), nil
}

// IsDateBlocked проверяет, заблокирован ли день
func (s *Service) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	_, err := s.blockedRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrDateNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: IsDateBlocked - repository error: %v", ErrInternal, err)
	}
	return true, nil
}

// BlockDate блокирует дату для записи. Только для администраторов.
func (s *Service) BlockDate(ctx context.Context, userID int64, req *models.BlockDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("BlockDate: blocking date=%s by user=%d", req.Date, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("BlockDate: invalid date=%s", req.Date)
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	blocked, err := s.blockedRepo.Create(ctx, date, req.Reason)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrDuplicateDate) {
			s.logger.Warn("BlockDate: date=%s already blocked", req.Date)
			return nil, ErrDuplicateDate
		}
		s.logger.Error("BlockDate: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: BlockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockDate: successfully blocked date=%s id=%d", req.Date, blocked.ID)
	return models.FromDomainBlockedDate(blocked), nil
}

// BulkBlockDates блокирует набор дат. Только для администраторов.
// Частичный успех: уже заблокированные даты пропускаются, а не валят весь запрос.
func (s *Service) BulkBlockDates(ctx context.Context, userID int64, req *models.BulkBlockDatesRequest) (*models.BulkBlockDatesResponse, error) {
	s.logger.Info("BulkBlockDates: blocking %d dates by user=%d", len(req.Dates), userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return nil, err
	}

	if len(req.Dates) == 0 {
		return nil, fmt.Errorf("%w: dates list is empty", ErrInvalidInput)
	}

	// Сначала валидируем весь список: смешивать созданные записи
	// с ошибкой формата нельзя
	parsed := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			s.logger.Warn("BulkBlockDates: invalid date=%s", raw)
			return nil, fmt.Errorf("%w: invalid date format: %s", ErrInvalidInput, raw)
		}
		parsed = append(parsed, date)
	}

	resp := &models.BulkBlockDatesResponse{
		Created: make([]models.BlockedDateResponse, 0, len(parsed)),
		Skipped: make([]string, 0),
	}

	for i, date := range parsed {
		blocked, err := s.blockedRepo.Create(ctx, date, req.Reason)
		if err != nil {
			if errors.Is(err, blockedRepo.ErrDuplicateDate) {
				resp.Skipped = append(resp.Skipped, req.Dates[i])
				continue
			}
			s.logger.Error("BulkBlockDates: repository error for date=%s: %v", req.Dates[i], err)
			return nil, fmt.Errorf("%w: BulkBlockDates - repository error: %v", ErrInternal, err)
		}
		resp.Created = append(resp.Created, *models.FromDomainBlockedDate(blocked))
	}

	s.logger.Info("BulkBlockDates: created=%d skipped=%d", len(resp.Created), len(resp.Skipped))
	return resp, nil
}

// UnblockDate снимает блокировку по ID. Только для администраторов.
func (s *Service) UnblockDate(ctx context.Context, userID, blockedDateID int64) error {
	s.logger.Info("UnblockDate: removing blocked date id=%d by user=%d", blockedDateID, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.blockedRepo.Delete(ctx, blockedDateID); err != nil {
		if errors.Is(err, blockedRepo.ErrDateNotFound) {
			s.logger.Warn("UnblockDate: blocked date id=%d not found", blockedDateID)
			return ErrDateNotFound
		}
		s.logger.Error("UnblockDate: repository error for id=%d: %v", blockedDateID, err)
		return fmt.Errorf("%w: UnblockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockDate: successfully removed blocked date id=%d", blockedDateID)
	return nil
}

// UnblockDateByDate снимает блокировку по календарному дню. Только для администраторов.
func (s *Service) UnblockDateByDate(ctx context.Context, userID int64, rawDate string) error {
	s.logger.Info("UnblockDateByDate: removing blocked date=%s by user=%d", rawDate, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		s.logger.Warn("UnblockDateByDate: invalid date=%s", rawDate)
		return fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	if err := s.blockedRepo.DeleteByDate(ctx, date); err != nil {
		if errors.Is(err, blockedRepo.ErrDateNotFound) {
			s.logger.Warn("UnblockDateByDate: date=%s is not blocked", rawDate)
			return ErrDateNotFound
		}
		s.logger.Error("UnblockDateByDate: repository error for date=%s: %v", rawDate, err)
		return fmt.Errorf("%w: UnblockDateByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockDateByDate: successfully removed blocked date=%s", rawDate)
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
