package submit_quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	blockedRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	serviceRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/service"
	"github.com/jiholee0/CHS-BookingService/pkg/ptr"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(f.existing))
	for _, b := range f.existing {
		if filter.ExcludeCancelled && b.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeOptionRepo struct {
	options []*domain.AdditionalOption
}

func (f *fakeOptionRepo) GetByIDs(_ context.Context, _ []int64) ([]*domain.AdditionalOption, error) {
	return f.options, nil
}

type fakeBlockedRepo struct {
	blocked bool
}

func (f *fakeBlockedRepo) GetByDate(_ context.Context, date time.Time) (*domain.BlockedDate, error) {
	if f.blocked {
		return &domain.BlockedDate{ID: 1, Date: date}, nil
	}
	return nil, blockedRepo.ErrDateNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testSlots = []types.TimeString{"08:00", "14:00"}

type fixtures struct {
	bookings *fakeBookingRepo
	services *fakeServiceRepo
	options  *fakeOptionRepo
	blocked  *fakeBlockedRepo
}

func newTestUseCase(f fixtures) *UseCase {
	uc := NewUseCase(f.bookings, f.services, f.options, f.blocked, fakeTxManager{}, testSlots, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)}
	return uc
}

func homeService() *domain.Service {
	return &domain.Service{
		ID:              1,
		Name:            "Home cleaning",
		Category:        domain.CategoryHome,
		DurationMinutes: 240,
		IsActive:        true,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:      7,
		ServiceID:   1,
		BookingDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "08:00",
		Address:     "ул. Ленина, 1",
		Area:        ptr.Ptr(int64(20)),
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := fixtures{
		bookings: &fakeBookingRepo{},
		services: &fakeServiceRepo{service: homeService()},
		options: &fakeOptionRepo{options: []*domain.AdditionalOption{
			{ID: 10, Name: "Window cleaning", PriceType: domain.PriceTypePerUnit, BasePrice: 10000, IsActive: true},
		}},
		blocked: &fakeBlockedRepo{},
	}
	uc := newTestUseCase(f)

	req := validRequest()
	req.Options = []SelectedOption{{OptionID: 10, Quantity: 2}}
	req.ApplianceIDs = []string{"washer"}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("12:00"), resp.EndTime)

	// Цена пересчитана сервером: 20 * 15000 + 2 * 10000 + 20000
	assert.Equal(t, int64(300000), resp.ServicePrice)
	assert.Equal(t, int64(40000), resp.OptionsPrice)
	assert.Equal(t, int64(340000), resp.TotalPrice)

	require.Len(t, resp.Options, 1)
	assert.Equal(t, "Window cleaning", resp.Options[0].Name)
	assert.Equal(t, 2, resp.Options[0].Quantity)

	require.NotNil(t, f.bookings.created)
	assert.Equal(t, domain.StatusPending, f.bookings.created.Status)
	assert.Equal(t, int64(340000), f.bookings.created.TotalPrice)
}

func TestExecute_SlotConflicts(t *testing.T) {
	t.Run("overlapping booking", func(t *testing.T) {
		f := fixtures{
			bookings: &fakeBookingRepo{existing: []*domain.Booking{
				{ID: 5, StartTime: "08:00", EndTime: "12:00", Status: domain.StatusConfirmed},
			}},
			services: &fakeServiceRepo{service: homeService()},
			options:  &fakeOptionRepo{},
			blocked:  &fakeBlockedRepo{},
		}
		uc := newTestUseCase(f)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("adjacent booking does not conflict", func(t *testing.T) {
		f := fixtures{
			bookings: &fakeBookingRepo{existing: []*domain.Booking{
				{ID: 5, StartTime: "14:00", EndTime: "18:00", Status: domain.StatusConfirmed},
			}},
			services: &fakeServiceRepo{service: homeService()},
			options:  &fakeOptionRepo{},
			blocked:  &fakeBlockedRepo{},
		}
		uc := newTestUseCase(f)

		// 08:00 + 240 минут = 12:00, стык с 14:00 не пересекается
		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("cancelled booking does not block the slot", func(t *testing.T) {
		f := fixtures{
			bookings: &fakeBookingRepo{existing: []*domain.Booking{
				{ID: 5, StartTime: "08:00", EndTime: "12:00", Status: domain.StatusCancelled},
			}},
			services: &fakeServiceRepo{service: homeService()},
			options:  &fakeOptionRepo{},
			blocked:  &fakeBlockedRepo{},
		}
		uc := newTestUseCase(f)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("blocked date", func(t *testing.T) {
		f := fixtures{
			bookings: &fakeBookingRepo{},
			services: &fakeServiceRepo{service: homeService()},
			options:  &fakeOptionRepo{},
			blocked:  &fakeBlockedRepo{blocked: true},
		}
		uc := newTestUseCase(f)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDateBlocked)
	})
}

func TestExecute_EndTime(t *testing.T) {
	newFixtures := func(existing ...*domain.Booking) fixtures {
		return fixtures{
			bookings: &fakeBookingRepo{existing: existing},
			services: &fakeServiceRepo{service: homeService()},
			options:  &fakeOptionRepo{},
			blocked:  &fakeBlockedRepo{},
		}
	}

	t.Run("supplied endTime is honored", func(t *testing.T) {
		f := newFixtures()
		uc := newTestUseCase(f)

		req := validRequest()
		req.EndTime = ptr.Ptr(types.TimeString("13:00"))

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("13:00"), resp.EndTime)
		assert.Equal(t, types.TimeString("13:00"), f.bookings.created.EndTime)
	})

	t.Run("supplied endTime widens the conflict window", func(t *testing.T) {
		uc := newTestUseCase(newFixtures(&domain.Booking{
			ID: 5, StartTime: "12:30", EndTime: "18:00", Status: domain.StatusConfirmed,
		}))

		// По длительности услуги окно закончилось бы в 12:00 без конфликта
		req := validRequest()
		req.EndTime = ptr.Ptr(types.TimeString("13:00"))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("endTime must be after startTime", func(t *testing.T) {
		uc := newTestUseCase(newFixtures())

		req := validRequest()
		req.EndTime = ptr.Ptr(types.TimeString("08:00"))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("malformed endTime", func(t *testing.T) {
		uc := newTestUseCase(newFixtures())

		req := validRequest()
		req.EndTime = ptr.Ptr(types.TimeString("25:99"))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_Validation(t *testing.T) {
	newUC := func() *UseCase {
		return newTestUseCase(fixtures{
			bookings: &fakeBookingRepo{},
			services: &fakeServiceRepo{service: homeService()},
			options:  &fakeOptionRepo{},
			blocked:  &fakeBlockedRepo{},
		})
	}

	t.Run("past date", func(t *testing.T) {
		req := validRequest()
		req.BookingDate = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

		_, err := newUC().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("time outside slot universe", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "09:30"

		_, err := newUC().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("unknown service", func(t *testing.T) {
		req := validRequest()
		req.ServiceID = 99

		_, err := newUC().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inactive service", func(t *testing.T) {
		svc := homeService()
		svc.IsActive = false
		uc := newTestUseCase(fixtures{
			bookings: &fakeBookingRepo{},
			services: &fakeServiceRepo{service: svc},
			options:  &fakeOptionRepo{},
			blocked:  &fakeBlockedRepo{},
		})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("home service requires area", func(t *testing.T) {
		req := validRequest()
		req.Area = nil

		_, err := newUC().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAreaRequired)
	})

	t.Run("area below minimum", func(t *testing.T) {
		svc := homeService()
		svc.MinArea = ptr.Ptr(int64(30))
		uc := newTestUseCase(fixtures{
			bookings: &fakeBookingRepo{},
			services: &fakeServiceRepo{service: svc},
			options:  &fakeOptionRepo{},
			blocked:  &fakeBlockedRepo{},
		})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrAreaTooSmall)
	})

	t.Run("empty address", func(t *testing.T) {
		req := validRequest()
		req.Address = ""

		_, err := newUC().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
