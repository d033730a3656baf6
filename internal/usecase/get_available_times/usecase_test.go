package get_available_times

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	blockedRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	slots []domain.BookedSlot
	err   error
}

func (f *fakeBookingRepo) GetBookedSlots(_ context.Context, _ time.Time) ([]domain.BookedSlot, error) {
	return f.slots, f.err
}

type fakeBlockedRepo struct {
	blocked bool
	err     error
}

func (f *fakeBlockedRepo) GetByDate(_ context.Context, date time.Time) (*domain.BlockedDate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.blocked {
		return &domain.BlockedDate{ID: 1, Date: date}, nil
	}
	return nil, blockedRepo.ErrDateNotFound
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

func newTestUseCase(bookings *fakeBookingRepo, blocked *fakeBlockedRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, blocked, testSlots, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	futureDate := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	t.Run("all slots free", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockedRepo{}, now)

		resp, err := uc.Execute(context.Background(), &Request{Date: futureDate})
		require.NoError(t, err)
		assert.Equal(t, "2025-10-15", resp.Date)
		assert.Equal(t, []string{"08:00", "14:00"}, resp.AvailableTimes)
	})

	t.Run("booked slot is excluded", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{
			slots: []domain.BookedSlot{{StartTime: "08:00", EndTime: "12:00"}},
		}, &fakeBlockedRepo{}, now)

		resp, err := uc.Execute(context.Background(), &Request{Date: futureDate})
		require.NoError(t, err)
		assert.Equal(t, []string{"14:00"}, resp.AvailableTimes)
		assert.Equal(t, []BookedSlot{{StartTime: "08:00", EndTime: "12:00"}}, resp.BookedSlots)
	})

	t.Run("slot inside busy window is excluded", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{
			slots: []domain.BookedSlot{{StartTime: "07:00", EndTime: "15:00"}},
		}, &fakeBlockedRepo{}, now)

		resp, err := uc.Execute(context.Background(), &Request{Date: futureDate})
		require.NoError(t, err)
		assert.Empty(t, resp.AvailableTimes)
	})

	t.Run("window ending at slot start does not block it", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{
			slots: []domain.BookedSlot{{StartTime: "08:00", EndTime: "14:00"}},
		}, &fakeBlockedRepo{}, now)

		resp, err := uc.Execute(context.Background(), &Request{Date: futureDate})
		require.NoError(t, err)
		assert.Equal(t, []string{"14:00"}, resp.AvailableTimes)
	})

	t.Run("blocked date returns empty list", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{
			slots: []domain.BookedSlot{{StartTime: "08:00", EndTime: "12:00"}},
		}, &fakeBlockedRepo{blocked: true}, now)

		resp, err := uc.Execute(context.Background(), &Request{Date: futureDate})
		require.NoError(t, err)
		assert.Empty(t, resp.AvailableTimes)
		assert.Len(t, resp.BookedSlots, 1, "booked windows are still reported")
	})

	t.Run("past date returns empty list", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockedRepo{}, now)

		resp, err := uc.Execute(context.Background(), &Request{
			Date: time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.AvailableTimes)
	})

	t.Run("today hides slots that already started", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockedRepo{}, now)

		resp, err := uc.Execute(context.Background(), &Request{
			Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"14:00"}, resp.AvailableTimes)
	})

	t.Run("zero date is invalid", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockedRepo{}, now)

		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{err: errors.New("connection refused")}, &fakeBlockedRepo{}, now)

		_, err := uc.Execute(context.Background(), &Request{Date: futureDate})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
