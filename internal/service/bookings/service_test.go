package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	blockedRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	bookingRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/booking"
	"github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
	"github.com/jiholee0/CHS-BookingService/internal/service/bookings/models"
	"github.com/jiholee0/CHS-BookingService/pkg/ptr"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

const (
	ownerID = int64(7)
	adminID = int64(1)
	otherID = int64(99)
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	updatedFields *domain.BookingUpdate
	updatedStatus *domain.BookingStatusUpdate
	deletedID     int64

	// вызывается перед записью - имитирует параллельное изменение
	beforeWrite func()
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.ExcludeCancelled && b.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateFields(_ context.Context, id int64, upd domain.BookingUpdate) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	booking, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if upd.PrevStatus != "" && booking.Status != upd.PrevStatus {
		return bookingRepo.ErrStatusConflict
	}
	f.updatedFields = &upd
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, upd domain.BookingStatusUpdate) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	booking, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if upd.PrevStatus != "" && booking.Status != upd.PrevStatus {
		return bookingRepo.ErrStatusConflict
	}
	f.updatedStatus = &upd
	booking.Status = upd.Status
	booking.CompletedAt = upd.CompletedAt
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.deletedID = id
	delete(f.bookings, id)
	return nil
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

type fakeIdentityClient struct{}

func (fakeIdentityClient) GetUser(_ context.Context, userID int64) (*identity.User, error) {
	if userID == adminID {
		return &identity.User{ID: userID, Role: identity.RoleAdmin}, nil
	}
	return &identity.User{ID: userID, Role: identity.RoleCustomer}, nil
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

func newTestService(repo *fakeBookingRepo, blocked *fakeBlockedRepo) *Service {
	svc := NewService(repo, blocked, fakeIdentityClient{}, testSlots, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)}
	return svc
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          10,
		CustomerID:  ownerID,
		ServiceID:   1,
		BookingDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "08:00",
		EndTime:     "12:00",
		Status:      status,
		Address:     "ул. Ленина, 1",
		Service: &domain.Service{
			ID:              1,
			Name:            "Home cleaning",
			Category:        domain.CategoryHome,
			DurationMinutes: 240,
			IsActive:        true,
		},
	}
}

func TestGetByID(t *testing.T) {
	t.Run("owner can read", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})

		resp, err := svc.GetByID(context.Background(), 10, ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, "Home cleaning", resp.ServiceName)
	})

	t.Run("admin can read foreign booking", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})

		_, err := svc.GetByID(context.Background(), 10, adminID)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})

		_, err := svc.GetByID(context.Background(), 10, otherID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(), &fakeBlockedRepo{})

		_, err := svc.GetByID(context.Background(), 10, ownerID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("owner edits pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(domain.StatusPending))
		svc := newTestService(repo, &fakeBlockedRepo{})

		_, err := svc.Update(context.Background(), 10, &models.UpdateBookingRequest{
			UserID:  ownerID,
			Address: ptr.Ptr("ул. Мира, 5"),
		})
		require.NoError(t, err)
		require.NotNil(t, repo.updatedFields)
		assert.Equal(t, "ул. Мира, 5", *repo.updatedFields.Address)
	})

	t.Run("reschedule recomputes end time", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(domain.StatusPending))
		svc := newTestService(repo, &fakeBlockedRepo{})

		_, err := svc.Update(context.Background(), 10, &models.UpdateBookingRequest{
			UserID:      ownerID,
			BookingDate: ptr.Ptr("2025-10-20"),
			StartTime:   ptr.Ptr("14:00"),
		})
		require.NoError(t, err)
		require.NotNil(t, repo.updatedFields)
		assert.Equal(t, types.TimeString("14:00"), *repo.updatedFields.StartTime)
		assert.Equal(t, types.TimeString("18:00"), *repo.updatedFields.EndTime)
	})

	t.Run("concurrent confirmation blocks the edit", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(domain.StatusPending))
		svc := newTestService(repo, &fakeBlockedRepo{})

		// Между чтением и записью администратор подтверждает бронирование
		repo.beforeWrite = func() {
			repo.bookings[10].Status = domain.StatusConfirmed
		}

		_, err := svc.Update(context.Background(), 10, &models.UpdateBookingRequest{
			UserID:  ownerID,
			Address: ptr.Ptr("ул. Мира, 5"),
		})
		assert.ErrorIs(t, err, ErrCannotEdit)
		assert.Nil(t, repo.updatedFields)
	})

	t.Run("confirmed booking cannot be edited", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusConfirmed)), &fakeBlockedRepo{})

		_, err := svc.Update(context.Background(), 10, &models.UpdateBookingRequest{
			UserID:  ownerID,
			Address: ptr.Ptr("ул. Мира, 5"),
		})
		assert.ErrorIs(t, err, ErrCannotEdit)
	})

	t.Run("only owner can edit", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})

		_, err := svc.Update(context.Background(), 10, &models.UpdateBookingRequest{
			UserID:  adminID,
			Address: ptr.Ptr("ул. Мира, 5"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("reschedule to blocked date", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{blocked: true})

		_, err := svc.Update(context.Background(), 10, &models.UpdateBookingRequest{
			UserID:      ownerID,
			BookingDate: ptr.Ptr("2025-10-20"),
		})
		assert.ErrorIs(t, err, ErrDateBlocked)
	})

	t.Run("reschedule to past date", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})

		_, err := svc.Update(context.Background(), 10, &models.UpdateBookingRequest{
			UserID:      ownerID,
			BookingDate: ptr.Ptr("2025-09-01"),
		})
		assert.ErrorIs(t, err, ErrInvalidBookingDate)
	})

	t.Run("reschedule onto occupied slot", func(t *testing.T) {
		other := testBooking(domain.StatusConfirmed)
		other.ID = 11
		other.CustomerID = otherID
		other.StartTime = "14:00"
		other.EndTime = "18:00"

		repo := newFakeBookingRepo(testBooking(domain.StatusPending), other)
		svc := newTestService(repo, &fakeBlockedRepo{})

		_, err := svc.Update(context.Background(), 10, &models.UpdateBookingRequest{
			UserID:    ownerID,
			StartTime: ptr.Ptr("14:00"),
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("admin advances one step", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(domain.StatusPending))
		svc := newTestService(repo, &fakeBlockedRepo{})

		resp, err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: adminID,
			Status: "confirmed",
		})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})

		_, err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: adminID,
			Status: "completed",
		})
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("completion stamps time and images", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(domain.StatusInProgress))
		svc := newTestService(repo, &fakeBlockedRepo{})

		resp, err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID:       adminID,
			Status:       "completed",
			BeforeImages: []string{"before.jpg"},
			AfterImages:  []string{"after.jpg"},
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)

		require.NotNil(t, repo.updatedStatus)
		require.NotNil(t, repo.updatedStatus.CompletedAt)
		assert.Equal(t, []string{"before.jpg"}, repo.updatedStatus.BeforeImages)
	})

	t.Run("explicit completedAt is kept", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(domain.StatusInProgress))
		svc := newTestService(repo, &fakeBlockedRepo{})

		completedAt := time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC)
		_, err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID:      adminID,
			Status:      "completed",
			CompletedAt: &completedAt,
		})
		require.NoError(t, err)

		require.NotNil(t, repo.updatedStatus.CompletedAt)
		assert.Equal(t, completedAt, *repo.updatedStatus.CompletedAt)
	})

	t.Run("concurrent cancellation is not overwritten", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(domain.StatusPending))
		svc := newTestService(repo, &fakeBlockedRepo{})

		// Второй администратор успевает отменить бронирование
		// между чтением и записью первого
		repo.beforeWrite = func() {
			repo.bookings[10].Status = domain.StatusCancelled
		}

		_, err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: adminID,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.Equal(t, domain.StatusCancelled, repo.bookings[10].Status)
	})

	t.Run("customer cannot change status", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})

		_, err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: ownerID,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})

		_, err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: adminID,
			Status: "archived",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDelete(t *testing.T) {
	t.Run("owner cancels pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(domain.StatusPending))
		svc := newTestService(repo, &fakeBlockedRepo{})

		err := svc.Delete(context.Background(), 10, ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), repo.deletedID)
	})

	t.Run("owner cancels confirmed booking", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusConfirmed)), &fakeBlockedRepo{})
		assert.NoError(t, svc.Delete(context.Background(), 10, ownerID))
	})

	t.Run("owner cannot cancel in_progress booking", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusInProgress)), &fakeBlockedRepo{})
		assert.ErrorIs(t, svc.Delete(context.Background(), 10, ownerID), ErrCannotCancel)
	})

	t.Run("admin purges completed booking", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusCompleted)), &fakeBlockedRepo{})
		assert.NoError(t, svc.Delete(context.Background(), 10, adminID))
	})

	t.Run("admin cannot purge active booking", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusConfirmed)), &fakeBlockedRepo{})
		assert.ErrorIs(t, svc.Delete(context.Background(), 10, adminID), ErrCannotDelete)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(testBooking(domain.StatusPending)), &fakeBlockedRepo{})
		assert.ErrorIs(t, svc.Delete(context.Background(), 10, otherID), ErrAccessDenied)
	})
}
