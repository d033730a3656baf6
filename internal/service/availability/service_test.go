package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	blockedRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	"github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
	"github.com/jiholee0/CHS-BookingService/internal/service/availability/models"
	"github.com/jiholee0/CHS-BookingService/pkg/ptr"
)

const (
	adminID    = int64(1)
	customerID = int64(7)
)

type fakeBlockedRepo struct {
	dates  map[string]*domain.BlockedDate
	nextID int64

	listFrom time.Time
	listTo   time.Time
}

func newFakeBlockedRepo(dates ...string) *fakeBlockedRepo {
	repo := &fakeBlockedRepo{dates: make(map[string]*domain.BlockedDate)}
	for _, raw := range dates {
		repo.nextID++
		date, _ := time.Parse(domain.DateFormat, raw)
		repo.dates[raw] = &domain.BlockedDate{ID: repo.nextID, Date: date}
	}
	return repo
}

func (f *fakeBlockedRepo) Create(_ context.Context, date time.Time, reason *string) (*domain.BlockedDate, error) {
	key := date.Format(domain.DateFormat)
	if _, ok := f.dates[key]; ok {
		return nil, blockedRepo.ErrDuplicateDate
	}
	f.nextID++
	blocked := &domain.BlockedDate{ID: f.nextID, Date: date, Reason: reason}
	f.dates[key] = blocked
	return blocked, nil
}

func (f *fakeBlockedRepo) GetByDate(_ context.Context, date time.Time) (*domain.BlockedDate, error) {
	blocked, ok := f.dates[date.Format(domain.DateFormat)]
	if !ok {
		return nil, blockedRepo.ErrDateNotFound
	}
	return blocked, nil
}

func (f *fakeBlockedRepo) List(_ context.Context, from, to time.Time) ([]*domain.BlockedDate, error) {
	f.listFrom = from
	f.listTo = to

	result := make([]*domain.BlockedDate, 0, len(f.dates))
	for _, blocked := range f.dates {
		if blocked.Date.Before(from) || blocked.Date.After(to) {
			continue
		}
		result = append(result, blocked)
	}
	return result, nil
}

func (f *fakeBlockedRepo) Delete(_ context.Context, id int64) error {
	for key, blocked := range f.dates {
		if blocked.ID == id {
			delete(f.dates, key)
			return nil
		}
	}
	return blockedRepo.ErrDateNotFound
}

func (f *fakeBlockedRepo) DeleteByDate(_ context.Context, date time.Time) error {
	key := date.Format(domain.DateFormat)
	if _, ok := f.dates[key]; !ok {
		return blockedRepo.ErrDateNotFound
	}
	delete(f.dates, key)
	return nil
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

func newTestService(repo *fakeBlockedRepo) *Service {
	svc := NewService(repo, fakeIdentityClient{}, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)}
	return svc
}

func TestListBlockedDates(t *testing.T) {
	t.Run("default horizon is three months from today", func(t *testing.T) {
		repo := newFakeBlockedRepo("2025-10-15")
		svc := newTestService(repo)

		resp, err := svc.ListBlockedDates(context.Background(), &models.ListBlockedDatesRequest{})
		require.NoError(t, err)
		require.Len(t, resp.BlockedDates, 1)

		assert.Equal(t, "2025-10-01", repo.listFrom.Format(domain.DateFormat))
		assert.Equal(t, "2026-01-01", repo.listTo.Format(domain.DateFormat))
	})

	t.Run("explicit bounds", func(t *testing.T) {
		repo := newFakeBlockedRepo("2025-10-15", "2025-12-31")
		svc := newTestService(repo)

		resp, err := svc.ListBlockedDates(context.Background(), &models.ListBlockedDatesRequest{
			From: ptr.Ptr("2025-10-01"),
			To:   ptr.Ptr("2025-10-31"),
		})
		require.NoError(t, err)
		require.Len(t, resp.BlockedDates, 1)
		assert.Equal(t, "2025-10-15", resp.BlockedDates[0].Date)
	})

	t.Run("to before from", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())

		_, err := svc.ListBlockedDates(context.Background(), &models.ListBlockedDatesRequest{
			From: ptr.Ptr("2025-10-31"),
			To:   ptr.Ptr("2025-10-01"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad date format", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())

		_, err := svc.ListBlockedDates(context.Background(), &models.ListBlockedDatesRequest{
			From: ptr.Ptr("31.10.2025"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBlockDate(t *testing.T) {
	t.Run("admin blocks a date", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())

		resp, err := svc.BlockDate(context.Background(), adminID, &models.BlockDateRequest{
			Date:   "2025-10-15",
			Reason: ptr.Ptr("holiday"),
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-10-15", resp.Date)
		require.NotNil(t, resp.Reason)
		assert.Equal(t, "holiday", *resp.Reason)
	})

	t.Run("duplicate date", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo("2025-10-15"))

		_, err := svc.BlockDate(context.Background(), adminID, &models.BlockDateRequest{Date: "2025-10-15"})
		assert.ErrorIs(t, err, ErrDuplicateDate)
	})

	t.Run("customer is denied", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())

		_, err := svc.BlockDate(context.Background(), customerID, &models.BlockDateRequest{Date: "2025-10-15"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid date format", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())

		_, err := svc.BlockDate(context.Background(), adminID, &models.BlockDateRequest{Date: "15.10.2025"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBulkBlockDates(t *testing.T) {
	t.Run("partial success skips duplicates", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo("2025-10-15"))

		resp, err := svc.BulkBlockDates(context.Background(), adminID, &models.BulkBlockDatesRequest{
			Dates: []string{"2025-10-14", "2025-10-15", "2025-10-16"},
		})
		require.NoError(t, err)
		assert.Len(t, resp.Created, 2)
		assert.Equal(t, []string{"2025-10-15"}, resp.Skipped)
	})

	t.Run("one bad date fails the whole request", func(t *testing.T) {
		repo := newFakeBlockedRepo()
		svc := newTestService(repo)

		_, err := svc.BulkBlockDates(context.Background(), adminID, &models.BulkBlockDatesRequest{
			Dates: []string{"2025-10-14", "not-a-date"},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, repo.dates, "no dates should be created")
	})

	t.Run("empty list", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())

		_, err := svc.BulkBlockDates(context.Background(), adminID, &models.BulkBlockDatesRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("customer is denied", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())

		_, err := svc.BulkBlockDates(context.Background(), customerID, &models.BulkBlockDatesRequest{
			Dates: []string{"2025-10-14"},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestUnblockDate(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		repo := newFakeBlockedRepo("2025-10-15")
		svc := newTestService(repo)

		require.NoError(t, svc.UnblockDate(context.Background(), adminID, 1))
		assert.Empty(t, repo.dates)
	})

	t.Run("by date", func(t *testing.T) {
		repo := newFakeBlockedRepo("2025-10-15")
		svc := newTestService(repo)

		require.NoError(t, svc.UnblockDateByDate(context.Background(), adminID, "2025-10-15"))
		assert.Empty(t, repo.dates)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())
		assert.ErrorIs(t, svc.UnblockDate(context.Background(), adminID, 99), ErrDateNotFound)
	})

	t.Run("missing date", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo())
		assert.ErrorIs(t, svc.UnblockDateByDate(context.Background(), adminID, "2025-10-15"), ErrDateNotFound)
	})

	t.Run("customer is denied", func(t *testing.T) {
		svc := newTestService(newFakeBlockedRepo("2025-10-15"))
		assert.ErrorIs(t, svc.UnblockDate(context.Background(), customerID, 1), ErrAccessDenied)
	})
}
