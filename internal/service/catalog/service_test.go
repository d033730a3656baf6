package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	optionRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/option"
	serviceRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/service"
	"github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
	"github.com/jiholee0/CHS-BookingService/internal/service/catalog/models"
	"github.com/jiholee0/CHS-BookingService/pkg/ptr"
)

const (
	adminID    = int64(1)
	customerID = int64(7)
)

type fakeServiceRepo struct {
	services map[int64]*domain.Service
	inUse    bool
	nextID   int64

	lastFilter domain.ServicesFilter
	lastUpdate *domain.ServiceUpdate
}

func newFakeServiceRepo(services ...*domain.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: make(map[int64]*domain.Service)}
	for _, s := range services {
		repo.services[s.ID] = s
		if s.ID > repo.nextID {
			repo.nextID = s.ID
		}
	}
	return repo
}

func (f *fakeServiceRepo) Create(_ context.Context, service *domain.Service) (*domain.Service, error) {
	f.nextID++
	created := *service
	created.ID = f.nextID
	f.services[created.ID] = &created
	return &created, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return service, nil
}

func (f *fakeServiceRepo) List(_ context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	f.lastFilter = filter

	result := make([]*domain.Service, 0, len(f.services))
	for _, s := range f.services {
		if !filter.IncludeInactive && !s.IsActive {
			continue
		}
		if filter.Category != nil && s.Category != *filter.Category {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, id int64, upd domain.ServiceUpdate) error {
	if _, ok := f.services[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	f.lastUpdate = &upd
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.services[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	if f.inUse {
		return serviceRepo.ErrServiceInUse
	}
	delete(f.services, id)
	return nil
}

type fakeOptionRepo struct {
	options map[int64]*domain.AdditionalOption
	inUse   bool
	nextID  int64
}

func newFakeOptionRepo(options ...*domain.AdditionalOption) *fakeOptionRepo {
	repo := &fakeOptionRepo{options: make(map[int64]*domain.AdditionalOption)}
	for _, o := range options {
		repo.options[o.ID] = o
		if o.ID > repo.nextID {
			repo.nextID = o.ID
		}
	}
	return repo
}

func (f *fakeOptionRepo) Create(_ context.Context, opt *domain.AdditionalOption) (*domain.AdditionalOption, error) {
	f.nextID++
	created := *opt
	created.ID = f.nextID
	f.options[created.ID] = &created
	return &created, nil
}

func (f *fakeOptionRepo) GetByID(_ context.Context, id int64) (*domain.AdditionalOption, error) {
	opt, ok := f.options[id]
	if !ok {
		return nil, optionRepo.ErrOptionNotFound
	}
	return opt, nil
}

func (f *fakeOptionRepo) List(_ context.Context, filter domain.OptionsFilter) ([]*domain.AdditionalOption, error) {
	result := make([]*domain.AdditionalOption, 0, len(f.options))
	for _, o := range f.options {
		if !filter.IncludeInactive && !o.IsActive {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (f *fakeOptionRepo) Update(_ context.Context, id int64, _ domain.OptionUpdate) error {
	if _, ok := f.options[id]; !ok {
		return optionRepo.ErrOptionNotFound
	}
	return nil
}

func (f *fakeOptionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.options[id]; !ok {
		return optionRepo.ErrOptionNotFound
	}
	if f.inUse {
		return optionRepo.ErrOptionInUse
	}
	delete(f.options, id)
	return nil
}

type fakeIdentityClient struct{}

func (fakeIdentityClient) GetUser(_ context.Context, userID int64) (*identity.User, error) {
	if userID == adminID {
		return &identity.User{ID: userID, Role: identity.RoleAdmin}, nil
	}
	return &identity.User{ID: userID, Role: identity.RoleCustomer}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(services *fakeServiceRepo, options *fakeOptionRepo) *Service {
	return NewService(services, options, fakeIdentityClient{}, noopLogger{})
}

func activeService() *domain.Service {
	return &domain.Service{
		ID:              1,
		Name:            "Home cleaning",
		Category:        domain.CategoryHome,
		DurationMinutes: 240,
		IsActive:        true,
	}
}

func inactiveService() *domain.Service {
	return &domain.Service{
		ID:              2,
		Name:            "Legacy cleaning",
		Category:        domain.CategoryOffice,
		DurationMinutes: 120,
		IsActive:        false,
	}
}

func TestListServices(t *testing.T) {
	t.Run("public request sees only active", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(activeService(), inactiveService()), newFakeOptionRepo())

		resp, err := svc.ListServices(context.Background(), &models.ListServicesRequest{})
		require.NoError(t, err)
		require.Len(t, resp.Services, 1)
		assert.Equal(t, "Home cleaning", resp.Services[0].Name)
	})

	t.Run("admin sees inactive on demand", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(activeService(), inactiveService()), newFakeOptionRepo())

		resp, err := svc.ListServices(context.Background(), &models.ListServicesRequest{
			UserID:          ptr.Ptr(adminID),
			IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Services, 2)
	})

	t.Run("includeInactive without user is denied", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(activeService()), newFakeOptionRepo())

		_, err := svc.ListServices(context.Background(), &models.ListServicesRequest{IncludeInactive: true})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("includeInactive for customer is denied", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(activeService()), newFakeOptionRepo())

		_, err := svc.ListServices(context.Background(), &models.ListServicesRequest{
			UserID:          ptr.Ptr(customerID),
			IncludeInactive: true,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid category", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(), newFakeOptionRepo())

		_, err := svc.ListServices(context.Background(), &models.ListServicesRequest{
			Category: ptr.Ptr("GARDEN"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreateService(t *testing.T) {
	t.Run("admin creates service", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(), newFakeOptionRepo())

		resp, err := svc.CreateService(context.Background(), adminID, &models.CreateServiceRequest{
			Name:            "Office cleaning",
			Description:     "Weekly office cleaning",
			Category:        "OFFICE",
			BasePrice:       100000,
			PricePerArea:    5000,
			DurationMinutes: 180,
		})
		require.NoError(t, err)
		assert.Equal(t, "Office cleaning", resp.Name)
		assert.True(t, resp.IsActive, "new services are active by default")
	})

	t.Run("customer is denied", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(), newFakeOptionRepo())

		_, err := svc.CreateService(context.Background(), customerID, &models.CreateServiceRequest{
			Name:     "Office cleaning",
			Category: "OFFICE",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid category fails validation", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(), newFakeOptionRepo())

		_, err := svc.CreateService(context.Background(), adminID, &models.CreateServiceRequest{
			Name:     "Garden cleaning",
			Category: "GARDEN",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateService(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		repo := newFakeServiceRepo(activeService())
		svc := newTestService(repo, newFakeOptionRepo())

		_, err := svc.UpdateService(context.Background(), adminID, 1, &models.UpdateServiceRequest{
			BasePrice: ptr.Ptr(int64(150000)),
		})
		require.NoError(t, err)
		require.NotNil(t, repo.lastUpdate)
		assert.Equal(t, int64(150000), *repo.lastUpdate.BasePrice)
		assert.Nil(t, repo.lastUpdate.Name, "untouched fields stay nil")
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(), newFakeOptionRepo())

		_, err := svc.UpdateService(context.Background(), adminID, 99, &models.UpdateServiceRequest{})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestDeleteService(t *testing.T) {
	t.Run("deletes unused service", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(activeService()), newFakeOptionRepo())
		assert.NoError(t, svc.DeleteService(context.Background(), adminID, 1))
	})

	t.Run("service referenced by bookings", func(t *testing.T) {
		repo := newFakeServiceRepo(activeService())
		repo.inUse = true
		svc := newTestService(repo, newFakeOptionRepo())

		assert.ErrorIs(t, svc.DeleteService(context.Background(), adminID, 1), ErrServiceInUse)
	})

	t.Run("customer is denied", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(activeService()), newFakeOptionRepo())
		assert.ErrorIs(t, svc.DeleteService(context.Background(), customerID, 1), ErrAccessDenied)
	})
}

func TestOptions(t *testing.T) {
	activeOption := func() *domain.AdditionalOption {
		return &domain.AdditionalOption{
			ID:        1,
			Name:      "Window cleaning",
			Category:  domain.OptionCategoryCleaning,
			PriceType: domain.PriceTypePerUnit,
			BasePrice: 10000,
			IsActive:  true,
		}
	}

	t.Run("public list hides inactive", func(t *testing.T) {
		stale := activeOption()
		stale.ID = 2
		stale.IsActive = false

		svc := newTestService(newFakeServiceRepo(), newFakeOptionRepo(activeOption(), stale))

		resp, err := svc.ListOptions(context.Background(), &models.ListOptionsRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Options, 1)
	})

	t.Run("create validates price type", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(), newFakeOptionRepo())

		_, err := svc.CreateOption(context.Background(), adminID, &models.CreateOptionRequest{
			Name:      "Window cleaning",
			Category:  "CLEANING",
			PriceType: "PER_HOUR",
			BasePrice: 10000,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("delete option in use", func(t *testing.T) {
		repo := newFakeOptionRepo(activeOption())
		repo.inUse = true
		svc := newTestService(newFakeServiceRepo(), repo)

		assert.ErrorIs(t, svc.DeleteOption(context.Background(), adminID, 1), ErrOptionInUse)
	})

	t.Run("update missing option", func(t *testing.T) {
		svc := newTestService(newFakeServiceRepo(), newFakeOptionRepo())

		_, err := svc.UpdateOption(context.Background(), adminID, 99, &models.UpdateOptionRequest{})
		assert.ErrorIs(t, err, ErrOptionNotFound)
	})
}
