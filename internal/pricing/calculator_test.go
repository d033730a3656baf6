package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	"github.com/jiholee0/CHS-BookingService/pkg/ptr"
)

func homeService() *domain.Service {
	return &domain.Service{
		ID:       1,
		Name:     "Home cleaning",
		Category: domain.CategoryHome,
		// Для HOME эти поля игнорируются
		BasePrice:    99999,
		PricePerArea: 99999,
		IsActive:     true,
	}
}

func officeService() *domain.Service {
	return &domain.Service{
		ID:           2,
		Name:         "Office cleaning",
		Category:     domain.CategoryOffice,
		BasePrice:    100000,
		PricePerArea: 5000,
		IsActive:     true,
	}
}

func TestServicePrice(t *testing.T) {
	t.Run("home uses flat rate per area", func(t *testing.T) {
		price := ServicePrice(homeService(), 20)
		assert.Equal(t, 20*domain.HomeRatePerArea, price)
	})

	t.Run("home ignores own base price", func(t *testing.T) {
		svc := homeService()
		svc.BasePrice = 1
		svc.PricePerArea = 1
		assert.Equal(t, ServicePrice(homeService(), 20), ServicePrice(svc, 20))
	})

	t.Run("other categories use base plus per-area", func(t *testing.T) {
		price := ServicePrice(officeService(), 50)
		assert.Equal(t, int64(100000+5000*50), price)
	})

	t.Run("nil service", func(t *testing.T) {
		assert.Equal(t, int64(0), ServicePrice(nil, 20))
	})
}

func TestOptionPrice(t *testing.T) {
	t.Run("fixed ignores quantity", func(t *testing.T) {
		opt := &domain.AdditionalOption{PriceType: domain.PriceTypeFixed, BasePrice: 10000}
		assert.Equal(t, int64(10000), OptionPrice(opt, 5, 0))
	})

	t.Run("per unit multiplies by quantity", func(t *testing.T) {
		opt := &domain.AdditionalOption{PriceType: domain.PriceTypePerUnit, BasePrice: 10000}
		assert.Equal(t, int64(30000), OptionPrice(opt, 3, 0))
	})

	t.Run("per area multiplies by area", func(t *testing.T) {
		opt := &domain.AdditionalOption{PriceType: domain.PriceTypePerArea, BasePrice: 500}
		assert.Equal(t, int64(500*30), OptionPrice(opt, 1, 30))
	})

	t.Run("quantity below minimum is clamped", func(t *testing.T) {
		opt := &domain.AdditionalOption{PriceType: domain.PriceTypePerUnit, BasePrice: 10000}
		assert.Equal(t, int64(10000), OptionPrice(opt, 0, 0))
		assert.Equal(t, int64(10000), OptionPrice(opt, -3, 0))
	})
}

func TestCalculate(t *testing.T) {
	t.Run("home service with options and appliances", func(t *testing.T) {
		breakdown := Calculate(Input{
			Service: homeService(),
			Area:    20,
			SelectedOptions: []SelectedOption{
				{OptionID: 10, Quantity: 2},
			},
			Options: []*domain.AdditionalOption{
				{ID: 10, Name: "Window cleaning", PriceType: domain.PriceTypePerUnit, BasePrice: 10000, IsActive: true},
			},
			ApplianceIDs: []string{"washer", "aircon"},
		})

		assert.Equal(t, int64(300000), breakdown.ServicePrice)
		assert.Equal(t, int64(20000+2*domain.AppliancePrice), breakdown.OptionsPrice)
		assert.Equal(t, breakdown.ServicePrice+breakdown.OptionsPrice, breakdown.TotalPrice)

		require.Len(t, breakdown.Options, 1)
		assert.Equal(t, int64(20000), breakdown.Options[0].Price)
		require.Len(t, breakdown.Appliances, 2)
	})

	t.Run("inactive option is silently dropped", func(t *testing.T) {
		breakdown := Calculate(Input{
			Service: officeService(),
			Area:    10,
			SelectedOptions: []SelectedOption{
				{OptionID: 10, Quantity: 1},
			},
			Options: []*domain.AdditionalOption{
				{ID: 10, Name: "Stale option", PriceType: domain.PriceTypeFixed, BasePrice: 10000, IsActive: false},
			},
		})

		assert.Empty(t, breakdown.Options)
		assert.Equal(t, int64(0), breakdown.OptionsPrice)
	})

	t.Run("appliances ignored outside home category", func(t *testing.T) {
		breakdown := Calculate(Input{
			Service:      officeService(),
			Area:         10,
			ApplianceIDs: []string{"washer", "refrigerator"},
		})

		assert.Empty(t, breakdown.Appliances)
		assert.Equal(t, int64(0), breakdown.OptionsPrice)
	})

	t.Run("unknown appliance id is ignored", func(t *testing.T) {
		breakdown := Calculate(Input{
			Service:      homeService(),
			Area:         10,
			ApplianceIDs: []string{"dishwasher", "washer"},
		})

		require.Len(t, breakdown.Appliances, 1)
		assert.Equal(t, "washer", breakdown.Appliances[0].ID)
	})

	t.Run("deterministic for equal inputs", func(t *testing.T) {
		input := Input{
			Service: homeService(),
			Area:    25,
			SelectedOptions: []SelectedOption{
				{OptionID: 10, Quantity: 3},
			},
			Options: []*domain.AdditionalOption{
				{ID: 10, Name: "Window cleaning", PriceType: domain.PriceTypePerUnit, BasePrice: 10000, IsActive: true},
			},
			ApplianceIDs: []string{"refrigerator"},
		}

		first := Calculate(input)
		second := Calculate(input)
		assert.Equal(t, first, second)
	})
}

// Проверяем, что указательные поля услуги не влияют на расчёт
func TestCalculate_MinAreaDoesNotAffectPrice(t *testing.T) {
	svc := officeService()
	svc.MinArea = ptr.Ptr(int64(100))

	withMin := Calculate(Input{Service: svc, Area: 50})
	without := Calculate(Input{Service: officeService(), Area: 50})
	assert.Equal(t, without.TotalPrice, withMin.TotalPrice)
}
