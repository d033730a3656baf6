// Package pricing реализует чистый расчёт стоимости заказа.
// Никаких побочных эффектов и обращений к хранилищу: функции работают
// только с переданными на вход данными, поэтому результат детерминирован.
package pricing

import "github.com/jiholee0/CHS-BookingService/internal/domain"

// SelectedOption выбранная клиентом опция с количеством
type SelectedOption struct {
	OptionID int64
	Quantity int // 0 трактуется как 1, отрицательные значения поднимаются до 1
}

// Input входные данные расчёта
type Input struct {
	Service *domain.Service
	Area    int64

	// SelectedOptions - что запросил клиент (id + количество).
	// Options - разрезолвленные активные записи каталога для этих id.
	// Опция, для которой не нашлось активной записи, молча выпадает из суммы:
	// устаревший выбор на клиенте не должен блокировать оформление.
	SelectedOptions []SelectedOption
	Options         []*domain.AdditionalOption

	// ApplianceIDs выбранные позиции микрокаталога бытовой техники.
	// Учитываются только для категории HOME, неизвестные id игнорируются.
	ApplianceIDs []string
}

// OptionBreakdown вклад одной опции в итоговую цену
type OptionBreakdown struct {
	OptionID int64
	Name     string
	Quantity int
	Price    int64
}

// Breakdown результат расчёта
type Breakdown struct {
	ServicePrice int64
	OptionsPrice int64
	TotalPrice   int64
	Options      []OptionBreakdown
	Appliances   []domain.Appliance
}

// Calculate вычисляет стоимость услуги с опциями.
// Вызов с одинаковыми входными данными всегда даёт одинаковый результат.
func Calculate(in Input) Breakdown {
	servicePrice := ServicePrice(in.Service, in.Area)

	quantities := make(map[int64]int, len(in.SelectedOptions))
	for _, sel := range in.SelectedOptions {
		quantities[sel.OptionID] = clampQuantity(sel.Quantity)
	}

	var optionsPrice int64
	optionBreakdowns := make([]OptionBreakdown, 0, len(in.Options))

	for _, opt := range in.Options {
		if opt == nil || !opt.IsActive {
			continue
		}

		quantity, ok := quantities[opt.ID]
		if !ok {
			quantity = domain.MinQuantity
		}

		price := OptionPrice(opt, quantity, in.Area)
		optionsPrice += price
		optionBreakdowns = append(optionBreakdowns, OptionBreakdown{
			OptionID: opt.ID,
			Name:     opt.Name,
			Quantity: quantity,
			Price:    price,
		})
	}

	// Доплата за бытовую технику - только для домашней уборки.
	// Каждая позиция добавляет одну фиксированную цену независимо от количества.
	appliances := make([]domain.Appliance, 0, len(in.ApplianceIDs))
	if in.Service != nil && in.Service.Category == domain.CategoryHome {
		for _, id := range in.ApplianceIDs {
			appliance, ok := domain.ApplianceByID(id)
			if !ok {
				continue
			}
			optionsPrice += appliance.Price
			appliances = append(appliances, appliance)
		}
	}

	return Breakdown{
		ServicePrice: servicePrice,
		OptionsPrice: optionsPrice,
		TotalPrice:   servicePrice + optionsPrice,
		Options:      optionBreakdowns,
		Appliances:   appliances,
	}
}

// ServicePrice вычисляет стоимость самой услуги.
// Для категории HOME действует фиксированная ставка за единицу площади,
// собственные basePrice/pricePerArea услуги игнорируются.
// Для остальных категорий: basePrice + pricePerArea * area.
func ServicePrice(service *domain.Service, area int64) int64 {
	if service == nil {
		return 0
	}

	if service.Category == domain.CategoryHome {
		return area * domain.HomeRatePerArea
	}

	return service.BasePrice + service.PricePerArea*area
}

// OptionPrice вычисляет вклад одной опции в зависимости от типа цены
func OptionPrice(opt *domain.AdditionalOption, quantity int, area int64) int64 {
	quantity = clampQuantity(quantity)

	switch opt.PriceType {
	case domain.PriceTypeFixed:
		return opt.BasePrice
	case domain.PriceTypePerUnit:
		return opt.BasePrice * int64(quantity)
	case domain.PriceTypePerArea:
		return opt.BasePrice * area
	}
	return 0
}

// clampQuantity поднимает количество до допустимого минимума
func clampQuantity(q int) int {
	if q < domain.MinQuantity {
		return domain.MinQuantity
	}
	return q
}
