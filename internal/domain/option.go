package domain

import "time"

// OptionCategory категория дополнительной опции
type OptionCategory string

const (
	OptionCategoryCleaning  OptionCategory = "CLEANING"
	OptionCategoryAppliance OptionCategory = "APPLIANCE"
	OptionCategorySpecial   OptionCategory = "SPECIAL"
)

// IsValid returns true if the category is one of the known values
func (c OptionCategory) IsValid() bool {
	switch c {
	case OptionCategoryCleaning, OptionCategoryAppliance, OptionCategorySpecial:
		return true
	}
	return false
}

// PriceType определяет, как базовая цена опции комбинируется
// с количеством и площадью при расчёте
type PriceType string

const (
	PriceTypeFixed   PriceType = "FIXED"    // basePrice, количество игнорируется
	PriceTypePerUnit PriceType = "PER_UNIT" // basePrice * quantity
	PriceTypePerArea PriceType = "PER_AREA" // basePrice * area
)

// IsValid returns true if the price type is one of the known values
func (p PriceType) IsValid() bool {
	switch p {
	case PriceTypeFixed, PriceTypePerUnit, PriceTypePerArea:
		return true
	}
	return false
}

// AdditionalOption represents an add-on that can be attached to a quote/booking
type AdditionalOption struct {
	ID          int64
	Name        string
	Description *string
	Category    OptionCategory
	PriceType   PriceType
	BasePrice   int64
	Unit        *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate проверяет инварианты опции
func (o *AdditionalOption) Validate() error {
	if o.Name == "" {
		return ErrEmptyOptionName
	}
	if !o.Category.IsValid() {
		return ErrInvalidOptionCategory
	}
	if !o.PriceType.IsValid() {
		return ErrInvalidPriceType
	}
	if o.BasePrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

// OptionUpdate частичное обновление опции, nil - оставить как есть
type OptionUpdate struct {
	Name        *string
	Description *string
	Category    *OptionCategory
	PriceType   *PriceType
	BasePrice   *int64
	Unit        *string
	IsActive    *bool
}

// OptionsFilter фильтр для выборки опций каталога
type OptionsFilter struct {
	Category        *OptionCategory
	IncludeInactive bool // только для администраторов
}
