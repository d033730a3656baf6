package domain

import "errors"

var (
	// ErrEmptyServiceName возвращается при пустом названии услуги
	ErrEmptyServiceName = errors.New("domain: service name must not be empty")

	// ErrInvalidServiceCategory возвращается при неизвестной категории услуги
	ErrInvalidServiceCategory = errors.New("domain: invalid service category")

	// ErrEmptyOptionName возвращается при пустом названии опции
	ErrEmptyOptionName = errors.New("domain: option name must not be empty")

	// ErrInvalidOptionCategory возвращается при неизвестной категории опции
	ErrInvalidOptionCategory = errors.New("domain: invalid option category")

	// ErrInvalidPriceType возвращается при неизвестном типе цены
	ErrInvalidPriceType = errors.New("domain: invalid price type")

	// ErrNegativePrice возвращается при отрицательной цене
	ErrNegativePrice = errors.New("domain: price must not be negative")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("domain: duration must be positive")
)
