package submit_quote

import (
	"time"

	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

// SelectedOption выбранная клиентом опция с количеством
type SelectedOption struct {
	OptionID int64
	Quantity int
}

// Request модель запроса на оформление заказа
type Request struct {
	UserID    int64
	ServiceID int64

	BookingDate time.Time         // Дата уборки (без времени)
	StartTime   types.TimeString  // Время начала слота (например, "08:00")
	EndTime     *types.TimeString // Если не задано - начало плюс длительность услуги

	Address        string
	DetailAddress  *string
	Area           *int64
	SpecialRequest *string

	Options      []SelectedOption
	ApplianceIDs []string
}

// OptionSnapshot снимок цены опции в созданном заказе
type OptionSnapshot struct {
	OptionID int64
	Name     string
	Quantity int
	Price    int64
}

// Response модель ответа с созданным заказом
type Response struct {
	ID          int64
	CustomerID  int64
	ServiceID   int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string

	Address        string
	DetailAddress  *string
	Area           *int64
	SpecialRequest *string

	// Снимок цены: клиентские значения игнорируются,
	// стоимость всегда пересчитывается на сервере
	ServicePrice int64
	OptionsPrice int64
	TotalPrice   int64

	ServiceName string
	Options     []OptionSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}
