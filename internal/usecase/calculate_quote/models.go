package calculate_quote

// SelectedOption выбранная клиентом опция с количеством
type SelectedOption struct {
	OptionID int64
	Quantity int
}

// Request модель запроса на предварительный расчёт стоимости
type Request struct {
	ServiceID    int64
	Area         *int64
	Options      []SelectedOption
	ApplianceIDs []string
}

// OptionQuote вклад одной опции в расчёт
type OptionQuote struct {
	OptionID int64
	Name     string
	Quantity int
	Price    int64
}

// ApplianceQuote вклад одной позиции микрокаталога бытовой техники
type ApplianceQuote struct {
	ID    string
	Name  string
	Price int64
}

// Response модель ответа с расчётом стоимости.
// Это предварительная смета: ничего не резервируется и не сохраняется.
type Response struct {
	ServiceID       int64
	ServiceName     string
	ServiceCategory string
	Area            *int64

	ServicePrice int64
	OptionsPrice int64
	TotalPrice   int64

	Options    []OptionQuote
	Appliances []ApplianceQuote
}
