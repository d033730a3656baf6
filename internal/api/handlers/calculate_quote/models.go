package calculate_quote

import (
	calculateQuote "github.com/jiholee0/CHS-BookingService/internal/usecase/calculate_quote"
)

// SelectedOptionRequest выбранная опция в HTTP запросе
type SelectedOptionRequest struct {
	OptionID int64 `json:"optionId"`
	Quantity int   `json:"quantity,omitempty"`
}

// CalculateQuoteRequest HTTP request model
type CalculateQuoteRequest struct {
	ServiceID    int64                   `json:"serviceId"`
	Area         *int64                  `json:"area,omitempty"`
	Options      []SelectedOptionRequest `json:"options,omitempty"`
	ApplianceIDs []string                `json:"applianceIds,omitempty"`
}

// OptionQuoteResponse вклад опции в смету
type OptionQuoteResponse struct {
	OptionID int64  `json:"optionId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// ApplianceQuoteResponse вклад позиции бытовой техники в смету
type ApplianceQuoteResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ServiceID       int64                    `json:"serviceId"`
	ServiceName     string                   `json:"serviceName"`
	ServiceCategory string                   `json:"serviceCategory"`
	Area            *int64                   `json:"area,omitempty"`
	ServicePrice    int64                    `json:"servicePrice"`
	OptionsPrice    int64                    `json:"optionsPrice"`
	TotalPrice      int64                    `json:"totalPrice"`
	Options         []OptionQuoteResponse    `json:"options"`
	Appliances      []ApplianceQuoteResponse `json:"appliances"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CalculateQuoteRequest) ToUseCaseRequest() *calculateQuote.Request {
	options := make([]calculateQuote.SelectedOption, 0, len(r.Options))
	for _, opt := range r.Options {
		options = append(options, calculateQuote.SelectedOption{
			OptionID: opt.OptionID,
			Quantity: opt.Quantity,
		})
	}

	return &calculateQuote.Request{
		ServiceID:    r.ServiceID,
		Area:         r.Area,
		Options:      options,
		ApplianceIDs: r.ApplianceIDs,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculateQuote.Response) *QuoteResponse {
	result := &QuoteResponse{
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		ServiceCategory: resp.ServiceCategory,
		Area:            resp.Area,
		ServicePrice:    resp.ServicePrice,
		OptionsPrice:    resp.OptionsPrice,
		TotalPrice:      resp.TotalPrice,
		Options:         make([]OptionQuoteResponse, 0, len(resp.Options)),
		Appliances:      make([]ApplianceQuoteResponse, 0, len(resp.Appliances)),
	}

	for _, opt := range resp.Options {
		result.Options = append(result.Options, OptionQuoteResponse{
			OptionID: opt.OptionID,
			Name:     opt.Name,
			Quantity: opt.Quantity,
			Price:    opt.Price,
		})
	}

	for _, appliance := range resp.Appliances {
		result.Appliances = append(result.Appliances, ApplianceQuoteResponse{
			ID:    appliance.ID,
			Name:  appliance.Name,
			Price: appliance.Price,
		})
	}

	return result
}
