package submit_quote

import (
	"time"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	submitQuote "github.com/jiholee0/CHS-BookingService/internal/usecase/submit_quote"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

// SelectedOptionRequest выбранная опция в HTTP запросе
type SelectedOptionRequest struct {
	OptionID int64 `json:"optionId"`
	Quantity int   `json:"quantity,omitempty"`
}

// SubmitQuoteRequest HTTP request model
type SubmitQuoteRequest struct {
	ServiceID   int64   `json:"serviceId"`
	BookingDate string  `json:"bookingDate"`       // "2025-10-15"
	StartTime   string  `json:"startTime"`         // "08:00"
	EndTime     *string `json:"endTime,omitempty"` // по умолчанию начало плюс длительность услуги

	Address        string  `json:"address"`
	DetailAddress  *string `json:"detailAddress,omitempty"`
	Area           *int64  `json:"area,omitempty"`
	SpecialRequest *string `json:"specialRequest,omitempty"`

	Options      []SelectedOptionRequest `json:"options,omitempty"`
	ApplianceIDs []string                `json:"applianceIds,omitempty"`
}

// OptionSnapshotResponse снимок цены опции в созданном заказе
type OptionSnapshotResponse struct {
	OptionID int64  `json:"optionId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`

	Address        string  `json:"address"`
	DetailAddress  *string `json:"detailAddress,omitempty"`
	Area           *int64  `json:"area,omitempty"`
	SpecialRequest *string `json:"specialRequest,omitempty"`

	ServicePrice int64 `json:"servicePrice"`
	OptionsPrice int64 `json:"optionsPrice"`
	TotalPrice   int64 `json:"totalPrice"`

	ServiceName string                   `json:"serviceName"`
	Options     []OptionSnapshotResponse `json:"options"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitQuoteRequest) ToUseCaseRequest(userID int64) (*submitQuote.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var endTime *types.TimeString
	if r.EndTime != nil {
		parsed, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		endTime = &parsed
	}

	options := make([]submitQuote.SelectedOption, 0, len(r.Options))
	for _, opt := range r.Options {
		options = append(options, submitQuote.SelectedOption{
			OptionID: opt.OptionID,
			Quantity: opt.Quantity,
		})
	}

	return &submitQuote.Request{
		UserID:         userID,
		ServiceID:      r.ServiceID,
		BookingDate:    bookingDate,
		StartTime:      startTime,
		EndTime:        endTime,
		Address:        r.Address,
		DetailAddress:  r.DetailAddress,
		Area:           r.Area,
		SpecialRequest: r.SpecialRequest,
		Options:        options,
		ApplianceIDs:   r.ApplianceIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitQuote.Response) *BookingResponse {
	result := &BookingResponse{
		ID:             resp.ID,
		CustomerID:     resp.CustomerID,
		ServiceID:      resp.ServiceID,
		BookingDate:    resp.BookingDate.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Status:         resp.Status,
		Address:        resp.Address,
		DetailAddress:  resp.DetailAddress,
		Area:           resp.Area,
		SpecialRequest: resp.SpecialRequest,
		ServicePrice:   resp.ServicePrice,
		OptionsPrice:   resp.OptionsPrice,
		TotalPrice:     resp.TotalPrice,
		ServiceName:    resp.ServiceName,
		Options:        make([]OptionSnapshotResponse, 0, len(resp.Options)),
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, opt := range resp.Options {
		result.Options = append(result.Options, OptionSnapshotResponse{
			OptionID: opt.OptionID,
			Name:     opt.Name,
			Quantity: opt.Quantity,
			Price:    opt.Price,
		})
	}

	return result
}
