package get_available_times

import (
	getAvailableTimes "github.com/jiholee0/CHS-BookingService/internal/usecase/get_available_times"
)

// BookedSlotResponse занятое окно в ответе
type BookedSlotResponse struct {
	StartTime string `json:"startTime"` // "08:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date           string               `json:"date"`           // "2025-10-15"
	BookedSlots    []BookedSlotResponse `json:"bookedSlots"`
	AvailableTimes []string             `json:"availableTimes"` // ["08:00", "14:00"]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	booked := make([]BookedSlotResponse, 0, len(resp.BookedSlots))
	for _, b := range resp.BookedSlots {
		booked = append(booked, BookedSlotResponse{StartTime: b.StartTime, EndTime: b.EndTime})
	}
	return &AvailableTimesResponse{
		Date:           resp.Date,
		BookedSlots:    booked,
		AvailableTimes: resp.AvailableTimes,
	}
}
