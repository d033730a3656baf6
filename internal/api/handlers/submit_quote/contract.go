package submit_quote

import (
	"context"

	submitQuote "github.com/jiholee0/CHS-BookingService/internal/usecase/submit_quote"
)

type SubmitQuoteUseCase interface {
	Execute(ctx context.Context, req *submitQuote.Request) (*submitQuote.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
