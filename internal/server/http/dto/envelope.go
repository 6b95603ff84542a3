package dto

import "github.com/shopspring/decimal"

// Prices and sales totals go on the wire as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Response is the envelope of every JSON reply.
type Response struct {
	State   bool   `json:"state"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// OK wraps a successful payload.
func OK(data any) Response {
	return Response{State: true, Data: data}
}

// Fail wraps an error message.
func Fail(message string) Response {
	return Response{State: false, Message: message}
}
