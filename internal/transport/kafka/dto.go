package kafka

import (
	"strings"
	"time"

	"textbook-logistics/internal/service/payment"
)

// EventDTO is a data transfer object for payment.Event
type EventDTO struct {
	CheckoutID string    `json:"checkout_id"`
	Status     string    `json:"status"`
	ResultCode int       `json:"result_code"`
	ResultDesc string    `json:"result_desc"`
	Receipt    string    `json:"receipt"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to payment.Event
func ToDomain(dto EventDTO) payment.Event {
	return payment.Event{
		CheckoutID: strings.TrimSpace(dto.CheckoutID),
		Status:     strings.TrimSpace(dto.Status),
		ResultCode: dto.ResultCode,
		ResultDesc: strings.TrimSpace(dto.ResultDesc),
		Receipt:    strings.TrimSpace(dto.Receipt),
		CreatedAt:  dto.CreatedAt,
	}
}
