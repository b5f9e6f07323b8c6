package payment

import "time"

// Event is a payment result published by the payments collaborator.
type Event struct {
	CheckoutID string    `json:"checkout_id"`
	Status     string    `json:"status"`
	ResultCode int       `json:"result_code"`
	ResultDesc string    `json:"result_desc"`
	Receipt    string    `json:"receipt"`
	CreatedAt  time.Time `json:"created_at"`
}
