package domain

import (
	"regexp"
	"strings"
	"time"
)

// PaymentStatus is the state of one payment attempt.
type PaymentStatus string

// List of payment attempt statuses
const (
	PaymentInitiated PaymentStatus = "initiated"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentAttempt is one STK push sent for a delivery.
type PaymentAttempt struct {
	ID         int64
	DeliveryID int64
	CheckoutID string
	Phone      string
	Amount     int64
	Status     PaymentStatus
	Receipt    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PaymentRequest is what is handed to the payment collaborator.
type PaymentRequest struct {
	DeliveryID int64
	Phone      string
	Amount     int64
	Reference  string
}

// PaymentInitiation is the answer to a payment hand-off.
// Initiated means the request was accepted by the collaborator, not that money moved.
type PaymentInitiation struct {
	Initiated       bool
	CheckoutID      string
	CustomerMessage string
}

// PaymentResult is the collaborator's final word on a checkout.
type PaymentResult struct {
	CheckoutID string
	ResultCode int
	ResultDesc string
	Receipt    string
}

// Succeeded reports whether the collaborator confirmed the payment.
func (r PaymentResult) Succeeded() bool {
	return r.ResultCode == 0
}

// rePhone is a regex to validate normalised Kenyan mobile numbers
var rePhone = regexp.MustCompile(`^254[17][0-9]{8}$`)

// NormalizePhone converts 07.., 01.. and +254.. numbers to the 254.. form.
func NormalizePhone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	switch {
	case strings.HasPrefix(s, "0"):
		s = "254" + s[1:]
	case strings.HasPrefix(s, "+254"):
		s = s[1:]
	}
	if !rePhone.MatchString(s) {
		return "", false
	}
	return s, true
}
