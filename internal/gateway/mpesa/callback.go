package mpesa

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"textbook-logistics/internal/domain"
)

// Callback is the body Daraja posts to the callback URL.
type Callback struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  *struct {
				Item []struct {
					Name  string `json:"Name"`
					Value any    `json:"Value,omitempty"`
				} `json:"Item"`
			} `json:"CallbackMetadata,omitempty"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// ParseCallback decodes a Daraja callback into a PaymentResult.
func ParseCallback(r io.Reader) (domain.PaymentResult, error) {
	var cb Callback
	if err := json.NewDecoder(r).Decode(&cb); err != nil {
		return domain.PaymentResult{}, fmt.Errorf("decode mpesa callback: %w", err)
	}
	stk := cb.Body.StkCallback
	res := domain.PaymentResult{
		CheckoutID: stk.CheckoutRequestID,
		ResultCode: stk.ResultCode,
		ResultDesc: stk.ResultDesc,
	}
	if stk.CallbackMetadata != nil {
		for _, it := range stk.CallbackMetadata.Item {
			if it.Name == "MpesaReceiptNumber" {
				if s, ok := it.Value.(string); ok {
					res.Receipt = s
				}
			}
		}
	}
	return res, nil
}
