package handlers

import (
	"errors"
	"net/http"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/gateway/mpesa"
	"textbook-logistics/internal/logx"
)

// PaymentHandler serves the M-Pesa payment endpoints.
type PaymentHandler struct {
	usecase paymentUsecase
	logger  logx.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(logger logx.Logger, uc paymentUsecase) *PaymentHandler {
	return &PaymentHandler{usecase: uc, logger: logger}
}

// Initiate handles POST /payments/mpesa.
// A 200 means the STK push was sent, not that the payment went through.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.Initiate(r.Context(), req.DeliveryID, actor, req.Phone)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, paymentResponse{
		Initiated:       res.Initiated,
		CheckoutID:      res.CheckoutID,
		CustomerMessage: res.CustomerMessage,
	})
}

// Callback handles POST /payments/mpesa/callback from Daraja.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	res, err := mpesa.ParseCallback(r.Body)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid callback")
		return
	}

	if err := h.usecase.HandleResult(r.Context(), res); err != nil {
		if errors.Is(err, apperr.Invalid) {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid callback")
			return
		}
		h.logger.Error("mpesa callback failed",
			logx.String("checkout_id", res.CheckoutID),
			logx.Err(err),
		)
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, callbackAck{ResultCode: 0, ResultDesc: "Accepted"})
}
