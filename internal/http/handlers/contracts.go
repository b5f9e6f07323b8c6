package handlers

import (
	"context"
	"net/http"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/live"
	"textbook-logistics/internal/service/delivery"
	"textbook-logistics/internal/service/payment"
)

type deliveryUsecase interface {
	Create(ctx context.Context, n delivery.NewDelivery) (*domain.Delivery, error)
	Get(ctx context.Context, id int64, actor domain.UserID) (delivery.View, error)
	UpdateEndpoints(ctx context.Context, id int64, actor domain.UserID, p domain.DeliveryPatch) (delivery.View, error)
	Cancel(ctx context.Context, id int64, actor domain.UserID) (delivery.View, error)
	QuoteFee(ctx context.Context, pickup, dropoff string, isSwap bool) (domain.FeeQuote, error)
	ListAvailable(ctx context.Context, limit int) ([]domain.Delivery, error)
	AcceptJob(ctx context.Context, id int64, rider domain.UserID) (delivery.View, error)
	Complete(ctx context.Context, id int64, rider domain.UserID) (delivery.View, error)
	PushPosition(ctx context.Context, id int64, rider domain.UserID, c domain.Coordinates) error
	AuthorizeRider(ctx context.Context, id int64, rider domain.UserID) error
}

// NewDeliveryUsecase wires a delivery Service into a deliveryUsecase.
func NewDeliveryUsecase(svc *delivery.Service) deliveryUsecase {
	return svc
}

type paymentUsecase interface {
	Initiate(ctx context.Context, deliveryID int64, actor domain.UserID, phone string) (domain.PaymentInitiation, error)
	HandleResult(ctx context.Context, r domain.PaymentResult) error
}

// NewPaymentUsecase wires a payment Service into a paymentUsecase.
func NewPaymentUsecase(svc *payment.Service) paymentUsecase {
	return svc
}

type liveHub interface {
	ServeSubscriber(w http.ResponseWriter, r *http.Request, deliveryID int64) error
	ServeRider(w http.ResponseWriter, r *http.Request, deliveryID int64, sink live.SampleSink) error
}
