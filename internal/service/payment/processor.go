package payment

import (
	"context"
	"errors"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
)

// Processor processes payment events
type Processor struct {
	results ResultHandler
	factory *actionFactory
}

// NewProcessor creates a new payment Processor.
func NewProcessor(results ResultHandler) *Processor {
	p := &Processor{results: results}
	p.factory = newActionFactory(p.onConfirmed, p.onFailed)
	return p
}

// Handle processes a single payment Event. Unknown statuses are skipped.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onConfirmed(ctx context.Context, e Event) error {
	return p.apply(ctx, domain.PaymentResult{
		CheckoutID: e.CheckoutID,
		ResultCode: 0,
		ResultDesc: e.ResultDesc,
		Receipt:    e.Receipt,
	})
}

func (p *Processor) onFailed(ctx context.Context, e Event) error {
	code := e.ResultCode
	if code == 0 {
		code = -1
	}
	return p.apply(ctx, domain.PaymentResult{
		CheckoutID: e.CheckoutID,
		ResultCode: code,
		ResultDesc: e.ResultDesc,
	})
}

func (p *Processor) apply(ctx context.Context, r domain.PaymentResult) error {
	err := p.results.HandleResult(ctx, r)
	if errors.Is(err, apperr.Invalid) {
		return nil
	}
	return err
}
