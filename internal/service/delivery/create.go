package delivery

import (
	"context"
	"fmt"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/ports/deliverytx"
)

// NewDelivery describes a delivery to create: either a set of orders or one accepted swap.
type NewDelivery struct {
	OrderIDs        []int64
	SwapID          int64
	PickupLocation  string
	DropoffLocation string
	ConversationID  *int64
}

func (n NewDelivery) validate() error {
	hasOrders := len(n.OrderIDs) > 0
	hasSwap := n.SwapID > 0
	if hasOrders == hasSwap {
		return fmt.Errorf("exactly one of orders or swap is required: %w", apperr.Invalid)
	}
	seen := make(map[int64]struct{}, len(n.OrderIDs))
	for _, id := range n.OrderIDs {
		if id <= 0 {
			return fmt.Errorf("order id %d: %w", id, apperr.Invalid)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate order id %d: %w", id, apperr.Invalid)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Create creates a pending delivery for a set of orders or an accepted swap.
// Orders already attached to another delivery and swaps that are not accepted are a conflict.
// An order set must belong to a single buyer.
func (s *Service) Create(ctx context.Context, n NewDelivery) (*domain.Delivery, error) {
	if err := n.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var id int64
	err := s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		d := &domain.Delivery{
			Status:          domain.StatusPending,
			PickupLocation:  n.PickupLocation,
			DropoffLocation: n.DropoffLocation,
			ConversationID:  n.ConversationID,
		}

		if n.SwapID > 0 {
			sw, err := tx.GetSwapForUpdate(ctx, n.SwapID)
			if err != nil {
				return err
			}
			if sw == nil {
				return fmt.Errorf("swap %d: %w", n.SwapID, apperr.NotFound)
			}
			if sw.Status != domain.SwapAccepted {
				return fmt.Errorf("swap %d is %s: %w", n.SwapID, sw.Status, apperr.Conflict)
			}
			d.Swap = sw
		}

		if len(n.OrderIDs) > 0 {
			buyers, err := tx.OrderBuyers(ctx, n.OrderIDs)
			if err != nil {
				return err
			}
			if len(buyers) > 1 {
				return fmt.Errorf("orders belong to %d buyers: %w", len(buyers), apperr.Invalid)
			}
		}

		if err := tx.InsertDelivery(ctx, d); err != nil {
			return err
		}

		if len(n.OrderIDs) > 0 {
			attached, err := tx.AttachOrders(ctx, d.ID, n.OrderIDs)
			if err != nil {
				return err
			}
			if attached != int64(len(n.OrderIDs)) {
				return fmt.Errorf("%d of %d orders are unavailable: %w",
					int64(len(n.OrderIDs))-attached, len(n.OrderIDs), apperr.Conflict)
			}
		}
		id = d.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.Int64("delivery_id", id),
		logx.Int("orders", len(n.OrderIDs)),
		logx.Int64("swap_id", n.SwapID),
	)
	return s.load(ctx, id)
}
