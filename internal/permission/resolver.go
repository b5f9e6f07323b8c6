// Package permission derives what a user may do with a delivery.
package permission

import "textbook-logistics/internal/domain"

// Labels shown next to each endpoint.
const (
	labelSwapPickup     = "Your Location (Proposer)"
	labelSwapDropoff    = "Partner Location"
	labelPartnerPickup  = "Proposer Location"
	labelPartnerDropoff = "Your Location (Partner)"
	labelSalePickup     = "Pickup (Seller)"
	labelSaleDropoff    = "Dropoff (Your Location)"
	labelViewerPickup   = "Pickup"
	labelViewerDropoff  = "Dropoff"
)

// Resolve returns the capability set of actor for d. It has no side effects.
// The swap proposer pays and edits pickup, the receiver edits dropoff.
// For a sale only the buyer of the first order pays and edits dropoff.
func Resolve(d *domain.Delivery, actor domain.UserID) domain.Capabilities {
	viewer := domain.Capabilities{
		RoleName:     domain.RoleViewer,
		LabelPickup:  labelViewerPickup,
		LabelDropoff: labelViewerDropoff,
	}
	if d == nil {
		return viewer
	}

	if s := d.Swap; s != nil {
		switch actor {
		case s.SenderID:
			return domain.Capabilities{
				CanEditPickup: true,
				IsPayer:       true,
				RoleName:      domain.RoleProposer,
				LabelPickup:   labelSwapPickup,
				LabelDropoff:  labelSwapDropoff,
			}
		case s.ReceiverID:
			return domain.Capabilities{
				CanEditDropoff: true,
				RoleName:       domain.RolePartner,
				LabelPickup:    labelPartnerPickup,
				LabelDropoff:   labelPartnerDropoff,
			}
		}
		return viewer
	}

	if buyer, ok := d.Buyer(); ok && buyer == actor {
		return domain.Capabilities{
			CanEditDropoff: true,
			IsPayer:        true,
			RoleName:       domain.RoleBuyer,
			LabelPickup:    labelSalePickup,
			LabelDropoff:   labelSaleDropoff,
		}
	}
	return viewer
}

// Rider reports whether actor is the rider assigned to d.
func Rider(d *domain.Delivery, actor domain.UserID) bool {
	return d != nil && d.HasRider(actor)
}
