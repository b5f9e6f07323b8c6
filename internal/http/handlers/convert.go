package handlers

import (
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/service/delivery"
)

func (r createDeliveryRequest) toModel() delivery.NewDelivery {
	return delivery.NewDelivery{
		OrderIDs:        r.OrderIDs,
		SwapID:          r.SwapID,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		ConversationID:  r.ConversationID,
	}
}

func (r patchDeliveryRequest) toModel() domain.DeliveryPatch {
	return domain.DeliveryPatch{
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		TransportCost:   r.TransportCost,
	}
}

func listingToResponse(l domain.Listing) listingDTO {
	return listingDTO{ID: l.ID, Title: l.Title, SellerID: int64(l.SellerID)}
}

func capabilitiesToResponse(c domain.Capabilities) capabilitiesDTO {
	return capabilitiesDTO{
		CanEditPickup:  c.CanEditPickup,
		CanEditDropoff: c.CanEditDropoff,
		IsPayer:        c.IsPayer,
		RoleName:       c.RoleName,
		LabelPickup:    c.LabelPickup,
		LabelDropoff:   c.LabelDropoff,
	}
}

func quoteToResponse(q domain.FeeQuote) quoteDTO {
	out := quoteDTO{
		Fee:          q.Fee,
		DistanceKm:   q.DistanceKm,
		DistanceText: q.DistanceText,
		Pickup:       pointDTO{Lat: q.PickupCoords.Lat, Lng: q.PickupCoords.Lng},
		Dropoff:      pointDTO{Lat: q.DropoffCoords.Lat, Lng: q.DropoffCoords.Lng},
	}
	if q.Route != nil {
		out.Route = make([]pointDTO, 0, len(q.Route.Geometry))
		for _, p := range q.Route.Geometry {
			out.Route = append(out.Route, pointDTO{Lat: p.Lat, Lng: p.Lng})
		}
	}
	return out
}

// viewToResponse renders a delivery for one viewer. Rider contact is shown
// to the rider and, once shipped, to the payer.
func viewToResponse(v delivery.View) deliveryResponse {
	d := v.Delivery
	out := deliveryResponse{
		ID:              d.ID,
		TrackingCode:    d.TrackingCode,
		Status:          d.Status,
		PickupLocation:  d.PickupLocation,
		DropoffLocation: d.DropoffLocation,
		TransportCost:   d.TransportCost,
		BooksTotal:      d.BooksTotal(),
		ConversationID:  d.ConversationID,
		Capabilities:    capabilitiesToResponse(v.Capabilities),
		IsRider:         v.IsRider,
	}
	if d.Position != nil && d.Status == domain.StatusShipped {
		lat, lng := d.Position.Lat, d.Position.Lng
		out.CurrentLat, out.CurrentLng = &lat, &lng
	}
	if d.Rider != nil {
		out.Rider = &riderDTO{ID: int64(d.Rider.ID)}
		if v.RiderContactVisible() {
			out.Rider.Name = d.Rider.Name
			out.Rider.Phone = d.Rider.Phone
		}
	}
	if len(d.Orders) > 0 {
		out.Orders = make([]orderDTO, 0, len(d.Orders))
		for _, o := range d.Orders {
			out.Orders = append(out.Orders, orderDTO{
				ID:         o.ID,
				BuyerID:    int64(o.BuyerID),
				Listing:    listingToResponse(o.Listing),
				AmountPaid: o.AmountPaid,
			})
		}
	}
	if s := d.Swap; s != nil {
		out.Swap = &swapDTO{
			ID:               s.ID,
			SenderID:         int64(s.SenderID),
			ReceiverID:       int64(s.ReceiverID),
			OfferedListing:   listingToResponse(s.OfferedListing),
			RequestedListing: listingToResponse(s.RequestedListing),
			Status:           s.Status,
		}
	}
	if v.Quote != nil {
		q := quoteToResponse(*v.Quote)
		out.Quote = &q
	}
	return out
}

func jobsToResponse(list []domain.Delivery) []jobDTO {
	out := make([]jobDTO, 0, len(list))
	for i := range list {
		d := &list[i]
		out = append(out, jobDTO{
			ID:              d.ID,
			PickupLocation:  d.PickupLocation,
			DropoffLocation: d.DropoffLocation,
			TransportCost:   d.TransportCost,
			IsSwap:          d.IsSwap(),
		})
	}
	return out
}
