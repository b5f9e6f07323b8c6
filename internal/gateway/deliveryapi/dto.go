package deliveryapi

import "textbook-logistics/internal/domain"

type pointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type riderDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type listingDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	SellerID int64  `json:"seller_id"`
}

type orderDTO struct {
	ID         int64      `json:"id"`
	BuyerID    int64      `json:"buyer_id"`
	Listing    listingDTO `json:"listing"`
	AmountPaid int64      `json:"amount_paid"`
}

type swapDTO struct {
	ID               int64             `json:"id"`
	SenderID         int64             `json:"sender_id"`
	ReceiverID       int64             `json:"receiver_id"`
	OfferedListing   listingDTO        `json:"offered_listing"`
	RequestedListing listingDTO        `json:"requested_listing"`
	Status           domain.SwapStatus `json:"status"`
}

type quoteDTO struct {
	Fee          int64      `json:"fee"`
	DistanceKm   float64    `json:"distance_km"`
	DistanceText string     `json:"distance_text"`
	Pickup       pointDTO   `json:"pickup_coords"`
	Dropoff      pointDTO   `json:"dropoff_coords"`
	Route        []pointDTO `json:"route"`
}

type deliveryDTO struct {
	ID              int64                 `json:"id"`
	TrackingCode    string                `json:"tracking_code"`
	Status          domain.DeliveryStatus `json:"status"`
	PickupLocation  string                `json:"pickup_location"`
	DropoffLocation string                `json:"dropoff_location"`
	TransportCost   int64                 `json:"transport_cost"`
	CurrentLat      *float64              `json:"current_lat"`
	CurrentLng      *float64              `json:"current_lng"`
	Rider           *riderDTO             `json:"rider"`
	Orders          []orderDTO            `json:"orders"`
	Swap            *swapDTO              `json:"swap"`
	ConversationID  *int64                `json:"conversation_id"`
}

type patchRequest struct {
	PickupLocation  *string `json:"pickup_location,omitempty"`
	DropoffLocation *string `json:"dropoff_location,omitempty"`
	TransportCost   *int64  `json:"transport_cost,omitempty"`
}

type feeRequest struct {
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
	IsSwap  bool   `json:"is_swap"`
}

type paymentRequest struct {
	DeliveryID int64  `json:"delivery_id"`
	Phone      string `json:"phone"`
}

type paymentResponse struct {
	Initiated       bool   `json:"initiated"`
	CheckoutID      string `json:"checkout_id"`
	CustomerMessage string `json:"customer_message"`
}

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func listingToModel(l listingDTO) domain.Listing {
	return domain.Listing{ID: l.ID, Title: l.Title, SellerID: domain.UserID(l.SellerID)}
}

// toModel normalises every participant reference to domain.UserID.
func (d deliveryDTO) toModel() *domain.Delivery {
	out := &domain.Delivery{
		ID:              d.ID,
		TrackingCode:    d.TrackingCode,
		Status:          d.Status,
		PickupLocation:  d.PickupLocation,
		DropoffLocation: d.DropoffLocation,
		TransportCost:   d.TransportCost,
		ConversationID:  d.ConversationID,
	}
	if d.CurrentLat != nil && d.CurrentLng != nil {
		out.Position = &domain.Coordinates{Lat: *d.CurrentLat, Lng: *d.CurrentLng}
	}
	if d.Rider != nil {
		out.Rider = &domain.Rider{ID: domain.UserID(d.Rider.ID), Name: d.Rider.Name, Phone: d.Rider.Phone}
	}
	for _, o := range d.Orders {
		out.Orders = append(out.Orders, domain.Order{
			ID:         o.ID,
			BuyerID:    domain.UserID(o.BuyerID),
			Listing:    listingToModel(o.Listing),
			AmountPaid: o.AmountPaid,
		})
	}
	if s := d.Swap; s != nil {
		out.Swap = &domain.Swap{
			ID:               s.ID,
			SenderID:         domain.UserID(s.SenderID),
			ReceiverID:       domain.UserID(s.ReceiverID),
			OfferedListing:   listingToModel(s.OfferedListing),
			RequestedListing: listingToModel(s.RequestedListing),
			Status:           s.Status,
		}
	}
	return out
}

func (q quoteDTO) toModel() domain.FeeQuote {
	out := domain.FeeQuote{
		Fee:           q.Fee,
		DistanceKm:    q.DistanceKm,
		DistanceText:  q.DistanceText,
		PickupCoords:  domain.Coordinates{Lat: q.Pickup.Lat, Lng: q.Pickup.Lng},
		DropoffCoords: domain.Coordinates{Lat: q.Dropoff.Lat, Lng: q.Dropoff.Lng},
	}
	if len(q.Route) > 0 {
		r := &domain.Route{Geometry: make([]domain.Coordinates, 0, len(q.Route))}
		for _, p := range q.Route {
			r.Geometry = append(r.Geometry, domain.Coordinates{Lat: p.Lat, Lng: p.Lng})
		}
		out.Route = r
	}
	return out
}
