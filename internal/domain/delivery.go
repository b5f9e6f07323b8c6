package domain

import "time"

// UserID identifies any marketplace participant (buyer, seller, swapper, rider).
// Every participant reference is normalised to it at the ingest boundary.
type UserID int64

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Listing is the part of a marketplace listing the logistics core needs.
type Listing struct {
	ID       int64
	Title    string
	SellerID UserID
}

// Order is one listing's sale within a delivery.
type Order struct {
	ID         int64
	BuyerID    UserID
	Listing    Listing
	AmountPaid int64
}

// Swap is a two-party exchange of listings.
type Swap struct {
	ID               int64
	SenderID         UserID
	ReceiverID       UserID
	OfferedListing   Listing
	RequestedListing Listing
	Status           SwapStatus
}

// Rider is the user who accepted the delivery job.
type Rider struct {
	ID    UserID
	Name  string
	Phone string
}

// Delivery is the unit of logistics coordination.
// Exactly one of Orders (sale) or Swap is set.
type Delivery struct {
	ID              int64
	TrackingCode    string
	Status          DeliveryStatus
	PickupLocation  string
	DropoffLocation string
	TransportCost   int64
	Position        *Coordinates
	Rider           *Rider
	Orders          []Order
	Swap            *Swap
	ConversationID  *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsSwap reports whether the delivery serves a swap.
func (d *Delivery) IsSwap() bool {
	return d.Swap != nil
}

// WellFormed reports whether exactly one of orders or swap is present.
func (d *Delivery) WellFormed() bool {
	return (d.Swap != nil) != (len(d.Orders) > 0)
}

// Buyer returns the buyer of the first order.
func (d *Delivery) Buyer() (UserID, bool) {
	if d.Swap != nil || len(d.Orders) == 0 {
		return 0, false
	}
	return d.Orders[0].BuyerID, true
}

// Payer returns the participant responsible for the delivery fee.
func (d *Delivery) Payer() (UserID, bool) {
	if d.Swap != nil {
		return d.Swap.SenderID, true
	}
	return d.Buyer()
}

// HasRider reports whether uid is the assigned rider.
func (d *Delivery) HasRider(uid UserID) bool {
	return d.Rider != nil && d.Rider.ID == uid
}

// BooksTotal sums what was paid for the listings in this delivery.
func (d *Delivery) BooksTotal() int64 {
	var total int64
	for _, o := range d.Orders {
		total += o.AmountPaid
	}
	return total
}

// EndpointsKnown reports whether both endpoint strings are set.
func (d *Delivery) EndpointsKnown() bool {
	return d.PickupLocation != "" && d.DropoffLocation != ""
}

// Clone returns a copy that shares no mutable state with d.
func (d *Delivery) Clone() *Delivery {
	if d == nil {
		return nil
	}
	cp := *d
	if d.Position != nil {
		p := *d.Position
		cp.Position = &p
	}
	if d.Rider != nil {
		r := *d.Rider
		cp.Rider = &r
	}
	if d.Swap != nil {
		s := *d.Swap
		cp.Swap = &s
	}
	if d.ConversationID != nil {
		c := *d.ConversationID
		cp.ConversationID = &c
	}
	if d.Orders != nil {
		cp.Orders = append([]Order(nil), d.Orders...)
	}
	return &cp
}

// Endpoint names one end of the delivery route.
type Endpoint string

// List of delivery endpoints
const (
	EndpointPickup  Endpoint = "pickup"
	EndpointDropoff Endpoint = "dropoff"
)

// Valid checks if the Endpoint is valid
func (e Endpoint) Valid() bool {
	return e == EndpointPickup || e == EndpointDropoff
}

// DeliveryPatch carries optional fields to update a delivery.
// A nil field means “do not change” that attribute.
type DeliveryPatch struct {
	PickupLocation  *string
	DropoffLocation *string
	TransportCost   *int64
}

// Empty reports whether the patch changes nothing.
func (p DeliveryPatch) Empty() bool {
	return p.PickupLocation == nil && p.DropoffLocation == nil && p.TransportCost == nil
}

// LogisticsUpdate is the atomic write of both endpoints and the fee computed for them.
type LogisticsUpdate struct {
	DeliveryID      int64
	PickupLocation  string
	DropoffLocation string
	TransportCost   int64
}

// Fragment is a partial live update. Absent fields leave the receiver's state unchanged.
type Fragment struct {
	Status    *DeliveryStatus
	Latitude  *float64
	Longitude *float64
}

// StatusFragment builds a fragment carrying only a status.
func StatusFragment(s DeliveryStatus) Fragment {
	return Fragment{Status: &s}
}

// PositionFragment builds a fragment carrying only a position.
func PositionFragment(lat, lng float64) Fragment {
	return Fragment{Latitude: &lat, Longitude: &lng}
}

// Empty reports whether the fragment carries nothing.
func (f Fragment) Empty() bool {
	return f.Status == nil && f.Latitude == nil && f.Longitude == nil
}
