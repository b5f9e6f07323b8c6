package handlers

import "textbook-logistics/internal/domain"

type pointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type capabilitiesDTO struct {
	CanEditPickup  bool        `json:"can_edit_pickup"`
	CanEditDropoff bool        `json:"can_edit_dropoff"`
	IsPayer        bool        `json:"is_payer"`
	RoleName       domain.Role `json:"role_name"`
	LabelPickup    string      `json:"label_pickup"`
	LabelDropoff   string      `json:"label_dropoff"`
}

type riderDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
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
	Route        []pointDTO `json:"route,omitempty"`
}

type deliveryResponse struct {
	ID              int64                 `json:"id"`
	TrackingCode    string                `json:"tracking_code,omitempty"`
	Status          domain.DeliveryStatus `json:"status"`
	PickupLocation  string                `json:"pickup_location"`
	DropoffLocation string                `json:"dropoff_location"`
	TransportCost   int64                 `json:"transport_cost"`
	BooksTotal      int64                 `json:"books_total"`
	CurrentLat      *float64              `json:"current_lat"`
	CurrentLng      *float64              `json:"current_lng"`
	Rider           *riderDTO             `json:"rider,omitempty"`
	Orders          []orderDTO            `json:"orders,omitempty"`
	Swap            *swapDTO              `json:"swap,omitempty"`
	ConversationID  *int64                `json:"conversation_id"`
	Capabilities    capabilitiesDTO       `json:"capabilities"`
	IsRider         bool                  `json:"is_rider"`
	Quote           *quoteDTO             `json:"quote,omitempty"`
}

type jobDTO struct {
	ID              int64  `json:"id"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	TransportCost   int64  `json:"transport_cost"`
	IsSwap          bool   `json:"is_swap"`
}

type createDeliveryRequest struct {
	OrderIDs        []int64 `json:"order_ids" validate:"omitempty,dive,gt=0"`
	SwapID          int64   `json:"swap_id" validate:"gte=0"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	ConversationID  *int64  `json:"conversation_id"`
}

type patchDeliveryRequest struct {
	PickupLocation  *string `json:"pickup_location,omitempty"`
	DropoffLocation *string `json:"dropoff_location,omitempty"`
	TransportCost   *int64  `json:"transport_cost,omitempty" validate:"omitempty,gte=0"`
}

type feeRequest struct {
	Pickup  string `json:"pickup" validate:"required"`
	Dropoff string `json:"dropoff" validate:"required"`
	IsSwap  bool   `json:"is_swap"`
}

type locationRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

type paymentRequest struct {
	DeliveryID int64  `json:"delivery_id" validate:"required,gt=0"`
	Phone      string `json:"phone" validate:"required"`
}

type paymentResponse struct {
	Initiated       bool   `json:"initiated"`
	CheckoutID      string `json:"checkout_id"`
	CustomerMessage string `json:"customer_message,omitempty"`
}

type callbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}
