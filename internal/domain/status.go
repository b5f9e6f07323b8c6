package domain

// DeliveryStatus represents the lifecycle state of a delivery.
type DeliveryStatus string

// List of possible delivery statuses
const (
	StatusPending   DeliveryStatus = "pending"
	StatusPaid      DeliveryStatus = "paid"
	StatusShipped   DeliveryStatus = "shipped"
	StatusDelivered DeliveryStatus = "delivered"
	StatusCancelled DeliveryStatus = "cancelled"
)

// SwapStatus represents the state of a swap proposal.
type SwapStatus string

// List of possible swap statuses
const (
	SwapPending  SwapStatus = "pending"
	SwapAccepted SwapStatus = "accepted"
	SwapRejected SwapStatus = "rejected"
)

var allowedStatuses = [...]DeliveryStatus{
	StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled,
}

// allowedTransitions is the delivery state flow. Anything not listed is illegal.
var allowedTransitions = map[DeliveryStatus][]DeliveryStatus{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

// Valid checks if the DeliveryStatus is one of the known statuses
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Locked reports whether pickup, dropoff and fee are frozen in this status.
// Paid is still editable: the rider has not picked the package up yet.
func (s DeliveryStatus) Locked() bool {
	switch s {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is possible.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Cancellable reports whether the payer may still cancel.
func (s DeliveryStatus) Cancellable() bool {
	return CanTransition(s, StatusCancelled)
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to DeliveryStatus) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Valid checks if the SwapStatus is valid
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected:
		return true
	default:
		return false
	}
}
