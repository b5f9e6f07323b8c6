package domain

// Route is a road path between two points.
type Route struct {
	DistanceMeters int
	Geometry       []Coordinates
}

// FeeQuote is the result of pricing a delivery between two locations.
type FeeQuote struct {
	Fee           int64
	DistanceKm    float64
	DistanceText  string
	PickupCoords  Coordinates
	DropoffCoords Coordinates
	Route         *Route
}

// RouteKey identifies the inputs a quote was computed for.
type RouteKey struct {
	Pickup  string
	Dropoff string
	IsSwap  bool
}

// RouteKeyOf returns the route key of a delivery's current endpoints.
func RouteKeyOf(d *Delivery) RouteKey {
	return RouteKey{Pickup: d.PickupLocation, Dropoff: d.DropoffLocation, IsSwap: d.IsSwap()}
}
