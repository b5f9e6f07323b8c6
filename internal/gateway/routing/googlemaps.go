package routing

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"textbook-logistics/internal/domain"
)

// GoogleMaps geocodes addresses and routes between points with the Google Maps API.
type GoogleMaps struct {
	client *maps.Client
	region string
}

// NewGoogleMaps creates a client for the given API key, biased to region.
func NewGoogleMaps(apiKey, region string, opts ...maps.ClientOption) (*GoogleMaps, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleMaps{client: client, region: region}, nil
}

// Geocode resolves a free-text address to coordinates.
func (g *GoogleMaps) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	})
	if err != nil {
		if isZeroResults(err) {
			return domain.Coordinates{}, ErrNoResults
		}
		return domain.Coordinates{}, fmt.Errorf("maps geocode: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, ErrNoResults
	}
	loc := results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Route returns the driving route between two points with its decoded geometry.
func (g *GoogleMaps) Route(ctx context.Context, from, to domain.Coordinates) (domain.Route, error) {
	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      latLng(from),
		Destination: latLng(to),
		Mode:        maps.TravelModeDriving,
		Region:      g.region,
	})
	if err != nil {
		if isZeroResults(err) {
			return domain.Route{}, ErrNoResults
		}
		return domain.Route{}, fmt.Errorf("maps directions: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return domain.Route{}, ErrNoResults
	}

	r := routes[0]
	meters := 0
	for _, leg := range r.Legs {
		meters += leg.Distance.Meters
	}

	var geometry []domain.Coordinates
	if pts, err := r.OverviewPolyline.Decode(); err == nil {
		geometry = make([]domain.Coordinates, 0, len(pts))
		for _, p := range pts {
			geometry = append(geometry, domain.Coordinates{Lat: p.Lat, Lng: p.Lng})
		}
	}
	return domain.Route{DistanceMeters: meters, Geometry: geometry}, nil
}

func latLng(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

func isZeroResults(err error) bool {
	return strings.Contains(err.Error(), "ZERO_RESULTS") || strings.Contains(err.Error(), "NOT_FOUND")
}
