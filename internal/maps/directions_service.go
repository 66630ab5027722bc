package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// DirectionsService answers live driving estimates for the car option in
// travel bundles.
type DirectionsService struct {
	client *maps.Client
}

// NewDirectionsService creates a DirectionsService; an empty key yields a
// service that reports no routes, leaving offline estimates in charge.
func NewDirectionsService(apiKey string) (*DirectionsService, error) {
	if apiKey == "" {
		return &DirectionsService{}, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DirectionsService{client: client}, nil
}

// DrivingEstimate returns the driving duration and road distance in km
// between two cities. Zero values mean no route is known.
func (s *DirectionsService) DrivingEstimate(ctx context.Context, origin, destination string) (time.Duration, int, error) {
	if s.client == nil {
		return 0, 0, nil
	}

	routes, _, err := s.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("directions api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, 0, nil
	}

	var duration time.Duration
	var meters int
	for _, leg := range routes[0].Legs {
		duration += leg.Duration
		meters += leg.Distance.Meters
	}
	return duration, meters / 1000, nil
}
