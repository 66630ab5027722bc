package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Location is a reverse-geocoded point.
type Location struct {
	Label   string
	City    string
	Country string
}

// GeocodeService resolves coordinates into city labels for the
// "near me" chat flows.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService; an empty key yields a service
// that always answers with a generic label.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	if apiKey == "" {
		return &GeocodeService{}, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Reverse resolves lat/lng into a city and country.
func (s *GeocodeService) Reverse(ctx context.Context, lat, lng float64, languageCode string) (Location, error) {
	fallback := Location{Label: "My location"}
	if s.client == nil {
		return fallback, nil
	}
	if languageCode == "" {
		languageCode = "en"
	}

	results, err := s.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:     &maps.LatLng{Lat: lat, Lng: lng},
		Language:   languageCode,
		ResultType: []string{"locality", "postal_code", "political"},
	})
	if err != nil {
		return Location{}, fmt.Errorf("geocode api error: %w", err)
	}
	if len(results) == 0 {
		return fallback, nil
	}

	primary := results[0]
	findComponent := func(componentType string) string {
		for _, component := range primary.AddressComponents {
			for _, t := range component.Types {
				if t == componentType {
					return component.LongName
				}
			}
		}
		return ""
	}

	city := findComponent("locality")
	if city == "" {
		city = findComponent("postal_town")
	}
	loc := Location{
		Label:   primary.FormattedAddress,
		City:    city,
		Country: findComponent("country"),
	}
	if loc.Label == "" {
		if city != "" {
			loc.Label = city
		} else {
			loc.Label = "My location"
		}
	}
	return loc, nil
}
