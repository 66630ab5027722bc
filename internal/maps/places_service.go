package maps

import (
	"context"
	"fmt"
	"net/url"

	"googlemaps.github.io/maps"
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	UserRatingsTotal int
	PriceLevel       int
	Types            []string
	MapsURL          string
	Lat              float64
	Lng              float64
	PlaceID          string
	City             string
}

// PlacesService handles interactions with the Google Places API. With no API
// key it serves deterministic fallback data so the chat pipeline keeps working.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API key.
// An empty key yields a service running in fallback mode.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	if apiKey == "" {
		return &PlacesService{}, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// Search runs a text search for the category query in city and returns up to
// limit results. API errors degrade to fallback data instead of failing the
// whole chat turn.
func (s *PlacesService) Search(ctx context.Context, category Category, city, languageCode string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 6
	}
	if s.client == nil {
		return fallbackPlaces(category, city, limit), nil
	}

	query := category.Query()
	if city != "" {
		query = fmt.Sprintf("%s in %s", query, city)
	}
	if languageCode == "" {
		languageCode = "en"
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: languageCode,
	})
	if err != nil {
		return fallbackPlaces(category, city, limit), nil
	}

	var results []Place
	for _, result := range resp.Results {
		if result.Name == "" {
			continue
		}
		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			UserRatingsTotal: result.UserRatingsTotal,
			PriceLevel:       result.PriceLevel,
			Types:            result.Types,
			MapsURL:          mapsURL(result.PlaceID, result.Name),
			Lat:              result.Geometry.Location.Lat,
			Lng:              result.Geometry.Location.Lng,
			PlaceID:          result.PlaceID,
			City:             titleCity(city),
		})
		if len(results) >= limit {
			break
		}
	}
	if len(results) == 0 {
		return fallbackPlaces(category, city, limit), nil
	}
	return results, nil
}

func mapsURL(placeID, name string) string {
	if placeID != "" {
		return "https://www.google.com/maps/place/?q=place_id:" + placeID
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(name)
}
