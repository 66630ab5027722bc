// README: [CARD] block rendering for the chat frontend.
package travel

import (
	"fmt"
	"strings"

	"roam/internal/maps"
)

// BuildCard renders one [CARD] block. The frontend parses these blocks out
// of the reply text and renders them as rich cards.
func BuildCard(cardType, title, city, details, link string) string {
	return strings.Join([]string{
		"[CARD]",
		"type: " + cardType,
		"title: " + title,
		"city: " + city,
		"details: " + details,
		"link: " + link,
		"[/CARD]",
	}, "\n")
}

// CardsFromPlaces renders card blocks for a places search result.
func CardsFromPlaces(cardType, fallbackCity string, places []maps.Place) string {
	blocks := make([]string, 0, len(places))
	for _, place := range places {
		var details []string
		if place.Rating > 0 {
			details = append(details, fmt.Sprintf("⭐ %.1f", place.Rating))
		}
		if place.PriceLevel > 0 {
			details = append(details, strings.Repeat("€", place.PriceLevel))
		}
		if place.Address != "" {
			details = append(details, place.Address)
		}
		detailText := strings.Join(details, ", ")
		if detailText == "" {
			detailText = "Popular local recommendation"
		}
		city := place.City
		if city == "" {
			city = fallbackCity
		}
		link := place.MapsURL
		if link == "" {
			link = "https://maps.google.com"
		}
		name := place.Name
		if name == "" {
			name = "Unnamed"
		}
		blocks = append(blocks, BuildCard(cardType, name, city, detailText, link))
	}
	return strings.Join(blocks, "\n")
}

// CardsFromBundle renders a compact card digest of a bundle: the two best
// flights, three hotels, three restaurants and three activities.
func CardsFromBundle(bundle Bundle) string {
	destination := bundle.Destination
	if destination == "" {
		destination = "Unknown"
	}
	var cards []string

	for _, flight := range take(bundle.Flights, 2) {
		link := flight.Link
		if link == "" {
			link = bundle.Links.GoogleFlights
		}
		cards = append(cards, BuildCard(
			"flight",
			fmt.Sprintf("%s %d", flight.Airline, flight.Price),
			destination,
			fmt.Sprintf("Departure %s · Duration %s", orUnknown(flight.DepartureTime), orUnknown(flight.Duration)),
			link,
		))
	}
	for _, hotel := range take(bundle.Hotels, 3) {
		link := hotel.Link
		if link == "" {
			link = bundle.Links.Booking
		}
		rating := "?"
		if hotel.Rating > 0 {
			rating = fmt.Sprintf("%.1f", hotel.Rating)
		}
		cards = append(cards, BuildCard(
			"hotel",
			hotel.Name,
			destination,
			fmt.Sprintf("€%d/night · ⭐ %s", hotel.PricePerNight, rating),
			link,
		))
	}
	for _, place := range take(bundle.Restaurants, 3) {
		details := place.Address
		if details == "" {
			details = "Local favorite"
		}
		cards = append(cards, BuildCard("restaurant", place.Name, destination, details, place.MapsURL))
	}
	for _, place := range take(bundle.Activities, 3) {
		details := place.Address
		if details == "" {
			details = "Must-see spot"
		}
		cards = append(cards, BuildCard("activity", place.Name, destination, details, place.MapsURL))
	}
	return strings.Join(cards, "\n")
}

func take[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
