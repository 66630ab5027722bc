// README: Localized travel-plan and search-result formatting with card blocks.
package travel

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"roam/internal/maps"
)

var planLabels = map[string]map[string]string{
	"en": {"route": "Route", "budget": "Budget", "dates": "Dates", "preferences": "Preferences", "links": "Useful links", "unknown": "your city"},
	"hr": {"route": "Ruta", "budget": "Budžet", "dates": "Datumi", "preferences": "Preferencije", "links": "Korisni linkovi", "unknown": "tvoj grad"},
	"sl": {"route": "Relacija", "budget": "Proračun", "dates": "Datumi", "preferences": "Preference", "links": "Uporabne povezave", "unknown": "tvoje mesto"},
	"de": {"route": "Route", "budget": "Budget", "dates": "Daten", "preferences": "Vorlieben", "links": "Nützliche Links", "unknown": "deine Stadt"},
	"it": {"route": "Percorso", "budget": "Budget", "dates": "Date", "preferences": "Preferenze", "links": "Link utili", "unknown": "la tua città"},
	"es": {"route": "Ruta", "budget": "Presupuesto", "dates": "Fechas", "preferences": "Preferencias", "links": "Enlaces útiles", "unknown": "tu ciudad"},
	"fr": {"route": "Trajet", "budget": "Budget", "dates": "Dates", "preferences": "Préférences", "links": "Liens utiles", "unknown": "votre ville"},
}

var sectionLabels = map[string]map[string]string{
	"en": {"route": "🧭 Route", "flights": "✈️ Flights", "buses": "🚌 Buses", "trains": "🚆 Trains", "accommodation": "🏨 Accommodation", "restaurants": "🍽️ Restaurants", "activities": "🎯 Activities", "links": "🔗 Useful links"},
	"hr": {"route": "🧭 Ruta", "flights": "✈️ Letovi", "buses": "🚌 Autobusi", "trains": "🚆 Vlakovi", "accommodation": "🏨 Smještaj", "restaurants": "🍽️ Restorani", "activities": "🎯 Aktivnosti", "links": "🔗 Korisni linkovi"},
	"sl": {"route": "🧭 Relacija", "flights": "✈️ Leti", "buses": "🚌 Avtobusi", "trains": "🚆 Vlaki", "accommodation": "🏨 Nastanitev", "restaurants": "🍽️ Restavracije", "activities": "🎯 Aktivnosti", "links": "🔗 Uporabne povezave"},
	"de": {"route": "🧭 Route", "flights": "✈️ Flüge", "buses": "🚌 Busse", "trains": "🚆 Züge", "accommodation": "🏨 Unterkünfte", "restaurants": "🍽️ Restaurants", "activities": "🎯 Aktivitäten", "links": "🔗 Nützliche Links"},
	"it": {"route": "🧭 Percorso", "flights": "✈️ Voli", "buses": "🚌 Autobus", "trains": "🚆 Treni", "accommodation": "🏨 Alloggi", "restaurants": "🍽️ Ristoranti", "activities": "🎯 Attività", "links": "🔗 Link utili"},
	"es": {"route": "🧭 Ruta", "flights": "✈️ Vuelos", "buses": "🚌 Autobuses", "trains": "🚆 Trenes", "accommodation": "🏨 Alojamiento", "restaurants": "🍽️ Restaurantes", "activities": "🎯 Actividades", "links": "🔗 Enlaces útiles"},
	"fr": {"route": "🧭 Trajet", "flights": "✈️ Vols", "buses": "🚌 Bus", "trains": "🚆 Trains", "accommodation": "🏨 Hébergements", "restaurants": "🍽️ Restaurants", "activities": "🎯 Activités", "links": "🔗 Liens utiles"},
}

var returnTripHeaders = map[string]string{
	"en": "## 🔄 Return Trip",
	"hr": "## 🔄 Povratak",
	"sl": "## 🔄 Povratek",
	"de": "## 🔄 Rückreise",
	"it": "## 🔄 Viaggio di ritorno",
	"es": "## 🔄 Viaje de vuelta",
	"fr": "## 🔄 Voyage de retour",
}

func languageKey(languageCode string) string {
	key := strings.ToLower(languageCode)
	if i := strings.IndexAny(key, "-_"); i >= 0 {
		key = key[:i]
	}
	if len(key) > 2 {
		key = key[:2]
	}
	if key == "" {
		return "en"
	}
	return key
}

func label(languageCode, key string) string {
	lang := languageKey(languageCode)
	if mapping, ok := planLabels[lang]; ok {
		if v, ok := mapping[key]; ok {
			return v
		}
	}
	return planLabels["en"][key]
}

func sectionLabel(languageCode, key string) string {
	lang := languageKey(languageCode)
	if mapping, ok := sectionLabels[lang]; ok {
		if v, ok := mapping[key]; ok {
			return v
		}
	}
	return sectionLabels["en"][key]
}

// ReturnTripHeader is the localized heading placed before a return bundle.
func ReturnTripHeader(languageCode string) string {
	if h, ok := returnTripHeaders[languageKey(languageCode)]; ok {
		return h
	}
	return returnTripHeaders["en"]
}

// formatFlightTime renders an ISO timestamp as "Dec 7, 18:40". Unparseable
// input passes through untouched.
func formatFlightTime(isoTime string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, isoTime); err == nil {
			return t.Format("Jan 2, 15:04")
		}
	}
	return isoTime
}

func formatPreferences(preferences []string) string {
	var cleaned []string
	for _, pref := range preferences {
		candidate := strings.TrimSpace(strings.ReplaceAll(pref, "_", " "))
		if candidate == "" {
			continue
		}
		cleaned = append(cleaned, strings.ToUpper(candidate[:1])+candidate[1:])
	}
	return strings.Join(cleaned, ", ")
}

type plannerItem struct {
	Type      string `json:"type"`
	Mode      string `json:"mode,omitempty"`
	Name      string `json:"name,omitempty"`
	Airline   string `json:"airline,omitempty"`
	Company   string `json:"company,omitempty"`
	Operator  string `json:"operator,omitempty"`
	Route     string `json:"route,omitempty"`
	Address   string `json:"address,omitempty"`
	Departure string `json:"departure,omitempty"`
	Arrival   string `json:"arrival,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Distance  int    `json:"distance,omitempty"`
	Stops     int    `json:"stops,omitempty"`
	Price     int    `json:"price,omitempty"`
	Cost      int    `json:"cost,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Link      string `json:"link,omitempty"`
}

func plannerData(item plannerItem) string {
	data, err := json.Marshal(item)
	if err != nil {
		return "data: {}"
	}
	return "data: " + string(data)
}

// mealCosts estimates the per-person meal cost from a Google price level.
var mealCosts = map[int]int{1: 15, 2: 25, 3: 45, 4: 80}

// FormatTravelPlan renders the structured plan section appended after the
// LLM narrative: route header, card blocks per option and useful links.
// Return-trip bundles skip hotels, restaurants and activities.
func FormatTravelPlan(bundle Bundle, languageCode string) string {
	origin := bundle.Origin
	if origin == "" {
		origin = label(languageCode, "unknown")
	}
	origin = titleWord(origin)
	destination := titleWord(bundle.Destination)

	var lines []string
	lines = append(lines, fmt.Sprintf("%s: %s → %s", sectionLabel(languageCode, "route"), origin, destination))

	if prefs := formatPreferences(bundle.Preferences); prefs != "" {
		lines = append(lines, "", fmt.Sprintf("🎯 %s: %s", label(languageCode, "preferences"), prefs))
	}

	if driving := bundle.Driving; driving != nil {
		lines = append(lines, "",
			"[CARD]",
			"type: car",
			"title: 🚗 Osobni auto",
			fmt.Sprintf("city: %s → %s", origin, destination),
			fmt.Sprintf("details: %d km · %s · Gorivo €%d + Cestarina €%d = €%d",
				driving.DistanceKM, driving.Duration, driving.FuelCost, driving.TollCost, driving.TotalCost),
			"link: "+driving.Link,
			plannerData(plannerItem{
				Type:     "transport",
				Mode:     "car",
				Route:    fmt.Sprintf("%s → %s", origin, destination),
				Distance: driving.DistanceKM,
				Duration: driving.Duration,
				Cost:     driving.TotalCost,
				Link:     driving.Link,
			}),
			"[/CARD]")
	}

	if len(bundle.Flights) > 0 {
		lines = append(lines, "", sectionLabel(languageCode, "flights")+":")
		for _, flight := range take(bundle.Flights, 3) {
			from := flight.DepartureAirport
			if from == "" {
				from = strings.ToUpper(origin)
			}
			to := flight.ArrivalAirport
			if to == "" {
				to = strings.ToUpper(destination)
			}
			timeDisplay := formatFlightTime(flight.DepartureTime)
			if flight.ArrivalTime != "" {
				timeDisplay += " → " + formatFlightTime(flight.ArrivalTime)
			}
			if timeDisplay == "" {
				timeDisplay = "?"
			}
			stopsText := " · Direct"
			if flight.Stops == 1 {
				stopsText = " · 1 stop"
			} else if flight.Stops > 1 {
				stopsText = fmt.Sprintf(" · %d stops", flight.Stops)
			}
			link := flight.Link
			if link == "" {
				link = bundle.Links.GoogleFlights
			}
			lines = append(lines,
				"[CARD]",
				"type: plane",
				fmt.Sprintf("title: ✈️ %s → %s", from, to),
				fmt.Sprintf("city: %s · %s → %s", flight.Airline, from, to),
				fmt.Sprintf("details: €%d · %s · %s%s", flight.Price, timeDisplay, flight.Duration, stopsText),
				"link: "+link,
				plannerData(plannerItem{
					Type:      "transport",
					Mode:      "plane",
					Airline:   flight.Airline,
					Route:     fmt.Sprintf("%s → %s", from, to),
					Price:     flight.Price,
					Departure: flight.DepartureTime,
					Arrival:   flight.ArrivalTime,
					Duration:  flight.Duration,
					Stops:     flight.Stops,
					Link:      link,
				}),
				"[/CARD]")
		}
	}

	if len(bundle.Buses) > 0 {
		lines = append(lines, "", sectionLabel(languageCode, "buses")+":")
		for _, bus := range bundle.Buses {
			priceText := "—"
			if bus.Price > 0 {
				priceText = fmt.Sprintf("€%d", bus.Price)
			}
			city := fmt.Sprintf("%s → %s", bus.Departure, bus.Arrival)
			if bus.Segments > 1 {
				city = bus.Route
			}
			details := fmt.Sprintf("details: %s · %s", priceText, bus.Duration)
			if bus.Note != "" {
				details += " · " + bus.Note
			}
			lines = append(lines,
				"[CARD]",
				"type: bus",
				"title: 🚌 "+bus.Company,
				"city: "+city,
				details,
				"link: "+bus.Link,
				plannerData(plannerItem{
					Type:      "transport",
					Mode:      "bus",
					Company:   bus.Company,
					Route:     bus.Route,
					Departure: bus.Departure,
					Arrival:   bus.Arrival,
					Price:     bus.Price,
					Duration:  bus.Duration,
					Link:      bus.Link,
				}),
				"[/CARD]")
		}
	}

	if len(bundle.Trains) > 0 {
		lines = append(lines, "", sectionLabel(languageCode, "trains")+":")
		for _, train := range take(bundle.Trains, 1) {
			link := train.Link
			if link == "" {
				link = bundle.Links.Train
			}
			lines = append(lines,
				"[CARD]",
				"type: train",
				"title: 🚆 "+train.Operator,
				fmt.Sprintf("city: %s → %s", train.Departure, train.Arrival),
				fmt.Sprintf("details: €%d · %s", train.Price, train.Duration),
				"link: "+link,
				plannerData(plannerItem{
					Type:      "transport",
					Mode:      "train",
					Operator:  train.Operator,
					Route:     fmt.Sprintf("%s → %s", train.Departure, train.Arrival),
					Price:     train.Price,
					Duration:  train.Duration,
					Link:      link,
				}),
				"[/CARD]")
		}
	}

	if !bundle.IsReturnTrip && len(bundle.Hotels) > 0 {
		lines = append(lines, "", sectionLabel(languageCode, "accommodation")+":", "")
		for _, hotel := range take(bundle.Hotels, 3) {
			priceText := "Cijena na upit"
			if hotel.PricePerNight > 0 {
				priceText = fmt.Sprintf("€%d/noć", hotel.PricePerNight)
				if hotel.PriceEstimated {
					priceText = "~" + priceText
				}
			}
			ratingText := ""
			if hotel.Rating > 0 {
				ratingText = fmt.Sprintf("⭐ %.1f", hotel.Rating)
			}
			address := hotel.Address
			if address == "" {
				address = destination
			}
			lines = append(lines,
				"[CARD]",
				"type: hotel",
				"title: 🏨 "+hotel.Name,
				"city: "+address,
				fmt.Sprintf("details: %s · %s", priceText, ratingText))
			if hotel.Link != "" {
				lines = append(lines, "link: "+hotel.Link)
			}
			lines = append(lines,
				plannerData(plannerItem{
					Type:    "hotel",
					Name:    hotel.Name,
					Price:   hotel.PricePerNight,
					Rating:  hotel.Rating,
					Link:    hotel.Link,
					Address: address,
				}),
				"[/CARD]")
		}
	}

	if !bundle.IsReturnTrip && len(bundle.Restaurants) > 0 {
		lines = append(lines, "", sectionLabel(languageCode, "restaurants")+":")
		for _, place := range take(bundle.Restaurants, 3) {
			priceLevel := place.PriceLevel
			priceText := "€€"
			mealCost := 25
			if priceLevel > 0 {
				priceText = strings.Repeat("€", priceLevel)
				if cost, ok := mealCosts[priceLevel]; ok {
					mealCost = cost
				}
			}
			ratingText := ""
			if place.Rating > 0 {
				ratingText = fmt.Sprintf("⭐ %.1f", place.Rating)
			}
			address := place.Address
			if address == "" {
				address = "city center"
			}
			lines = append(lines,
				"[CARD]",
				"type: restaurant",
				"title: 🍽️ "+place.Name,
				"city: "+address,
				fmt.Sprintf("details: %s (~€%d/os) · %s", priceText, mealCost, ratingText))
			if place.MapsURL != "" {
				lines = append(lines, "link: "+place.MapsURL)
			}
			lines = append(lines,
				plannerData(plannerItem{
					Type:    "restaurant",
					Name:    place.Name,
					Address: address,
					Rating:  float64(place.Rating),
					Price:   mealCost,
					Link:    place.MapsURL,
				}),
				"[/CARD]")
		}
	}

	if !bundle.IsReturnTrip && len(bundle.Activities) > 0 {
		lines = append(lines, "", sectionLabel(languageCode, "activities")+":")
		for _, place := range take(bundle.Activities, 3) {
			details := "Besplatan ulaz"
			if place.Rating > 0 {
				details = fmt.Sprintf("⭐ %.1f", place.Rating)
			}
			address := place.Address
			if address == "" {
				address = "city center"
			}
			lines = append(lines,
				"[CARD]",
				"type: activity",
				"title: 🎯 "+place.Name,
				"city: "+address,
				"details: "+details)
			if place.MapsURL != "" {
				lines = append(lines, "link: "+place.MapsURL)
			}
			lines = append(lines,
				plannerData(plannerItem{
					Type:    "activity",
					Name:    place.Name,
					Address: address,
					Rating:  float64(place.Rating),
					Link:    place.MapsURL,
				}),
				"[/CARD]")
		}
	}

	lines = append(lines, "", sectionLabel(languageCode, "links")+":")
	if bundle.Links.GoogleFlights != "" {
		lines = append(lines, fmt.Sprintf("- [✈️ Google Flights](%s)", bundle.Links.GoogleFlights))
	}
	if bundle.Links.Booking != "" {
		lines = append(lines, fmt.Sprintf("- [🏨 Booking.com](%s)", bundle.Links.Booking))
	}
	if bundle.Links.Airbnb != "" {
		lines = append(lines, fmt.Sprintf("- [🏡 Airbnb](%s)", bundle.Links.Airbnb))
	}
	if bundle.Links.Rome2Rio != "" {
		lines = append(lines, fmt.Sprintf("- [🧭 Rome2Rio](%s)", bundle.Links.Rome2Rio))
	}

	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// FormatSpecificSearch renders a places search result as readable text
// followed by card blocks.
func FormatSpecificSearch(categoryLabel, city string, places []maps.Place, cardType string) string {
	if len(places) == 0 {
		return fmt.Sprintf("No %s found in %s.", categoryLabel, city)
	}
	var lines []string
	lines = append(lines, fmt.Sprintf("Top %s in %s:", categoryLabel, city), "")
	for _, place := range places {
		line := place.Name
		if place.Rating > 0 {
			line += fmt.Sprintf(" · ⭐ %.1f", place.Rating)
		}
		lines = append(lines, line)
		if place.Address != "" {
			lines = append(lines, place.Address)
		}
		if place.MapsURL != "" {
			lines = append(lines, fmt.Sprintf("[📍 Open in Maps](%s)", place.MapsURL))
		}
		lines = append(lines, "")
	}
	if cards := CardsFromPlaces(cardType, city, places); cards != "" {
		lines = append(lines, "", cards)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
