// README: Hotel search merging Amadeus offers with Places results and cost-index price estimates.
package travel

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"roam/internal/maps"
)

// Hotel is one accommodation option in a travel bundle.
type Hotel struct {
	Name           string  `json:"name"`
	Address        string  `json:"address,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	PricePerNight  int     `json:"price_per_night"`
	PriceEstimated bool    `json:"price_estimated,omitempty"`
	Link           string  `json:"link,omitempty"`
	Source         string  `json:"source"`
}

// hotelBudgets maps budget bands to nightly price caps in EUR.
var hotelBudgets = map[string]int{
	"low":    50,
	"budget": 80,
	"medium": 150,
	"high":   300,
	"luxury": 500,
}

// cityCostIndex is the cost multiplier relative to an average European city.
var cityCostIndex = map[string]float64{
	"london": 1.8, "paris": 1.6, "zurich": 2.0, "geneva": 1.9,
	"new york": 2.0, "tokyo": 1.7, "singapore": 1.5,
	"amsterdam": 1.5, "stockholm": 1.6, "copenhagen": 1.6, "oslo": 1.8,
	"dubai": 1.4, "hong kong": 1.6, "sydney": 1.5, "melbourne": 1.4,
	"san francisco": 2.0, "los angeles": 1.6, "miami": 1.5,

	"rome": 1.3, "milan": 1.4, "florence": 1.3, "venice": 1.5,
	"barcelona": 1.3, "madrid": 1.2, "munich": 1.4, "berlin": 1.2,
	"vienna": 1.3, "brussels": 1.3, "dublin": 1.4,
	"toronto": 1.4, "vancouver": 1.4, "boston": 1.6,

	"lisbon": 1.0, "prague": 0.9, "budapest": 0.8, "athens": 0.9,
	"warsaw": 0.8, "krakow": 0.7, "zagreb": 0.8, "ljubljana": 0.9,
	"nice": 1.3, "lyon": 1.1, "marseille": 1.0,

	"split": 0.8, "dubrovnik": 0.9, "zadar": 0.7, "rijeka": 0.7,
	"belgrade": 0.6, "sarajevo": 0.5, "sofia": 0.5, "bucharest": 0.6,
	"bangkok": 0.4, "bali": 0.5, "hanoi": 0.4, "kuala lumpur": 0.5,

	"pula": 0.7, "rovinj": 0.8, "opatija": 0.8, "krk": 0.7,
	"hvar": 0.9, "korčula": 0.7, "makarska": 0.7,
}

// HotelBudgetCap converts a budget band or numeric budget into a nightly
// price cap in EUR. Zero means no cap.
func HotelBudgetCap(budget int, budgetLevel string) int {
	if budget > 0 {
		return budget
	}
	if budgetLevel == "" {
		return 0
	}
	if cap, ok := hotelBudgets[strings.ToLower(budgetLevel)]; ok {
		return cap
	}
	return 150
}

// costIndexFor returns the cost multiplier for a city, trying a partial
// match before defaulting to 1.0.
func costIndexFor(city string) float64 {
	key := cityKey(city)
	if key == "" {
		return 1.0
	}
	if index, ok := cityCostIndex[key]; ok {
		return index
	}
	for known, index := range cityCostIndex {
		if strings.Contains(key, known) {
			return index
		}
	}
	return 1.0
}

// priceLevelBases are nightly base prices per Google price level for an
// average European city. Level 0 means the level was not reported and gets
// a mid-range default.
var priceLevelBases = map[int]int{
	1: 45,  // hostels, basic hotels
	2: 85,  // mid-range
	3: 160, // nice hotels
	4: 300, // luxury
}

// estimateHotelPrice turns a Google price level into a nightly EUR price
// scaled by the city cost index, with a seeded ±15% variance so listings do
// not all share one round number. Minimum 25.
func estimateHotelPrice(priceLevel int, city, hotelName string) int {
	base, ok := priceLevelBases[priceLevel]
	if !ok {
		base = 75
	}
	adjusted := float64(base) * costIndexFor(city)

	seed := 0
	for _, r := range hotelName {
		seed += int(r)
	}
	variance := 0.85 + float64(seed%31)/100
	return max(25, int(adjusted*variance))
}

// searchHotels merges Amadeus offers with Places results, deduplicates by
// name, sorts cheapest first and keeps the top 8. Mock data covers the
// fully-offline case.
func (b *Builder) searchHotels(ctx context.Context, destination, checkIn, checkOut string, priceCap int) []Hotel {
	var hotels []Hotel

	if b.amadeus.Configured() {
		cityCode := b.iataFor(ctx, destination)
		if cityCode != "" {
			offers, err := b.amadeus.SearchHotels(ctx, cityCode, checkIn, checkOut, 1, priceCap, 5)
			if err != nil {
				b.log.Warn("hotel search failed", zap.String("destination", destination), zap.Error(err))
			}
			for _, offer := range offers {
				hotels = append(hotels, Hotel{
					Name:          offer.Name,
					Address:       offer.Address,
					PricePerNight: offer.PricePerNight,
					Link:          hotelMapsLink(offer.Name, destination),
					Source:        offer.Source,
				})
			}
		}
	}

	places, err := b.places.Search(ctx, maps.CategoryHotels, destination, "en", 5)
	if err == nil {
		for _, place := range places {
			price := estimateHotelPrice(place.PriceLevel, destination, place.Name)
			if priceCap > 0 && price > priceCap {
				continue
			}
			hotels = append(hotels, Hotel{
				Name:           place.Name,
				Address:        place.Address,
				Rating:         float64(place.Rating),
				PricePerNight:  price,
				PriceEstimated: place.PriceLevel == 0,
				Link:           place.MapsURL,
				Source:         "places",
			})
		}
	}

	if len(hotels) == 0 {
		return mockHotels(destination)
	}

	seen := make(map[string]struct{}, len(hotels))
	unique := hotels[:0]
	for _, hotel := range hotels {
		key := strings.ToLower(hotel.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, hotel)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].PricePerNight < unique[j].PricePerNight
	})
	if len(unique) > 8 {
		unique = unique[:8]
	}
	return unique
}

var mockHotelNames = []string{"Central", "Grand", "Boutique", "Urban"}

// mockHotels generates deterministic placeholder accommodation.
func mockHotels(city string) []Hotel {
	hotels := make([]Hotel, 0, len(mockHotelNames))
	for i, name := range mockHotelNames {
		idx := i + 1
		hotels = append(hotels, Hotel{
			Name:          fmt.Sprintf("%s %s %d", titleWord(city), name, idx),
			Rating:        4.0 + float64(idx)*0.1,
			PricePerNight: 80 + idx*15,
			Link:          hotelMapsLink(city+" hotel "+name, ""),
			Source:        "estimate",
		})
	}
	return hotels
}

func hotelMapsLink(name, city string) string {
	query := name
	if city != "" {
		query = name + " " + city
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}
