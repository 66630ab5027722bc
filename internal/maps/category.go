// README: Place search categories, detection keywords, and offline fallback data.
package maps

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Category is a place search bucket (restaurants, nightlife, ...).
type Category string

const (
	CategoryRestaurants Category = "restaurants"
	CategoryNightlife   Category = "nightlife"
	CategoryCafes       Category = "cafes"
	CategoryHotels      Category = "hotels"
	CategoryActivities  Category = "activities"

	DefaultCategory = CategoryActivities
)

type categoryConfig struct {
	keywords []string
	query    string
	label    string
	cardType string
}

var categoryConfigs = map[Category]categoryConfig{
	CategoryRestaurants: {
		keywords: []string{"restaurant", "restoran", "eat", "dining", "food", "bistro"},
		query:    "best restaurants",
		label:    "restaurants",
		cardType: "restaurant",
	},
	CategoryNightlife: {
		keywords: []string{"club", "nightclub", "bar", "nightlife", "party", "noćni", "nocni", "klub", "zabava", "izlazak", "clubbing"},
		query:    "best nightlife",
		label:    "nightlife spots",
		cardType: "activity",
	},
	CategoryCafes: {
		keywords: []string{"cafe", "coffee", "kafić", "kafic", "espresso"},
		query:    "cozy cafes",
		label:    "cafés",
		cardType: "restaurant",
	},
	CategoryHotels: {
		keywords: []string{"hotel", "stay", "accommodation", "smještaj"},
		query:    "top hotels",
		label:    "hotels",
		cardType: "hotel",
	},
	CategoryActivities: {
		keywords: []string{"things to do", "što raditi", "activities", "attractions", "poi", "zanimljivosti", "sights"},
		query:    "things to do",
		label:    "activities",
		cardType: "activity",
	},
}

// categoryOrder keeps detection deterministic; restaurants wins over cafes for
// messages mentioning both.
var categoryOrder = []Category{
	CategoryRestaurants, CategoryNightlife, CategoryCafes, CategoryHotels, CategoryActivities,
}

// DetectCategory maps a free-text message onto a search category.
func DetectCategory(message string) Category {
	msg := strings.ToLower(message)
	for _, cat := range categoryOrder {
		for _, keyword := range categoryConfigs[cat].keywords {
			if strings.Contains(msg, keyword) {
				return cat
			}
		}
	}
	return DefaultCategory
}

func (c Category) config() categoryConfig {
	if cfg, ok := categoryConfigs[c]; ok {
		return cfg
	}
	return categoryConfigs[DefaultCategory]
}

// Query is the Places API text query for the category.
func (c Category) Query() string { return c.config().query }

// Label is the human heading used in formatted replies.
func (c Category) Label() string { return c.config().label }

// CardType is the card block type emitted for results in this category.
func (c Category) CardType() string { return c.config().cardType }

type fallbackPlace struct {
	name    string
	address string
	rating  float32
}

// fallbackTemplates serve results when no API key is configured or the API
// call fails. {city} is substituted with the requested city.
var fallbackTemplates = map[Category][]fallbackPlace{
	CategoryRestaurants: {
		{"Atelier {city}", "Historic center, {city}", 4.8},
		{"Sea Salt Kitchen", "Waterfront promenade, {city}", 4.6},
		{"Urban Garden", "Design district, {city}", 4.7},
	},
	CategoryNightlife: {
		{"Club Aurora", "Old town arches, {city}", 4.5},
		{"Skyline Bar", "Rooftop, {city} center", 4.6},
		{"Basement Beats", "Creative quarter, {city}", 4.4},
	},
	CategoryCafes: {
		{"Kavana Botanika", "City park edge, {city}", 4.7},
		{"Espresso Society", "Main square, {city}", 4.6},
		{"Velvet Roast", "Art district, {city}", 4.5},
	},
	CategoryHotels: {
		{"Grand Palace {city}", "Central boulevard", 4.8},
		{"Boutique Atelier", "Old town courtyard", 4.6},
		{"Harborline Suites", "Seafront", 4.7},
	},
	CategoryActivities: {
		{"Panoramic Walk", "Riverside trail, {city}", 4.9},
		{"Local Market Tour", "Green market, {city}", 4.7},
		{"Contemporary Art Hub", "Museum quarter, {city}", 4.6},
	},
}

func fallbackPlaces(category Category, city string, limit int) []Place {
	if city == "" {
		city = "Zagreb"
	}
	city = titleCity(city)
	templates, ok := fallbackTemplates[category]
	if !ok {
		templates = fallbackTemplates[DefaultCategory]
	}
	if limit > len(templates) {
		limit = len(templates)
	}
	results := make([]Place, 0, limit)
	for _, tpl := range templates[:limit] {
		name := strings.ReplaceAll(tpl.name, "{city}", city)
		address := strings.ReplaceAll(tpl.address, "{city}", city)
		results = append(results, Place{
			Name:    name,
			Address: address,
			Rating:  tpl.rating,
			Types:   []string{string(category)},
			MapsURL: "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(name+" "+city),
			City:    city,
		})
	}
	return results
}

func titleCity(city string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(city)))
	for i, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		fields[i] = strings.ToUpper(string(r)) + f[size:]
	}
	return strings.Join(fields, " ")
}
