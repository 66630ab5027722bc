// README: Travel bundle builder: aggregates transport, stays, food and links for a route.
package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"roam/internal/amadeus"
	"roam/internal/maps"
)

// DrivingOption is the car alternative for a route.
type DrivingOption struct {
	Mode            string `json:"mode"`
	DistanceKM      int    `json:"distance_km"`
	Duration        string `json:"duration"`
	FuelCost        int    `json:"fuel_cost"`
	TollCost        int    `json:"toll_cost"`
	TotalCost       int    `json:"total_cost"`
	DaysRecommended int    `json:"days_recommended"`
	Link            string `json:"link"`
	Notes           string `json:"notes,omitempty"`
}

// Links collects the booking shortcuts attached to every bundle.
type Links struct {
	GoogleFlights string `json:"google_flights,omitempty"`
	Booking       string `json:"booking,omitempty"`
	Airbnb        string `json:"airbnb,omitempty"`
	Rome2Rio      string `json:"rome2rio,omitempty"`
	Train         string `json:"train,omitempty"`
}

// Bundle is everything the assistant knows about one trip: transport
// options, stays, food, activities and booking links.
type Bundle struct {
	Origin        string         `json:"origin,omitempty"`
	Destination   string         `json:"destination"`
	Budget        int            `json:"budget,omitempty"`
	BudgetLevel   string         `json:"budget_level,omitempty"`
	DepartureDate string         `json:"departure_date,omitempty"`
	ReturnDate    string         `json:"return_date,omitempty"`
	Preferences   []string       `json:"preferences,omitempty"`
	IsReturnTrip  bool           `json:"is_return_trip,omitempty"`
	Driving       *DrivingOption `json:"driving,omitempty"`
	Flights       []Flight       `json:"flights,omitempty"`
	Buses         []BusOption    `json:"buses,omitempty"`
	Trains        []TrainOption  `json:"trains,omitempty"`
	Hotels        []Hotel        `json:"hotels,omitempty"`
	Restaurants   []maps.Place   `json:"restaurants,omitempty"`
	Activities    []maps.Place   `json:"activities,omitempty"`
	Links         Links          `json:"links"`
	LanguageCode  string         `json:"language_code,omitempty"`
}

// Request carries everything needed to assemble a bundle.
type Request struct {
	Origin        string
	Destination   string
	Budget        int
	BudgetLevel   string
	DepartureDate string
	ReturnDate    string
	Preferences   []string
	LanguageCode  string
}

// Builder assembles travel bundles from the Amadeus client and the Places
// service. Both degrade gracefully, so a Builder without API keys still
// produces complete bundles from estimates.
type Builder struct {
	amadeus    *amadeus.Client
	places     *maps.PlacesService
	directions *maps.DirectionsService
	log        *zap.Logger
}

// NewBuilder wires a bundle builder.
func NewBuilder(amadeusClient *amadeus.Client, places *maps.PlacesService, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{amadeus: amadeusClient, places: places, log: log}
}

// WithDirections attaches live driving estimates; without it the car option
// falls back to curated distances and Haversine math.
func (b *Builder) WithDirections(directions *maps.DirectionsService) *Builder {
	b.directions = directions
	return b
}

// drivingOption refines the offline car estimate with live route data when
// the Directions API is configured.
func (b *Builder) drivingOption(ctx context.Context, origin, destination string) *DrivingOption {
	opt := buildDrivingOption(origin, destination)
	if opt == nil || b.directions == nil {
		return opt
	}
	duration, distanceKM, err := b.directions.DrivingEstimate(ctx, origin, destination)
	if err != nil {
		b.log.Warn("directions estimate failed",
			zap.String("origin", origin), zap.String("destination", destination), zap.Error(err))
		return opt
	}
	if distanceKM == 0 {
		return opt
	}
	opt.DistanceKM = distanceKM
	opt.Duration = formatLiveDrivingTime(duration)
	opt.FuelCost = estimateFuelCost(distanceKM)
	opt.TollCost = estimateTollCost(origin, destination, distanceKM)
	opt.TotalCost = opt.FuelCost + opt.TollCost
	return opt
}

// shouldSearchFlights skips flight search on routes under 200 km where a
// car or bus always wins.
func shouldSearchFlights(origin, destination string) bool {
	if origin == "" || destination == "" {
		return false
	}
	distance := drivingDistanceKM(origin, destination)
	return distance == 0 || distance >= 200
}

// BuildBundle assembles a full travel bundle for the route.
func (b *Builder) BuildBundle(ctx context.Context, req Request) Bundle {
	flightCap := FlightBudgetCap(req.Budget, req.BudgetLevel)
	hotelCap := HotelBudgetCap(req.Budget, req.BudgetLevel)

	var flights []Flight
	if shouldSearchFlights(req.Origin, req.Destination) {
		flights = b.searchFlights(ctx, req.Origin, req.Destination, req.DepartureDate, req.ReturnDate, flightCap)
	}

	hotels := b.searchHotels(ctx, req.Destination, req.DepartureDate, req.ReturnDate, hotelCap)
	restaurants := b.searchPlaces(ctx, maps.CategoryRestaurants, req.Destination, req.LanguageCode)
	activities := b.searchPlaces(ctx, maps.CategoryActivities, req.Destination, req.LanguageCode)

	buses := buildBusOptions(req.Origin, req.Destination)
	linkOrigin := req.Origin
	if linkOrigin == "" {
		linkOrigin = req.Destination
	}
	rome2rio := rome2RioLink(linkOrigin, req.Destination)
	trains := buildTrainOptions(req.Origin, req.Destination, rome2rio)
	driving := b.drivingOption(ctx, req.Origin, req.Destination)

	return Bundle{
		Origin:        req.Origin,
		Destination:   req.Destination,
		Budget:        req.Budget,
		BudgetLevel:   req.BudgetLevel,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Preferences:   req.Preferences,
		Driving:       driving,
		Flights:       flights,
		Buses:         buses,
		Trains:        trains,
		Hotels:        hotels,
		Restaurants:   restaurants,
		Activities:    activities,
		Links: Links{
			GoogleFlights: BuildGoogleFlightsLink(linkOrigin, req.Destination),
			Booking: "https://www.booking.com/searchresults.html?ss=" +
				url.QueryEscape(req.Destination),
			Airbnb: fmt.Sprintf("https://www.airbnb.com/s/%s--stays",
				url.QueryEscape(req.Destination)),
			Rome2Rio: rome2rio,
			Train:    rome2rio,
		},
		LanguageCode: req.LanguageCode,
	}
}

// BuildReturnBundle assembles a transport-only bundle for the trip home.
// No hotels, restaurants or activities; the traveler already knows the
// place they are returning to.
func (b *Builder) BuildReturnBundle(ctx context.Context, req Request) Bundle {
	flightCap := FlightBudgetCap(req.Budget, req.BudgetLevel)

	departure := req.ReturnDate
	if departure == "" {
		departure = req.DepartureDate
	}
	flights := b.searchFlights(ctx, req.Origin, req.Destination, departure, "", flightCap)
	buses := buildBusOptions(req.Origin, req.Destination)
	rome2rio := rome2RioLink(req.Origin, req.Destination)
	trains := buildTrainOptions(req.Origin, req.Destination, rome2rio)
	driving := b.drivingOption(ctx, req.Origin, req.Destination)

	return Bundle{
		Origin:       req.Origin,
		Destination:  req.Destination,
		Budget:       req.Budget,
		BudgetLevel:  req.BudgetLevel,
		ReturnDate:   departure,
		IsReturnTrip: true,
		Driving:      driving,
		Flights:      flights,
		Buses:        buses,
		Trains:       trains,
		Links: Links{
			GoogleFlights: BuildGoogleFlightsLink(req.Origin, req.Destination),
			Rome2Rio:      rome2rio,
			Train:         rome2rio,
		},
		LanguageCode: req.LanguageCode,
	}
}

func (b *Builder) searchPlaces(ctx context.Context, category maps.Category, city, languageCode string) []maps.Place {
	places, err := b.places.Search(ctx, category, city, languageCode, 4)
	if err != nil {
		b.log.Warn("places search failed",
			zap.String("category", string(category)), zap.String("city", city), zap.Error(err))
		return nil
	}
	return places
}

// Serialize renders the bundle as JSON for the TRAVEL_DATA system turn.
func (b Bundle) Serialize() string {
	data, err := json.Marshal(b)
	if err != nil {
		return "{}"
	}
	return string(data)
}
