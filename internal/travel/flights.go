// README: Flight search with IATA resolution, alternative airports and seeded mock fallback.
package travel

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Flight is one flight option in a travel bundle.
type Flight struct {
	Airline           string `json:"airline"`
	Price             int    `json:"price"`
	Currency          string `json:"currency"`
	Duration          string `json:"duration"`
	Stops             int    `json:"stops"`
	DepartureTime     string `json:"departure_time,omitempty"`
	ArrivalTime       string `json:"arrival_time,omitempty"`
	DepartureAirport  string `json:"departure_airport,omitempty"`
	ArrivalAirport    string `json:"arrival_airport,omitempty"`
	OriginCity        string `json:"origin_city,omitempty"`
	DestinationCity   string `json:"dest_city,omitempty"`
	AlternativeOrigin bool   `json:"alternative_origin,omitempty"`
	Link              string `json:"link,omitempty"`
	Source            string `json:"source"`
}

// directIATACodes maps city names, including Croatian and localized
// spellings, straight to IATA codes so common routes skip the API lookup.
var directIATACodes = map[string]string{
	"rijeka":    "RJK",
	"zagreb":    "ZAG",
	"split":     "SPU",
	"dubrovnik": "DBV",
	"pula":      "PUY",
	"zadar":     "ZAD",

	"ljubljana": "LJU",

	"trieste":  "TRS",
	"trst":     "TRS",
	"venice":   "VCE",
	"venecija": "VCE",
	"milan":    "MIL",
	"milano":   "MIL",
	"rome":     "ROM",
	"rim":      "ROM",

	"london":     "LON",
	"paris":      "PAR",
	"pariz":      "PAR",
	"barcelona":  "BCN",
	"berlin":     "BER",
	"vienna":     "VIE",
	"beč":        "VIE",
	"bec":        "VIE",
	"wien":       "VIE",
	"budapest":   "BUD",
	"budimpešta": "BUD",
	"munich":     "MUC",
	"minhen":     "MUC",
	"münchen":    "MUC",
	"amsterdam":  "AMS",
	"prague":     "PRG",
	"prag":       "PRG",
	"athens":     "ATH",
	"atena":      "ATH",

	"new york":      "NYC",
	"njujork":       "NYC",
	"los angeles":   "LAX",
	"chicago":       "ORD",
	"miami":         "MIA",
	"san francisco": "SFO",
	"boston":        "BOS",
	"washington":    "IAD",

	"tokyo":     "TYO",
	"tokio":     "TYO",
	"osaka":     "OSA",
	"singapore": "SIN",
	"singapur":  "SIN",
	"hong kong": "HKG",
	"bangkok":   "BKK",
	"seoul":     "ICN",

	"buenos aires":   "BUE",
	"sao paulo":      "GRU",
	"rio de janeiro": "GIG",

	"bratislava": "BTS",
	"warsaw":     "WAW",
	"varšava":    "WAW",
	"brussels":   "BRU",
	"bruxelles":  "BRU",
	"lisbon":     "LIS",
	"lisabon":    "LIS",
	"madrid":     "MAD",
	"dublin":     "DUB",
	"stockholm":  "ARN",
	"copenhagen": "CPH",
	"kopenhagen": "CPH",
	"oslo":       "OSL",
	"helsinki":   "HEL",
	"moscow":     "SVO",
	"moskva":     "SVO",
}

// alternativeAirports lists nearby major airports to try when a small
// airport turns up no flights.
var alternativeAirports = map[string][]string{
	"rijeka":  {"zagreb", "trieste", "venice"},
	"pula":    {"trieste", "venice", "ljubljana"},
	"zadar":   {"split", "zagreb"},
	"osijek":  {"budapest", "zagreb"},
	"maribor": {"graz", "ljubljana", "zagreb"},
	"koper":   {"trieste", "venice", "ljubljana"},
	"opatija": {"rijeka", "trieste", "venice", "zagreb"},
}

// croatianSuffixes are declension endings stripped when normalizing city
// names, e.g. "Pariza" → "pariz", "Londona" → "london".
var croatianSuffixes = []string{"a", "u", "om", "e", "i"}

// flightBudgets maps budget bands to flight price caps. Flight prices run
// much higher than hotel prices so the caps are generous.
var flightBudgets = map[string]int{
	"low":    500,
	"budget": 800,
	"medium": 1500,
	"high":   3000,
	"luxury": 5000,
}

// normalizeCityName lowercases a city and strips Croatian declension
// suffixes when the base form is a known city.
func normalizeCityName(city string) string {
	key := cityKey(city)
	if key == "" {
		return key
	}
	if _, ok := directIATACodes[key]; ok {
		return key
	}
	for _, suffix := range croatianSuffixes {
		if !strings.HasSuffix(key, suffix) || len(key) <= len(suffix)+2 {
			continue
		}
		base := key[:len(key)-len(suffix)]
		if _, ok := directIATACodes[base]; ok {
			return base
		}
		if _, ok := directIATACodes[base+"z"]; ok {
			return base + "z"
		}
		if _, ok := directIATACodes[base+"n"]; ok {
			return base + "n"
		}
	}
	return key
}

// FlightBudgetCap converts a budget band or numeric budget into a flight
// price cap in EUR. Zero means no cap.
func FlightBudgetCap(budget int, budgetLevel string) int {
	if budget > 0 {
		return budget
	}
	if budgetLevel == "" {
		return 0
	}
	if cap, ok := flightBudgets[strings.ToLower(budgetLevel)]; ok {
		return cap
	}
	return 1500
}

// iataFor resolves a city to its IATA code using the direct table first and
// the Amadeus locations API second.
func (b *Builder) iataFor(ctx context.Context, city string) string {
	if code, ok := directIATACodes[normalizeCityName(city)]; ok {
		return code
	}
	code, err := b.amadeus.IATACode(ctx, city)
	if err != nil {
		return ""
	}
	return code
}

// searchFlights queries Amadeus for the route, trying alternative nearby
// airports when the primary one has nothing, and falls back to seeded mock
// offers so a plan never ships without flight options.
func (b *Builder) searchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, budgetCap int) []Flight {
	if origin == "" || destination == "" {
		return nil
	}

	originKey := normalizeCityName(origin)
	originIATA := b.iataFor(ctx, origin)
	destIATA := b.iataFor(ctx, destination)

	var flights []Flight
	if originIATA != "" && destIATA != "" {
		offers, err := b.amadeus.SearchFlights(ctx, originIATA, destIATA, departureDate, returnDate, 1, 5)
		if err != nil {
			b.log.Warn("flight search failed",
				zap.String("origin", origin), zap.String("destination", destination), zap.Error(err))
		}
		for _, offer := range offers {
			if budgetCap > 0 && offer.Price > budgetCap {
				continue
			}
			flights = append(flights, Flight{
				Airline:          offer.Airline,
				Price:            offer.Price,
				Currency:         offer.Currency,
				Duration:         offer.Duration,
				Stops:            offer.Stops,
				DepartureTime:    offer.DepartureTime,
				ArrivalTime:      offer.ArrivalTime,
				DepartureAirport: offer.DepartureAirport,
				ArrivalAirport:   offer.ArrivalAirport,
				OriginCity:       origin,
				DestinationCity:  destination,
				Source:           offer.Source,
			})
		}
	}

	if len(flights) == 0 && destIATA != "" {
		for _, altCity := range alternativeAirports[originKey] {
			altIATA := b.iataFor(ctx, altCity)
			if altIATA == "" || altIATA == originIATA {
				continue
			}
			offers, err := b.amadeus.SearchFlights(ctx, altIATA, destIATA, departureDate, returnDate, 1, 3)
			if err != nil {
				continue
			}
			if len(offers) == 0 {
				continue
			}
			for _, offer := range offers {
				flights = append(flights, Flight{
					Airline:           offer.Airline,
					Price:             offer.Price,
					Currency:          offer.Currency,
					Duration:          offer.Duration,
					Stops:             offer.Stops,
					DepartureTime:     offer.DepartureTime,
					ArrivalTime:       offer.ArrivalTime,
					DepartureAirport:  offer.DepartureAirport,
					ArrivalAirport:    offer.ArrivalAirport,
					OriginCity:        fmt.Sprintf("%s (from %s)", titleWord(altCity), origin),
					DestinationCity:   destination,
					AlternativeOrigin: true,
					Source:            offer.Source,
				})
			}
			break
		}
	}

	if len(flights) == 0 {
		return mockFlights(origin, destination, originIATA, destIATA, budgetCap)
	}

	sort.SliceStable(flights, func(i, j int) bool { return flights[i].Price < flights[j].Price })
	if len(flights) > 8 {
		flights = flights[:8]
	}
	return flights
}

var mockAirlines = []string{"Croatia Airlines", "Lufthansa", "Ryanair", "Austrian", "easyJet"}

// mockFlights generates deterministic placeholder offers. Departure times
// are seeded from the route so the same question always gets the same plan.
func mockFlights(origin, destination, originIATA, destIATA string, budgetCap int) []Flight {
	if origin == "" || destination == "" {
		return nil
	}
	distanceKM := drivingDistanceKM(origin, destination)
	if distanceKM == 0 {
		distanceKM = 1200
	}

	basePrice := max(39, distanceKM/10)
	if budgetCap > 0 && basePrice > budgetCap {
		basePrice = budgetCap
	}
	flightHours := float64(distanceKM)/750 + 0.5
	duration := fmt.Sprintf("%dh %dm", int(flightHours), int(flightHours*60)%60)
	seed := routeSeed(origin, destination)
	link := BuildGoogleFlightsLink(origin, destination)

	if originIATA == "" {
		originIATA = strings.ToUpper(firstN(normalizeCityName(origin), 3))
	}
	if destIATA == "" {
		destIATA = strings.ToUpper(firstN(normalizeCityName(destination), 3))
	}

	direct := Flight{
		Airline:          mockAirlines[seed%len(mockAirlines)],
		Price:            basePrice,
		Currency:         "EUR",
		Duration:         duration,
		Stops:            0,
		DepartureTime:    seededDeparture(origin, destination),
		DepartureAirport: originIATA,
		ArrivalAirport:   destIATA,
		OriginCity:       origin,
		DestinationCity:  destination,
		Link:             link,
		Source:           "estimate",
	}
	connecting := direct
	connecting.Airline = mockAirlines[(seed+2)%len(mockAirlines)]
	connecting.Price = basePrice * 7 / 10
	connecting.Stops = 1
	connecting.Duration = fmt.Sprintf("%dh %dm", int(flightHours)+2, int(flightHours*60)%60)
	connecting.DepartureTime = seededDeparture(destination, origin)

	flights := []Flight{direct, connecting}
	sort.SliceStable(flights, func(i, j int) bool { return flights[i].Price < flights[j].Price })
	return flights
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

var numericPrefixPattern = regexp.MustCompile(`^\d+[./-]`)

// BuildGoogleFlightsLink builds a Google Flights search URL, rejecting
// inputs that look like dates or bare numbers.
func BuildGoogleFlightsLink(origin, destination string) string {
	const base = "https://www.google.com/travel/flights"
	if origin == "" || destination == "" {
		return base
	}
	if numericPrefixPattern.MatchString(origin) || numericPrefixPattern.MatchString(destination) {
		return base
	}
	if isDigitsAndSeparators(origin) || isDigitsAndSeparators(destination) {
		return base
	}
	return fmt.Sprintf("%s?q=flights+from+%s+to+%s",
		base, url.QueryEscape(origin), url.QueryEscape(destination))
}

func isDigitsAndSeparators(s string) bool {
	stripped := strings.NewReplacer(".", "", "-", "").Replace(s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
