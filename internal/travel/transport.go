// README: Ground transport options: direct bus routes, hub routing, trains.
package travel

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BusOption is one bus leg or referral in a travel bundle.
type BusOption struct {
	Company   string `json:"company"`
	Route     string `json:"route"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Duration  string `json:"duration"`
	Price     int    `json:"price,omitempty"`
	Link      string `json:"link"`
	Segments  int    `json:"segments"`
	Note      string `json:"note,omitempty"`
}

// TrainOption is one rail option in a travel bundle.
type TrainOption struct {
	Operator  string `json:"operator"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Duration  string `json:"duration"`
	Price     int    `json:"price"`
	Link      string `json:"link"`
}

// directBusRoutes lists city pairs the FlixBus network actually serves.
var directBusRoutes = map[[2]string]struct{}{
	{"zagreb", "munich"}: {}, {"zagreb", "vienna"}: {}, {"zagreb", "budapest"}: {},
	{"zagreb", "berlin"}: {}, {"zagreb", "paris"}: {}, {"zagreb", "amsterdam"}: {},
	{"zagreb", "prague"}: {},
	{"split", "munich"}:  {}, {"split", "vienna"}: {}, {"split", "budapest"}: {},
	{"rijeka", "munich"}: {}, {"rijeka", "vienna"}: {}, {"rijeka", "trieste"}: {},
	{"rijeka", "budapest"}:  {},
	{"dubrovnik", "munich"}: {}, {"dubrovnik", "vienna"}: {},

	{"paris", "london"}: {}, {"paris", "amsterdam"}: {}, {"paris", "brussels"}: {},
	{"paris", "berlin"}:  {},
	{"berlin", "amsterdam"}: {}, {"berlin", "prague"}: {}, {"berlin", "vienna"}: {},
	{"berlin", "warsaw"}: {},
	{"munich", "vienna"}: {}, {"munich", "prague"}: {}, {"munich", "zurich"}: {},
	{"vienna", "budapest"}: {}, {"vienna", "prague"}: {}, {"vienna", "bratislava"}: {},

	{"zagreb", "sarajevo"}: {}, {"zagreb", "belgrade"}: {}, {"zagreb", "ljubljana"}: {},
	{"split", "sarajevo"}: {}, {"split", "mostar"}: {},
	{"rijeka", "ljubljana"}: {}, {"rijeka", "zagreb"}: {},
	{"dubrovnik", "mostar"}: {}, {"dubrovnik", "split"}: {},
}

// transportHubs are the major bus/train hubs per country.
var transportHubs = map[string][]string{
	"croatia":  {"zagreb", "rijeka", "split", "dubrovnik", "zadar", "osijek", "pula"},
	"slovenia": {"ljubljana", "maribor"},
	"bosnia":   {"sarajevo", "mostar", "banja luka"},
	"serbia":   {"belgrade", "novi sad"},
	"greece":   {"athens", "thessaloniki"},
}

// townToHub maps small coastal towns and islands to the nearest hub.
var townToHub = map[string]string{
	"omisalj":     "rijeka",
	"icici":       "rijeka",
	"opatija":     "rijeka",
	"crikvenica":  "rijeka",
	"mali losinj": "rijeka",
	"krk":         "rijeka",
	"cres":        "rijeka",
	"vrbnik":      "rijeka",
	"punat":       "rijeka",
	"baska":       "rijeka",
	"makarska":    "split",
	"trogir":      "split",
	"omis":        "split",
	"hvar":        "split",
	"brac":        "split",
	"vis":         "split",
	"korcula":     "dubrovnik",
	"mljet":       "dubrovnik",
	"cavtat":      "dubrovnik",
}

func directBusAvailable(origin, destination string) bool {
	o, d := cityKey(origin), cityKey(destination)
	if _, ok := directBusRoutes[[2]string{o, d}]; ok {
		return true
	}
	_, ok := directBusRoutes[[2]string{d, o}]
	return ok
}

func nearestHub(city string) string {
	key := cityKey(city)
	if key == "" {
		return ""
	}
	for _, hubs := range transportHubs {
		for _, hub := range hubs {
			if key == hub {
				return key
			}
		}
	}
	return townToHub[key]
}

// routeSeed derives a stable seed from the route so generated times stay
// identical across calls.
func routeSeed(origin, destination string) int {
	seed := 0
	for _, r := range origin + destination {
		seed += int(r)
	}
	return seed
}

// seededDeparture returns a plausible morning departure time seeded from the
// route, e.g. "07:45".
func seededDeparture(origin, destination string) string {
	seed := routeSeed(origin, destination)
	hour := 6 + seed%9
	minute := (seed / 7) % 4 * 15
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

var durationPattern = regexp.MustCompile(`(\d+)h(?:\s*(\d+)m)?`)

// arrivalFromDuration adds a duration like "12h 30m" to a departure time,
// appending "(+1d)" when the trip crosses midnight.
func arrivalFromDuration(departure, duration string) string {
	if !strings.Contains(duration, "h") {
		return "same day"
	}
	var depHour, depMin int
	if _, err := fmt.Sscanf(departure, "%d:%d", &depHour, &depMin); err != nil {
		return "same day"
	}
	m := durationPattern.FindStringSubmatch(duration)
	if m == nil {
		return "same day"
	}
	var hours, minutes int
	fmt.Sscanf(m[1], "%d", &hours)
	if m[2] != "" {
		fmt.Sscanf(m[2], "%d", &minutes)
	}
	total := depHour*60 + depMin + hours*60 + minutes
	suffix := ""
	if days := total / (24 * 60); days > 0 {
		suffix = fmt.Sprintf(" (+%dd)", days)
	}
	return fmt.Sprintf("%02d:%02d%s", total/60%24, total%60, suffix)
}

// estimateBusPrice derives a plausible EUR price from the city names,
// clamped to a sane range.
func estimateBusPrice(origin, destination string) int {
	if origin == "" || destination == "" {
		return 40
	}
	base := 30 + len(origin)*2 + len(destination)
	return max(25, min(180, base))
}

// estimateBusDuration estimates coach travel time from the road distance at
// roughly 70 km/h. Empty when the distance is unknown.
func estimateBusDuration(origin, destination string) string {
	distanceKM := drivingDistanceKM(origin, destination)
	if distanceKM == 0 {
		return ""
	}
	hours := float64(distanceKM) / 70
	h := int(hours)
	m := int(hours*60) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func rome2RioLink(origin, destination string) string {
	return fmt.Sprintf("https://www.rome2rio.com/s/%s/%s", slugCity(origin), slugCity(destination))
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9-]`)

func slugCity(city string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(city)), " ", "-")
	return slugStripPattern.ReplaceAllString(slug, "")
}

// buildBusOptions returns the bus legs for the route: a direct FlixBus when
// the network serves it, otherwise a local leg to the nearest hub plus the
// long-distance leg (or a Rome2Rio referral when even the hub has nothing).
func buildBusOptions(origin, destination string) []BusOption {
	if origin == "" || destination == "" {
		return nil
	}
	originKey := cityKey(origin)
	destKey := cityKey(destination)

	if directBusAvailable(originKey, destKey) {
		duration := estimateBusDuration(origin, destination)
		if duration == "" {
			duration = "10h"
		}
		departure := seededDeparture(origin, destination)
		return []BusOption{{
			Company:   "FlixBus",
			Route:     fmt.Sprintf("%s → %s", titleWord(origin), titleWord(destination)),
			Departure: departure,
			Arrival:   arrivalFromDuration(departure, duration),
			Duration:  duration,
			Price:     estimateBusPrice(origin, destination),
			Link:      rome2RioLink(origin, destination),
			Segments:  1,
		}}
	}

	originHub := nearestHub(origin)
	if originHub == "" {
		return []BusOption{{
			Company:   "Rome2Rio",
			Route:     fmt.Sprintf("%s → %s", titleWord(origin), titleWord(destination)),
			Departure: "Provjeri Rome2Rio",
			Arrival:   "—",
			Duration:  "—",
			Link:      rome2RioLink(origin, destination),
			Segments:  0,
			Note:      "Nema direktnog busa. Koristi Rome2Rio za pronalaženje rute preko najbližeg grada.",
		}}
	}

	var buses []BusOption
	if originKey != originHub {
		localDuration := "45 min"
		localArrival := "08:45"
		localPrice := 8
		if originHub == "rijeka" {
			localDuration = "30 min"
			localArrival = "08:30"
			localPrice = 5
		}
		buses = append(buses, BusOption{
			Company:   "Lokalni prijevoz",
			Route:     fmt.Sprintf("%s → %s", titleWord(origin), titleWord(originHub)),
			Departure: "08:00",
			Arrival:   localArrival,
			Duration:  localDuration,
			Price:     localPrice,
			Link:      rome2RioLink(origin, originHub),
			Segments:  1,
			Note:      fmt.Sprintf("Lokalni bus ili autotrola do %s", titleWord(originHub)),
		})
	}

	if directBusAvailable(originHub, destKey) {
		duration := estimateBusDuration(originHub, destination)
		if duration == "" {
			duration = "15h"
		}
		buses = append(buses, BusOption{
			Company:   "FlixBus",
			Route:     fmt.Sprintf("%s → %s", titleWord(originHub), titleWord(destination)),
			Departure: "10:00",
			Arrival:   arrivalFromDuration("10:00", duration),
			Duration:  duration,
			Price:     estimateBusPrice(originHub, destination),
			Link:      rome2RioLink(originHub, destination),
			Segments:  2,
			Note:      fmt.Sprintf("Glavni bus od %s do destinacije", titleWord(originHub)),
		})
	} else {
		buses = append(buses, BusOption{
			Company:   "Rome2Rio",
			Route:     fmt.Sprintf("%s → %s", titleWord(originHub), titleWord(destination)),
			Departure: "Provjeri Rome2Rio",
			Arrival:   "—",
			Duration:  "—",
			Link:      rome2RioLink(originHub, destination),
			Segments:  2,
			Note:      fmt.Sprintf("Koristi Rome2Rio za pronalaženje najbolje rute preko %s", titleWord(originHub)),
		})
	}
	return buses
}

// buildTrainOptions generates one deterministic overnight rail option.
func buildTrainOptions(origin, destination, link string) []TrainOption {
	if origin == "" || destination == "" {
		return nil
	}
	duration := estimateBusDuration(origin, destination)
	if duration != "" {
		duration = strings.Replace(duration, "h", "h (overnight)", 1)
	} else {
		duration = "Overnight"
	}
	operator := "EuroNight"
	if utf8.RuneCountInString(destination)%2 == 0 {
		operator = "Railjet"
	}
	return []TrainOption{{
		Operator:  operator,
		Departure: "21:10",
		Arrival:   "07:05 (+1d)",
		Duration:  duration,
		Price:     max(35, min(150, estimateBusPrice(origin, destination)+15)),
		Link:      link,
	}}
}

// titleWord uppercases the first letter of each word in a city name.
func titleWord(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
