// README: Geography helpers: city coordinates, driving distances, toll and fuel estimates.
package travel

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

type cityGeo struct {
	lat     float64
	lng     float64
	country string
}

// knownCities covers the cities the assistant sees most, including Croatian
// spellings of foreign cities, so distance math keeps working without any
// geocoding API.
var knownCities = map[string]cityGeo{
	// Croatia
	"zagreb":     {45.8, 16.0, "croatia"},
	"rijeka":     {45.3, 14.4, "croatia"},
	"split":      {43.5, 16.4, "croatia"},
	"dubrovnik":  {42.6, 18.1, "croatia"},
	"zadar":      {44.1, 15.2, "croatia"},
	"pula":       {44.9, 13.8, "croatia"},
	"osijek":     {45.6, 18.7, "croatia"},
	"opatija":    {45.3, 14.3, "croatia"},
	"omisalj":    {45.2, 14.5, "croatia"},
	"omišalj":    {45.2, 14.5, "croatia"},
	"krk":        {45.0, 14.6, "croatia"},
	"crikvenica": {45.2, 14.7, "croatia"},
	"mali lošinj": {44.5, 14.5, "croatia"},
	"rovinj":     {45.1, 13.6, "croatia"},
	"poreč":      {45.2, 13.6, "croatia"},
	"makarska":   {43.3, 17.0, "croatia"},
	"šibenik":    {43.7, 15.9, "croatia"},

	// Slovenia
	"ljubljana": {46.1, 14.5, "slovenia"},
	"maribor":   {46.6, 15.6, "slovenia"},
	"koper":     {45.5, 13.7, "slovenia"},
	"bled":      {46.4, 14.1, "slovenia"},

	// Austria
	"vienna":    {48.2, 16.4, "austria"},
	"beč":       {48.2, 16.4, "austria"},
	"wien":      {48.2, 16.4, "austria"},
	"salzburg":  {47.8, 13.0, "austria"},
	"graz":      {47.1, 15.4, "austria"},
	"innsbruck": {47.3, 11.4, "austria"},

	// Hungary
	"budapest":   {47.5, 19.0, "hungary"},
	"budimpešta": {47.5, 19.0, "hungary"},

	// Italy
	"rome":     {41.9, 12.5, "italy"},
	"rim":      {41.9, 12.5, "italy"},
	"milan":    {45.5, 9.2, "italy"},
	"milano":   {45.5, 9.2, "italy"},
	"venice":   {45.4, 12.3, "italy"},
	"venecija": {45.4, 12.3, "italy"},
	"florence": {43.8, 11.3, "italy"},
	"firenca":  {43.8, 11.3, "italy"},
	"naples":   {40.9, 14.3, "italy"},
	"napulj":   {40.9, 14.3, "italy"},
	"trieste":  {45.6, 13.8, "italy"},
	"trst":     {45.6, 13.8, "italy"},

	// Germany
	"berlin":    {52.5, 13.4, "germany"},
	"munich":    {48.1, 11.6, "germany"},
	"minhen":    {48.1, 11.6, "germany"},
	"münchen":   {48.1, 11.6, "germany"},
	"frankfurt": {50.1, 8.7, "germany"},
	"hamburg":   {53.6, 10.0, "germany"},
	"cologne":   {50.9, 7.0, "germany"},
	"köln":      {50.9, 7.0, "germany"},

	// France
	"paris":     {48.9, 2.3, "france"},
	"pariz":     {48.9, 2.3, "france"},
	"nice":      {43.7, 7.3, "france"},
	"nica":      {43.7, 7.3, "france"},
	"lyon":      {45.8, 4.8, "france"},
	"marseille": {43.3, 5.4, "france"},

	// UK
	"london":     {51.5, -0.1, "united kingdom"},
	"manchester": {53.5, -2.2, "united kingdom"},
	"birmingham": {52.5, -1.9, "united kingdom"},
	"edinburgh":  {56.0, -3.2, "united kingdom"},
	"glasgow":    {55.9, -4.3, "united kingdom"},

	// Spain
	"madrid":    {40.4, -3.7, "spain"},
	"barcelona": {41.4, 2.2, "spain"},

	// Rest of Europe
	"amsterdam":  {52.4, 4.9, "netherlands"},
	"brussels":   {50.8, 4.4, "belgium"},
	"bruxelles":  {50.8, 4.4, "belgium"},
	"prague":     {50.1, 14.4, "czech republic"},
	"prag":       {50.1, 14.4, "czech republic"},
	"warsaw":     {52.2, 21.0, "poland"},
	"varšava":    {52.2, 21.0, "poland"},
	"bratislava": {48.1, 17.1, "slovakia"},
	"zurich":     {47.4, 8.5, "switzerland"},
	"zürich":     {47.4, 8.5, "switzerland"},
	"geneva":     {46.2, 6.1, "switzerland"},
	"athens":     {37.98, 23.73, "greece"},
	"atena":      {37.98, 23.73, "greece"},
	"lisbon":     {38.7, -9.1, "portugal"},
	"lisabon":    {38.7, -9.1, "portugal"},
	"dublin":     {53.3, -6.3, "ireland"},
	"copenhagen": {55.7, 12.6, "denmark"},
	"stockholm":  {59.3, 18.1, "sweden"},
	"oslo":       {59.9, 10.7, "norway"},
	"helsinki":   {60.2, 24.9, "finland"},

	// Balkans
	"belgrade":  {44.8, 20.5, "serbia"},
	"beograd":   {44.8, 20.5, "serbia"},
	"sarajevo":  {43.9, 18.4, "bosnia and herzegovina"},
	"skopje":    {42.0, 21.4, "north macedonia"},
	"tirana":    {41.3, 19.8, "albania"},
	"podgorica": {42.4, 19.3, "montenegro"},

	// Americas
	"new york":       {40.7, -74.0, "united states"},
	"los angeles":    {34.1, -118.2, "united states"},
	"chicago":        {41.9, -87.6, "united states"},
	"miami":          {25.8, -80.2, "united states"},
	"san francisco":  {37.8, -122.4, "united states"},
	"boston":         {42.4, -71.1, "united states"},
	"washington":     {38.9, -77.0, "united states"},
	"seattle":        {47.6, -122.3, "united states"},
	"toronto":        {43.7, -79.4, "canada"},
	"vancouver":      {49.3, -123.1, "canada"},
	"montreal":       {45.5, -73.6, "canada"},
	"mexico city":    {19.4, -99.1, "mexico"},
	"buenos aires":   {-34.6, -58.4, "argentina"},
	"sao paulo":      {-23.5, -46.6, "brazil"},
	"rio de janeiro": {-22.9, -43.2, "brazil"},

	// Asia
	"tokyo":     {35.7, 139.7, "japan"},
	"beijing":   {39.9, 116.4, "china"},
	"peking":    {39.9, 116.4, "china"},
	"shanghai":  {31.2, 121.5, "china"},
	"hong kong": {22.3, 114.2, "china"},
	"singapore": {1.3, 103.8, "singapore"},
	"bangkok":   {13.8, 100.5, "thailand"},
	"seoul":     {37.6, 127.0, "south korea"},
	"dubai":     {25.3, 55.3, "united arab emirates"},
	"mumbai":    {19.1, 72.9, "india"},
	"delhi":     {28.6, 77.2, "india"},

	// Oceania
	"sydney":    {-33.9, 151.2, "australia"},
	"melbourne": {-37.8, 145.0, "australia"},
	"auckland":  {-36.8, 174.8, "new zealand"},
}

var countryContinent = map[string]string{
	"united states": "americas", "usa": "americas", "canada": "americas",
	"mexico": "americas", "brazil": "americas", "argentina": "americas",
	"chile": "americas", "colombia": "americas", "peru": "americas",
	"cuba": "americas", "uruguay": "americas", "costa rica": "americas",
	"panama": "americas", "jamaica": "americas",

	"croatia": "europe", "slovenia": "europe", "austria": "europe",
	"germany": "europe", "france": "europe", "italy": "europe",
	"spain": "europe", "portugal": "europe", "united kingdom": "europe",
	"ireland": "europe", "netherlands": "europe", "belgium": "europe",
	"switzerland": "europe", "poland": "europe", "czech republic": "europe",
	"hungary": "europe", "romania": "europe", "bulgaria": "europe",
	"greece": "europe", "sweden": "europe", "norway": "europe",
	"finland": "europe", "denmark": "europe", "iceland": "europe",
	"serbia": "europe", "bosnia and herzegovina": "europe",
	"montenegro": "europe", "north macedonia": "europe", "albania": "europe",
	"kosovo": "europe", "slovakia": "europe", "lithuania": "europe",
	"latvia": "europe", "estonia": "europe", "luxembourg": "europe",
	"malta": "europe", "cyprus": "europe", "ukraine": "europe",
	"moldova": "europe", "turkey": "europe", "russia": "europe",

	"japan": "asia", "china": "asia", "south korea": "asia", "india": "asia",
	"indonesia": "asia", "vietnam": "asia", "thailand": "asia",
	"philippines": "asia", "malaysia": "asia", "singapore": "asia",
	"united arab emirates": "asia", "israel": "asia", "jordan": "asia",
	"qatar": "asia", "saudi arabia": "asia",

	"australia": "oceania", "new zealand": "oceania", "fiji": "oceania",

	"egypt": "africa", "south africa": "africa", "nigeria": "africa",
	"kenya": "africa", "morocco": "africa", "tunisia": "africa",
	"ethiopia": "africa", "ghana": "africa", "tanzania": "africa",
}

// drivableContinents lists continent pairs connected by land (or short ferry).
var drivableContinents = map[[2]string]struct{}{
	{"europe", "europe"}:     {},
	{"europe", "africa"}:     {},
	{"africa", "europe"}:     {},
	{"africa", "africa"}:     {},
	{"americas", "americas"}: {},
	{"asia", "asia"}:         {},
	{"europe", "asia"}:       {},
	{"asia", "europe"}:       {},
}

// cityDistances holds curated road distances (km) that beat the Haversine
// estimate on routes users actually ask about.
var cityDistances = map[[2]string]int{
	{"zagreb", "rijeka"}:    140,
	{"zagreb", "split"}:     380,
	{"zagreb", "dubrovnik"}: 600,
	{"zagreb", "osijek"}:    280,
	{"zagreb", "zadar"}:     285,
	{"zagreb", "pula"}:      265,
	{"split", "dubrovnik"}:  230,
	{"split", "zadar"}:      150,
	{"rijeka", "pula"}:      100,
	{"rijeka", "split"}:     350,

	{"omisalj", "rijeka"}:     30,
	{"omišalj", "rijeka"}:     30,
	{"omisalj", "zagreb"}:     170,
	{"omišalj", "zagreb"}:     170,
	{"omisalj", "budapest"}:   520,
	{"omišalj", "budapest"}:   520,
	{"omisalj", "budimpešta"}: 520,
	{"omišalj", "budimpešta"}: 520,
	{"omisalj", "vienna"}:     450,
	{"omišalj", "vienna"}:     450,
	{"omisalj", "beč"}:        450,
	{"omišalj", "beč"}:        450,
	{"omisalj", "ljubljana"}:  140,
	{"omišalj", "ljubljana"}:  140,
	{"omisalj", "trieste"}:    100,
	{"omišalj", "trieste"}:    100,
	{"omisalj", "trst"}:       100,
	{"omišalj", "trst"}:       100,

	{"zagreb", "ljubljana"}: 140,
	{"rijeka", "ljubljana"}: 120,

	{"zagreb", "budapest"}:     350,
	{"zagreb", "budimpešta"}:   350,
	{"rijeka", "budapest"}:     480,
	{"rijeka", "budimpešta"}:   480,
	{"vienna", "budapest"}:     240,
	{"beč", "budapest"}:        240,
	{"bratislava", "budapest"}: 200,

	{"rijeka", "london"}:    1800,
	{"zagreb", "london"}:    1750,
	{"split", "london"}:     2100,
	{"ljubljana", "london"}: 1600,
	{"paris", "london"}:     450,
	{"berlin", "london"}:    1100,
	{"amsterdam", "london"}: 500,
	{"rome", "london"}:      1900,
	{"barcelona", "london"}: 1500,
	{"vienna", "london"}:    1450,
	{"munich", "london"}:    1100,
	{"prague", "london"}:    1300,
	{"budapest", "london"}:  1700,

	{"zagreb", "paris"}: 1400,
	{"rijeka", "paris"}: 1300,
	{"split", "paris"}:  1600,

	{"omisalj", "athens"}:   1850,
	{"omisalj", "atena"}:    1850,
	{"omišalj", "athens"}:   1850,
	{"omišalj", "atena"}:    1850,
	{"rijeka", "athens"}:    1850,
	{"rijeka", "atena"}:     1850,
	{"zagreb", "athens"}:    1600,
	{"zagreb", "atena"}:     1600,
	{"split", "athens"}:     1200,
	{"split", "atena"}:      1200,
	{"dubrovnik", "athens"}: 1100,
	{"dubrovnik", "atena"}:  1100,
}

// tollCosts holds curated toll totals (EUR) for common routes.
var tollCosts = map[[2]string]int{
	{"rijeka", "london"}:    120,
	{"zagreb", "london"}:    110,
	{"split", "london"}:     130,
	{"zagreb", "paris"}:     85,
	{"rijeka", "paris"}:     80,
	{"split", "paris"}:      95,
	{"paris", "london"}:     30,
	{"ljubljana", "london"}: 100,
	{"rome", "london"}:      140,
	{"barcelona", "london"}: 150,
	{"vienna", "london"}:    95,
	{"munich", "london"}:    70,
	{"prague", "london"}:    85,
	{"budapest", "london"}:  100,
	{"omisalj", "budapest"}: 45,
	{"omišalj", "budapest"}: 45,
	{"omisalj", "vienna"}:   40,
	{"omišalj", "vienna"}:   40,
	{"omisalj", "zagreb"}:   15,
	{"omišalj", "zagreb"}:   15,
	{"omisalj", "athens"}:   75,
	{"omišalj", "athens"}:   75,
	{"rijeka", "athens"}:    75,
	{"zagreb", "athens"}:    65,
	{"split", "athens"}:     50,
	{"dubrovnik", "athens"}: 40,
}

// tollRatesPerKM is the per-country average toll rate used when no curated
// total exists for the route.
var tollRatesPerKM = map[string]float64{
	"croatia":        0.08,
	"slovenia":       0.05,
	"austria":        0.06,
	"italy":          0.10,
	"france":         0.12,
	"germany":        0.02,
	"hungary":        0.04,
	"czech republic": 0.03,
	"slovakia":       0.03,
	"switzerland":    0.08,
	"spain":          0.09,
	"portugal":       0.08,
	"greece":         0.06,
	"united kingdom": 0.02,
}

var vignetteCountries = map[string]struct{}{
	"austria":        {},
	"slovenia":       {},
	"switzerland":    {},
	"czech republic": {},
	"slovakia":       {},
	"hungary":        {},
}

var invalidRouteEndpoints = map[string]struct{}{
	"go to":    {},
	"somewhere": {},
	"anywhere": {},
	"unknown":  {},
	"":         {},
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func cityCountry(city string) string {
	if geo, ok := knownCities[cityKey(city)]; ok {
		return geo.country
	}
	return ""
}

func cityContinent(city string) string {
	if country := cityCountry(city); country != "" {
		if continent, ok := countryContinent[country]; ok {
			return continent
		}
	}
	return "unknown"
}

// haversineKM returns the road-distance estimate between two points: the
// great-circle distance scaled by 1.3 because roads are not straight lines.
func haversineKM(lat1, lng1, lat2, lng2 float64) int {
	const earthRadiusKM = 6371

	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(earthRadiusKM * c * 1.3)
}

// drivingDistanceKM estimates the road distance between two cities. Returns 0
// when neither the curated table nor coordinates can answer.
func drivingDistanceKM(origin, destination string) int {
	o, d := cityKey(origin), cityKey(destination)
	if o == "" || d == "" {
		return 0
	}
	if km, ok := cityDistances[[2]string{o, d}]; ok {
		return km
	}
	if km, ok := cityDistances[[2]string{d, o}]; ok {
		return km
	}
	from, okFrom := knownCities[o]
	to, okTo := knownCities[d]
	if !okFrom || !okTo {
		return 0
	}
	return haversineKM(from.lat, from.lng, to.lat, to.lng)
}

// drivingPossible reports whether a car route can exist. Unknown cities are
// assumed drivable so small towns do not lose the option.
func drivingPossible(origin, destination string) bool {
	o, d := cityKey(origin), cityKey(destination)
	if _, bad := invalidRouteEndpoints[o]; bad {
		return false
	}
	if _, bad := invalidRouteEndpoints[d]; bad {
		return false
	}
	oc, dc := cityContinent(origin), cityContinent(destination)
	if oc == "unknown" || dc == "unknown" {
		return true
	}
	_, ok := drivableContinents[[2]string{oc, dc}]
	return ok
}

// estimateTollCost prefers the curated route table, then per-country rates
// with vignette and alpine surcharges, then a flat per-km rate.
func estimateTollCost(origin, destination string, distanceKM int) int {
	o, d := cityKey(origin), cityKey(destination)
	if toll, ok := tollCosts[[2]string{o, d}]; ok {
		return toll
	}
	if toll, ok := tollCosts[[2]string{d, o}]; ok {
		return toll
	}
	if distanceKM == 0 {
		return 0
	}

	originCountry := cityCountry(origin)
	destCountry := cityCountry(destination)
	if originCountry == "" && destCountry == "" {
		return int(float64(distanceKM) * 0.06)
	}

	rate := func(country string) float64 {
		if r, ok := tollRatesPerKM[country]; ok {
			return r
		}
		return 0.05
	}
	toll := int(float64(distanceKM) * (rate(originCountry) + rate(destCountry)) / 2)

	if _, ok := vignetteCountries[originCountry]; ok {
		toll += 15
	}
	if _, ok := vignetteCountries[destCountry]; ok {
		toll += 15
	}
	alpine := originCountry == "austria" || destCountry == "austria" ||
		originCountry == "switzerland" || destCountry == "switzerland"
	if alpine && distanceKM > 500 {
		toll += 20
	}
	return toll
}

// estimateFuelCost assumes 7L/100km at €1.60/L.
func estimateFuelCost(distanceKM int) int {
	if distanceKM == 0 {
		return 0
	}
	return int(float64(distanceKM) / 100 * 7 * 1.60)
}

// estimateDrivingTime assumes 80 km/h average including breaks, and
// recommends splitting the trip past 10 hours of driving.
func estimateDrivingTime(distanceKM int) string {
	if distanceKM == 0 {
		return "?"
	}
	hours := float64(distanceKM) / 80
	switch {
	case hours < 1:
		return fmt.Sprintf("%d min", int(hours*60))
	case hours < 10:
		return fmt.Sprintf("%dh %dmin", int(hours), int(math.Mod(hours, 1)*60))
	default:
		days := int(hours / 10)
		return fmt.Sprintf("%dh (preporučeno %d dana)", int(hours), days+1)
	}
}

// formatLiveDrivingTime renders a Directions API duration the same way the
// offline estimate does.
func formatLiveDrivingTime(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}

func routeNotes(distanceKM int, originCountry, destCountry string) string {
	var notes []string
	switch {
	case distanceKM < 100:
		notes = append(notes, "Kratka vožnja")
	case distanceKM < 300:
		notes = append(notes, "Ugodna dnevna vožnja")
	case distanceKM < 600:
		notes = append(notes, "Duža vožnja - preporučene pauze")
	case distanceKM < 1000:
		notes = append(notes, "Dugo putovanje - razmislite o noćenju usput")
	default:
		notes = append(notes, "Višednevno putovanje")
	}

	switch originCountry {
	case "austria", "slovenia", "switzerland":
		notes = append(notes, "Potrebna vinjeta!")
	}
	if originCountry == "italy" || destCountry == "italy" {
		notes = append(notes, "Skupe cestarine u Italiji")
	}
	if originCountry == "france" || destCountry == "france" {
		notes = append(notes, "Skupe cestarine u Francuskoj")
	}
	if originCountry == "germany" || destCountry == "germany" {
		notes = append(notes, "Autoput uglavnom besplatan")
	}
	return strings.Join(notes, " | ")
}

// buildDrivingOption assembles the full car option, or nil when driving is
// impossible or the distance cannot be estimated.
func buildDrivingOption(origin, destination string) *DrivingOption {
	if origin == "" || destination == "" {
		return nil
	}
	if !drivingPossible(origin, destination) {
		return nil
	}
	distanceKM := drivingDistanceKM(origin, destination)
	if distanceKM == 0 {
		return nil
	}

	fuel := estimateFuelCost(distanceKM)
	toll := estimateTollCost(origin, destination, distanceKM)
	hours := float64(distanceKM) / 80
	days := max(1, int(hours/10)+1)

	return &DrivingOption{
		Mode:            "car",
		DistanceKM:      distanceKM,
		Duration:        estimateDrivingTime(distanceKM),
		FuelCost:        fuel,
		TollCost:        toll,
		TotalCost:       fuel + toll,
		DaysRecommended: days,
		Link: fmt.Sprintf("https://www.google.com/maps/dir/%s/%s/",
			url.QueryEscape(origin), url.QueryEscape(destination)),
		Notes: routeNotes(distanceKM, cityCountry(origin), cityCountry(destination)),
	}
}
