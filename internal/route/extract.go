// README: Route/date/budget extraction from free-text travel messages.
package route

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TripType describes whether dates imply a return leg.
type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripRoundTrip TripType = "round_trip"
	TripUnknown   TripType = "unknown"
)

// Dates holds parsed ISO dates (YYYY-MM-DD) for the trip.
type Dates struct {
	Departure string
	Return    string
}

// Detection is the result of scanning one message.
type Detection struct {
	Origin      string
	Destination string
	Dates       Dates
	Budget      int // EUR, 0 when absent
	TripType    TripType
	IsTravel    bool
}

// routePatterns are tried in order; the first match with a usable city wins.
// Each pattern captures origin first and destination second unless noted.
var routePatterns = []struct {
	re       *regexp.Regexp
	reversed bool // destination captured first
}{
	{re: regexp.MustCompile(`(?i)\bod\s+(.+?)\s+do\s+([^,.!?]+)`)},
	{re: regexp.MustCompile(`(?i)\biz\s+(.+?)\s+v\s+([^,.!?]+)`)},
	{re: regexp.MustCompile(`(?i)\bfrom\s+(.+?)\s+to\s+([^,.!?]+)`)},
	{re: regexp.MustCompile(`(?i)\biz\s+(.+?)\s+(?:u|za|prema|do)\s+([^,.!?]+)`)},
	// Reverse order: "put u Barcelona iz Milana", "trip to Paris from London".
	{re: regexp.MustCompile(`(?i)\b(?:u|za|to)\s+(.+?)\s+(?:iz|from)\s+([^,.!?]+)`), reversed: true},
	{re: regexp.MustCompile(`(?i)\bde\s+(.+?)\s+(?:a|hasta|vers)\s+([^,.!?]+)`)},
	{re: regexp.MustCompile(`(?i)\bvon\s+(.+?)\s+nach\s+([^,.!?]+)`)},
	{re: regexp.MustCompile(`(?i)\bda\s+(.+?)\s+(?:a|per)\s+([^,.!?]+)`)},
	// Bare "City do/to City" without a preposition prefix, e.g. "Omišalj do Atene".
	{re: regexp.MustCompile(`\b([A-ZČĆŠĐŽ][a-zčćšđž]+(?:\s+[A-ZČĆŠĐŽ][a-zčćšđž]+)?)\s+(?:do|to)\s+([A-ZČĆŠĐŽ][a-zčćšđž]+(?:\s+[A-ZČĆŠĐŽ][a-zčćšđž]+)?)`)},
}

var (
	arrowPattern       = regexp.MustCompile(`([\w\s]+?)\s*(?:->|→|-+)\s*([\w\s]+)`)
	capitalPairPattern = regexp.MustCompile(`\b([A-Z][\w']+(?:\s+[A-Z][\w']+)?)\s+([A-Z][\w']+(?:\s+[A-Z][\w']+)?)\b`)

	dateISOPattern = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	dateEUPattern  = regexp.MustCompile(`(\d{1,2})[./-](\d{1,2})(?:[./-](\d{2,4}))?`)

	cutMarkerPattern = regexp.MustCompile(`(?i)\b(?:od|do|from|until|till|hasta|pour|per)\b`)
	budgetPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:eur[oa]?s?|€|\$|dollars?|kuna?|kn)`)

	parenPattern     = regexp.MustCompile(`\s*\([^)]+\)`)
	dateRangePattern = regexp.MustCompile(`(?i)\b(?:od|from)?\s*\d{1,2}[./-]\d{1,2}(?:[./-]\d{2,4})?\s*(?:-|do|to|till|until)?\s*\d{1,2}[./-]\d{1,2}(?:[./-]\d{2,4})?\s*(?:godine|year)?\b`)
	multiSpace       = regexp.MustCompile(`\s+`)

	dateLikeCity = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}$`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	startsDigit  = regexp.MustCompile(`^\d`)
)

// cityBlacklist keeps common words, time words, and country names out of the
// origin/destination slots.
var cityBlacklist = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"do", "for", "me", "you", "us", "we", "they", "can", "what", "how", "when", "where",
		"help", "the", "and", "but", "with", "from", "this", "that", "have", "has", "had",
		"will", "would", "could", "should", "may", "might", "must", "need", "want", "get",
		"make", "know", "think", "take", "see", "come", "use", "find", "give", "tell",
		"inside", "outside", "within", "country", "somewhere", "anywhere", "everywhere",
		"weekend", "getaway", "looking", "live", "my", "your", "our", "their",
		"today", "tomorrow", "yesterday", "next", "last", "week", "month", "year",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		"danas", "sutra", "jučer", "jucer", "sljedeći", "sljedeci", "prošli", "prosli",
		"tjedan", "mjesec", "godina", "ponedjeljak", "utorak", "srijeda", "četvrtak",
		"petak", "subota", "nedjelja",
		"sta", "što", "kako", "kada", "gdje", "tko", "ko", "zašto", "zasto",
		"može", "moze", "mogu", "treba", "trebam", "hoću", "hoce", "želim", "zelim",
		"idem", "ići", "ici", "otići", "otic", "putovati", "putovanje",
		"unutar", "države", "država", "negdje", "negdi", "vikend", "živim", "zivim",
		"flight", "hotel", "bus", "train", "car", "plane", "trip", "travel", "journey",
		"let", "auto", "autobus", "vlak", "smještaj", "smjestaj",
		"croatia", "hrvatska", "slovenia", "slovenija", "germany", "njemačka", "njemacka",
		"italy", "italija", "austria", "austrija", "hungary", "mađarska", "madjarska",
		"france", "francuska", "spain", "španjolska", "spanjolska", "portugal",
		"greece", "grčka", "grcka", "serbia", "srbija", "bosnia", "bosna",
		"montenegro", "crna gora", "albania", "albanija", "romania", "rumunjska",
		"bulgaria", "bugarska", "czech", "češka", "ceska", "poland", "poljska",
		"netherlands", "nizozemska", "belgium", "belgija", "switzerland", "švicarska", "svicarska",
		"uk", "united kingdom", "england", "engleska", "scotland", "škotska", "skotska",
		"ireland", "irska", "usa", "united states", "america", "amerika",
	} {
		cityBlacklist[w] = struct{}{}
	}
}

// Extract scans message for a route, travel dates, and a budget figure.
func Extract(message string) Detection {
	origin, destination := extractRoute(message)
	dates := parseDates(message, time.Now().UTC())
	budget := parseBudget(message)

	d := Detection{
		Origin:      origin,
		Destination: destination,
		Dates:       dates,
		Budget:      budget,
		TripType:    tripType(dates),
	}
	d.IsTravel = origin != "" || destination != "" ||
		dates.Departure != "" || dates.Return != "" ||
		arrowPattern.MatchString(message)
	return d
}

func extractRoute(message string) (string, string) {
	// Island/region parentheses confuse the city patterns, drop them first:
	// "Omišalj (Otok Krk) do Atene" -> "Omišalj do Atene".
	cleaned := parenPattern.ReplaceAllString(message, " ")
	// Date ranges like "od 30.1 do 5.2" would otherwise match as a route.
	cleaned = dateRangePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))

	for _, p := range routePatterns {
		m := p.re.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		originRaw, destRaw := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if p.reversed {
			originRaw, destRaw = destRaw, originRaw
		}
		if looksLikeDate(originRaw) || looksLikeDate(destRaw) {
			continue
		}
		origin := normalizeCity(originRaw)
		destination := normalizeCity(destRaw)
		if origin != "" || destination != "" {
			return origin, destination
		}
	}

	if m := arrowPattern.FindStringSubmatch(cleaned); m != nil {
		originRaw, destRaw := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if !looksLikeDate(originRaw) && !looksLikeDate(destRaw) {
			return normalizeCity(originRaw), normalizeCity(destRaw)
		}
	}

	if m := capitalPairPattern.FindStringSubmatch(cleaned); m != nil {
		originRaw, destRaw := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if !looksLikeDate(originRaw) && !looksLikeDate(destRaw) {
			origin := normalizeCity(originRaw)
			destination := normalizeCity(destRaw)
			if origin == destination {
				destination = ""
			}
			return origin, destination
		}
	}
	return "", ""
}

// looksLikeDate rejects segments such as "30.1", "5/2" or a bare short number.
func looksLikeDate(s string) bool {
	if !startsDigit.MatchString(s) {
		return false
	}
	return strings.ContainsAny(s, "./-") || len(s) <= 2
}

func normalizeCity(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := raw
	if loc := cutMarkerPattern.FindStringIndex(cleaned); loc != nil {
		cleaned = cleaned[:loc[0]]
	}
	cleaned = strings.Trim(multiSpace.ReplaceAllString(cleaned, " "), " ,.")
	if cleaned == "" {
		return ""
	}
	if dateLikeCity.MatchString(cleaned) || digitsOnly.MatchString(cleaned) {
		return ""
	}
	words := strings.Fields(cleaned)
	for len(words) > 0 {
		if _, bad := cityBlacklist[strings.ToLower(words[len(words)-1])]; !bad {
			break
		}
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return ""
	}
	if _, bad := cityBlacklist[strings.ToLower(strings.Join(words, " "))]; bad {
		return ""
	}
	allBad := true
	for _, w := range words {
		if _, bad := cityBlacklist[strings.ToLower(w)]; !bad {
			allBad = false
			break
		}
	}
	if allBad {
		return ""
	}
	return titleCase(strings.Join(words, " "))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

func parseDates(message string, today time.Time) Dates {
	var ordered []string
	add := func(iso string) {
		for _, seen := range ordered {
			if seen == iso {
				return
			}
		}
		ordered = append(ordered, iso)
	}

	for _, m := range dateISOPattern.FindAllStringSubmatch(message, -1) {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if iso := safeISO(year, month, day); iso != "" {
			add(iso)
		}
	}

	todayDate := today.Truncate(24 * time.Hour)
	for _, m := range dateEUPattern.FindAllStringSubmatch(message, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := todayDate.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		iso := safeISO(year, month, day)
		if iso == "" {
			continue
		}
		// A past date without an explicit year means the next occurrence.
		if t, err := time.Parse("2006-01-02", iso); err == nil && t.Before(todayDate) {
			if bumped := safeISO(year+1, month, day); bumped != "" {
				iso = bumped
			}
		}
		add(iso)
	}

	var d Dates
	if len(ordered) > 0 {
		d.Departure = ordered[0]
	}
	if len(ordered) > 1 {
		d.Return = ordered[1]
	}
	return d
}

func safeISO(year, month, day int) string {
	if month < 1 || month > 12 || day < 1 {
		return ""
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return ""
	}
	return t.Format("2006-01-02")
}

func parseBudget(message string) int {
	if m := budgetPattern.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}

func tripType(d Dates) TripType {
	switch {
	case d.Departure != "" && d.Return != "":
		return TripRoundTrip
	case d.Departure != "":
		return TripOneWay
	default:
		return TripUnknown
	}
}
