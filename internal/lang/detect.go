// README: Heuristic language detection (keyword markers, diacritics, Unicode scripts).
package lang

import "strings"

// Language is a resolved detection result.
type Language struct {
	Code string // two-letter code, e.g. "hr"
	Tag  string // display tag, e.g. "CROATIAN (HR)"
}

var englishTravelWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"best", "top", "find", "search", "looking", "show", "recommend",
		"must", "see", "visit", "explore", "places", "destinations",
		"hotels", "flights", "restaurants", "things", "activities", "attractions",
		"trip", "travel", "tour", "itinerary", "plan", "guide",
		"from", "to", "in", "at", "for", "the", "a", "an", "of", "and", "or",
		"cheap", "affordable", "luxury", "budget", "expensive", "free",
		"weekend", "week", "day", "days", "night", "morning", "evening",
		"book", "booking", "reserve", "reservation",
		"what", "where", "when", "how", "why", "which", "who",
		"good", "great", "nice", "beautiful", "amazing", "awesome",
		"near", "close", "around", "nearby", "downtown",
	} {
		englishTravelWords[w] = struct{}{}
	}
}

var englishHints = []string{
	"please", "travel plan", "make a travel", "itinerary", "trip from", "plan from",
	"best hotels", "find flights", "things to do", "what to do", "where to",
	"how to get", "i want to", "i need", "can you", "could you", "help me",
	"looking for", "searching for", "recommend", "suggestion",
}

var croatianHints = []string{
	"hvala ti", "hvala vam", "molim te", "molim vas", "dobar dan",
	"dobro jutro", "treba mi", "želim", "htio bih", "možda", "odmor",
	"što", "gdje", "kada", "koliko dugo", "za vikend", "izlet", "putovanje",
	"savjete", "preporuku", "prijedlog", "pitanje", "informacije",
	"napravi", "planiram", "idem", "trebam", "možeš", "hoću",
	"planiraj", "napravi mi", "mi put",
}

var slovenianHints = []string{
	"potrebujem", "načrt", "prosim", "hvala lepa", "dober dan",
	"dobro jutro", "lahko", "bi rad", "mogoče", "počitnice",
	"kaj", "kje", "kdaj", "kako dolgo", "izlet", "popotovanje",
	"nasvete", "priporočilo", "namig", "vprašanje",
}

// NormalizeCode folds aliases (sr/bs/me -> hr, ua -> uk) and region suffixes.
func NormalizeCode(raw string) string {
	if raw == "" {
		return "en"
	}
	code := strings.ToLower(raw)
	if mapped, ok := languageAliases[code]; ok {
		code = mapped
	}
	if len(code) > 2 {
		if _, ok := languageMetadata[code[:2]]; ok {
			code = code[:2]
		}
	}
	return code
}

// Meta returns the metadata for code, synthesizing a tag for unsupported languages.
func Meta(code string) Metadata {
	normalized := NormalizeCode(code)
	if meta, ok := languageMetadata[normalized]; ok {
		return meta
	}
	meta := languageMetadata["en"]
	name, ok := genericLanguageNames[normalized]
	if !ok {
		name = strings.ToUpper(normalized)
	}
	meta.Tag = strings.ToUpper(name) + " (" + strings.ToUpper(normalized) + ")"
	return meta
}

// Greeting returns the canned greeting for code.
func Greeting(code string) string {
	return Meta(code).Greeting
}

// PlanInvite returns the localized plan-invitation suffix for code.
func PlanInvite(code string) string {
	return Meta(code).PlanInvite
}

// Detect resolves the language of message. preferred is the caller's stored
// language code and is used as the fallback for short or ambiguous input.
func Detect(message, preferred string) Language {
	text := strings.TrimSpace(message)
	fallback := NormalizeCode(preferred)
	if text == "" {
		return Language{Code: fallback, Tag: Meta(fallback).Tag}
	}
	lowered := strings.ToLower(text)

	// Common English travel queries first: they are short and easily misread
	// by the weaker heuristics below.
	words := strings.Fields(lowered)
	englishCount := 0
	for _, w := range words {
		if _, ok := englishTravelWords[strings.Trim(w, ".,!?")]; ok {
			englishCount++
		}
	}
	if len(words) > 0 && float64(englishCount)/float64(len(words)) >= 0.3 {
		return Language{Code: "en", Tag: Meta("en").Tag}
	}

	// Strong markers catch short phrases like "Kako si?" or "Tko si ti?".
	for _, code := range []string{"hr", "sl", "en", "de", "it", "es", "fr", "uk"} {
		for _, marker := range languageMetadata[code].StrongMarkers {
			if strings.Contains(lowered, marker) {
				return Language{Code: code, Tag: Meta(code).Tag}
			}
		}
	}

	if containsAny(lowered, englishHints) {
		return Language{Code: "en", Tag: Meta("en").Tag}
	}
	if containsAny(lowered, croatianHints) {
		return Language{Code: "hr", Tag: Meta("hr").Tag}
	}
	if containsAny(lowered, slovenianHints) {
		return Language{Code: "sl", Tag: Meta("sl").Tag}
	}

	for _, code := range []string{"hr", "sl", "de", "it", "es", "fr", "uk", "en"} {
		for _, keyword := range languageMetadata[code].Keywords {
			if keyword != "" && strings.Contains(lowered, keyword) {
				return Language{Code: code, Tag: Meta(code).Tag}
			}
		}
	}

	for _, hint := range specialCharHints {
		if strings.ContainsAny(lowered, string(hint.chars)) {
			return Language{Code: hint.code, Tag: Meta(hint.code).Tag}
		}
	}

	if code := detectScript(text); code != "" {
		normalized := NormalizeCode(code)
		return Language{Code: normalized, Tag: Meta(code).Tag}
	}

	if len(text) < 6 {
		return Language{Code: fallback, Tag: Meta(fallback).Tag}
	}
	return Language{Code: fallback, Tag: Meta(fallback).Tag}
}

func detectScript(text string) string {
	for _, r := range text {
		for _, hint := range scriptHints {
			for _, rng := range hint.ranges {
				if r >= rng.lo && r <= rng.hi {
					return hint.code
				}
			}
		}
	}
	return ""
}

func containsAny(text string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(text, h) {
			return true
		}
	}
	return false
}
