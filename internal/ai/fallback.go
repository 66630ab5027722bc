// README: Deterministic offline provider; serves chats when no model key is set or quota is spent.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"roam/internal/intent"
	"roam/internal/lang"
	"roam/internal/route"
)

// Fallback renders canned localized replies and classifies intents with
// keyword heuristics. It never fails, so it is safe as the last provider in
// the chain.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

var greetingTokens = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "hola": {}, "bok": {}, "pozdrav": {},
	"ciao": {}, "servus": {}, "zdravo": {}, "hallo": {}, "bonjour": {},
	"привіт": {}, "привітання": {}, "вітаю": {},
}

var travelHints = []string{
	"putovan", "plan putovanja", "itiner", "itinerary", "ruta", "route",
	"trip", "travel", "journey", "flight", "let", "hotel", "smještaj",
	"budžet", "budget", "bus", "vlak", "train", "maršrut", "маршрут",
	"подорож", "podoroz",
}

var planHints = []string{
	"plan", "itinerary", "planiraj", "isplaniraj", "napravi plan", "maršrut", "маршрут",
}

var listLayoutPattern = regexp.MustCompile(`(?:^|\n)\s*(?:[-*•]|\d+[.)])`)

func (f *Fallback) Chat(ctx context.Context, messages []Message, language lang.Language) (string, error) {
	metaIntent, bundle, userText := extractMetadata(messages)
	switch metaIntent {
	case string(intent.PlanRequest):
		return planSummary(language.Code, bundle), nil
	case string(intent.Greeting):
		return lang.Greeting(language.Code), nil
	}
	return questionSummary(language.Code, userText), nil
}

func (f *Fallback) ClassifyIntent(ctx context.Context, message string, history []Message, languageTag string) (intent.Intent, error) {
	return fallbackIntent(message), nil
}

// ExtractRoute is a no-op offline; the regex extractor already ran upstream.
func (f *Fallback) ExtractRoute(ctx context.Context, message, languageTag string) (Route, error) {
	return Route{}, nil
}

func fallbackIntent(message string) intent.Intent {
	text := strings.TrimSpace(message)
	if text == "" {
		return intent.QuestionOnly
	}
	lowered := strings.ToLower(text)
	if isGreetingToken(lowered) {
		return intent.Greeting
	}

	var det route.Detection
	if intent.HasRouteHint(lowered) {
		det = route.Extract(text)
	}
	routeReady := det.Origin != "" && det.Destination != ""
	hasCitySignal := det.Origin != "" || det.Destination != ""
	hasDates := det.Dates.Departure != "" || det.Dates.Return != ""

	tokens := strings.Fields(text)
	wordCount := len(tokens)
	hasQuestion := strings.Contains(text, "?")
	listLayout := listLayoutPattern.MatchString(text)
	segmented := listLayout || strings.Contains(text, "\n")
	punctCount := 0
	for _, ch := range []string{",", ";", "/", "|"} {
		punctCount += strings.Count(text, ch)
	}
	runeLen := utf8.RuneCountInString(text)
	if runeLen == 0 {
		runeLen = 1
	}
	punctuationDensity := float64(punctCount) / float64(runeLen)
	upperCount := 0
	for _, token := range tokens {
		if utf8.RuneCountInString(token) > 1 &&
			token == strings.ToUpper(token) && token != strings.ToLower(token) {
			upperCount++
		}
	}
	uppercaseRatio := float64(upperCount) / float64(max(wordCount, 1))

	travelHint := containsAny(lowered, travelHints)
	planHint := containsAny(lowered, planHints)

	// Route signals beat everything.
	switch {
	case routeReady:
		return intent.PlanRequest
	case hasCitySignal && (planHint || travelHint):
		return intent.PlanRequest
	case planHint && (travelHint || wordCount > 25):
		return intent.PlanRequest
	}

	if travelHint || det.IsTravel || hasDates {
		return intent.TravelAdvice
	}

	// Pasted lists and shouty fragments read like a targeted search.
	if listLayout || (punctuationDensity > 0.08 && wordCount < 120) || uppercaseRatio > 0.25 {
		return intent.SpecificSearch
	}

	if hasQuestion || wordCount < 18 {
		return intent.QuestionOnly
	}
	if segmented {
		return intent.TravelAdvice
	}
	return intent.QuestionOnly
}

func isGreetingToken(lowered string) bool {
	token := strings.TrimRight(strings.TrimSpace(lowered), "!?.,")
	_, hit := greetingTokens[token]
	return hit
}

// extractMetadata pulls the structured system turns and the latest user text
// out of a rendered conversation.
func extractMetadata(messages []Message) (metaIntent string, bundle Route, userText string) {
	metaIntent = string(intent.QuestionOnly)
	for _, msg := range messages {
		if msg.Role != RoleSystem {
			continue
		}
		switch {
		case strings.HasPrefix(msg.Content, MetaIntent):
			metaIntent = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(msg.Content, MetaIntent)))
		case strings.HasPrefix(msg.Content, MetaTravelData):
			data := strings.TrimSpace(strings.TrimPrefix(msg.Content, MetaTravelData))
			var parsed Route
			if err := json.Unmarshal([]byte(data), &parsed); err == nil {
				bundle = parsed
			}
		}
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			userText = strings.TrimSpace(messages[i].Content)
			break
		}
	}
	return metaIntent, bundle, userText
}

func planSummary(languageCode string, bundle Route) string {
	origin := titleWords(bundle.Origin)
	destination := titleWords(bundle.Destination)
	if origin == "" {
		origin = "tvoje polazište"
	}
	if destination == "" {
		destination = "odabranu destinaciju"
	}
	templates := map[string]string{
		"hr": "Pripremio sam pregled puta iz %s prema %s. U nastavku ćeš vidjeti detaljan itinerar i kartice spremne za Roam Planner.",
		"sl": "Pripravil sem pregled poti iz %s do %s. V nadaljevanju te čaka celoten načrt in kartice za Roam Planner.",
		"de": "Ich habe eine Übersicht für die Reise von %s nach %s zusammengestellt. Unten findest du den detaillierten Plan und die Karten für deinen Roam Planner.",
		"it": "Ho preparato una panoramica del viaggio da %s a %s. Qui sotto troverai l'itinerario dettagliato e le card pronte per il tuo Roam Planner.",
		"es": "Ya tengo un resumen del viaje de %s a %s. Revisa debajo el itinerario completo y las tarjetas listas para tu Roam Planner.",
		"fr": "J'ai préparé un aperçu du trajet de %s vers %s. Tu verras ensuite l'itinéraire détaillé et les cartes prêtes pour ton Roam Planner.",
		"en": "Here's a concise briefing for the trip from %s to %s. Below you'll find the detailed itinerary plus cards ready for your Roam Planner.",
	}
	template, ok := templates[languageCode]
	if !ok {
		template = templates["en"]
	}
	return fmt.Sprintf(template, origin, destination)
}

func questionSummary(languageCode, userText string) string {
	cleaned := strings.TrimSpace(userText)
	if isGreetingToken(strings.ToLower(cleaned)) {
		return lang.Greeting(languageCode)
	}
	if cleaned == "" {
		cleaned = "tvoje pitanje"
	}
	templates := map[string]string{
		"hr": "Evo brzog savjeta za %q: fokusiraj se na jedan ili dva grada, kombiniraj lokalnu hranu i znamenitosti pa mi reci želiš li detaljniji plan.",
		"sl": "Hiter namig za %q: izberi osrednjo destinacijo, združi kulinariko in znamenitosti ter mi sporoči, če želiš celoten načrt.",
		"de": "Kurzer Tipp zu %q: konzentriere dich auf ein harmonisches Städte-Duo, plane Kulinarik und Highlights und sag mir, wenn du einen detaillierten Plan brauchst.",
		"it": "Suggerimento rapido per %q: scegli un quartiere come base, alterna cucina locale e attrazioni e dimmi se vuoi che lo trasformi in un itinerario completo.",
		"es": "Consejo rápido para %q: elige una base, combina gastronomía local con imprescindibles y dime si quieres que lo convierta en un plan completo.",
		"fr": "Astuce express pour %q: choisis une base, mélange gastronomie et activités, puis dis-moi si tu veux un plan structuré.",
		"en": "Quick idea for %q: pick a base city, weave in food plus must-sees, and let me know if you'd like me to expand it into a full plan.",
	}
	template, ok := templates[languageCode]
	if !ok {
		template = templates["en"]
	}
	return fmt.Sprintf(template, cleaned)
}

func titleWords(s string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	for i, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		fields[i] = strings.ToUpper(string(r)) + strings.ToLower(f[size:])
	}
	return strings.Join(fields, " ")
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
