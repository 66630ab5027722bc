// README: Keyword-cascade intent classifier; falls through to the model for ambiguous messages.
package intent

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"roam/internal/route"
)

// Intent is a coarse label driving which pipeline handles a chat message.
type Intent string

const (
	Greeting        Intent = "GREETING"
	ProfileQuestion Intent = "PROFILE_QUESTION"
	PlanRequest     Intent = "PLAN_REQUEST"
	SpecificSearch  Intent = "SPECIFIC_SEARCH"
	TravelAdvice    Intent = "TRAVEL_ADVICE"
	GeneralQuestion Intent = "GENERAL_QUESTION"
	QuestionOnly    Intent = "QUESTION_ONLY"
)

var greetingPhrases = toSet(
	"pozdrav", "bok", "cao", "ćao", "hej", "zdravo", "dobar dan", "dobro jutro", "dobra večer",
	"živjo", "zivjo", "dober dan",
	"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening",
	"hola", "buenos dias", "buenos días", "buenas tardes", "buenas noches",
	"ciao", "buongiorno", "buonasera", "salve",
	"hallo", "guten tag", "guten morgen", "guten abend", "servus", "grüß gott", "gruss gott",
	"bonjour", "salut", "bonsoir",
	"привіт", "привітання", "вітаю", "доброго дня", "добрий день",
)

var smallTalkPhrases = []string{
	"how are you", "how r u", "how's it going", "what's up", "whats up",
	"what are you doing", "who are you", "what is your name", "what's your name",
	"nice to meet you", "pleased to meet you", "how do you do",
	"good to see you", "long time no see", "thank you", "thanks",
	"bye", "goodbye", "see you", "see ya", "take care", "have a nice day",
	"kako si", "kako ste", "što ima", "šta ima", "sta ima", "sto ima",
	"tko si", "ko si", "kako se zoveš", "kako se zoves",
	"drago mi je", "hvala", "fala",
	"doviđenja", "dovidenja", "vidimo se", "čujemo se",
	"wie geht es dir", "wie gehts", "wie geht's", "was machst du",
	"wer bist du", "wie heißt du", "wie heisst du", "freut mich",
	"danke", "tschüss", "tschuss", "auf wiedersehen",
	"cómo estás", "como estas", "qué tal", "que tal", "qué haces", "que haces",
	"quién eres", "quien eres", "cómo te llamas", "como te llamas",
	"mucho gusto", "gracias", "adiós", "adios", "hasta luego",
	"comment ça va", "comment ca va", "ça va", "ca va", "quoi de neuf",
	"qui es-tu", "qui es tu", "comment tu t'appelles", "enchanté", "enchante",
	"merci", "au revoir", "à bientôt", "a bientot",
	"come stai", "come va", "che fai", "cosa fai",
	"chi sei", "come ti chiami", "piacere",
	"grazie", "arrivederci", "a presto",
}

var travelKeywords = []string{
	"putovanje", "put", "putuj", "plan putovanja", "planiraj", "isplaniraj",
	"napravi plan", "napravit plan", "ruta", "rutu", "itinerar",
	"trip", "travel", "let", "hotel", "ski", "skij", "destin",
	"savjet", "advice", "recommend",
	"podoroz", "подорож", "маршрут",
	"treba mi", "trebam", "ne znam", "negdje", "negdi",
}

var adviceKeywords = []string{
	"preporuč", "preporuci", "preporuka", "preporuke",
	"savjet", "savjeti", "savjetuj",
	"daj ideju", "daj mi ideju", "imam ideju", "ideju",
	"daj mi", "možeš li mi dati", "mozes li mi dati",
	"kamo", "kamo da", "kuda", "gdje", "di",
	"što preporučuješ", "sta preporucujes",
	"negdje", "negdi", "neki grad", "neku destinaciju",
	"ne znam gdje", "ne znam kamo", "neznam gdje",
	"treba mi", "trebam", "želim otić", "zelim otic",
	"mozes li mi napravit", "možeš li mi napraviti",
	"vikend", "weekend", "vikend izlet", "weekend getaway",
	"unutar države", "unutar hrvatske", "u hrvatskoj", "po hrvatskoj",
	"inside my country", "in my country", "within croatia",
	"looking for", "tražim", "trazim", "iščem", "iscem",
	"toplijim krajevima", "hladnijim krajevima", "warm places", "cold places",
	"warm countries", "cold countries", "toplije zemlje", "hladnije zemlje",
	"u toplijim", "u hladnijim", "in warmer", "in colder",
	"topla mjesta", "hladna mjesta", "topla europa", "warm europe",
	"u europi", "in europe", "po europi", "across europe",
	"u prosincu", "u siječnju", "u veljači", "in december", "in january", "in february",
	"tijekom zime", "during winter", "this winter", "ove zime",
	"recommend", "recommendation", "suggest", "suggestion",
	"advice", "where should", "where to", "where can",
	"give me idea", "any idea", "ideas",
	"give me some", "show me some",
	"somewhere", "any place", "which city", "which destination",
	"don't know where", "need help", "help me plan",
	"can you make", "could you create",
	"weekend trip", "getaway", "short trip", "day trip",
	"nearby", "close by", "around", "near me",
	"priporodi", "priporočilo", "kam", "kje",
	"v sloveniji", "po sloveniji",
}

var profileQuestionKeywords = []string{
	"što znaš", "sta znas", "znaš li", "znas li",
	"što imaš", "sta imas", "imaš li", "imas li",
	"o meni", "za mene", "moj profil", "moje informacije",
	"tko sam", "ko sam", "što ti je poznato", "sta ti je poznato",
	"kakav sam", "kakva sam", "moji podaci",
	"what do you know", "what you know", "do you know",
	"about me", "my profile", "my information", "my data",
	"who am i", "what is known", "tell me about myself",
	"kaj veš",
}

var generalQuestionKeywords = []string{
	"koliko", "kolko", "cijena", "cena", "košta", "kosta",
	"koliko stoji", "koliko vrijedi", "koliko traje",
	"kada", "kad", "koliko dugo", "u koliko sati",
	"što je", "sta je", "kako", "zašto", "zasto",
	"može li", "moze li", "da li", "dal",
	"vrijeme", "vreme", "temperatura", "klima",
	"viza", "dokument", "pasoš", "pasos",
	"trebam li vizu", "trebam vizu", "treba mi viza",
	"što možeš", "sta mozes", "što umiješ", "sta umjes",
	"što možeš napraviti", "sta mozes napravit",
	"kako mi možeš", "kako mi mozes", "pomoć", "pomoc",
	"how much", "what is the price", "cost", "costs",
	"when", "how long", "what time",
	"what is", "how", "why", "can i", "is it",
	"weather", "temperature", "climate",
	"visa", "passport", "document",
	"do i need a visa", "need a visa", "visa requirements",
	"what can you", "what do you", "what are you",
	"can you do", "what can you do", "how can you help",
	"help me", "what features", "what capabilities",
	"tell me what", "explain what",
}

var capabilitiesPhrases = []string{
	"what can you do", "what do you do", "what are you",
	"can you help", "how can you help", "help me",
	"što možeš", "sta mozes", "što umiješ", "kako mi možeš",
	"možeš li mi pomoći", "mozes li mi pomoci",
}

var specificSearchKeywords = []string{
	"restorani", "restoran", "restorane",
	"hoteli", "hotel", "hotele", "smještaj", "smjestaj",
	"kafići", "kafici", "kafić", "kafic", "kavane", "kavana",
	"klubovi", "klub", "klubove", "noćni život", "nocni zivot", "izlazak", "izlazaka",
	"atrakcije", "atrakcija", "znamenitosti", "znamenitost",
	"aktivnosti", "aktivnost", "što raditi", "sta raditi", "što vidjeti", "sta vidjeti",
	"barovi", "bar", "barove",
	"plaže", "plaza", "plaze",
	"muzeji", "muzej", "muzeje",
	"parkovi", "park", "parkove",
	"pokaži", "pokazi", "prikaži", "prikazi",
	"mjesta", "mjesto", "lokacije", "lokacija",
	"restaurants", "restaurant",
	"hotels", "accommodation", "accommodations",
	"cafes", "cafe", "coffee shops",
	"clubs", "club", "nightlife", "nightclubs", "bars",
	"attractions", "attraction", "sights", "sightseeing",
	"activities", "activity", "things to do", "what to do",
	"beaches", "beach",
	"museums", "museum",
	"parks",
	"show me", "find me", "list", "best", "top",
	"must see", "must-see", "must visit", "must-visit",
	"places to visit", "places to see", "places in",
	"landmarks", "landmark", "tourist spots", "tourist attractions",
	"points of interest", "poi",
	"destinations", "destination",
	"popular places", "famous places", "iconic places",
	"what to see", "what to visit", "what to explore",
	"where to go", "where to visit",
	"worth seeing", "worth visiting",
	"to see in", "to visit in", "to explore in",
	"see in", "visit in", "explore in",
	"restavracije", "restavracija", "nastanitev",
	"kavarne", "kavarna", "klubi", "nočno življenje",
}

// Matched against the original-cased message so only capitalized city names qualify.
var cityLocationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bu\s+([A-ZČĆŠĐŽ][a-zčćšđžA-ZČĆŠĐŽ]*)`),
	regexp.MustCompile(`\bin\s+([A-Z][a-zA-Z]*)`),
	regexp.MustCompile(`\bv\s+([A-ZČĆŠĐŽ][a-zčćšđžA-ZČĆŠĐŽ]*)`),
}

var notCityWords = toSet(
	"nekim", "svim", "toplijim", "hladnijim", "bližim", "daljim", "većim", "manjim",
	"lipšim", "ljepšim", "boljem", "bolji", "gorem", "gorim", "svakom", "nekom",
	"nekoj", "svakoj", "mojoj", "tvojoj", "njegovoj", "njezinom", "našem", "vašem",
	"jednom", "drugom", "trećem", "prvom", "zadnjem", "prošlom", "sljedećem",
	"ovom", "tom", "onom", "kojem", "čemu", "čime", "kome", "kom",
	"topim", "toplim", "hladnim", "lijepim", "lepim",
	"some", "any", "warm", "warmer", "cold", "colder", "close", "closer", "far",
	"bigger", "smaller", "better", "best", "nicer", "most", "every", "each",
	"this", "that", "these", "those", "other", "another", "certain", "various",
	"general", "particular", "specific", "different", "similar", "nearby", "remote",
	"december", "january", "february", "winter", "summer", "spring", "autumn",
	"prosinca", "siječnja", "veljače", "zimi", "ljeti", "proljeće", "jesen",
	"country", "region", "area", "place", "places", "location", "destination",
	"krajevima", "mjestima", "zemljama", "regijama", "područjima", "destinacijama",
	"europe", "europa", "europi", "asia", "azija", "aziji", "africa", "afrika", "africi",
	"america", "amerika", "americi", "australia", "australija", "australiji",
	"mediterranean", "mediteran", "mediteranu", "balkans", "balkan", "balkanu",
	"scandinavia", "skandinavija", "skandinaviji", "caribbean", "karibe", "karibima",
	"world", "svijet", "svijetu", "global", "worldwide",
)

var planTriggers = []string{
	"plan", "planiram", "planning", "putovan", "putovanje",
	"trip", "travel from", "traveling from", "travelling from",
	"itinerar", "itinerary", "ruta", "route",
	"want to go from", "want to travel", "going from",
	"маршрут",
}

var routeHintTokens = []string{
	" from ", " iz ", " za ", " u ", " to ", " prema ", " -> ", "→",
}

var invalidDestinations = toSet(
	"go to", "goto", "travel to", "fly to", "drive to", "head to", "get to",
	"go", "travel", "fly", "drive", "head", "get", "visit", "visiting",
	"there", "here", "somewhere", "anywhere", "nowhere", "everywhere",
	"the", "a", "an", "it", "this", "that", "them", "one", "ones",
	"cheapest", "cheap", "expensive", "best", "worst", "fastest", "slowest",
	"would", "could", "should", "might", "may", "can", "will",
)

func toSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Classify runs the keyword cascade over message. det carries the route
// signals already extracted from the same message. ok is false when no rule
// fired and the caller should ask the model instead.
func Classify(message string, det route.Detection) (intent Intent, ok bool) {
	if IsGreeting(message) {
		return Greeting, true
	}
	if isProfileQuestion(message) {
		return ProfileQuestion, true
	}

	origin, destination := det.Origin, det.Destination
	if !validDestination(origin) {
		origin = ""
	}
	if !validDestination(destination) {
		destination = ""
	}
	if origin != "" && destination != "" {
		return PlanRequest, true
	}
	if hasPlanTrigger(message) && (origin != "" || destination != "") {
		return PlanRequest, true
	}

	// A concrete city wins over generic advice: "trebam hotel u Splitu" is a
	// search, "topla mjesta u Europi" is advice.
	if isSpecificSearch(message) {
		return SpecificSearch, true
	}
	if isAskingForAdvice(message) {
		return TravelAdvice, true
	}
	if isGeneralQuestion(message) {
		return GeneralQuestion, true
	}
	if hasPlanTrigger(message) {
		return PlanRequest, true
	}
	return QuestionOnly, false
}

// IsGreeting reports whether message is only a greeting or small talk.
// A greeting followed by travel content does not count.
func IsGreeting(message string) bool {
	text := strings.TrimRight(strings.ToLower(strings.TrimSpace(message)), "!?.,:;")
	if _, hit := greetingPhrases[text]; hit {
		return true
	}
	if isSmallTalk(text) {
		return true
	}

	words := strings.Fields(text)
	if len(words) >= 1 && len(words) <= 4 {
		cleaned := make([]string, len(words))
		for i, w := range words {
			cleaned[i] = strings.TrimRight(w, "!?.,:;")
		}
		phrase := strings.Join(cleaned, " ")
		if _, hit := greetingPhrases[phrase]; hit {
			return true
		}
		if isSmallTalk(phrase) {
			return true
		}
	}

	if len(words) > 4 {
		first := strings.TrimRight(words[0], "!?.,:;")
		if _, hit := greetingPhrases[first]; hit {
			rest := strings.Join(words[1:], " ")
			if containsTravelKeywords(rest) || isAskingForAdvice(rest) {
				return false
			}
			return true
		}
	}
	return false
}

func isSmallTalk(text string) bool {
	for _, phrase := range smallTalkPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func containsTravelKeywords(message string) bool {
	return containsAny(strings.ToLower(message), travelKeywords)
}

func isAskingForAdvice(message string) bool {
	return containsAny(strings.ToLower(message), adviceKeywords)
}

func isProfileQuestion(message string) bool {
	return containsAny(strings.ToLower(message), profileQuestionKeywords)
}

func isGeneralQuestion(message string) bool {
	text := strings.ToLower(message)
	if isProfileQuestion(text) {
		return true
	}
	if containsAny(text, capabilitiesPhrases) {
		return true
	}
	// Short keywords need whole-word matching so "show" does not hit "how".
	wordSet := toSet(strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '!' || r == '?' ||
			r == '.' || r == ',' || r == ':' || r == ';'
	})...)
	for _, keyword := range generalQuestionKeywords {
		if utf8.RuneCountInString(keyword) <= 4 {
			if _, hit := wordSet[keyword]; hit {
				return true
			}
		} else if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func isSpecificSearch(message string) bool {
	text := strings.ToLower(message)
	if !containsAny(text, specificSearchKeywords) {
		return false
	}

	for _, pattern := range cityLocationPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			if _, generic := notCityWords[strings.ToLower(m[1])]; !generic {
				return true
			}
		}
	}

	// "restorani Opatija" style: search keyword directly followed by a
	// capitalized word.
	words := strings.Fields(message)
	for i, word := range words {
		lower := strings.TrimRight(strings.ToLower(word), ".,!?")
		if !isSearchKeyword(lower) {
			continue
		}
		if i+1 >= len(words) {
			continue
		}
		next := strings.TrimRight(words[i+1], ".,!?")
		if next == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(next)
		if unicode.IsUpper(first) {
			if _, generic := notCityWords[strings.ToLower(next)]; !generic {
				return true
			}
		}
	}
	return false
}

// SearchCity pulls the target city out of a specific-search message, e.g.
// "best restaurants in Rome" or "restorani Opatija". Empty when no
// capitalized city candidate is present.
func SearchCity(message string) string {
	for _, pattern := range cityLocationPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			candidate := strings.TrimRight(m[1], ".,!?")
			if _, generic := notCityWords[strings.ToLower(candidate)]; !generic {
				return candidate
			}
		}
	}

	words := strings.Fields(message)
	for i, word := range words {
		lower := strings.TrimRight(strings.ToLower(word), ".,!?")
		if !isSearchKeyword(lower) {
			continue
		}
		if i+1 >= len(words) {
			continue
		}
		next := strings.TrimRight(words[i+1], ".,!?")
		if next == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(next)
		if unicode.IsUpper(first) {
			if _, generic := notCityWords[strings.ToLower(next)]; !generic {
				return next
			}
		}
	}
	return ""
}

func isSearchKeyword(word string) bool {
	for _, keyword := range specificSearchKeywords {
		if word == keyword {
			return true
		}
	}
	return false
}

func hasPlanTrigger(message string) bool {
	return containsAny(strings.ToLower(message), planTriggers)
}

// HasRouteHint reports whether message contains tokens that make route
// extraction worth running at all.
func HasRouteHint(message string) bool {
	text := strings.ToLower(message)
	if text == "" {
		return false
	}
	return containsAny(text, routeHintTokens)
}

func validDestination(dest string) bool {
	lower := strings.ToLower(strings.TrimSpace(dest))
	if lower == "" || len(lower) < 2 {
		return false
	}
	if _, bad := invalidDestinations[lower]; bad {
		return false
	}
	for _, prefix := range []string{"to ", "from ", "the ", "a "} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
