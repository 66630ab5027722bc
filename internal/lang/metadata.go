// README: Per-language metadata, aliases, and script hint tables.
package lang

// Metadata carries the user-facing strings and detection keywords for one language.
type Metadata struct {
	Tag           string
	Greeting      string
	PlanInvite    string
	Keywords      []string
	StrongMarkers []string
}

var languageMetadata = map[string]Metadata{
	"hr": {
		Tag:        "CROATIAN (HR)",
		Greeting:   "Bok! 👋 Ja sam tvoj Roam asistent. Reci mi trebaš li plan putovanja, savjet ili samo ideje?",
		PlanInvite: "💡 Želiš li da ti ovo pretvorim u strukturirani plan putovanja koji možeš spremiti u svoj Roam Planner?",
		Keywords:   []string{"bok", "pozdrav", "putova", "želim", "molim", "hrvats", "treba", "rijeka", "zagreb"},
		StrongMarkers: []string{
			"tko", "što", "gdje", "koliko", "mogu", "želim", "treba",
			"hvala", "molim", "kako si", "tko si",
		},
	},
	"sl": {
		Tag:        "SLOVENIAN (SL)",
		Greeting:   "Živjo! 👋 Tukaj Roam. Naj ti pripravim potovalni nasvet ali načrt?",
		PlanInvite: "💡 Želiš, da ti to pretvorim v strukturiran potovalni načrt za tvoj Roam Planner?",
		Keywords:   []string{"živjo", "potujem", "sloven", "rabim načrt"},
		StrongMarkers: []string{
			"kaj", "kje", "kdaj", "lahko", "potrebujem", "hvala lepa",
			"prosim", "kako si", "kdo si",
		},
	},
	"de": {
		Tag:        "GERMAN (DE)",
		Greeting:   "Hallo! 👋 Ich bin dein Roam Reiseassistent. Brauchst du Ideen, Tipps oder einen Reiseplan?",
		PlanInvite: "💡 Soll ich dir das in einen strukturierten Reiseplan umwandeln, den du in deinem Roam Planner speichern kannst?",
		Keywords:   []string{"hallo", "reise", "brauche", "flug", "günstig"},
	},
	"it": {
		Tag:        "ITALIAN (IT)",
		Greeting:   "Ciao! 👋 Sono il tuo assistente di viaggio Roam. Vuoi idee, consigli o un piano completo?",
		PlanInvite: "💡 Vuoi che trasformi questo in un piano di viaggio strutturato da salvare nel tuo Roam Planner?",
		Keywords:   []string{"ciao", "viaggio", "piano", "consiglio", "ital"},
	},
	"es": {
		Tag:        "SPANISH (ES)",
		Greeting:   "¡Hola! 👋 Soy tu asistente Roam. ¿Quieres un plan, un consejo o unas ideas?",
		PlanInvite: "💡 ¿Quieres que convierta esto en un plan de viaje estructurado para tu Roam Planner?",
		Keywords:   []string{"hola", "viaje", "plan", "consejo", "espa"},
	},
	"fr": {
		Tag:        "FRENCH (FR)",
		Greeting:   "Salut! 👋 Ici Roam. Tu veux des idées voyage, des conseils ou un plan détaillé?",
		PlanInvite: "💡 Veux-tu que je transforme cela en un plan de voyage structuré pour ton Roam Planner ?",
		Keywords:   []string{"bonjour", "salut", "voyage", "itineraire", "fran"},
	},
	"uk": {
		Tag:        "UKRAINIAN (UK)",
		Greeting:   "Привіт! 👋 Я твій асистент Roam. Хочеш повний маршрут, пораду чи просто ідеї?",
		PlanInvite: "💡 Хочеш, щоб я перетворив це на структурований маршрут для твого Roam Planner?",
		Keywords:   []string{"привіт", "привітання", "маршрут", "подорож"},
	},
	"en": {
		Tag:        "ENGLISH (EN)",
		Greeting:   "Hi! 👋 I'm your Roam assistant. Do you want a travel plan, a tip, or just ideas?",
		PlanInvite: "💡 Do you want me to turn this into a structured travel plan you can save to your Roam Planner?",
		Keywords:   []string{"hello", "hi", "trip", "travel", "plan"},
		StrongMarkers: []string{
			"how do", "what's", "who are", "can you", "do you",
			"i want", "i need", "tell me",
		},
	},
}

// languageAliases maps near-identical or frontend-specific codes onto supported ones.
var languageAliases = map[string]string{
	"sr":    "hr",
	"bs":    "hr",
	"me":    "hr",
	"pt":    "es",
	"pt-br": "es",
	"ua":    "uk",
}

var genericLanguageNames = map[string]string{
	"en": "English", "hr": "Croatian", "sl": "Slovenian", "de": "German",
	"it": "Italian", "es": "Spanish", "fr": "French", "pt": "Portuguese",
	"pl": "Polish", "nl": "Dutch", "hu": "Hungarian", "cs": "Czech",
	"sk": "Slovak", "ro": "Romanian", "bg": "Bulgarian", "sr": "Serbian",
	"el": "Greek", "ru": "Russian", "uk": "Ukrainian", "tr": "Turkish",
	"ar": "Arabic", "he": "Hebrew", "hi": "Hindi", "th": "Thai",
	"zh": "Chinese", "ja": "Japanese", "ko": "Korean",
}

type scriptRange struct {
	lo, hi rune
}

// scriptHints maps languages to the Unicode block ranges of their scripts.
// Order matters for Cyrillic: uk is checked first so Cyrillic defaults to Ukrainian.
var scriptHints = []struct {
	code   string
	ranges []scriptRange
}{
	{"uk", []scriptRange{{0x0400, 0x04FF}}},
	{"el", []scriptRange{{0x0370, 0x03FF}}},
	{"he", []scriptRange{{0x0590, 0x05FF}}},
	{"ar", []scriptRange{{0x0600, 0x06FF}, {0x0750, 0x077F}}},
	{"hi", []scriptRange{{0x0900, 0x097F}}},
	{"th", []scriptRange{{0x0E00, 0x0E7F}}},
	{"ko", []scriptRange{{0x1100, 0x11FF}, {0x3130, 0x318F}, {0xAC00, 0xD7AF}}},
	{"ja", []scriptRange{{0x3040, 0x30FF}, {0x31F0, 0x31FF}}},
	{"zh", []scriptRange{{0x4E00, 0x9FFF}}},
}

// specialCharHints resolves Latin diacritics that separate Croatian from Slovenian.
var specialCharHints = []struct {
	code  string
	chars []rune
}{
	{"hr", []rune{'č', 'ć', 'đ'}},
	{"sl", []rune{'ž', 'š'}},
}
