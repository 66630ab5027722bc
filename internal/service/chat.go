// README: Chat orchestrator: language detection, intent, route, bundles, reply.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"roam/internal/ai"
	"roam/internal/intent"
	"roam/internal/lang"
	"roam/internal/maps"
	"roam/internal/modules/session"
	"roam/internal/modules/user"
	"roam/internal/route"
	"roam/internal/travel"
)

var ErrBadRequest = errors.New("bad request")

// historyWindow is how many prior turns are fed back to the model.
const historyWindow = 10

// Quota meters LLM calls per user. Implemented by usage.Service.
type Quota interface {
	UseCall(ctx context.Context, userID string) error
}

// UserProfiles looks up authenticated users so their saved profile can seed
// the session memory. Implemented by user.Service.
type UserProfiles interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

type ChatService struct {
	provider ai.Provider
	fallback *ai.Fallback
	builder  *travel.Builder
	places   *maps.PlacesService
	sessions *session.Manager
	users    UserProfiles
	quota    Quota
	defLang  string
	log      *zap.Logger
}

type ChatConfig struct {
	Provider        ai.Provider // nil means offline fallback only
	Builder         *travel.Builder
	Places          *maps.PlacesService
	Sessions        *session.Manager
	Users           UserProfiles // optional
	Quota           Quota        // optional
	DefaultLanguage string
	Log             *zap.Logger
}

func NewChatService(cfg ChatConfig) *ChatService {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	defLang := cfg.DefaultLanguage
	if defLang == "" {
		defLang = "en"
	}
	return &ChatService{
		provider: cfg.Provider,
		fallback: ai.NewFallback(),
		builder:  cfg.Builder,
		places:   cfg.Places,
		sessions: cfg.Sessions,
		users:    cfg.Users,
		quota:    cfg.Quota,
		defLang:  defLang,
		log:      log,
	}
}

type ChatCommand struct {
	SessionID string
	Message   string
	UserID    string // empty for anonymous sessions
}

type ChatResult struct {
	Reply     string
	Intent    string
	Language  string
	SessionID string
}

func (s *ChatService) Handle(ctx context.Context, cmd ChatCommand) (ChatResult, error) {
	message := strings.TrimSpace(cmd.Message)
	if message == "" || cmd.SessionID == "" {
		return ChatResult{}, ErrBadRequest
	}

	sess, err := s.sessions.Load(ctx, cmd.SessionID)
	if err != nil {
		return ChatResult{}, err
	}
	if cmd.UserID != "" {
		s.mergeUserProfile(ctx, sess, cmd.UserID)
	}

	// Language is re-detected every message; a bilingual user can switch
	// mid-conversation.
	language := lang.Detect(message, s.defLang)
	applyProfileStatements(sess, message)

	det := route.Extract(message)
	it, decided := intent.Classify(message, det)
	if !decided {
		it = s.classify(ctx, cmd.UserID, message, sess, language)
	}
	// Two concrete cities beat whatever the cascade or the model said.
	if det.Origin != "" && det.Destination != "" {
		it = intent.PlanRequest
	}

	var reply string
	switch it {
	case intent.Greeting:
		reply = lang.Greeting(language.Code) + "\n\n" + lang.PlanInvite(language.Code)
	case intent.PlanRequest:
		reply = s.handlePlan(ctx, cmd.UserID, message, det, sess, language)
	case intent.SpecificSearch:
		reply = s.handleSearch(ctx, message, sess, language)
	case intent.TravelAdvice:
		reply = s.handleAdvice(ctx, cmd.UserID, message, sess, language)
	default:
		// PROFILE_QUESTION, GENERAL_QUESTION, QUESTION_ONLY.
		reply = s.handleQuestion(ctx, cmd.UserID, message, it, sess, language)
	}

	reply = strings.TrimSpace(reply)
	sess.AppendHistory(message, reply)
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.Warn("session save failed", zap.String("session", cmd.SessionID), zap.Error(err))
	}

	return ChatResult{
		Reply:     reply,
		Intent:    string(it),
		Language:  language.Code,
		SessionID: cmd.SessionID,
	}, nil
}

var returnTripKeywords = []string{
	"povratak", "natrag", "nazad", "vrati me", "put kući", "put kuci",
	"return trip", "way back", "back home", "trip back",
	"povratek", "nazaj", "rückreise", "rueckreise", "zurück", "zurueck",
	"ritorno", "vuelta", "retour",
}

func isReturnTripRequest(message string) bool {
	text := strings.ToLower(message)
	for _, kw := range returnTripKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (s *ChatService) handlePlan(ctx context.Context, userID, message string, det route.Detection, sess *session.Session, language lang.Language) string {
	origin, destination := det.Origin, det.Destination

	// Regex missed a city: one model round-trip before touching memory.
	if origin == "" || destination == "" {
		if extracted := s.extractRoute(ctx, userID, message, language); extracted.Origin != "" || extracted.Destination != "" {
			if origin == "" {
				origin = extracted.Origin
			}
			if destination == "" {
				destination = extracted.Destination
			}
		}
	}

	goingBack := isReturnTripRequest(message)
	if goingBack && origin == "" && destination == "" {
		// "i sad me vrati nazad": reverse the remembered route.
		origin = sess.Memory[session.KeyLastDestination]
		destination = sess.Memory[session.KeyLastOrigin]
	}
	if destination == "" && sess.Memory[session.KeyLastPlanType] != "" {
		destination = sess.Memory[session.KeyLastDestination]
	}
	if origin == "" {
		origin = sess.Memory[session.KeyLastOrigin]
	}
	if origin == "" {
		origin = sess.Memory[session.KeyHomeCity]
	}

	if destination == "" {
		return lang.PlanInvite(language.Code)
	}

	req := travel.Request{
		Origin:        origin,
		Destination:   destination,
		Budget:        det.Budget,
		DepartureDate: det.Dates.Departure,
		ReturnDate:    det.Dates.Return,
		Preferences:   interestList(sess),
		LanguageCode:  language.Code,
	}

	var bundle travel.Bundle
	if goingBack {
		bundle = s.builder.BuildReturnBundle(ctx, req)
	} else {
		bundle = s.builder.BuildBundle(ctx, req)
	}

	messages := s.conversation(sess,
		ai.SystemMessage(ai.MetaIntent, string(intent.PlanRequest)),
		ai.SystemMessage(ai.MetaProfile, profileSummary(sess)),
		ai.SystemMessage(ai.MetaTravelData, bundle.Serialize()),
	)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})
	narrative := s.chat(ctx, userID, messages, language)

	reply := narrative + "\n\n" + travel.FormatTravelPlan(bundle, language.Code)

	// Round trips get the homeward leg appended as a transport-only plan.
	if !goingBack && det.TripType == route.TripRoundTrip {
		back := s.builder.BuildReturnBundle(ctx, travel.Request{
			Origin:       destination,
			Destination:  origin,
			Budget:       det.Budget,
			ReturnDate:   det.Dates.Return,
			LanguageCode: language.Code,
		})
		reply += "\n\n" + travel.ReturnTripHeader(language.Code) + "\n\n" +
			travel.FormatTravelPlan(back, language.Code)
	}

	planType := "one_way"
	if det.TripType == route.TripRoundTrip {
		planType = "round_trip"
	}
	sess.UpdateMemory(map[string]string{
		session.KeyLastOrigin:      strings.ToLower(origin),
		session.KeyLastDestination: strings.ToLower(destination),
		session.KeyLastPlanType:    planType,
	})
	return reply
}

func (s *ChatService) handleSearch(ctx context.Context, message string, sess *session.Session, language lang.Language) string {
	category := maps.DetectCategory(message)
	city := intent.SearchCity(message)
	if city == "" {
		city = sess.Memory[session.KeyLastDestination]
	}
	if city == "" {
		city = sess.Memory[session.KeyCurrentLocation]
	}
	if city == "" {
		city = "Zagreb"
	}

	places, err := s.places.Search(ctx, category, city, language.Code, 5)
	if err != nil {
		s.log.Warn("places search failed", zap.String("city", city), zap.Error(err))
	}
	// Search answers are standalone; stale route memory would otherwise leak
	// into the next plan request.
	sess.ClearRouteMemory()
	return travel.FormatSpecificSearch(category.Label(), city, places, category.CardType())
}

func (s *ChatService) handleAdvice(ctx context.Context, userID, message string, sess *session.Session, language lang.Language) string {
	messages := s.conversation(sess,
		ai.SystemMessage(ai.MetaIntent, string(intent.TravelAdvice)),
		ai.SystemMessage(ai.MetaProfile, profileSummary(sess)),
	)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})
	sess.ClearRouteMemory()
	return s.chat(ctx, userID, messages, language)
}

func (s *ChatService) handleQuestion(ctx context.Context, userID, message string, it intent.Intent, sess *session.Session, language lang.Language) string {
	messages := s.conversation(sess,
		ai.SystemMessage(ai.MetaIntent, string(it)),
		ai.SystemMessage(ai.MetaProfile, profileSummary(sess)),
	)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})
	return s.chat(ctx, userID, messages, language)
}

// chat runs the provider with quota metering and the offline fallback as the
// last resort. It never fails: a broken provider degrades to the template
// renderer.
func (s *ChatService) chat(ctx context.Context, userID string, messages []ai.Message, language lang.Language) string {
	provider := s.activeProvider(ctx, userID)
	reply, err := provider.Chat(ctx, messages, language)
	if err != nil && provider != s.fallback {
		s.log.Warn("provider chat failed, using fallback", zap.Error(err))
		reply, err = s.fallback.Chat(ctx, messages, language)
	}
	if err != nil {
		s.log.Error("fallback chat failed", zap.Error(err))
		return lang.PlanInvite(language.Code)
	}
	return stripEmphasis(reply)
}

func (s *ChatService) classify(ctx context.Context, userID, message string, sess *session.Session, language lang.Language) intent.Intent {
	provider := s.activeProvider(ctx, userID)
	it, err := provider.ClassifyIntent(ctx, message, historyMessages(sess), language.Tag)
	if err != nil {
		it, _ = s.fallback.ClassifyIntent(ctx, message, historyMessages(sess), language.Tag)
	}
	return it
}

func (s *ChatService) extractRoute(ctx context.Context, userID, message string, language lang.Language) ai.Route {
	provider := s.activeProvider(ctx, userID)
	r, err := provider.ExtractRoute(ctx, message, language.Tag)
	if err != nil {
		r, _ = s.fallback.ExtractRoute(ctx, message, language.Tag)
	}
	return r
}

func (s *ChatService) activeProvider(ctx context.Context, userID string) ai.Provider {
	if s.provider == nil {
		return s.fallback
	}
	if s.quota != nil {
		if err := s.quota.UseCall(ctx, userID); err != nil {
			s.log.Info("quota exhausted, degrading to fallback", zap.String("user", userID))
			return s.fallback
		}
	}
	return s.provider
}

// conversation assembles system turns plus the recent history window.
func (s *ChatService) conversation(sess *session.Session, system ...ai.Message) []ai.Message {
	messages := make([]ai.Message, 0, len(system)+historyWindow)
	messages = append(messages, system...)
	messages = append(messages, historyMessages(sess)...)
	return messages
}

func historyMessages(sess *session.Session) []ai.Message {
	history := sess.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	out := make([]ai.Message, 0, len(history))
	for _, m := range history {
		out = append(out, ai.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (s *ChatService) mergeUserProfile(ctx context.Context, sess *session.Session, userID string) {
	if s.users == nil {
		return
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return
	}
	sess.UpdateMemory(map[string]string{
		session.KeyHomeCountry: u.Country,
		session.KeyInterests:   strings.Join(u.Interests, ","),
	})
}

var profileStatementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:i'?m from|i am from|i live in)\s+([A-Z][\w]*(?:\s+[A-Z][\w]*)?)`),
	regexp.MustCompile(`(?i)\b(?:živim u|zivim u|ja sam iz|dolazim iz)\s+([A-ZČĆŠĐŽ][\wčćšđž]*(?:\s+[A-ZČĆŠĐŽ][\wčćšđž]*)?)`),
}

var interestKeywords = map[string][]string{
	"skiing":  {"ski", "skijanje", "skijati", "snowboard"},
	"beach":   {"beach", "plaža", "plaza", "more i sunce", "kupanje"},
	"culture": {"culture", "kultura", "museum", "muzej", "galerij"},
	"winter":  {"winter", "zima", "zimovanje", "snijeg", "snow"},
}

// applyProfileStatements captures durable facts the user states in passing
// ("živim u Rijeci", "I love skiing") into session memory.
func applyProfileStatements(sess *session.Session, message string) {
	for _, pattern := range profileStatementPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			sess.UpdateMemory(map[string]string{
				session.KeyHomeCity: strings.ToLower(strings.TrimRight(m[1], ".,!?")),
			})
			break
		}
	}

	lowered := strings.ToLower(message)
	for interest, hints := range interestKeywords {
		for _, hint := range hints {
			if strings.Contains(lowered, hint) {
				addInterest(sess, interest)
				break
			}
		}
	}
}

func addInterest(sess *session.Session, interest string) {
	existing := interestList(sess)
	for _, have := range existing {
		if have == interest {
			return
		}
	}
	existing = append(existing, interest)
	sess.UpdateMemory(map[string]string{session.KeyInterests: strings.Join(existing, ",")})
}

func interestList(sess *session.Session) []string {
	raw := sess.Memory[session.KeyInterests]
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func profileSummary(sess *session.Session) string {
	if len(sess.Memory) == 0 {
		return "{}"
	}
	data, err := json.Marshal(sess.Memory)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// stripEmphasis removes markdown bold markers models sprinkle around card
// blocks; the mobile renderer shows them literally.
func stripEmphasis(text string) string {
	text = strings.ReplaceAll(text, "***", "")
	return strings.ReplaceAll(text, "**", "")
}
