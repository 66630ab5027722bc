// README: Chat orchestrator tests over the offline provider chain.
package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"roam/internal/ai"
	"roam/internal/amadeus"
	"roam/internal/intent"
	"roam/internal/lang"
	"roam/internal/maps"
	"roam/internal/modules/session"
	"roam/internal/travel"
)

func newOfflineChat(t *testing.T) *ChatService {
	t.Helper()
	places, err := maps.NewPlacesService("")
	if err != nil {
		t.Fatal(err)
	}
	store, err := session.NewLRUStore()
	if err != nil {
		t.Fatal(err)
	}
	builder := travel.NewBuilder(amadeus.NewClient("", "", "test", nil), places, nil)
	return NewChatService(ChatConfig{
		Builder:  builder,
		Places:   places,
		Sessions: session.NewManager(store),
	})
}

func handle(t *testing.T, svc *ChatService, sessionID, message string) ChatResult {
	t.Helper()
	res, err := svc.Handle(context.Background(), ChatCommand{SessionID: sessionID, Message: message})
	if err != nil {
		t.Fatalf("handle %q: %v", message, err)
	}
	return res
}

func TestHandleRejectsEmptyInput(t *testing.T) {
	svc := newOfflineChat(t)
	ctx := context.Background()
	if _, err := svc.Handle(ctx, ChatCommand{SessionID: "s1", Message: "   "}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("empty message: %v", err)
	}
	if _, err := svc.Handle(ctx, ChatCommand{SessionID: "", Message: "hi"}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("empty session: %v", err)
	}
}

func TestHandleGreeting(t *testing.T) {
	svc := newOfflineChat(t)
	res := handle(t, svc, "s1", "hello")
	if res.Intent != string(intent.Greeting) {
		t.Fatalf("intent = %s", res.Intent)
	}
	if !strings.Contains(res.Reply, lang.Greeting("en")) {
		t.Fatalf("reply = %q", res.Reply)
	}
}

func TestHandlePlanRequest(t *testing.T) {
	svc := newOfflineChat(t)
	res := handle(t, svc, "s1", "Plan a trip from Zagreb to London")
	if res.Intent != string(intent.PlanRequest) {
		t.Fatalf("intent = %s", res.Intent)
	}
	for _, want := range []string{"✈️ Flights:", "[CARD]", "🔗 Useful links:"} {
		if !strings.Contains(res.Reply, want) {
			t.Errorf("reply missing %q", want)
		}
	}

	sess, err := svc.sessions.Load(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Memory[session.KeyLastDestination] != "london" {
		t.Fatalf("memory = %+v", sess.Memory)
	}
	if len(sess.History) != 2 {
		t.Fatalf("history length = %d", len(sess.History))
	}
}

func TestHandleRoundTripAppendsReturnPlan(t *testing.T) {
	svc := newOfflineChat(t)
	res := handle(t, svc, "s1", "Plan a trip from Zagreb to London from 2026-12-07 to 2026-12-14")
	if res.Intent != string(intent.PlanRequest) {
		t.Fatalf("intent = %s", res.Intent)
	}
	if !strings.Contains(res.Reply, travel.ReturnTripHeader("en")) {
		t.Fatal("round trip missing return section")
	}
	if !strings.Contains(res.Reply, "🏨 Accommodation") {
		t.Fatal("outbound plan missing accommodation")
	}
}

func TestHandlePlanUsesSessionMemory(t *testing.T) {
	svc := newOfflineChat(t)
	handle(t, svc, "s1", "Plan a trip from Zagreb to London")
	res := handle(t, svc, "s1", "now take me on the trip back home")
	if res.Intent != string(intent.PlanRequest) {
		t.Fatalf("intent = %s", res.Intent)
	}
	// Reversed route from memory: London back to Zagreb, transport only.
	if strings.Contains(res.Reply, "🏨 Accommodation") {
		t.Fatal("return plan should not include stays")
	}
	if !strings.Contains(res.Reply, "London") || !strings.Contains(res.Reply, "Zagreb") {
		t.Fatalf("reply = %q", res.Reply)
	}
}

func TestHandleSpecificSearch(t *testing.T) {
	svc := newOfflineChat(t)
	res := handle(t, svc, "s1", "best restaurants in Rome")
	if res.Intent != string(intent.SpecificSearch) {
		t.Fatalf("intent = %s", res.Intent)
	}
	if !strings.Contains(res.Reply, "Top restaurants in Rome:") {
		t.Fatalf("reply = %q", res.Reply)
	}
	if !strings.Contains(res.Reply, "[CARD]") {
		t.Fatal("search reply missing cards")
	}
}

func TestProfileStatementsFeedMemory(t *testing.T) {
	svc := newOfflineChat(t)
	handle(t, svc, "s1", "I live in Rijeka and I love skiing")

	sess, err := svc.sessions.Load(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Memory[session.KeyHomeCity] != "rijeka" {
		t.Fatalf("home city = %q", sess.Memory[session.KeyHomeCity])
	}
	if !strings.Contains(sess.Memory[session.KeyInterests], "skiing") {
		t.Fatalf("interests = %q", sess.Memory[session.KeyInterests])
	}
}

type failingProvider struct{}

func (failingProvider) Chat(context.Context, []ai.Message, lang.Language) (string, error) {
	return "", errors.New("model down")
}
func (failingProvider) ClassifyIntent(context.Context, string, []ai.Message, string) (intent.Intent, error) {
	return "", errors.New("model down")
}
func (failingProvider) ExtractRoute(context.Context, string, string) (ai.Route, error) {
	return ai.Route{}, errors.New("model down")
}

func TestProviderFailureFallsBack(t *testing.T) {
	svc := newOfflineChat(t)
	svc.provider = failingProvider{}
	res := handle(t, svc, "s1", "Plan a trip from Zagreb to London")
	if res.Reply == "" {
		t.Fatal("empty reply despite fallback")
	}
	if !strings.Contains(res.Reply, "[CARD]") {
		t.Fatal("fallback plan missing cards")
	}
}

type exhaustedQuota struct{ calls int }

func (q *exhaustedQuota) UseCall(context.Context, string) error {
	q.calls++
	return errors.New("monthly quota exhausted")
}

func TestQuotaExhaustionDegradesToFallback(t *testing.T) {
	svc := newOfflineChat(t)
	quota := &exhaustedQuota{}
	svc.provider = failingProvider{}
	svc.quota = quota

	res, err := svc.Handle(context.Background(), ChatCommand{
		SessionID: "s1", Message: "Plan a trip from Zagreb to London", UserID: "u1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if quota.calls == 0 {
		t.Fatal("quota never consulted")
	}
	if !strings.Contains(res.Reply, "[CARD]") {
		t.Fatal("degraded reply missing plan")
	}
}

type emphaticProvider struct{}

func (emphaticProvider) Chat(context.Context, []ai.Message, lang.Language) (string, error) {
	return "Here is **your plan** with ***flair***", nil
}
func (emphaticProvider) ClassifyIntent(context.Context, string, []ai.Message, string) (intent.Intent, error) {
	return intent.GeneralQuestion, nil
}
func (emphaticProvider) ExtractRoute(context.Context, string, string) (ai.Route, error) {
	return ai.Route{}, nil
}

func TestReplyStripsEmphasisMarkers(t *testing.T) {
	svc := newOfflineChat(t)
	svc.provider = emphaticProvider{}
	res := handle(t, svc, "s1", "what is the weather like in general")
	if strings.Contains(res.Reply, "**") {
		t.Fatalf("reply kept markers: %q", res.Reply)
	}
	if !strings.Contains(res.Reply, "your plan") {
		t.Fatalf("reply = %q", res.Reply)
	}
}
