package intent

import (
	"testing"

	"roam/internal/route"
)

func classify(t *testing.T, message string) (Intent, bool) {
	t.Helper()
	return Classify(message, route.Extract(message))
}

func TestClassifyGreetings(t *testing.T) {
	for _, msg := range []string{"Bok!", "Hello", "guten tag", "how are you?", "Привіт"} {
		got, ok := classify(t, msg)
		if !ok || got != Greeting {
			t.Errorf("Classify(%q) = %s (ok=%v), want GREETING", msg, got, ok)
		}
	}
}

func TestGreetingWithTravelContentIsNotGreeting(t *testing.T) {
	msg := "Pozdrav treba mi plan putovanja iz Zagreba za Madrid"
	if IsGreeting(msg) {
		t.Fatal("greeting prefix must not mask a travel request")
	}
	got, ok := classify(t, msg)
	if !ok || got != PlanRequest {
		t.Fatalf("got %s (ok=%v), want PLAN_REQUEST", got, ok)
	}
}

func TestClassifyProfileQuestion(t *testing.T) {
	got, ok := classify(t, "Što znaš o meni?")
	if !ok || got != ProfileQuestion {
		t.Fatalf("got %s (ok=%v), want PROFILE_QUESTION", got, ok)
	}
}

func TestClassifyPlanRequestWithRoute(t *testing.T) {
	got, ok := classify(t, "I want to travel from Vienna to Prague")
	if !ok || got != PlanRequest {
		t.Fatalf("got %s (ok=%v), want PLAN_REQUEST", got, ok)
	}
}

func TestClassifySpecificSearchBeatsAdvice(t *testing.T) {
	cases := []string{
		"trebam hotel u Splitu",
		"restorani u Opatiji",
		"best museums in Paris",
	}
	for _, msg := range cases {
		got, ok := classify(t, msg)
		if !ok || got != SpecificSearch {
			t.Errorf("Classify(%q) = %s (ok=%v), want SPECIFIC_SEARCH", msg, got, ok)
		}
	}
}

func TestClassifyGenericLocationIsAdvice(t *testing.T) {
	cases := []string{
		"golf courses in warm places",
		"topla mjesta u Europi",
	}
	for _, msg := range cases {
		got, ok := classify(t, msg)
		if !ok || got != TravelAdvice {
			t.Errorf("Classify(%q) = %s (ok=%v), want TRAVEL_ADVICE", msg, got, ok)
		}
	}
}

func TestClassifyGeneralQuestion(t *testing.T) {
	got, ok := classify(t, "Koliko košta hotel?")
	if !ok || got != GeneralQuestion {
		t.Fatalf("got %s (ok=%v), want GENERAL_QUESTION", got, ok)
	}
}

func TestClassifyFallsThroughToModel(t *testing.T) {
	got, ok := classify(t, "Tell me something interesting")
	if ok {
		t.Fatalf("expected fallthrough, got %s", got)
	}
	if got != QuestionOnly {
		t.Fatalf("fallthrough default should be QUESTION_ONLY, got %s", got)
	}
}

func TestHasRouteHint(t *testing.T) {
	if !HasRouteHint("travel from Vienna to Prague") {
		t.Fatal("expected route hint")
	}
	if HasRouteHint("hello") {
		t.Fatal("unexpected route hint")
	}
}
