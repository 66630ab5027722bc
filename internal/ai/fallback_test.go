package ai

import (
	"context"
	"strings"
	"testing"

	"roam/internal/intent"
	"roam/internal/lang"
)

func TestFallbackIntentHeuristics(t *testing.T) {
	cases := []struct {
		message string
		want    intent.Intent
	}{
		{"bok!", intent.Greeting},
		{"plan putovanja iz Zagreba za London", intent.PlanRequest},
		{"I am thinking about a trip somewhere warm this winter, maybe with good food", intent.TravelAdvice},
		{"- Konoba Batelina\n- Boškinac\n- Pelegrini", intent.SpecificSearch},
		{"what time is it?", intent.QuestionOnly},
		{"", intent.QuestionOnly},
	}
	for _, tc := range cases {
		if got := fallbackIntent(tc.message); got != tc.want {
			t.Errorf("fallbackIntent(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestFallbackChatPlanSummary(t *testing.T) {
	f := NewFallback()
	messages := []Message{
		SystemMessage(MetaIntent, "PLAN_REQUEST"),
		SystemMessage(MetaTravelData, `{"origin": "zagreb", "destination": "london"}`),
		{Role: RoleUser, Content: "plan iz Zagreba za London"},
	}
	reply, err := f.Chat(context.Background(), messages, lang.Language{Code: "hr", Tag: "CROATIAN (HR)"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Zagreb") || !strings.Contains(reply, "London") {
		t.Fatalf("cities missing from summary: %q", reply)
	}
	if !strings.Contains(reply, "Roam Planner") {
		t.Fatalf("planner mention missing: %q", reply)
	}
}

func TestFallbackChatGreeting(t *testing.T) {
	f := NewFallback()
	messages := []Message{
		SystemMessage(MetaIntent, "GREETING"),
		{Role: RoleUser, Content: "bok"},
	}
	reply, err := f.Chat(context.Background(), messages, lang.Language{Code: "hr"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != lang.Greeting("hr") {
		t.Fatalf("got %q", reply)
	}
}

func TestFallbackChatQuestionEchoesUserText(t *testing.T) {
	f := NewFallback()
	messages := []Message{
		SystemMessage(MetaIntent, "QUESTION_ONLY"),
		{Role: RoleUser, Content: "vikend u Italiji"},
	}
	reply, err := f.Chat(context.Background(), messages, lang.Language{Code: "hr"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "vikend u Italiji") {
		t.Fatalf("user text missing: %q", reply)
	}
}
