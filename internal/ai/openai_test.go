package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"roam/internal/intent"
	"roam/internal/lang"
)

func stubOpenAI(t *testing.T, reply string, capture *chatRequest) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		resp := chatResponse{}
		resp.Choices = []struct {
			Message Message `json:"message"`
		}{{Message: Message{Role: RoleAssistant, Content: reply}}}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	p := NewOpenAIProvider("test-key", "gpt-4o")
	p.endpoint = srv.URL
	return p
}

func TestOpenAIChatInjectsSystemPrompt(t *testing.T) {
	var captured chatRequest
	p := stubOpenAI(t, "Bok! Evo plana.", &captured)

	reply, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "bok"}}, lang.Language{Code: "hr", Tag: "CROATIAN (HR)"})
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Bok! Evo plana." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != RoleSystem {
		t.Fatalf("expected system prompt first, got %+v", captured.Messages)
	}
	if captured.MaxTokens != 1800 {
		t.Fatalf("max_tokens = %d", captured.MaxTokens)
	}
}

func TestOpenAIClassifyIntentValidToken(t *testing.T) {
	p := stubOpenAI(t, "PLAN_REQUEST", nil)
	got, err := p.ClassifyIntent(context.Background(), "trip from A to B", nil, "ENGLISH (EN)")
	if err != nil {
		t.Fatal(err)
	}
	if got != intent.PlanRequest {
		t.Fatalf("got %s", got)
	}
}

func TestOpenAIClassifyIntentUnknownTokenDefaults(t *testing.T) {
	p := stubOpenAI(t, "BANANA", nil)
	got, err := p.ClassifyIntent(context.Background(), "hm", nil, "ENGLISH (EN)")
	if err != nil {
		t.Fatal(err)
	}
	if got != intent.QuestionOnly {
		t.Fatalf("got %s", got)
	}
}

func TestOpenAIClassifyIntentTrimsHistory(t *testing.T) {
	var captured chatRequest
	p := stubOpenAI(t, "QUESTION_ONLY", &captured)
	history := make([]Message, 10)
	for i := range history {
		history[i] = Message{Role: RoleUser, Content: "older"}
	}
	if _, err := p.ClassifyIntent(context.Background(), "latest", history, "ENGLISH (EN)"); err != nil {
		t.Fatal(err)
	}
	// system prompt + 4 history turns + current message
	if len(captured.Messages) != 6 {
		t.Fatalf("got %d messages", len(captured.Messages))
	}
}

func TestOpenAIExtractRouteParsesFencedJSON(t *testing.T) {
	p := stubOpenAI(t, "```json\n{\"origin\": \"Zagreb\", \"destination\": \"London\"}\n```", nil)
	route, err := p.ExtractRoute(context.Background(), "plan iz Zagreba za London", "CROATIAN (HR)")
	if err != nil {
		t.Fatal(err)
	}
	if route.Origin != "Zagreb" || route.Destination != "London" {
		t.Fatalf("got %+v", route)
	}
}

func TestOpenAIDisabledWithoutKey(t *testing.T) {
	p := NewOpenAIProvider("", "")
	if p.Enabled() {
		t.Fatal("provider without key must be disabled")
	}
	if _, err := p.Chat(context.Background(), nil, lang.Language{Code: "en"}); err == nil {
		t.Fatal("expected error without key")
	}
}
