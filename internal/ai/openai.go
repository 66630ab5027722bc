// README: OpenAI chat completions provider (primary model backend).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"roam/internal/intent"
	"roam/internal/lang"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// httpClient is shared by all OpenAI requests; the 60s timeout guards against
// stalled connections while context cancellation is still honoured via
// NewRequestWithContext.
var httpClient = &http.Client{Timeout: 60 * time.Second}

type chatRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIProvider implements Provider against the chat completions endpoint.
type OpenAIProvider struct {
	apiKey   string
	model    string
	endpoint string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o"
	}
	return &OpenAIProvider{apiKey: apiKey, model: model, endpoint: openAIEndpoint}
}

// Enabled reports whether an API key is configured.
func (p *OpenAIProvider) Enabled() bool {
	return strings.TrimSpace(p.apiKey) != ""
}

func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, language lang.Language) (string, error) {
	req := chatRequest{
		Model:       p.model,
		Temperature: 0.7,
		MaxTokens:   1800,
		Messages: append(
			[]Message{{Role: RoleSystem, Content: systemPrompt(language.Tag, language.Code)}},
			messages...,
		),
	}
	return p.complete(ctx, req)
}

func (p *OpenAIProvider) ClassifyIntent(ctx context.Context, message string, history []Message, languageTag string) (intent.Intent, error) {
	msgs := []Message{{Role: RoleSystem, Content: intentPrompt(languageTag)}}
	if len(history) > 4 {
		history = history[len(history)-4:]
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: message})

	raw, err := p.complete(ctx, chatRequest{
		Model:     p.model,
		MaxTokens: 5,
		Messages:  msgs,
	})
	if err != nil {
		return "", err
	}
	token := intent.Intent(strings.ToUpper(strings.TrimSpace(raw)))
	switch token {
	case intent.QuestionOnly, intent.TravelAdvice, intent.PlanRequest, intent.SpecificSearch:
		return token, nil
	}
	return intent.QuestionOnly, nil
}

func (p *OpenAIProvider) ExtractRoute(ctx context.Context, message, languageTag string) (Route, error) {
	raw, err := p.complete(ctx, chatRequest{
		Model:     p.model,
		MaxTokens: 100,
		Messages:  []Message{{Role: RoleUser, Content: routePrompt(message, languageTag)}},
	})
	if err != nil {
		return Route{}, err
	}
	var route Route
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &route); err != nil {
		return Route{}, fmt.Errorf("openai: unmarshal route: %w", err)
	}
	return route, nil
}

// complete sends one chat completion request and returns the reply text.
func (p *OpenAIProvider) complete(ctx context.Context, payload chatRequest) (string, error) {
	if !p.Enabled() {
		return "", fmt.Errorf("openai: no API key configured")
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("openai: api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("openai: API returned empty choices array (raw: %s)", body)
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
