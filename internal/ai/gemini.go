// README: Gemini provider (alternate model backend selected via ROAM_AI_PROVIDER).
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"roam/internal/intent"
	"roam/internal/lang"
)

// GeminiProvider implements Provider using Google's Gemini models. Two model
// handles share one client: a conversational one and a JSON-mode one for
// structured extraction.
type GeminiProvider struct {
	client     *genai.Client
	chat       *genai.GenerativeModel
	structured *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	chat := client.GenerativeModel("gemini-2.0-flash")
	chat.SetTemperature(0.7)

	structured := client.GenerativeModel("gemini-2.0-flash")
	structured.ResponseMIMEType = "application/json"
	structured.SetTemperature(0)

	return &GeminiProvider{client: client, chat: chat, structured: structured}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) Chat(ctx context.Context, messages []Message, language lang.Language) (string, error) {
	// Gemini has SystemInstruction, but rendering the whole conversation into
	// one prompt keeps the structured SYSTEM turns adjacent to the history
	// they describe.
	var prompt strings.Builder
	prompt.WriteString(systemPrompt(language.Tag, language.Code))
	prompt.WriteString("\n\n")
	for _, msg := range messages {
		prompt.WriteString(strings.ToUpper(msg.Role))
		prompt.WriteString(": ")
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("ASSISTANT:")
	return p.generate(ctx, p.chat, prompt.String())
}

func (p *GeminiProvider) ClassifyIntent(ctx context.Context, message string, history []Message, languageTag string) (intent.Intent, error) {
	var prompt strings.Builder
	prompt.WriteString(intentPrompt(languageTag))
	prompt.WriteString("\n\n")
	if len(history) > 4 {
		history = history[len(history)-4:]
	}
	for _, msg := range history {
		prompt.WriteString(strings.ToUpper(msg.Role))
		prompt.WriteString(": ")
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("USER: ")
	prompt.WriteString(message)

	raw, err := p.generate(ctx, p.chat, prompt.String())
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

func (p *GeminiProvider) ExtractRoute(ctx context.Context, message, languageTag string) (Route, error) {
	raw, err := p.generate(ctx, p.structured, routePrompt(message, languageTag))
	if err != nil {
		return Route{}, err
	}
	var route Route
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &route); err != nil {
		return Route{}, fmt.Errorf("gemini: unmarshal route: %w. Raw: %s", err, raw)
	}
	return route, nil
}

func (p *GeminiProvider) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(text.String()), nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
