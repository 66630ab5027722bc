package ai

import (
	"context"

	"roam/internal/intent"
	"roam/internal/lang"
)

// Provider defines the contract for interacting with language models.
// This interface allows swapping providers (OpenAI, Gemini) and falling back
// to the offline renderer when no key is configured or quota runs out.
type Provider interface {
	// Chat produces the assistant reply for a conversation. messages carry the
	// structured system turns (INTENT, PROFILE, TRAVEL_DATA) plus history and
	// the current user message.
	Chat(ctx context.Context, messages []Message, language lang.Language) (string, error)

	// ClassifyIntent resolves an ambiguous message into one of the coarse
	// intent tokens. history is prior conversation, newest last.
	ClassifyIntent(ctx context.Context, message string, history []Message, languageTag string) (intent.Intent, error)

	// ExtractRoute pulls origin and destination city names out of free text.
	// Either field may be empty when the message does not mention it.
	ExtractRoute(ctx context.Context, message, languageTag string) (Route, error)
}
