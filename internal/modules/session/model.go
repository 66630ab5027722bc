// README: Conversation session model: memory, history, coordinates.
package session

import "time"

// Memory keys written by the chat pipeline.
const (
	KeyLastOrigin      = "last_origin"
	KeyLastDestination = "last_destination"
	KeyLastPlanType    = "last_plan_type"
	KeyHomeCity        = "home_city"
	KeyHomeCountry     = "home_country"
	KeyInterests       = "interests"
	KeyCurrentLocation = "current_location"
)

// maxHistory caps the stored conversation so LLM context stays bounded.
const maxHistory = 40

type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type Session struct {
	ID        string            `json:"id"`
	Memory    map[string]string `json:"memory"`
	History   []Message         `json:"history"`
	Lat       float64           `json:"lat,omitempty"`
	Lng       float64           `json:"lng,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func New(id string) *Session {
	return &Session{
		ID:        id,
		Memory:    make(map[string]string),
		UpdatedAt: time.Now(),
	}
}

// UpdateMemory merges values into the session memory, skipping empty ones so
// a later message cannot blank out what an earlier one established.
func (s *Session) UpdateMemory(values map[string]string) {
	for k, v := range values {
		if v == "" {
			continue
		}
		s.Memory[k] = v
	}
}

func (s *Session) ClearRouteMemory() {
	delete(s.Memory, KeyLastOrigin)
	delete(s.Memory, KeyLastDestination)
	delete(s.Memory, KeyLastPlanType)
}

// AppendHistory records one exchange and drops the oldest entries beyond the
// cap.
func (s *Session) AppendHistory(userMsg, assistantMsg string) {
	s.History = append(s.History,
		Message{Role: "user", Content: userMsg},
		Message{Role: "assistant", Content: assistantMsg},
	)
	if len(s.History) > maxHistory {
		s.History = s.History[len(s.History)-maxHistory:]
	}
}
