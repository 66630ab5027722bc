// README: Published community trip model.
package community

import (
	"encoding/json"
	"time"
)

type PublishedTrip struct {
	ID           string          `json:"id"`
	CreatorID    string          `json:"creator_id"`
	Title        string          `json:"title"`
	Destination  string          `json:"destination"`
	Description  string          `json:"description,omitempty"`
	DurationDays int             `json:"duration_days"`
	StartDate    string          `json:"start_date,omitempty"` // "2006-01-02", optional
	EndDate      string          `json:"end_date,omitempty"`
	Itinerary    json.RawMessage `json:"itinerary"`
	Price        int             `json:"price"`
	IsFree       bool            `json:"is_free"`
	Currency     string          `json:"currency"`
	CoverImage   string          `json:"cover_image,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Category     string          `json:"category,omitempty"`
	BudgetLevel  string          `json:"budget_level,omitempty"`
	Views        int             `json:"views"`
	Bookings     int             `json:"bookings"`
	Likes        int             `json:"likes"`
	Published    bool            `json:"published"`
	Featured     bool            `json:"featured"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BrowseFilter narrows the public trip listing. Zero values mean "no filter".
type BrowseFilter struct {
	Destination string
	Category    string
	BudgetLevel string
	MinDays     int
	MaxDays     int
	FreeOnly    bool
	Limit       int
}
