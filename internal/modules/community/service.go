// README: Community service: publishing and browsing shared trips.
package community

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("trip not found")
	ErrBadRequest = errors.New("bad request")
)

// Storage is implemented by *Store; service tests supply an in-memory fake.
type Storage interface {
	Insert(ctx context.Context, t *PublishedTrip) error
	Browse(ctx context.Context, f BrowseFilter) ([]PublishedTrip, error)
	Get(ctx context.Context, id string) (*PublishedTrip, error)
	ListByCreator(ctx context.Context, creatorID string) ([]PublishedTrip, error)
	DeleteByCreator(ctx context.Context, id, creatorID string) error
}

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

type PublishCommand struct {
	CreatorID    string
	Title        string
	Destination  string
	Description  string
	DurationDays int
	StartDate    string
	EndDate      string
	Itinerary    json.RawMessage
	Price        int
	Currency     string
	CoverImage   string
	Tags         []string
	Category     string
	BudgetLevel  string
}

func (s *Service) Publish(ctx context.Context, cmd PublishCommand) (*PublishedTrip, error) {
	title := strings.TrimSpace(cmd.Title)
	destination := strings.TrimSpace(cmd.Destination)
	if cmd.CreatorID == "" || title == "" || destination == "" {
		return nil, ErrBadRequest
	}
	if cmd.DurationDays < 0 || cmd.Price < 0 {
		return nil, ErrBadRequest
	}

	currency := cmd.Currency
	if currency == "" {
		currency = "EUR"
	}
	itinerary := cmd.Itinerary
	if len(itinerary) == 0 {
		itinerary = json.RawMessage("[]")
	}

	now := time.Now()
	t := &PublishedTrip{
		ID:           uuid.NewString(),
		CreatorID:    cmd.CreatorID,
		Title:        title,
		Destination:  destination,
		Description:  cmd.Description,
		DurationDays: cmd.DurationDays,
		StartDate:    cmd.StartDate,
		EndDate:      cmd.EndDate,
		Itinerary:    itinerary,
		Price:        cmd.Price,
		IsFree:       cmd.Price == 0,
		Currency:     currency,
		CoverImage:   cmd.CoverImage,
		Tags:         cmd.Tags,
		Category:     cmd.Category,
		BudgetLevel:  cmd.BudgetLevel,
		Published:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Browse(ctx context.Context, f BrowseFilter) ([]PublishedTrip, error) {
	return s.store.Browse(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (*PublishedTrip, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	return s.store.Get(ctx, id)
}

func (s *Service) MyTrips(ctx context.Context, creatorID string) ([]PublishedTrip, error) {
	if creatorID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByCreator(ctx, creatorID)
}

// Delete removes a trip; non-owners get ErrNotFound rather than a hint that
// the trip exists.
func (s *Service) Delete(ctx context.Context, id, creatorID string) error {
	if id == "" || creatorID == "" {
		return ErrBadRequest
	}
	return s.store.DeleteByCreator(ctx, id, creatorID)
}
