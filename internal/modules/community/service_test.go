// README: Community service tests with an in-memory store.
package community

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

type memStore struct {
	trips map[string]*PublishedTrip
}

func newMemStore() *memStore {
	return &memStore{trips: make(map[string]*PublishedTrip)}
}

func (m *memStore) Insert(_ context.Context, t *PublishedTrip) error {
	cp := *t
	m.trips[t.ID] = &cp
	return nil
}

func (m *memStore) Browse(_ context.Context, f BrowseFilter) ([]PublishedTrip, error) {
	var out []PublishedTrip
	for _, t := range m.trips {
		if !t.Published {
			continue
		}
		if f.Destination != "" && !strings.Contains(strings.ToLower(t.Destination), strings.ToLower(f.Destination)) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.BudgetLevel != "" && t.BudgetLevel != f.BudgetLevel {
			continue
		}
		if f.MinDays > 0 && t.DurationDays < f.MinDays {
			continue
		}
		if f.MaxDays > 0 && t.DurationDays > f.MaxDays {
			continue
		}
		if f.FreeOnly && !t.IsFree {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].Views+5*out[i].Bookings > out[j].Views+5*out[j].Bookings
	})
	return out, nil
}

func (m *memStore) Get(_ context.Context, id string) (*PublishedTrip, error) {
	t, ok := m.trips[id]
	if !ok || !t.Published {
		return nil, ErrNotFound
	}
	t.Views++
	cp := *t
	return &cp, nil
}

func (m *memStore) ListByCreator(_ context.Context, creatorID string) ([]PublishedTrip, error) {
	var out []PublishedTrip
	for _, t := range m.trips {
		if t.CreatorID == creatorID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memStore) DeleteByCreator(_ context.Context, id, creatorID string) error {
	t, ok := m.trips[id]
	if !ok || t.CreatorID != creatorID {
		return ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

func mustPublish(t *testing.T, svc *Service, cmd PublishCommand) *PublishedTrip {
	t.Helper()
	trip, err := svc.Publish(context.Background(), cmd)
	if err != nil {
		t.Fatalf("publish %q: %v", cmd.Title, err)
	}
	return trip
}

func TestPublishDefaults(t *testing.T) {
	svc := NewService(newMemStore())
	trip := mustPublish(t, svc, PublishCommand{
		CreatorID:   "u1",
		Title:       "  Vikend u Istri  ",
		Destination: "Rovinj",
	})
	if trip.Title != "Vikend u Istri" {
		t.Fatalf("title = %q", trip.Title)
	}
	if !trip.IsFree || trip.Currency != "EUR" {
		t.Fatalf("defaults: free=%v currency=%q", trip.IsFree, trip.Currency)
	}
	if string(trip.Itinerary) != "[]" {
		t.Fatalf("itinerary = %s", trip.Itinerary)
	}
	if !trip.Published {
		t.Fatal("trip not published")
	}
}

func TestPublishValidation(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	cases := []PublishCommand{
		{CreatorID: "", Title: "x", Destination: "y"},
		{CreatorID: "u1", Title: "   ", Destination: "y"},
		{CreatorID: "u1", Title: "x", Destination: ""},
		{CreatorID: "u1", Title: "x", Destination: "y", Price: -5},
	}
	for i, cmd := range cases {
		if _, err := svc.Publish(ctx, cmd); !errors.Is(err, ErrBadRequest) {
			t.Errorf("case %d: err = %v, want ErrBadRequest", i, err)
		}
	}
}

func TestBrowseFiltersAndOrder(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	quiet := mustPublish(t, svc, PublishCommand{CreatorID: "u1", Title: "Tihi Hvar", Destination: "Hvar", DurationDays: 3})
	popular := mustPublish(t, svc, PublishCommand{CreatorID: "u2", Title: "Hvar hit", Destination: "Hvar", DurationDays: 5, Price: 200})
	featured := mustPublish(t, svc, PublishCommand{CreatorID: "u3", Title: "Istaknuti Hvar", Destination: "Hvar", DurationDays: 7})
	mustPublish(t, svc, PublishCommand{CreatorID: "u1", Title: "Rim", Destination: "Rome", DurationDays: 4})

	store.trips[popular.ID].Views = 40
	store.trips[popular.ID].Bookings = 10
	store.trips[featured.ID].Featured = true

	trips, err := svc.Browse(ctx, BrowseFilter{Destination: "hvar"})
	if err != nil {
		t.Fatal(err)
	}
	if len(trips) != 3 {
		t.Fatalf("got %d trips", len(trips))
	}
	if trips[0].ID != featured.ID {
		t.Fatalf("featured trip not first: %q", trips[0].Title)
	}
	if trips[1].ID != popular.ID || trips[2].ID != quiet.ID {
		t.Fatalf("engagement order wrong: %q, %q", trips[1].Title, trips[2].Title)
	}

	free, err := svc.Browse(ctx, BrowseFilter{Destination: "hvar", FreeOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(free) != 2 {
		t.Fatalf("free-only got %d trips", len(free))
	}

	long, err := svc.Browse(ctx, BrowseFilter{MinDays: 5, MaxDays: 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(long) != 2 {
		t.Fatalf("day-range got %d trips", len(long))
	}
}

func TestGetBumpsViews(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	trip := mustPublish(t, svc, PublishCommand{CreatorID: "u1", Title: "x", Destination: "Vis"})

	got, err := svc.Get(context.Background(), trip.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Views != 1 {
		t.Fatalf("views = %d", got.Views)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing trip: %v", err)
	}
}

func TestDeleteOwnershipCheck(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	trip := mustPublish(t, svc, PublishCommand{CreatorID: "u1", Title: "x", Destination: "Vis"})

	if err := svc.Delete(ctx, trip.ID, "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete: %v", err)
	}
	if err := svc.Delete(ctx, trip.ID, "u1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(ctx, trip.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("trip still present after delete")
	}
}

func TestMyTrips(t *testing.T) {
	svc := NewService(newMemStore())
	mustPublish(t, svc, PublishCommand{CreatorID: "u1", Title: "a", Destination: "Vis"})
	mustPublish(t, svc, PublishCommand{CreatorID: "u1", Title: "b", Destination: "Brač"})
	mustPublish(t, svc, PublishCommand{CreatorID: "u2", Title: "c", Destination: "Krk"})

	mine, err := svc.MyTrips(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d trips", len(mine))
	}
}
