// README: Community trip store backed by PostgreSQL.
package community

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const tripColumns = `
	id, creator_id, title, destination, description, duration_days,
	start_date, end_date, itinerary, price, is_free, currency,
	cover_image, tags, category, budget_level,
	views, bookings, likes, published, featured, created_at, updated_at`

func (s *Store) Insert(ctx context.Context, t *PublishedTrip) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO published_trips (
			id, creator_id, title, destination, description, duration_days,
			start_date, end_date, itinerary, price, is_free, currency,
			cover_image, tags, category, budget_level,
			views, bookings, likes, published, featured, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23
		)`,
		t.ID, t.CreatorID, t.Title, t.Destination, t.Description, t.DurationDays,
		t.StartDate, t.EndDate, t.Itinerary, t.Price, t.IsFree, t.Currency,
		t.CoverImage, t.Tags, t.Category, t.BudgetLevel,
		t.Views, t.Bookings, t.Likes, t.Published, t.Featured, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// Browse lists published trips, featured first, then by engagement
// (views plus bookings weighted five to one).
func (s *Store) Browse(ctx context.Context, f BrowseFilter) ([]PublishedTrip, error) {
	where := []string{"published"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Destination != "" {
		where = append(where, "destination ILIKE "+arg("%"+f.Destination+"%"))
	}
	if f.Category != "" {
		where = append(where, "category = "+arg(f.Category))
	}
	if f.BudgetLevel != "" {
		where = append(where, "budget_level = "+arg(f.BudgetLevel))
	}
	if f.MinDays > 0 {
		where = append(where, "duration_days >= "+arg(f.MinDays))
	}
	if f.MaxDays > 0 {
		where = append(where, "duration_days <= "+arg(f.MaxDays))
	}
	if f.FreeOnly {
		where = append(where, "is_free")
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT ` + tripColumns + `
		FROM published_trips
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY featured DESC, views + 5 * bookings DESC, created_at DESC
		LIMIT ` + arg(limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrips(rows)
}

// Get returns one trip and bumps its view counter.
func (s *Store) Get(ctx context.Context, id string) (*PublishedTrip, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE published_trips SET views = views + 1
		WHERE id = $1 AND published
		RETURNING `+tripColumns, id)

	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) ListByCreator(ctx context.Context, creatorID string) ([]PublishedTrip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+tripColumns+`
		FROM published_trips
		WHERE creator_id = $1
		ORDER BY created_at DESC`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrips(rows)
}

// DeleteByCreator removes a trip only when creatorID owns it.
func (s *Store) DeleteByCreator(ctx context.Context, id, creatorID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM published_trips WHERE id = $1 AND creator_id = $2`, id, creatorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTrips(rows pgx.Rows) ([]PublishedTrip, error) {
	var trips []PublishedTrip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

func scanTrip(row pgx.Row) (*PublishedTrip, error) {
	var t PublishedTrip
	err := row.Scan(
		&t.ID, &t.CreatorID, &t.Title, &t.Destination, &t.Description, &t.DurationDays,
		&t.StartDate, &t.EndDate, &t.Itinerary, &t.Price, &t.IsFree, &t.Currency,
		&t.CoverImage, &t.Tags, &t.Category, &t.BudgetLevel,
		&t.Views, &t.Bookings, &t.Likes, &t.Published, &t.Featured, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
