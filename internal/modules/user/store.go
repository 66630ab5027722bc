// README: User store backed by PostgreSQL.
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const userColumns = `
	id, email, username, password_hash, active,
	profile_image, full_name, gender, date_of_birth, age, country,
	interests, travel_frequency, budget, travel_reasons, created_at`

func (s *Store) Create(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (
			id, email, username, password_hash, active,
			profile_image, full_name, gender, date_of_birth, age, country,
			interests, travel_frequency, budget, travel_reasons, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16
		)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.Active,
		u.ProfileImage, u.FullName, u.Gender, u.DateOfBirth, u.Age, u.Country,
		u.Interests, u.TravelFrequency, u.Budget, u.TravelReasons, u.CreatedAt,
	)
	return translateUniqueViolation(err)
}

func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	return s.getBy(ctx, "id", id)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getBy(ctx, "email", strings.ToLower(email))
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.getBy(ctx, "username", username)
}

func (s *Store) getBy(ctx context.Context, column, value string) (*User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value)

	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Active,
		&u.ProfileImage, &u.FullName, &u.Gender, &u.DateOfBirth, &u.Age, &u.Country,
		&u.Interests, &u.TravelFrequency, &u.Budget, &u.TravelReasons, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error {
	age := -1
	if upd.DateOfBirth != nil {
		age = AgeFromDOB(*upd.DateOfBirth, timeNow())
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET
			full_name = COALESCE($1, full_name),
			gender = COALESCE($2, gender),
			date_of_birth = COALESCE($3, date_of_birth),
			age = CASE WHEN $4 >= 0 THEN $4 ELSE age END,
			country = COALESCE($5, country),
			profile_image = COALESCE($6, profile_image),
			interests = COALESCE($7, interests),
			travel_frequency = COALESCE($8, travel_frequency),
			budget = COALESCE($9, budget),
			travel_reasons = COALESCE($10, travel_reasons)
		WHERE id = $11 AND active`,
		upd.FullName, upd.Gender, upd.DateOfBirth, age, upd.Country,
		upd.ProfileImage, upd.Interests, upd.TravelFrequency, upd.Budget,
		upd.TravelReasons, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Deactivate(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET active = FALSE WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// translateUniqueViolation maps Postgres 23505 errors onto the service-level
// duplicate sentinels so handlers can answer 409 without peeking at SQL state.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return ErrEmailTaken
	}
	if strings.Contains(pgErr.ConstraintName, "username") {
		return ErrUsernameTaken
	}
	return err
}
