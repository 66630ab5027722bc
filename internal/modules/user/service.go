// README: User service: registration, login with JWT, profile, password reset.
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("account deactivated")
	ErrTokenInvalid       = errors.New("reset token invalid or expired")
	ErrBadRequest         = errors.New("bad request")
)

const resetTokenTTL = time.Hour

var timeNow = time.Now

// Storage is implemented by *Store; service tests supply an in-memory fake.
type Storage interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Deactivate(ctx context.Context, id string) error
}

// ResetTokens stores one-shot password-reset tokens.
type ResetTokens interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume returns the user id for token and invalidates it.
	// ErrTokenInvalid when the token is unknown or expired.
	Consume(ctx context.Context, token string) (string, error)
}

type Service struct {
	store       Storage
	resetTokens ResetTokens
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewService(store Storage, resetTokens ResetTokens, jwtSecret string, tokenHours int) *Service {
	if tokenHours <= 0 {
		tokenHours = 72
	}
	return &Service{
		store:       store,
		resetTokens: resetTokens,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    time.Duration(tokenHours) * time.Hour,
	}
}

type RegisterCommand struct {
	Email       string
	Username    string
	Password    string
	FullName    string
	Gender      string
	DateOfBirth string
	Country     string
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	username := strings.TrimSpace(cmd.Username)
	if email == "" || !strings.Contains(email, "@") || username == "" || len(cmd.Password) < 6 {
		return nil, ErrBadRequest
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Active:       true,
		FullName:     cmd.FullName,
		Gender:       cmd.Gender,
		DateOfBirth:  cmd.DateOfBirth,
		Age:          AgeFromDOB(cmd.DateOfBirth, now),
		Country:      cmd.Country,
		CreatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and returns the user with a signed JWT.
// The identifier may be an email address or a username.
func (s *Service) Login(ctx context.Context, identifier, password string) (*User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, "", ErrBadRequest
	}

	var u *User
	var err error
	if strings.Contains(identifier, "@") {
		u, err = s.store.GetByEmail(ctx, identifier)
	} else {
		u, err = s.store.GetByUsername(ctx, identifier)
	}
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !u.Active {
		return nil, "", ErrInactive
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error) {
	if err := s.store.UpdateProfile(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.store.Deactivate(ctx, id)
}

// ForgotPassword stores a one-hour reset token for the account.
// The returned token is handed to the mail delivery layer; unknown addresses
// produce no error so the endpoint cannot be used to probe for accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := s.resetTokens.Save(ctx, token, u.ID, resetTokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrBadRequest
	}
	userID, err := s.resetTokens.Consume(ctx, token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, userID, string(hash))
}

// Claims is the JWT payload issued on login.
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(u *User) (string, error) {
	now := timeNow()
	claims := Claims{
		Email:    u.Email,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// VerifyToken parses and validates a login JWT. Used by the auth middleware.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("user: unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
