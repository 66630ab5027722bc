// README: User service tests with an in-memory store.
package user

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memStore struct {
	byID map[string]*User
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[string]*User)}
}

func (m *memStore) Create(_ context.Context, u *User) error {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) UpdateProfile(_ context.Context, id string, upd ProfileUpdate) error {
	u, ok := m.byID[id]
	if !ok || !u.Active {
		return ErrNotFound
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Country != nil {
		u.Country = *upd.Country
	}
	if upd.Interests != nil {
		u.Interests = *upd.Interests
	}
	if upd.DateOfBirth != nil {
		u.DateOfBirth = *upd.DateOfBirth
		u.Age = AgeFromDOB(*upd.DateOfBirth, time.Now())
	}
	return nil
}

func (m *memStore) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memStore) Deactivate(_ context.Context, id string) error {
	u, ok := m.byID[id]
	if !ok || !u.Active {
		return ErrNotFound
	}
	u.Active = false
	return nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(store, NewMemoryResetTokens(), "test-secret", 1), store
}

func mustRegister(t *testing.T, svc *Service, email, username, password string) *User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterCommand{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "ana@example.com", "ana", "lozinka1")

	_, err := svc.Register(ctx, RegisterCommand{Email: "ANA@example.com", Username: "ana2", Password: "lozinka1"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: %v", err)
	}
	_, err = svc.Register(ctx, RegisterCommand{Email: "ana2@example.com", Username: "ana", Password: "lozinka1"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	cases := []RegisterCommand{
		{Email: "", Username: "x", Password: "longenough"},
		{Email: "not-an-email", Username: "x", Password: "longenough"},
		{Email: "a@b.com", Username: "", Password: "longenough"},
		{Email: "a@b.com", Username: "x", Password: "short"},
	}
	for i, cmd := range cases {
		if _, err := svc.Register(ctx, cmd); !errors.Is(err, ErrBadRequest) {
			t.Errorf("case %d: err = %v, want ErrBadRequest", i, err)
		}
	}
}

func TestRegisterComputesAge(t *testing.T) {
	svc, _ := newTestService()
	dob := time.Now().AddDate(-30, 0, -1).Format("2006-01-02")
	u, err := svc.Register(context.Background(), RegisterCommand{
		Email:       "ivo@example.com",
		Username:    "ivo",
		Password:    "lozinka1",
		DateOfBirth: dob,
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Age != 30 {
		t.Fatalf("age = %d, want 30", u.Age)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService()
	registered := mustRegister(t, svc, "ana@example.com", "ana", "lozinka1")

	u, token, err := svc.Login(context.Background(), "ana@example.com", "lozinka1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != registered.ID {
		t.Fatalf("logged in as %s, want %s", u.ID, registered.ID)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != registered.ID || claims.Email != "ana@example.com" {
		t.Fatalf("claims %+v", claims)
	}

	// Username login works too.
	if _, _, err := svc.Login(context.Background(), "ana", "lozinka1"); err != nil {
		t.Fatalf("username login: %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u := mustRegister(t, svc, "ana@example.com", "ana", "lozinka1")

	if _, _, err := svc.Login(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "lozinka1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown account: %v", err)
	}

	if err := svc.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, _, err := svc.Login(ctx, "ana@example.com", "lozinka1"); !errors.Is(err, ErrInactive) {
		t.Fatalf("inactive login: %v", err)
	}
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	svc, _ := newTestService()
	mustRegister(t, svc, "ana@example.com", "ana", "lozinka1")
	_, token, err := svc.Login(context.Background(), "ana", "lozinka1")
	if err != nil {
		t.Fatal(err)
	}

	other := NewService(newMemStore(), NewMemoryResetTokens(), "different-secret", 1)
	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("foreign token accepted: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u := mustRegister(t, svc, "ana@example.com", "ana", "lozinka1")

	name := "Ana Anić"
	interests := []string{"skiing", "food"}
	updated, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{FullName: &name, Interests: &interests})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FullName != name || len(updated.Interests) != 2 {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "ana@example.com", "ana", "lozinka1")

	// Unknown address must not reveal whether the account exists.
	token, err := svc.ForgotPassword(ctx, "nobody@example.com")
	if err != nil || token != "" {
		t.Fatalf("unknown address: token=%q err=%v", token, err)
	}

	token, err = svc.ForgotPassword(ctx, "ana@example.com")
	if err != nil || token == "" {
		t.Fatalf("forgot: token=%q err=%v", token, err)
	}

	if err := svc.ResetPassword(ctx, token, "nova-lozinka"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, _, err := svc.Login(ctx, "ana@example.com", "nova-lozinka"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "ana@example.com", "lozinka1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still valid: %v", err)
	}

	// Tokens are single-use.
	if err := svc.ResetPassword(ctx, token, "jos-jedna"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("reused token: %v", err)
	}
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		dob  string
		want int
	}{
		{"1990-08-24", 36},
		{"1990-08-25", 35}, // birthday tomorrow
		{"2026-01-01", 0},
		{"not-a-date", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := AgeFromDOB(tc.dob, now); got != tc.want {
			t.Errorf("AgeFromDOB(%q) = %d, want %d", tc.dob, got, tc.want)
		}
	}
}
