// README: LLM-usage module tests (lazy reset and quota boundary logic).
package usage

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestUseCallCrossMonthReset verifies that a user with 0 calls left from a
// previous month is automatically reset and the request succeeds.
func TestUseCallCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	// Seed user with 0 calls from a past month.
	if _, err := db.Exec(ctx, "INSERT INTO llm_usage VALUES ('user_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.UseCall(ctx, "user_reset"); err != nil {
		t.Fatalf("UseCall after cross-month reset: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT calls_remaining FROM llm_usage WHERE user_id = 'user_reset'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultAllowance-1 {
		t.Fatalf("expected %d calls remaining, got %d", DefaultAllowance-1, remaining)
	}
}

// TestUseCallQuotaExhausted verifies that a user with 0 calls in the current
// month is blocked.
func TestUseCallQuotaExhausted(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO llm_usage (user_id, calls_remaining, last_reset_month) VALUES ('user_zero', 0, TO_CHAR(NOW(), 'YYYY-MM'))"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := svc.UseCall(ctx, "user_zero")
	if err != ErrQuotaExhausted {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
}

// TestUseCallNewUser verifies that a user absent from the table is
// initialised on first call.
func TestUseCallNewUser(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if err := svc.UseCall(ctx, "user_new"); err != nil {
		t.Fatalf("UseCall for new user: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT calls_remaining FROM llm_usage WHERE user_id = 'user_new'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultAllowance-1 {
		t.Fatalf("expected %d calls remaining after first use, got %d", DefaultAllowance-1, remaining)
	}
}

// TestUseCallAnonymous verifies that sessions without a user are not metered.
func TestUseCallAnonymous(t *testing.T) {
	svc := NewService(nil)
	if err := svc.UseCall(context.Background(), ""); err != nil {
		t.Fatalf("anonymous call: %v", err)
	}
}

// setupTestService creates a real postgres-backed Service for integration
// tests. It skips the test when ROAM_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("ROAM_TEST_DSN")
	if dsn == "" {
		t.Skip("ROAM_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE llm_usage"); err != nil {
		t.Fatalf("truncate llm_usage: %v", err)
	}

	return NewService(NewStore(db)), db
}

func applyMigrations(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	migrations := []string{
		"0001_init.sql",
	}
	for _, name := range migrations {
		path := filepath.Join(root, "migrations", name)
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		cleaned := stripSQLComments(string(content))
		for _, stmt := range splitSQL(cleaned) {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
