// README: Usage module tests (classification log and windowed stats).
package usage

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestRecordClassificationAndStats verifies that recorded classifications
// show up in the per-intent counts for the queried window.
func TestRecordClassificationAndStats(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.RecordClassification(ctx, "s1", "Route", 2, 120*time.Millisecond); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := svc.RecordClassification(ctx, "s2", "Departures", 1, 80*time.Millisecond); err != nil {
		t.Fatalf("record: %v", err)
	}

	counts, err := svc.Stats(ctx, time.Hour)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if counts["Route"] != 3 || counts["Departures"] != 1 {
		t.Fatalf("counts = %v, want Route=3 Departures=1", counts)
	}
}

// TestStatsWindowExcludesOldRows verifies that rows older than the window
// are not counted.
func TestStatsWindowExcludesOldRows(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	// Seed a classification two days in the past.
	if _, err := db.Exec(ctx, `
		INSERT INTO nlu_usage (session_id, intent, entity_count, latency_ms, created_at)
		VALUES ('s-old', 'Route', 1, 50, NOW() - INTERVAL '2 days')`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.RecordClassification(ctx, "s-new", "Route", 1, 50*time.Millisecond); err != nil {
		t.Fatalf("record: %v", err)
	}

	counts, err := svc.Stats(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if counts["Route"] != 1 {
		t.Fatalf("counts = %v, want only the fresh row", counts)
	}
}

// setupTestService creates a real postgres-backed Service for integration tests.
// It skips the test when MVGBOT_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("MVGBOT_TEST_DSN")
	if dsn == "" {
		t.Skip("MVGBOT_TEST_DSN not set; skipping DB-backed tests")
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

	if _, err := db.Exec(ctx, "TRUNCATE TABLE nlu_usage"); err != nil {
		t.Fatalf("truncate nlu_usage: %v", err)
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
