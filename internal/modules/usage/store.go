package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles nlu_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Record is one NLU classification, kept for operator analytics.
type Record struct {
	SessionID   string
	Intent      string
	EntityCount int
	Latency     time.Duration
	CreatedAt   time.Time
}

// Append inserts one classification record.
func (s *Store) Append(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO nlu_usage (session_id, intent, entity_count, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		r.SessionID,
		r.Intent,
		r.EntityCount,
		r.Latency.Milliseconds(),
		r.CreatedAt,
	)
	return err
}

// CountByIntent returns classification counts per intent since the given time.
func (s *Store) CountByIntent(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := s.db.Query(ctx, `
		SELECT intent, COUNT(*) FROM nlu_usage
		WHERE created_at >= $1
		GROUP BY intent`, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var intent string
		var n int64
		if err := rows.Scan(&intent, &n); err != nil {
			return nil, err
		}
		counts[intent] = n
	}
	return counts, rows.Err()
}
