// README: NLU usage log; one row per classification, queryable per intent.
package usage

import (
	"context"
	"time"
)

// Service records NLU classifications. It satisfies the engine's
// UsageRecorder interface.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// RecordClassification appends one classification record.
func (s *Service) RecordClassification(ctx context.Context, sessionID, intent string, entityCount int, latency time.Duration) error {
	return s.store.Append(ctx, Record{
		SessionID:   sessionID,
		Intent:      intent,
		EntityCount: entityCount,
		Latency:     latency,
		CreatedAt:   time.Now(),
	})
}

// Stats returns per-intent classification counts over the given window.
func (s *Service) Stats(ctx context.Context, window time.Duration) (map[string]int64, error) {
	return s.store.CountByIntent(ctx, time.Now().Add(-window))
}
