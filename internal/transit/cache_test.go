// README: Location cache tests backed by an in-process Redis.
package transit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type countingSearcher struct {
	calls   int
	results []Location
	err     error
}

func (c *countingSearcher) SearchLocations(ctx context.Context, query string) ([]Location, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.results, nil
}

func setupCache(t *testing.T, next LocationSearcher) (*CachedSearcher, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCachedSearcher(next, client, time.Hour), mr
}

func TestCachedSearcherHitSkipsProvider(t *testing.T) {
	next := &countingSearcher{results: []Location{{ID: "m1", Name: "Marienplatz"}}}
	cache, _ := setupCache(t, next)
	ctx := context.Background()

	first, err := cache.SearchLocations(ctx, "Marienplatz")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := cache.SearchLocations(ctx, "marienplatz ")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	if next.calls != 1 {
		t.Errorf("provider called %d times, want 1 (case and spacing share a key)", next.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0] != first[0] {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}
}

func TestCachedSearcherExpiry(t *testing.T) {
	next := &countingSearcher{results: []Location{{ID: "g1", Name: "Garching"}}}
	cache, mr := setupCache(t, next)
	ctx := context.Background()

	if _, err := cache.SearchLocations(ctx, "Garching"); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Hour)
	if _, err := cache.SearchLocations(ctx, "Garching"); err != nil {
		t.Fatal(err)
	}

	if next.calls != 2 {
		t.Errorf("provider called %d times, want 2 after TTL expiry", next.calls)
	}
}

func TestCachedSearcherDoesNotCacheErrors(t *testing.T) {
	next := &countingSearcher{err: &ProviderError{Op: "search locations", Err: fmt.Errorf("boom")}}
	cache, _ := setupCache(t, next)
	ctx := context.Background()

	if _, err := cache.SearchLocations(ctx, "Sendlinger Tor"); err == nil {
		t.Fatal("expected provider error")
	}
	next.err = nil
	next.results = []Location{{ID: "s1", Name: "Sendlinger Tor"}}

	got, err := cache.SearchLocations(ctx, "Sendlinger Tor")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || next.calls != 2 {
		t.Errorf("failure must not be cached: results=%v calls=%d", got, next.calls)
	}
}

func TestCachedSearcherDroppedCorruptEntry(t *testing.T) {
	next := &countingSearcher{results: []Location{{ID: "o1", Name: "Odeonsplatz"}}}
	cache, mr := setupCache(t, next)
	ctx := context.Background()

	if err := mr.Set(locationKeyPrefix+"odeonsplatz", "not json"); err != nil {
		t.Fatal(err)
	}

	got, err := cache.SearchLocations(ctx, "Odeonsplatz")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "o1" {
		t.Errorf("got %v", got)
	}
	if next.calls != 1 {
		t.Errorf("provider called %d times, want 1", next.calls)
	}
}
