package compat

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vaidya/ahara/internal/catalog"
)

// DefaultCacheSize is the number of pairs a CachedScorer remembers.
const DefaultCacheSize = 256

type pairKey struct{ a, b string }

func keyFor(a, b string) pairKey {
	a, b = catalog.Normalize(a), catalog.Normalize(b)
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// CachedScorer memoises another PairScorer. Keys are normalised and
// unordered, so ScorePair(a, b) and ScorePair(b, a) share an entry. Errors
// are never cached.
type CachedScorer struct {
	next   PairScorer
	cache  *lru.Cache[pairKey, float64]
	logger *slog.Logger
}

// NewCachedScorer wraps next with a bounded LRU cache of size entries.
func NewCachedScorer(next PairScorer, size int, logger *slog.Logger) (*CachedScorer, error) {
	cache, err := lru.New[pairKey, float64](size)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedScorer{next: next, cache: cache, logger: logger}, nil
}

// ScorePair implements PairScorer.
func (s *CachedScorer) ScorePair(ctx context.Context, a, b string) (float64, error) {
	key := keyFor(a, b)
	if v, ok := s.cache.Get(key); ok {
		s.logger.Debug("pair cache hit", "food_a", key.a, "food_b", key.b)
		return v, nil
	}
	v, err := s.next.ScorePair(ctx, a, b)
	if err != nil {
		return 0, err
	}
	s.cache.Add(key, v)
	return v, nil
}

// Len returns the number of cached pairs.
func (s *CachedScorer) Len() int {
	return s.cache.Len()
}

// Purge empties the cache.
func (s *CachedScorer) Purge() {
	s.cache.Purge()
}
