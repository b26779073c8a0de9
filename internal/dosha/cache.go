package dosha

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vaidya/ahara/internal/models"
)

// DefaultCacheSize is the number of feature vectors a CachedClassifier
// remembers.
const DefaultCacheSize = 128

// CachedClassifier memoises another Classifier by feature vector. Errors are
// never cached.
type CachedClassifier struct {
	next   Classifier
	cache  *lru.Cache[string, models.DoshaScores]
	logger *slog.Logger
}

// NewCachedClassifier wraps next with a bounded LRU cache of size entries.
func NewCachedClassifier(next Classifier, size int, logger *slog.Logger) (*CachedClassifier, error) {
	cache, err := lru.New[string, models.DoshaScores](size)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedClassifier{next: next, cache: cache, logger: logger}, nil
}

// Classify implements Classifier.
func (c *CachedClassifier) Classify(ctx context.Context, features []float64) (models.DoshaScores, error) {
	key := featureKey(features)
	if v, ok := c.cache.Get(key); ok {
		c.logger.Debug("dosha cache hit", "features", key)
		return v, nil
	}
	v, err := c.next.Classify(ctx, features)
	if err != nil {
		return models.DoshaScores{}, err
	}
	c.cache.Add(key, v)
	return v, nil
}

// Len returns the number of cached vectors.
func (c *CachedClassifier) Len() int {
	return c.cache.Len()
}

func featureKey(features []float64) string {
	parts := make([]string, len(features))
	for i, v := range features {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
