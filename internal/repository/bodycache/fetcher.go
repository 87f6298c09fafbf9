// Package bodycache decorates a body-text fetcher with a key-value cache,
// so repeated research runs do not re-download OCR text.
package bodycache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/db"
)

const keyPrefix = "docsift:body:"

// Fetcher is the inner body-text source.
type Fetcher interface {
	FetchBody(ctx context.Context, docID string) (string, error)
}

// kv is the consumer interface for the cache store (ISP).
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedFetcher caches body text in a key-value store.
type CachedFetcher struct {
	inner      Fetcher
	store      kv
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Fetcher,
	store kv,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedFetcher {
	return &CachedFetcher{
		inner:      inner,
		store:      store,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// FetchBody returns cached text or calls the inner fetcher. Misses that
// resolve successfully (including empty 404 bodies) are written back so the
// miss is stable across runs.
func (c *CachedFetcher) FetchBody(ctx context.Context, docID string) (string, error) {
	key := keyPrefix + docID

	if data, err := c.store.Get(ctx, key); err == nil {
		c.incCache("hit")
		return string(data), nil
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		c.logger.Warn("body cache read failed", zap.String("doc_id", docID), zap.Error(err))
	}

	c.incCache("miss")

	text, err := c.inner.FetchBody(ctx, docID)
	if err != nil {
		return "", fmt.Errorf("fetch body %s: %w", docID, err)
	}

	if err := c.store.SetWithTTL(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Warn("body cache write failed", zap.String("doc_id", docID), zap.Error(err))
	}
	return text, nil
}

func (c *CachedFetcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
