// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"screensnapp_backend/internal/feature/identify/domain/entity"
	"screensnapp_backend/internal/feature/identify/usecase"
)

// CachingSearchRepository decorates a MetadataSearcher with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying searcher.
type CachingSearchRepository struct {
	inner     usecase.MetadataSearcher
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSearchRepository decorates a MetadataSearcher with Redis caching.
// If ttl is 0, it defaults to 6 hours. If namespace is empty, it uses "tmdbsearch".
func NewCachingSearchRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MetadataSearcher, namespace string) *CachingSearchRepository {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	if namespace == "" {
		namespace = "tmdbsearch"
	}
	return &CachingSearchRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.MetadataSearcher = (*CachingSearchRepository)(nil)

// SearchTitles retrieves search results, checking cache first then falling
// back to the upstream search API.
func (c *CachingSearchRepository) SearchTitles(ctx context.Context, query string) ([]entity.MetadataMatch, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.SearchTitles(ctx, query)
	}

	key := c.cacheKey(query)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.MetadataMatch
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the upstream API
	out, err := c.inner.SearchTitles(ctx, query)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a normalized query.
func (c *CachingSearchRepository) cacheKey(query string) string {
	return c.namespace + ":" + safe(strings.ToLower(strings.TrimSpace(query)))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
