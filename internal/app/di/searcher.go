package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"screensnapp_backend/internal/feature/identify/adapters/tmdb"
	"screensnapp_backend/internal/feature/identify/usecase"
	"screensnapp_backend/internal/platform/cache"
	infrahttp "screensnapp_backend/internal/platform/http"
)

// NewSearcher creates a fully configured TMDB searcher with HTTP client,
// wrapped in a Redis cache decorator. If rdb is nil, the decorator
// transparently bypasses the cache.
func NewSearcher(rdb *redis.Client, ttl time.Duration) usecase.MetadataSearcher {
	cfg := tmdb.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	searcher := tmdb.NewTMDBSearch(cfg, httpClient)
	return cache.NewCachingSearchRepository(rdb, ttl, searcher, "tmdbsearch")
}
