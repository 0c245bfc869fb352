// Package news aggregates health news from trusted upstream sources
// with per-source TTL caching.
package news

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"medverify/internal/domain/entity"
)

// Known source names. "all" merges every source.
const (
	SourceAll    = "all"
	SourceWHO    = "who"
	SourceCDC    = "cdc"
	SourcePubMed = "pubmed"
)

// aggregateSources is the merge order for SourceAll.
var aggregateSources = []string{SourceWHO, SourceCDC, SourcePubMed}

// Fetcher retrieves up to limit articles from one upstream source.
type Fetcher interface {
	Fetch(ctx context.Context, limit int) ([]entity.NewsArticle, error)
}

// Service serves news articles, caching each (source, limit) fetch.
// Upstream failures degrade to whatever the other sources returned, and
// a placeholder article when nothing could be fetched at all.
type Service struct {
	fetchers map[string]Fetcher
	cache    *Cache
}

// NewService creates a news service. The fetchers map is keyed by
// source name (SourceWHO, SourceCDC, SourcePubMed).
func NewService(fetchers map[string]Fetcher, cache *Cache) *Service {
	if cache == nil {
		cache = NewCache(0)
	}
	return &Service{fetchers: fetchers, cache: cache}
}

// ValidSource reports whether source names a known source or the
// aggregate.
func (s *Service) ValidSource(source string) bool {
	if source == SourceAll {
		return true
	}
	_, ok := s.fetchers[source]
	return ok
}

// Latest returns up to limit articles from the named source, or from
// all sources merged newest-first when source is SourceAll. The
// aggregate splits the limit evenly across sources.
func (s *Service) Latest(ctx context.Context, source string, limit int) []entity.NewsArticle {
	if source != SourceAll {
		articles := s.fromSource(ctx, source, limit)
		if len(articles) == 0 {
			return fallbackArticles()
		}
		return articles
	}

	var merged []entity.NewsArticle
	perSource := limit / len(aggregateSources)
	for _, src := range aggregateSources {
		merged = append(merged, s.fromSource(ctx, src, perSource)...)
	}

	if len(merged) == 0 {
		return fallbackArticles()
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// Warm pre-populates the cache for every source with the given limit.
// Used by the periodic cache warmer so user requests hit fresh entries.
func (s *Service) Warm(ctx context.Context, limit int) {
	perSource := limit / len(aggregateSources)
	for _, src := range aggregateSources {
		s.fromSource(ctx, src, perSource)
	}
}

// fromSource returns cached articles for (source, limit) or fetches
// them. Fetch failures are logged and return an empty slice, keeping
// the previous cache entry intact until its TTL expires.
func (s *Service) fromSource(ctx context.Context, source string, limit int) []entity.NewsArticle {
	if limit <= 0 {
		return nil
	}

	if articles, ok := s.cache.Get(source, limit); ok {
		return articles
	}

	fetcher, ok := s.fetchers[source]
	if !ok {
		return nil
	}

	articles, err := fetcher.Fetch(ctx, limit)
	if err != nil {
		slog.WarnContext(ctx, "news fetch failed",
			slog.String("source", source),
			slog.Any("error", err))
		return nil
	}

	s.cache.Set(source, limit, articles)
	return articles
}

// fallbackArticles is returned when no upstream source yields anything.
func fallbackArticles() []entity.NewsArticle {
	return []entity.NewsArticle{{
		ID:          "fallback_1",
		Title:       "Health News Currently Unavailable",
		Summary:     "We are experiencing temporary issues fetching the latest health news. Please check back later.",
		URL:         "#",
		PublishedAt: time.Now().UTC(),
		Source:      "System",
	}}
}
