// Package newsfeed fetches health news articles from upstream providers:
// RSS feeds (WHO, CDC) and the PubMed E-utilities API.
package newsfeed

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/resilience/retry"
	utiltext "medverify/internal/utils/text"
)

// summaryLimit caps article summaries in runes.
const summaryLimit = 200

// noSummary is used when a feed entry carries no description.
const noSummary = "No summary available."

// stripTags removes all HTML markup from feed summaries.
var stripTags = bluemonday.StrictPolicy()

// RSSSource fetches articles from one RSS feed.
//
// Thread safety: RSSSource is safe for concurrent use.
type RSSSource struct {
	label          string
	feedURL        string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSSource creates a fetcher for one feed. The label names the
// source in returned articles and article IDs, e.g. "WHO".
func NewRSSSource(label, feedURL string) *RSSSource {
	return &RSSSource{
		label:          label,
		feedURL:        feedURL,
		client:         &http.Client{Timeout: 15 * time.Second},
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch returns up to limit articles from the feed, newest first in feed
// order.
func (r *RSSSource) Fetch(ctx context.Context, limit int) ([]entity.NewsArticle, error) {
	start := time.Now()
	var articles []entity.NewsArticle

	retryErr := retry.WithBackoff(ctx, r.retryConfig, func() error {
		cbResult, err := r.circuitBreaker.Execute(func() (interface{}, error) {
			return r.doFetch(ctx, limit)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("feed", r.label),
					slog.String("state", r.circuitBreaker.State().String()))
				return fmt.Errorf("feed %s unavailable: circuit breaker open", r.label)
			}
			return err
		}

		articles = cbResult.([]entity.NewsArticle)
		return nil
	})

	if retryErr != nil {
		metrics.RecordExternalCall("feed", "error", time.Since(start))
		return nil, fmt.Errorf("fetching %s feed failed after retries: %w", r.label, retryErr)
	}

	metrics.RecordExternalCall("feed", "success", time.Since(start))
	metrics.RecordNewsFetched(r.label, len(articles))
	return articles, nil
}

// doFetch parses the feed and converts entries to articles. Called
// through the circuit breaker inside the retry loop.
func (r *RSSSource) doFetch(ctx context.Context, limit int) ([]entity.NewsArticle, error) {
	parser := gofeed.NewParser()
	parser.Client = r.client
	parser.UserAgent = "MedVerifyBot/1.0"

	feed, err := parser.ParseURLWithContext(r.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s feed: %w", r.label, err)
	}

	articles := make([]entity.NewsArticle, 0, limit)
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}

		published := time.Now().UTC()
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC()
		}

		articles = append(articles, entity.NewsArticle{
			ID:          articleID(r.label, item.Link),
			Title:       item.Title,
			Summary:     cleanSummary(firstNonEmpty(item.Description, item.Content)),
			URL:         item.Link,
			PublishedAt: published,
			Source:      r.label,
		})
	}

	return articles, nil
}

// articleID builds a stable article ID from the source label and link.
func articleID(label, link string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(link))
	return fmt.Sprintf("%s_%d", strings.ToLower(label), h.Sum32())
}

// cleanSummary strips HTML markup and truncates the summary.
func cleanSummary(summary string) string {
	cleaned := strings.TrimSpace(stripTags.Sanitize(summary))
	cleaned = utiltext.CollapseWhitespace(cleaned)
	if cleaned == "" {
		return noSummary
	}
	return utiltext.Truncate(cleaned, summaryLimit)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
