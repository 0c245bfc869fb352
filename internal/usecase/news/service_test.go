package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"medverify/internal/domain/entity"
)

type stubFetcher struct {
	articles []entity.NewsArticle
	err      error
	calls    int
	gotLimit int
}

func (s *stubFetcher) Fetch(_ context.Context, limit int) ([]entity.NewsArticle, error) {
	s.calls++
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	if len(s.articles) > limit {
		return s.articles[:limit], nil
	}
	return s.articles, nil
}

func makeArticles(source string, times ...time.Time) []entity.NewsArticle {
	articles := make([]entity.NewsArticle, len(times))
	for i, ts := range times {
		articles[i] = entity.NewsArticle{
			ID:          source,
			Title:       source + " article",
			Source:      source,
			PublishedAt: ts,
		}
	}
	return articles
}

func TestLatest_SingleSource(t *testing.T) {
	who := &stubFetcher{articles: makeArticles("WHO", time.Now(), time.Now())}
	svc := NewService(map[string]Fetcher{SourceWHO: who}, NewCache(time.Minute))

	articles := svc.Latest(context.Background(), SourceWHO, 10)

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
	if who.gotLimit != 10 {
		t.Errorf("fetcher limit = %d, want 10", who.gotLimit)
	}
}

func TestLatest_AllMergesSortedDescending(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	who := &stubFetcher{articles: makeArticles("WHO", base.Add(2*time.Hour))}
	cdc := &stubFetcher{articles: makeArticles("CDC", base.Add(5*time.Hour))}
	pubmed := &stubFetcher{articles: makeArticles("PubMed", base)}

	svc := NewService(map[string]Fetcher{
		SourceWHO:    who,
		SourceCDC:    cdc,
		SourcePubMed: pubmed,
	}, NewCache(time.Minute))

	articles := svc.Latest(context.Background(), SourceAll, 9)

	if len(articles) != 3 {
		t.Fatalf("len(articles) = %d, want 3", len(articles))
	}
	if articles[0].Source != "CDC" || articles[1].Source != "WHO" || articles[2].Source != "PubMed" {
		t.Errorf("merge order = %s, %s, %s, want CDC, WHO, PubMed",
			articles[0].Source, articles[1].Source, articles[2].Source)
	}

	// The aggregate splits the limit across the three sources.
	if who.gotLimit != 3 {
		t.Errorf("per-source limit = %d, want 3", who.gotLimit)
	}
}

func TestLatest_RepeatCallReturnsIdenticalList(t *testing.T) {
	who := &stubFetcher{articles: makeArticles("WHO", time.Now(), time.Now().Add(-time.Hour))}
	svc := NewService(map[string]Fetcher{SourceWHO: who}, NewCache(time.Minute))

	first := svc.Latest(context.Background(), SourceWHO, 10)
	second := svc.Latest(context.Background(), SourceWHO, 10)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}
	if who.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", who.calls)
	}
}

func TestLatest_PartialFailureDegrades(t *testing.T) {
	who := &stubFetcher{articles: makeArticles("WHO", time.Now())}
	cdc := &stubFetcher{err: errors.New("feed unreachable")}
	pubmed := &stubFetcher{articles: makeArticles("PubMed", time.Now().Add(-time.Hour))}

	svc := NewService(map[string]Fetcher{
		SourceWHO:    who,
		SourceCDC:    cdc,
		SourcePubMed: pubmed,
	}, NewCache(time.Minute))

	articles := svc.Latest(context.Background(), SourceAll, 9)

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2 from surviving sources", len(articles))
	}
}

func TestLatest_TotalFailureReturnsFallback(t *testing.T) {
	failing := &stubFetcher{err: errors.New("down")}
	svc := NewService(map[string]Fetcher{
		SourceWHO:    failing,
		SourceCDC:    failing,
		SourcePubMed: failing,
	}, NewCache(time.Minute))

	articles := svc.Latest(context.Background(), SourceAll, 9)

	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d, want 1 fallback article", len(articles))
	}
	if articles[0].Source != "System" {
		t.Errorf("Source = %q, want System", articles[0].Source)
	}
}

func TestLatest_CacheHitSkipsFetch(t *testing.T) {
	who := &stubFetcher{articles: makeArticles("WHO", time.Now())}
	svc := NewService(map[string]Fetcher{SourceWHO: who}, NewCache(time.Minute))

	svc.Latest(context.Background(), SourceWHO, 5)
	svc.Latest(context.Background(), SourceWHO, 5)

	if who.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 (second request served from cache)", who.calls)
	}
}

func TestLatest_DifferentLimitsCachedSeparately(t *testing.T) {
	who := &stubFetcher{articles: makeArticles("WHO", time.Now(), time.Now(), time.Now())}
	svc := NewService(map[string]Fetcher{SourceWHO: who}, NewCache(time.Minute))

	svc.Latest(context.Background(), SourceWHO, 5)
	svc.Latest(context.Background(), SourceWHO, 2)

	if who.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2 (limit is part of the cache key)", who.calls)
	}
}

func TestCache_Expiry(t *testing.T) {
	cache := NewCache(time.Minute)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	cache.Set("who", 5, makeArticles("WHO", current))

	if _, ok := cache.Get("who", 5); !ok {
		t.Fatal("expected cache hit before expiry")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := cache.Get("who", 5); ok {
		t.Fatal("expected cache miss after expiry")
	}
}

func TestValidSource(t *testing.T) {
	svc := NewService(map[string]Fetcher{
		SourceWHO:    &stubFetcher{},
		SourceCDC:    &stubFetcher{},
		SourcePubMed: &stubFetcher{},
	}, nil)

	for _, src := range []string{SourceAll, SourceWHO, SourceCDC, SourcePubMed} {
		if !svc.ValidSource(src) {
			t.Errorf("ValidSource(%q) = false, want true", src)
		}
	}
	if svc.ValidSource("reuters") {
		t.Error("ValidSource(reuters) = true, want false")
	}
}

func TestWarm_PopulatesCache(t *testing.T) {
	who := &stubFetcher{articles: makeArticles("WHO", time.Now())}
	cdc := &stubFetcher{articles: makeArticles("CDC", time.Now())}
	pubmed := &stubFetcher{articles: makeArticles("PubMed", time.Now())}

	svc := NewService(map[string]Fetcher{
		SourceWHO:    who,
		SourceCDC:    cdc,
		SourcePubMed: pubmed,
	}, NewCache(time.Minute))

	svc.Warm(context.Background(), 9)

	svc.Latest(context.Background(), SourceAll, 9)
	if who.calls != 1 || cdc.calls != 1 || pubmed.calls != 1 {
		t.Errorf("calls = %d/%d/%d, want 1 each (served from warmed cache)",
			who.calls, cdc.calls, pubmed.calls)
	}
}
