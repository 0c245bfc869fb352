package newsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>WHO News</title>
  <link>https://www.who.int/news</link>
  <item>
    <title>New guidance on vitamin D supplementation</title>
    <description><![CDATA[<p>The organization released <b>updated guidance</b> on supplementation.</p>]]></description>
    <link>https://www.who.int/news/item/vitamin-d</link>
    <pubDate>Mon, 10 Jun 2024 08:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Measles outbreak update</title>
    <description></description>
    <link>https://www.who.int/news/item/measles</link>
    <pubDate>Sun, 09 Jun 2024 10:30:00 GMT</pubDate>
  </item>
  <item>
    <title>Third item beyond the limit</title>
    <description>extra</description>
    <link>https://www.who.int/news/item/third</link>
  </item>
</channel>
</rss>`

func TestRSSSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	src := NewRSSSource("WHO", srv.URL)

	articles, err := src.Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2 (limit applied)", len(articles))
	}

	first := articles[0]
	if first.Title != "New guidance on vitamin D supplementation" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Source != "WHO" {
		t.Errorf("Source = %q, want WHO", first.Source)
	}
	if !strings.HasPrefix(first.ID, "who_") {
		t.Errorf("ID = %q, want who_ prefix", first.ID)
	}
	if strings.Contains(first.Summary, "<") {
		t.Errorf("Summary contains HTML: %q", first.Summary)
	}
	if !strings.Contains(first.Summary, "updated guidance") {
		t.Errorf("Summary = %q", first.Summary)
	}
	wantDate := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(wantDate) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, wantDate)
	}

	// An entry without a description gets the placeholder summary.
	if articles[1].Summary != noSummary {
		t.Errorf("Summary = %q, want %q", articles[1].Summary, noSummary)
	}
}

func TestRSSSource_Fetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewRSSSource("CDC", srv.URL)

	if _, err := src.Fetch(context.Background(), 5); err == nil {
		t.Fatal("Fetch() expected error for missing feed")
	}
}

func TestArticleID_Stable(t *testing.T) {
	a := articleID("WHO", "https://www.who.int/news/item/vitamin-d")
	b := articleID("WHO", "https://www.who.int/news/item/vitamin-d")
	c := articleID("WHO", "https://www.who.int/news/item/measles")

	if a != b {
		t.Errorf("same link produced different IDs: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("different links produced the same ID: %q", a)
	}
}

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, got string)
	}{
		{
			name:  "strips tags",
			input: "<p>Hello <b>world</b></p>",
			check: func(t *testing.T, got string) {
				if got != "Hello world" {
					t.Errorf("got %q, want %q", got, "Hello world")
				}
			},
		},
		{
			name:  "empty becomes placeholder",
			input: "",
			check: func(t *testing.T, got string) {
				if got != noSummary {
					t.Errorf("got %q, want placeholder", got)
				}
			},
		},
		{
			name:  "long text truncated with ellipsis",
			input: strings.Repeat("a", 300),
			check: func(t *testing.T, got string) {
				if len([]rune(got)) != summaryLimit+3 {
					t.Errorf("len = %d, want %d", len([]rune(got)), summaryLimit+3)
				}
				if !strings.HasSuffix(got, "...") {
					t.Errorf("got %q, want ... suffix", got)
				}
			},
		},
		{
			name:  "script content removed",
			input: `<script>alert("x")</script>Real summary`,
			check: func(t *testing.T, got string) {
				if strings.Contains(got, "alert") {
					t.Errorf("script content leaked: %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cleanSummary(tt.input))
		})
	}
}
