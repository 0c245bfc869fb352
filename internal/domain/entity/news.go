package entity

import "time"

// NewsArticle represents a single health news item fetched from a trusted
// source feed. Articles are cached per (source, limit) lookup and are not
// persisted beyond that cache.
type NewsArticle struct {
	// ID is derived from the source label plus a URL hash or the source's
	// external identifier (e.g. "pubmed_38012345").
	ID          string
	Title       string
	Summary     string // HTML-stripped, at most 200 chars plus ellipsis
	URL         string
	PublishedAt time.Time // best-effort parsed; defaults to fetch time
	Source      string    // source label, e.g. "WHO", "CDC", "PubMed"
}
