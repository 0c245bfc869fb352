// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental value objects such as VerificationResult, Citation and
// NewsArticle, along with input validation rules and domain-specific errors.
package entity

import "time"

// Verdict is the assessed veracity category of a health claim.
type Verdict string

// Verdict values. These are the only labels the classification tiers are
// allowed to emit; anything else is normalized to VerdictNeedsReview.
const (
	VerdictTrue        Verdict = "true"
	VerdictMisleading  Verdict = "misleading"
	VerdictNeedsReview Verdict = "needs review"
)

// ParseVerdict normalizes a raw label into a known Verdict.
// Unknown labels map to VerdictNeedsReview so a misbehaving model
// can never introduce a category the API does not document.
func ParseVerdict(raw string) Verdict {
	switch Verdict(raw) {
	case VerdictTrue, VerdictMisleading, VerdictNeedsReview:
		return Verdict(raw)
	}
	return VerdictNeedsReview
}

// Citation is a titled reference to an external source supporting or
// contextualizing a verdict. PublishedAt is an ISO-8601 string or empty;
// duplicates across source checks are possible and not deduplicated.
type Citation struct {
	Title       string
	Source      string
	URL         string
	PublishedAt string
	Summary     string
}

// VerificationResult is the outcome of running a claim through the
// verification pipeline. It is created once per request, immutable after
// construction and never persisted.
type VerificationResult struct {
	Verdict      Verdict
	Confidence   int // 0-100
	Explanation  string
	Citations    []Citation // at most 5, ordered
	LanguageName string     // human-readable, "Unknown" for unmapped codes
	Model        string
	Elapsed      time.Duration
	Timestamp    time.Time
}

// Classification is the intermediate verdict+confidence pair produced by
// the classification step, before explanation and citation gathering.
type Classification struct {
	Verdict    Verdict
	Confidence int
}

// SourceCheck holds the citations gathered from trusted-source lookups
// and the number of sources found before capping.
type SourceCheck struct {
	Citations    []Citation
	SourcesTotal int
}
