// Package verify provides the HTTP handler for the claim verification
// endpoint.
package verify

import (
	"fmt"
	"time"

	"medverify/internal/domain/entity"
)

// CitationDTO represents the JSON structure for a citation.
type CitationDTO struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Summary     string `json:"summary"`
}

// ResultDTO represents the JSON structure of a verification result.
type ResultDTO struct {
	Verdict        string        `json:"verdict"`
	Confidence     int           `json:"confidence"`
	Explanation    string        `json:"explanation"`
	Citations      []CitationDTO `json:"citations"`
	Language       string        `json:"language"`
	Model          string        `json:"model"`
	ProcessingTime string        `json:"processingTime"`
	Timestamp      string        `json:"timestamp"`
}

// toDTO converts a domain result into its JSON representation. The
// citations slice is always non-nil so the JSON field encodes as []
// rather than null.
func toDTO(result entity.VerificationResult) ResultDTO {
	citations := make([]CitationDTO, 0, len(result.Citations))
	for _, c := range result.Citations {
		citations = append(citations, CitationDTO{
			Title:       c.Title,
			Source:      c.Source,
			URL:         c.URL,
			PublishedAt: c.PublishedAt,
			Summary:     c.Summary,
		})
	}

	return ResultDTO{
		Verdict:        string(result.Verdict),
		Confidence:     result.Confidence,
		Explanation:    result.Explanation,
		Citations:      citations,
		Language:       result.LanguageName,
		Model:          result.Model,
		ProcessingTime: fmt.Sprintf("%.1fs", result.Elapsed.Seconds()),
		Timestamp:      result.Timestamp.Format(time.RFC3339),
	}
}
