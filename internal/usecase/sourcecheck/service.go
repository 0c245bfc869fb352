// Package sourcecheck gathers supporting citations for a claim from
// fact-check reviews and a curated set of trusted health references.
package sourcecheck

import (
	"context"
	"log/slog"
	"strings"

	"medverify/internal/domain/entity"
)

// maxCitations caps how many citations a source check returns.
const maxCitations = 5

// maxQueryPhrases bounds how many key phrases go into a fact-check query.
const maxQueryPhrases = 5

// FactChecker searches published fact-check reviews for a claim.
type FactChecker interface {
	Search(ctx context.Context, query string) ([]entity.Citation, error)
}

// KeyPhraser extracts the most salient terms from a claim, used to build
// a focused fact-check query instead of sending the raw text.
type KeyPhraser interface {
	KeyPhrases(text string, max int) []string
}

// Service assembles citations for a claim. Fact-check lookups are best
// effort: failures are logged and the curated references still apply.
type Service struct {
	factChecker FactChecker
	phraser     KeyPhraser
}

// NewService creates a source check service. Pass factChecker as nil to
// run on curated references only (no fact-check API key configured);
// pass phraser as nil to query with the raw claim text.
func NewService(factChecker FactChecker, phraser KeyPhraser) *Service {
	return &Service{factChecker: factChecker, phraser: phraser}
}

// Check gathers citations for text. The result carries at most five
// citations; SourcesTotal counts everything gathered before the cap.
// A cancelled context yields the generic fallback citation with a zero
// source count.
func (s *Service) Check(ctx context.Context, text string) entity.SourceCheck {
	var citations []entity.Citation

	if s.factChecker != nil {
		results, err := s.factChecker.Search(ctx, s.buildQuery(text))
		if err != nil {
			slog.WarnContext(ctx, "fact-check lookup failed, continuing with curated sources",
				slog.Any("error", err))
		} else {
			citations = append(citations, results...)
		}
	}

	if ctx.Err() != nil {
		return entity.SourceCheck{
			Citations:    fallbackCitations(),
			SourcesTotal: 0,
		}
	}

	citations = append(citations, whoCitations(text)...)
	citations = append(citations, cdcCitations(text)...)
	citations = append(citations, generalMedicalCitations(text)...)

	total := len(citations)
	if len(citations) > maxCitations {
		citations = citations[:maxCitations]
	}

	return entity.SourceCheck{
		Citations:    citations,
		SourcesTotal: total,
	}
}

// buildQuery derives the fact-check search query from the claim text.
func (s *Service) buildQuery(text string) string {
	if s.phraser == nil {
		return text
	}
	phrases := s.phraser.KeyPhrases(text, maxQueryPhrases)
	if len(phrases) == 0 {
		return text
	}
	return strings.Join(phrases, " ")
}

// referenceDate is the publication date attached to curated citations.
const referenceDate = "2024-01-15T00:00:00Z"

// containsWord reports whether any of words appears as a whole token in
// text (case-insensitive).
func containsWord(text string, words []string) bool {
	tokens := strings.Fields(strings.ToLower(text))
	for _, tok := range tokens {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// containsAny reports whether any of terms appears as a substring of
// text (case-insensitive).
func containsAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// whoCitations returns the WHO reference for claims touching general
// health topics.
func whoCitations(text string) []entity.Citation {
	keywords := []string{"vaccine", "covid", "health", "disease", "treatment", "medicine", "nutrition"}
	if !containsWord(text, keywords) {
		return nil
	}

	return []entity.Citation{{
		Title:       "WHO Health Topics and Guidelines",
		Source:      "World Health Organization",
		URL:         "https://www.who.int/health-topics",
		PublishedAt: referenceDate,
		Summary:     "Comprehensive health information and guidelines from the World Health Organization covering various health topics and medical conditions.",
	}}
}

// cdcCitations returns the CDC reference for claims touching disease
// prevention topics.
func cdcCitations(text string) []entity.Citation {
	keywords := []string{"vaccine", "immunization", "disease", "prevention", "outbreak", "health"}
	if !containsWord(text, keywords) {
		return nil
	}

	return []entity.Citation{{
		Title:       "CDC Health Information and Guidelines",
		Source:      "Centers for Disease Control and Prevention",
		URL:         "https://www.cdc.gov/health-information",
		PublishedAt: referenceDate,
		Summary:     "Evidence-based health information and recommendations from the Centers for Disease Control and Prevention.",
	}}
}

// generalMedicalCitations returns topic-gated clinical references plus
// the PubMed literature database, which applies to every claim.
func generalMedicalCitations(text string) []entity.Citation {
	var citations []entity.Citation

	if containsAny(text, []string{"symptom", "treatment", "condition", "disease"}) {
		citations = append(citations, entity.Citation{
			Title:       "Mayo Clinic Medical Information",
			Source:      "Mayo Clinic",
			URL:         "https://www.mayoclinic.org/diseases-conditions",
			PublishedAt: referenceDate,
			Summary:     "Comprehensive medical information from Mayo Clinic covering diseases, conditions, and treatments.",
		})
	}

	if containsAny(text, []string{"nutrition", "diet", "exercise", "wellness"}) {
		citations = append(citations, entity.Citation{
			Title:       "Harvard Health Publishing",
			Source:      "Harvard Medical School",
			URL:         "https://www.health.harvard.edu/",
			PublishedAt: referenceDate,
			Summary:     "Evidence-based health information and research from Harvard Medical School.",
		})
	}

	citations = append(citations, entity.Citation{
		Title:       "PubMed Medical Literature Database",
		Source:      "National Library of Medicine",
		URL:         "https://pubmed.ncbi.nlm.nih.gov/",
		PublishedAt: referenceDate,
		Summary:     "Comprehensive database of biomedical literature from MEDLINE, life science journals, and online books.",
	})

	return citations
}

// fallbackCitations is the generic reference returned when source
// checking cannot run at all.
func fallbackCitations() []entity.Citation {
	return []entity.Citation{{
		Title:       "General Health Information",
		Source:      "Medical Literature",
		URL:         "https://www.nlm.nih.gov/",
		PublishedAt: referenceDate,
		Summary:     "For accurate health information, please consult with healthcare professionals and trusted medical sources.",
	}}
}
