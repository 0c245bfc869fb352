package explainer

import (
	"context"

	"medverify/internal/domain/entity"
)

// fallbackExplanations are the canned explanations used when no LLM
// provider is configured or generation fails.
var fallbackExplanations = map[entity.Verdict]string{
	entity.VerdictTrue:        "Based on our analysis of current medical literature and trusted health sources, this claim appears to be supported by scientific evidence. However, we recommend consulting with healthcare professionals for personalized medical advice.",
	entity.VerdictMisleading:  "Our analysis indicates this claim contains misleading or inaccurate information that contradicts established medical knowledge. Please consult reliable health sources and healthcare professionals for accurate information.",
	entity.VerdictNeedsReview: "This claim requires additional investigation and context to determine its accuracy. The available evidence is insufficient or conflicting. We recommend consulting multiple trusted medical sources and healthcare professionals.",
}

// FallbackExplanation returns the template explanation for a verdict.
func FallbackExplanation(verdict entity.Verdict) string {
	if explanation, ok := fallbackExplanations[verdict]; ok {
		return explanation
	}
	return fallbackExplanations[entity.VerdictNeedsReview]
}

// Template is an explainer that always returns the canned verdict
// explanation. Used when no LLM API key is configured.
type Template struct{}

// NewTemplate creates a template-only explainer.
func NewTemplate() *Template {
	return &Template{}
}

// Explain returns the template explanation for the classification verdict.
func (t *Template) Explain(_ context.Context, _ string, classification entity.Classification, _ []entity.Citation) (string, error) {
	return FallbackExplanation(classification.Verdict), nil
}
