// Package verify implements the claim verification pipeline. A claim
// flows through validation, text processing, two-tier classification,
// trusted-source checking and explanation generation. Every step from
// language detection onward has a fallback so the pipeline always
// produces a result; only rejected input and unusable article
// extraction surface as errors.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
	"medverify/internal/usecase/textproc"
)

// modelLabel is the model description reported in every result.
const modelLabel = "BioBERT + GPT-4"

// Classification tiers recorded in metrics.
const (
	tierClassifier = "classifier"
	tierLLM        = "llm"
	tierFallback   = "fallback"
)

// languageNames maps detected ISO 639-1 codes to the human-readable
// names reported in results.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
	"hi": "Hindi",
	"ru": "Russian",
}

// TextProcessor is the slice of the text processing facade the pipeline
// depends on.
type TextProcessor interface {
	ExtractArticleText(ctx context.Context, url string) (string, error)
	DetectLanguage(text string) string
	TranslateToEnglish(ctx context.Context, text, sourceLang string) string
	Preprocess(text string) string
}

// Classifier assigns a verdict and confidence to a claim.
type Classifier interface {
	Classify(ctx context.Context, claim string) (entity.Classification, error)
}

// SourceChecker gathers citations from trusted health sources.
type SourceChecker interface {
	Check(ctx context.Context, text string) entity.SourceCheck
}

// Explainer produces a human-readable explanation of a verdict.
type Explainer interface {
	Explain(ctx context.Context, claim string, classification entity.Classification, citations []entity.Citation) (string, error)
}

// Service runs claims through the verification pipeline.
type Service struct {
	text      TextProcessor
	primary   Classifier
	secondary Classifier
	sources   SourceChecker
	explainer Explainer
	fallback  Explainer
}

// NewService wires the pipeline steps together. primary is the zero-shot
// classifier, secondary the LLM tier used when primary fails; either may
// be nil. fallback must never fail and is used when explainer errors or
// is nil.
func NewService(text TextProcessor, primary, secondary Classifier, sources SourceChecker, explainer, fallback Explainer) *Service {
	return &Service{
		text:      text,
		primary:   primary,
		secondary: secondary,
		sources:   sources,
		explainer: explainer,
		fallback:  fallback,
	}
}

// Verify runs input through the full pipeline and assembles the result.
// It returns a *entity.ValidationError when the input is rejected and a
// plain error when a URL input yields no usable article text; every
// later step degrades instead of failing.
func (s *Service) Verify(ctx context.Context, input string) (entity.VerificationResult, error) {
	start := time.Now()

	if result := entity.ValidateClaimInput(input); !result.Valid {
		return entity.VerificationResult{}, &entity.ValidationError{Field: "text", Message: result.Error}
	}

	claim, err := s.resolveClaim(ctx, input)
	if err != nil {
		return entity.VerificationResult{}, err
	}

	lang := s.text.DetectLanguage(claim)
	working := s.text.TranslateToEnglish(ctx, claim, lang)

	processed := s.text.Preprocess(working)
	if processed == "" {
		processed = working
	}

	classification, tier := s.classify(ctx, processed)
	check := s.sources.Check(ctx, processed)
	explanation := s.explain(ctx, processed, classification, check.Citations)

	elapsed := time.Since(start)
	metrics.RecordVerification(string(classification.Verdict), tier, elapsed)
	metrics.RecordCitations(len(check.Citations))

	slog.InfoContext(ctx, "claim verified",
		slog.String("verdict", string(classification.Verdict)),
		slog.Int("confidence", classification.Confidence),
		slog.String("tier", tier),
		slog.Int("citations", len(check.Citations)),
		slog.Duration("elapsed", elapsed))

	return entity.VerificationResult{
		Verdict:      classification.Verdict,
		Confidence:   classification.Confidence,
		Explanation:  explanation,
		Citations:    check.Citations,
		LanguageName: languageName(lang),
		Model:        modelLabel,
		Elapsed:      elapsed,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// resolveClaim turns input into claim text: direct text is sanitized,
// a URL is fetched. Unusable extraction fails the pipeline: there is
// no claim to verify when the page the caller pointed at yields nothing.
func (s *Service) resolveClaim(ctx context.Context, input string) (string, error) {
	if !textproc.IsURL(input) {
		return textproc.SanitizeInput(input), nil
	}

	article, err := s.text.ExtractArticleText(ctx, input)
	if err != nil {
		slog.WarnContext(ctx, "article extraction failed",
			slog.Any("error", err))
		return "", fmt.Errorf("extract article content: %w", err)
	}
	if article == "" {
		return "", fmt.Errorf("extract article content: %w", textproc.ErrNoContent)
	}
	return article, nil
}

// classify tries the zero-shot tier, then the LLM tier, and finally
// settles on a needs-review placeholder so the pipeline never stops.
func (s *Service) classify(ctx context.Context, claim string) (entity.Classification, string) {
	if s.primary != nil {
		classification, err := s.primary.Classify(ctx, claim)
		if err == nil {
			return classification, tierClassifier
		}
		slog.WarnContext(ctx, "zero-shot classification failed, trying llm tier",
			slog.Any("error", err))
	}

	if s.secondary != nil {
		classification, err := s.secondary.Classify(ctx, claim)
		if err == nil {
			return classification, tierLLM
		}
		slog.WarnContext(ctx, "llm classification failed, using fallback verdict",
			slog.Any("error", err))
	}

	return entity.Classification{Verdict: entity.VerdictNeedsReview, Confidence: 50}, tierFallback
}

// explain asks the LLM explainer for prose and falls back to the
// verdict template when it is unavailable or fails.
func (s *Service) explain(ctx context.Context, claim string, classification entity.Classification, citations []entity.Citation) string {
	if s.explainer != nil {
		explanation, err := s.explainer.Explain(ctx, claim, classification, citations)
		if err == nil && explanation != "" {
			return explanation
		}
		if err != nil {
			slog.WarnContext(ctx, "explanation generation failed, using template",
				slog.Any("error", err))
		}
	}

	explanation, _ := s.fallback.Explain(ctx, claim, classification, citations)
	return explanation
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "Unknown"
}
