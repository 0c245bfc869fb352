// Package textproc coordinates the text processing steps of the
// verification pipeline: article extraction, language detection,
// translation and preprocessing. Detection, translation and
// preprocessing degrade gracefully; extraction surfaces its errors
// because an unusable page leaves nothing to verify.
package textproc

import (
	"context"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ArticleExtractor fetches a web page and returns its readable text.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// LanguageDetector identifies the language of text as an ISO 639-1 code.
type LanguageDetector interface {
	Detect(text string) (string, error)
}

// Translator translates text between languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Preprocessor normalizes text for classification.
type Preprocessor interface {
	Preprocess(text string) string
	KeyPhrases(text string, max int) []string
}

// sanitizePolicy strips all HTML from user input before it flows into
// the pipeline or back out in responses.
var sanitizePolicy = bluemonday.StrictPolicy()

// maxInputLength caps sanitized input, matching the validation bound.
const maxInputLength = 5000

// IsURL reports whether the trimmed input looks like a web address.
func IsURL(input string) bool {
	trimmed := strings.TrimSpace(input)
	return strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://")
}

// SanitizeInput strips HTML markup from user-supplied text, trims
// surrounding whitespace and caps the result at 5000 characters.
func SanitizeInput(input string) string {
	cleaned := strings.TrimSpace(sanitizePolicy.Sanitize(input))
	if runes := []rune(cleaned); len(runes) > maxInputLength {
		cleaned = string(runes[:maxInputLength])
	}
	return cleaned
}

// Service is the text processing facade used by the verification
// pipeline and the standalone translate/extract endpoints.
type Service struct {
	extractor    ArticleExtractor
	detector     LanguageDetector
	translator   Translator
	preprocessor Preprocessor
}

// NewService wires the text processing steps together.
func NewService(extractor ArticleExtractor, detector LanguageDetector, translator Translator, preprocessor Preprocessor) *Service {
	return &Service{
		extractor:    extractor,
		detector:     detector,
		translator:   translator,
		preprocessor: preprocessor,
	}
}

// ExtractArticleText fetches the page at url and returns its article
// text.
func (s *Service) ExtractArticleText(ctx context.Context, url string) (string, error) {
	return s.extractor.Extract(ctx, strings.TrimSpace(url))
}

// DetectLanguage returns the ISO 639-1 language code of text, defaulting
// to "en" when detection fails.
func (s *Service) DetectLanguage(text string) string {
	code, err := s.detector.Detect(text)
	if err != nil {
		slog.Debug("language detection failed, defaulting to english",
			slog.Any("error", err))
		return "en"
	}
	return code
}

// TranslateToEnglish translates text from sourceLang to English,
// returning the original text when translation fails or is unnecessary.
func (s *Service) TranslateToEnglish(ctx context.Context, text, sourceLang string) string {
	if sourceLang == "en" || sourceLang == "" {
		return text
	}

	translated, err := s.translator.Translate(ctx, text, sourceLang, "en")
	if err != nil {
		slog.WarnContext(ctx, "translation failed, continuing with original text",
			slog.String("source_lang", sourceLang),
			slog.Any("error", err))
		return text
	}
	return translated
}

// Translate translates text between arbitrary languages. Unlike
// TranslateToEnglish this surfaces errors and leaves the fallback
// choice to the caller.
func (s *Service) Translate(ctx context.Context, text, source, target string) (string, error) {
	return s.translator.Translate(ctx, text, source, target)
}

// Preprocess normalizes text for classification.
func (s *Service) Preprocess(text string) string {
	return s.preprocessor.Preprocess(text)
}

// KeyPhrases returns the most frequent normalized tokens in text.
func (s *Service) KeyPhrases(text string, max int) []string {
	return s.preprocessor.KeyPhrases(text, max)
}
