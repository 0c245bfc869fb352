// Package langdetect identifies the language of claim text using
// statistical n-gram models. Detection runs fully in-process, no
// network calls involved.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"medverify/internal/usecase/textproc"
)

// supportedLanguages lists the languages the verification pipeline can
// report. Restricting the detector to this set improves accuracy on
// short claim texts.
var supportedLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Chinese,
	lingua.Japanese,
	lingua.Korean,
	lingua.Arabic,
	lingua.Hindi,
	lingua.Russian,
}

// LinguaDetector detects the language of text and reports it as a
// lowercase ISO 639-1 code.
//
// Thread safety: LinguaDetector is safe for concurrent use.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector preloaded with the supported
// language models. Model loading is lazy inside lingua, so construction
// is cheap.
func NewLinguaDetector() *LinguaDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(supportedLanguages...).
		Build()

	return &LinguaDetector{detector: detector}
}

// Detect returns the ISO 639-1 code of the most likely language of text.
// Texts the detector cannot classify (too short, symbols only) return
// "en" together with ErrDetectionFailed so callers can degrade to the
// English default.
func (d *LinguaDetector) Detect(text string) (string, error) {
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "en", textproc.ErrDetectionFailed
	}

	return strings.ToLower(language.IsoCode639_1().String()), nil
}
