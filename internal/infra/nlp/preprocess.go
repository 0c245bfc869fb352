// Package nlp provides lightweight in-process text normalization used to
// prepare claim text for classification: lowercasing, punctuation
// stripping, stop word removal and lemmatization.
package nlp

import (
	"sort"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/bbalet/stopwords"

	utiltext "medverify/internal/utils/text"
)

// maxProcessedLength caps preprocessed output so classifier prompts stay
// bounded regardless of article length.
const maxProcessedLength = 1000

// Preprocessor normalizes English text for the classifier. Claims in
// other languages are translated to English before reaching it.
//
// Thread safety: Preprocessor is safe for concurrent use after creation.
type Preprocessor struct {
	lemmatizer *golem.Lemmatizer
}

// NewPreprocessor creates a Preprocessor with the English lemma dictionary.
func NewPreprocessor() (*Preprocessor, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}
	return &Preprocessor{lemmatizer: lemmatizer}, nil
}

// Preprocess cleans text (URLs, email addresses and special characters
// removed), lowercases it, strips punctuation, removes English stop
// words and lemmatizes the remaining tokens. Output longer than 1000
// characters is truncated with an ellipsis.
//
// Example:
//
//	p.Preprocess("Vaccines are causing serious illnesses!")
//	// "vaccine cause serious illness"
func (p *Preprocessor) Preprocess(text string) string {
	cleaned := stripPunctuation(strings.ToLower(utiltext.Clean(text)))
	cleaned = stopwords.CleanString(cleaned, "en", false)

	tokens := strings.Fields(cleaned)
	for i, tok := range tokens {
		tokens[i] = p.lemmatizer.Lemma(tok)
	}

	return utiltext.Truncate(strings.Join(tokens, " "), maxProcessedLength)
}

// KeyPhrases returns up to max of the most frequent normalized tokens in
// text, ordered by frequency and then alphabetically. Tokens shorter
// than four characters are ignored as too generic.
func (p *Preprocessor) KeyPhrases(text string, max int) []string {
	if max <= 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, tok := range strings.Fields(p.Preprocess(text)) {
		if len(tok) < 4 {
			continue
		}
		counts[tok]++
	}

	phrases := make([]string, 0, len(counts))
	for tok := range counts {
		phrases = append(phrases, tok)
	}

	sort.Slice(phrases, func(i, j int) bool {
		if counts[phrases[i]] != counts[phrases[j]] {
			return counts[phrases[i]] > counts[phrases[j]]
		}
		return phrases[i] < phrases[j]
	})

	if len(phrases) > max {
		phrases = phrases[:max]
	}
	return phrases
}

// stripPunctuation replaces punctuation and symbols with spaces so word
// boundaries survive constructs like "disease-free" or "90%".
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)
}
