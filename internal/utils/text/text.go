// Package text provides utilities for text measuring, cleaning and
// truncation shared across the verification pipeline and news services.
package text

import (
	"regexp"
	"strings"
)

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including accented
// letters, CJK text and emoji by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")          // returns 5 (ASCII text)
//	CountRunes("santé")          // returns 5 (accented text)
//	CountRunes("hello世界")       // returns 7 (mixed text)
//	CountRunes("")               // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate shortens text to at most max runes, appending "..." when the
// text was cut. Counts runes, not bytes, so multi-byte characters are
// never split.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// CollapseWhitespace replaces runs of whitespace (including newlines and
// tabs) with a single space and trims the result.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	disallowedPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:()\-]`)
)

// Clean normalizes raw text for downstream processing: URLs and email
// addresses are removed, characters outside letters, digits and basic
// punctuation are stripped, and whitespace is collapsed.
func Clean(text string) string {
	cleaned := urlPattern.ReplaceAllString(text, " ")
	cleaned = emailPattern.ReplaceAllString(cleaned, " ")
	cleaned = disallowedPattern.ReplaceAllString(cleaned, " ")
	return CollapseWhitespace(cleaned)
}

// FirstSentences returns up to n sentences from text, splitting on the
// period character. The trailing period is preserved when present.
func FirstSentences(text string, n int) string {
	if n <= 0 {
		return ""
	}
	parts := strings.SplitAfterN(text, ".", n+1)
	if len(parts) <= n {
		return text
	}
	return strings.TrimSpace(strings.Join(parts[:n], ""))
}
