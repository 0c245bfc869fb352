package entity

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"medverify/internal/utils/text"
)

// Input length bounds for claim verification requests.
const (
	minClaimLength = 10
	maxClaimLength = 5000
)

// dangerousPatterns are matched case-insensitively against raw input.
// Input matching any of them is rejected before the pipeline runs.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)onload=`),
	regexp.MustCompile(`(?i)onerror=`),
	regexp.MustCompile(`(?i)onclick=`),
}

// validLanguageCodes is the whitelist accepted by the verify and translate
// endpoints. "auto" requests detection.
var validLanguageCodes = map[string]struct{}{
	"auto": {}, "en": {}, "es": {}, "fr": {}, "de": {}, "it": {}, "pt": {},
	"ru": {}, "zh": {}, "ja": {}, "ko": {}, "ar": {}, "hi": {}, "nl": {},
	"sv": {}, "da": {}, "no": {},
}

// ValidationResult is the outcome of validating user input. It is a pure
// function of the input with no persisted state: Valid is false when the
// input was rejected and Error carries the human-readable reason.
type ValidationResult struct {
	Valid bool
	Error string
}

// invalid is a small helper to build a failed ValidationResult.
func invalid(reason string) ValidationResult {
	return ValidationResult{Valid: false, Error: reason}
}

// ValidateClaimInput checks raw user input before any pipeline processing.
// It fails (it does not return an error value) when the input is empty or
// whitespace-only, shorter than 10 or longer than 5000 characters, contains
// a dangerous pattern, or looks like a URL but is not well-formed.
func ValidateClaimInput(input string) ValidationResult {
	trimmed := strings.TrimSpace(input)

	if trimmed == "" {
		return invalid("Input cannot be empty")
	}

	if text.CountRunes(trimmed) < minClaimLength {
		return invalid(fmt.Sprintf("Input must be at least %d characters long", minClaimLength))
	}

	if text.CountRunes(input) > maxClaimLength {
		return invalid(fmt.Sprintf("Input must be less than %d characters", maxClaimLength))
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(input) {
			return invalid("Input contains potentially unsafe content")
		}
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if err := ValidateURL(trimmed); err != nil {
			return invalid("Invalid URL format")
		}
	}

	return ValidationResult{Valid: true}
}

// ValidateLanguageCode reports whether code is an accepted language code.
// The comparison is case-insensitive.
func ValidateLanguageCode(code string) bool {
	_, ok := validLanguageCodes[strings.ToLower(code)]
	return ok
}

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// hostPattern matches a plausible public hostname: dotted labels with a
// 2+ letter TLD, "localhost", or a dotted-quad IP address.
var hostPattern = regexp.MustCompile(`(?i)^(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}\.?|localhost|\d{1,3}(?:\.\d{1,3}){3})$`)

// ValidateURL validates the format of a URL.
// It checks that the URL is well-formed, uses an HTTP or HTTPS scheme and
// has a valid host. Returns a ValidationError when any check fails.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	host := parsedURL.Hostname()
	if host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	if ip := net.ParseIP(host); ip == nil && !hostPattern.MatchString(host) {
		return &ValidationError{Field: "url", Message: "URL host is not valid"}
	}

	return nil
}
