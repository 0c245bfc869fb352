package textproc

import "errors"

// Sentinel errors for text processing operations.
// Infra adapters wrap these so callers can branch with errors.Is.
var (
	// ErrInvalidURL indicates the URL failed validation (scheme, hostname, format).
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP indicates the URL resolves to a private or loopback address.
	ErrPrivateIP = errors.New("URL resolves to private IP")

	// ErrTimeout indicates an article fetch exceeded its time limit.
	ErrTimeout = errors.New("fetch timeout")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTooManyRedirects indicates the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrNoContent indicates no readable article content was found in the page.
	ErrNoContent = errors.New("no readable content found")

	// ErrDetectionFailed indicates the language of a text could not be determined.
	ErrDetectionFailed = errors.New("language detection failed")

	// ErrTranslationFailed indicates the translation provider returned no usable result.
	ErrTranslationFailed = errors.New("translation failed")
)
