// Package translator provides translation providers for the verification
// pipeline. Claims arriving in a non-English language are translated to
// English before classification, and GoogleTranslator is also used directly
// by the translation endpoint.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/resilience/retry"
	"medverify/internal/usecase/textproc"
)

const defaultEndpoint = "https://translation.googleapis.com/language/translate/v2"

// GoogleTranslator translates text via the Google Cloud Translation v2
// REST API. Calls run through a circuit breaker and a short retry
// profile since translation sits on the request path.
//
// Thread safety: GoogleTranslator is safe for concurrent use.
type GoogleTranslator struct {
	apiKey         string
	endpoint       string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// Option configures a GoogleTranslator.
type Option func(*GoogleTranslator)

// WithEndpoint overrides the API endpoint. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(t *GoogleTranslator) {
		t.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *GoogleTranslator) {
		t.client = client
	}
}

// NewGoogleTranslator creates a translator using the given API key.
func NewGoogleTranslator(apiKey string, opts ...Option) *GoogleTranslator {
	t := &GoogleTranslator{
		apiKey:         apiKey,
		endpoint:       defaultEndpoint,
		client:         &http.Client{Timeout: 15 * time.Second},
		circuitBreaker: circuitbreaker.New(circuitbreaker.TranslateAPIConfig()),
		retryConfig:    retry.LookupConfig(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Source string `json:"source,omitempty"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate translates text into the target language (ISO 639-1 code).
// Pass source as "" to let the API auto-detect the source language.
//
// Parameters:
//   - ctx: context for cancellation and timeout control
//   - text: text to translate
//   - source: source language code, or "" for auto-detection
//   - target: target language code, e.g. "en"
//
// Returns:
//   - string: translated text
//   - error: wrapped ErrTranslationFailed when the provider returns
//     no usable translation
func (t *GoogleTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	start := time.Now()

	var translated string
	err := retry.WithBackoff(ctx, t.retryConfig, func() error {
		result, err := t.circuitBreaker.Execute(func() (interface{}, error) {
			return t.doTranslate(ctx, text, source, target)
		})
		if err != nil {
			return err
		}
		translated = result.(string)
		return nil
	})

	if err != nil {
		metrics.RecordExternalCall("translate", "error", time.Since(start))
		return "", err
	}

	metrics.RecordExternalCall("translate", "success", time.Since(start))
	return translated, nil
}

// doTranslate performs the actual API call. Called through the circuit
// breaker inside the retry loop.
func (t *GoogleTranslator) doTranslate(ctx context.Context, text, source, target string) (interface{}, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Target: target,
		Source: source,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal translate request: %w", err)
	}

	endpoint := t.endpoint + "?key=" + url.QueryEscape(t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("translate API returned %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode translate response: %w", err)
	}

	if len(parsed.Data.Translations) == 0 || parsed.Data.Translations[0].TranslatedText == "" {
		return "", fmt.Errorf("%w: empty translation result", textproc.ErrTranslationFailed)
	}

	return parsed.Data.Translations[0].TranslatedText, nil
}
