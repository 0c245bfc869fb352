package extractor

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/usecase/textproc"
	utiltext "medverify/internal/utils/text"
)

const userAgent = "MedVerifyBot/1.0"

// minArticleLength rejects extractions that produced no usable body,
// such as paywall stubs or consent pages.
const minArticleLength = 50

// ReadabilityExtractor fetches article pages over HTTP and extracts the
// readable body text using the Mozilla Readability algorithm, with a
// paragraph-scrape fallback for pages Readability cannot parse.
//
// Features:
//   - SSRF prevention via URL validation
//   - Circuit breaker for fault tolerance
//   - Size limiting while reading the response body
//   - Redirect validation
//
// Thread safety: ReadabilityExtractor is safe for concurrent use.
type ReadabilityExtractor struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewReadabilityExtractor creates a ReadabilityExtractor with the given
// configuration.
//
// Example:
//
//	config := DefaultConfig()
//	ex := NewReadabilityExtractor(config)
//	text, err := ex.Extract(ctx, "https://example.com/article")
func NewReadabilityExtractor(config Config) *ReadabilityExtractor {
	ex := &ReadabilityExtractor{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ArticleFetchConfig()),
		config:         config,
	}

	// Redirect targets get the same SSRF validation as the original URL.
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= ex.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", textproc.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), ex.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	ex.client = client
	return ex
}

// Extract fetches the page at urlStr and returns its readable article text.
//
// The process:
//  1. Validates the URL (SSRF prevention)
//  2. Fetches the page through the circuit breaker
//  3. Extracts article text via Readability
//  4. Falls back to paragraph scraping when Readability finds nothing
//
// Parameters:
//   - ctx: context for cancellation and timeout control
//   - urlStr: article URL to fetch (must be http:// or https://)
//
// Returns:
//   - string: extracted article text (plain text, cleaned of URLs,
//     email addresses and special characters, whitespace collapsed)
//   - error: error if fetching or extraction fails
func (ex *ReadabilityExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, ex.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	start := time.Now()
	result, err := ex.circuitBreaker.Execute(func() (interface{}, error) {
		return ex.doExtract(ctx, urlStr)
	})
	if err != nil {
		metrics.RecordExternalCall("article-fetch", "error", time.Since(start))
		return "", err
	}
	metrics.RecordExternalCall("article-fetch", "success", time.Since(start))

	text := strings.TrimSpace(result.(string))
	if len(text) < minArticleLength {
		return "", fmt.Errorf("%w: extracted text too short (%d characters)", textproc.ErrNoContent, len(text))
	}

	return text, nil
}

// doExtract performs the HTTP request and content extraction. Called by
// Extract through the circuit breaker.
func (ex *ReadabilityExtractor) doExtract(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, ex.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", textproc.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := ex.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: request exceeded %v", textproc.ErrTimeout, ex.config.Timeout)
		}
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// Read with a limit so oversized pages cannot exhaust memory.
	limitedReader := io.LimitReader(resp.Body, ex.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > ex.config.MaxBodySize {
		return "", fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			textproc.ErrBodyTooLarge, len(htmlBytes), ex.config.MaxBodySize)
	}

	// Prefer the final URL after redirects for relative link resolution.
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		parsedURL = nil
	}
	if resp.Request != nil && resp.Request.URL != nil {
		parsedURL = resp.Request.URL
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), parsedURL)
	if err == nil && article.TextContent != "" {
		return utiltext.Clean(article.TextContent), nil
	}

	slog.Debug("readability extraction failed, falling back to paragraph scrape",
		slog.String("url", urlStr),
		slog.Any("error", err))

	return extractParagraphs(htmlBytes)
}

// extractParagraphs scrapes paragraph text from raw HTML. Used when the
// Readability algorithm cannot produce content, which happens on pages
// without a recognizable article structure.
func extractParagraphs(htmlBytes []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", textproc.ErrNoContent, err)
	}

	doc.Find("script, style, nav, header, footer, aside").Remove()

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if t != "" {
			parts = append(parts, t)
		}
	})

	if len(parts) == 0 {
		return "", textproc.ErrNoContent
	}

	return utiltext.Clean(strings.Join(parts, " ")), nil
}
