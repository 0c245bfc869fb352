// Package factcheck queries the Google Fact Check Tools API for published
// fact-check reviews matching a claim.
package factcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/resilience/retry"
)

const (
	defaultEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

	// maxQueryLength bounds the query sent to the API. Long claims carry
	// no extra signal for claim matching.
	maxQueryLength = 100

	// maxResults is how many matched claims are turned into citations.
	maxResults = 3
)

// Google queries the Fact Check Tools claims:search endpoint.
//
// Thread safety: Google is safe for concurrent use.
type Google struct {
	apiKey         string
	endpoint       string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// Option configures a Google fact-check client.
type Option func(*Google)

// WithEndpoint overrides the API endpoint. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(g *Google) {
		g.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Google) {
		g.client = client
	}
}

// NewGoogle creates a fact-check client using the given API key.
func NewGoogle(apiKey string, opts ...Option) *Google {
	g := &Google{
		apiKey:         apiKey,
		endpoint:       defaultEndpoint,
		client:         &http.Client{Timeout: 10 * time.Second},
		circuitBreaker: circuitbreaker.New(circuitbreaker.FactCheckAPIConfig()),
		retryConfig:    retry.LookupConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type claimsSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			ReviewDate    string `json:"reviewDate"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Search returns citations built from fact-check reviews matching the
// query. An empty slice with nil error means no reviews matched.
func (g *Google) Search(ctx context.Context, query string) ([]entity.Citation, error) {
	start := time.Now()
	var citations []entity.Citation

	retryErr := retry.WithBackoff(ctx, g.retryConfig, func() error {
		cbResult, err := g.circuitBreaker.Execute(func() (interface{}, error) {
			return g.doSearch(ctx, query)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("factcheck api circuit breaker open, request rejected",
					slog.String("service", "factcheck-api"),
					slog.String("state", g.circuitBreaker.State().String()))
				return fmt.Errorf("factcheck api unavailable: circuit breaker open")
			}
			return err
		}

		citations = cbResult.([]entity.Citation)
		return nil
	})

	if retryErr != nil {
		metrics.RecordExternalCall("factcheck", "error", time.Since(start))
		return nil, fmt.Errorf("factcheck search failed after retries: %w", retryErr)
	}

	metrics.RecordExternalCall("factcheck", "success", time.Since(start))
	return citations, nil
}

// doSearch performs the actual API call without retry or circuit breaker.
func (g *Google) doSearch(ctx context.Context, query string) ([]entity.Citation, error) {
	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("query", query)
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create factcheck request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("factcheck request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("factcheck API returned %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed claimsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode factcheck response: %w", err)
	}

	citations := make([]entity.Citation, 0, maxResults)
	for i, claim := range parsed.Claims {
		if i >= maxResults {
			break
		}

		citation := entity.Citation{
			Title:  claim.Text,
			Source: "Fact Checker",
			URL:    "#",
		}
		if citation.Title == "" {
			citation.Title = "Fact Check Result"
		}

		rating := "Unknown"
		if len(claim.ClaimReview) > 0 {
			review := claim.ClaimReview[0]
			if review.Publisher.Name != "" {
				citation.Source = review.Publisher.Name
			}
			if review.URL != "" {
				citation.URL = review.URL
			}
			citation.PublishedAt = review.ReviewDate
			if review.TextualRating != "" {
				rating = review.TextualRating
			}
		}
		citation.Summary = "Fact check rating: " + rating

		citations = append(citations, citation)
	}

	return citations, nil
}
