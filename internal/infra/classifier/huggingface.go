// Package classifier provides claim classification providers. The primary
// provider is a hosted zero-shot model; an LLM provider serves as the
// second tier when the primary is unavailable.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/resilience/retry"
)

const (
	defaultModel   = "facebook/bart-large-mnli"
	defaultBaseURL = "https://api-inference.huggingface.co/models/"
)

// candidateLabels are the zero-shot labels, matching the verdict values
// the rest of the pipeline understands.
var candidateLabels = []string{
	string(entity.VerdictTrue),
	string(entity.VerdictMisleading),
	string(entity.VerdictNeedsReview),
}

// HuggingFace classifies claims with a hosted zero-shot NLI model.
// Calls run through a circuit breaker and retry with backoff, since the
// hosted inference API cold-starts models and returns transient errors.
//
// Thread safety: HuggingFace is safe for concurrent use.
type HuggingFace struct {
	apiKey         string
	endpoint       string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// HFOption configures a HuggingFace classifier.
type HFOption func(*HuggingFace)

// WithEndpoint overrides the full model endpoint URL. Used in tests.
func WithEndpoint(endpoint string) HFOption {
	return func(h *HuggingFace) {
		h.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) HFOption {
	return func(h *HuggingFace) {
		h.client = client
	}
}

// NewHuggingFace creates a zero-shot classifier for the given model.
// Pass model as "" to use the default NLI model.
func NewHuggingFace(apiKey, model string, opts ...HFOption) *HuggingFace {
	if model == "" {
		model = defaultModel
	}

	h := &HuggingFace{
		apiKey:         apiKey,
		endpoint:       defaultBaseURL + model,
		client:         &http.Client{Timeout: 30 * time.Second},
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClassifierAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type zeroShotRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		CandidateLabels []string `json:"candidate_labels"`
		MultiLabel      bool     `json:"multi_label"`
	} `json:"parameters"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify runs zero-shot classification on the claim and returns the
// top label as a verdict with its score scaled to 0-100.
func (h *HuggingFace) Classify(ctx context.Context, claim string) (entity.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	start := time.Now()
	var result entity.Classification

	retryErr := retry.WithBackoff(ctx, h.retryConfig, func() error {
		cbResult, err := h.circuitBreaker.Execute(func() (interface{}, error) {
			return h.doClassify(ctx, claim)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("classifier api circuit breaker open, request rejected",
					slog.String("service", "classifier-api"),
					slog.String("state", h.circuitBreaker.State().String()))
				return fmt.Errorf("classifier api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(entity.Classification)
		return nil
	})

	if retryErr != nil {
		metrics.RecordExternalCall("classifier", "error", time.Since(start))
		return entity.Classification{}, fmt.Errorf("zero-shot classification failed after retries: %w", retryErr)
	}

	metrics.RecordExternalCall("classifier", "success", time.Since(start))
	return result, nil
}

// doClassify performs the actual API call without retry or circuit breaker.
func (h *HuggingFace) doClassify(ctx context.Context, claim string) (entity.Classification, error) {
	reqBody := zeroShotRequest{Inputs: claim}
	reqBody.Parameters.CandidateLabels = candidateLabels
	reqBody.Parameters.MultiLabel = false

	body, err := json.Marshal(reqBody)
	if err != nil {
		return entity.Classification{}, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return entity.Classification{}, fmt.Errorf("failed to create classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return entity.Classification{}, fmt.Errorf("classify request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		// 503 while the hosted model loads is common and retryable.
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return entity.Classification{}, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("classifier API returned %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed zeroShotResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return entity.Classification{}, fmt.Errorf("failed to decode classify response: %w", err)
	}

	if len(parsed.Labels) == 0 || len(parsed.Scores) == 0 {
		return entity.Classification{}, fmt.Errorf("classifier API returned empty result")
	}

	confidence := int(parsed.Scores[0] * 100)
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	return entity.Classification{
		Verdict:    entity.ParseVerdict(parsed.Labels[0]),
		Confidence: confidence,
	}, nil
}
