// Package explainer generates user-facing explanations for verification
// verdicts. It includes adapters for OpenAI and Claude APIs with
// reliability patterns, plus a template provider used when no LLM is
// configured. All providers degrade to the verdict templates rather
// than surfacing errors to the pipeline.
package explainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/resilience/retry"
)

// buildExplainPrompt constructs the explanation prompt shared by the LLM
// providers. Up to three citations are included for grounding.
func buildExplainPrompt(claim string, classification entity.Classification, citations []entity.Citation) string {
	var citationText strings.Builder
	if len(citations) > 0 {
		citationText.WriteString("\n\nRelevant sources found:\n")
		for i, citation := range citations {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&citationText, "- %s (%s)\n", citation.Title, citation.Source)
		}
	}

	return fmt.Sprintf(`As a medical expert, provide a clear, evidence-based explanation for this health claim classification.

Claim: %q
Classification: %s
Confidence: %d%%
%s
Write a comprehensive but accessible explanation that:
1. Explains why this claim is classified as %q
2. Provides scientific context and evidence
3. Uses clear, non-technical language
4. Mentions relevant health authorities when appropriate
5. Is 2-3 paragraphs long

Focus on being helpful and educational while maintaining scientific accuracy.`,
		claim, classification.Verdict, classification.Confidence, citationText.String(), classification.Verdict)
}

// OpenAI generates explanations using a GPT chat model.
//
// Thread safety: OpenAI is safe for concurrent use.
type OpenAI struct {
	client         *openai.Client
	model          string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewOpenAI creates an OpenAI explainer with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client:         openai.NewClient(apiKey),
		model:          openai.GPT4,
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
	}
}

// Explain generates an explanation for the classification of claim.
func (o *OpenAI) Explain(ctx context.Context, claim string, classification entity.Classification, citations []entity.Citation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	start := time.Now()
	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doExplain(ctx, claim, classification, citations)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		metrics.RecordExternalCall("openai", "error", time.Since(start))
		return "", fmt.Errorf("openai explain failed after retries: %w", retryErr)
	}

	metrics.RecordExternalCall("openai", "success", time.Since(start))
	return result, nil
}

// doExplain performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doExplain(ctx context.Context, claim string, classification entity.Classification, citations []entity.Citation) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildExplainPrompt(claim, classification, citations),
		}},
		MaxTokens:   500,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
