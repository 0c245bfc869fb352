package explainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/resilience/retry"
)

// Claude generates explanations using Anthropic's Claude API.
//
// Thread safety: Claude is safe for concurrent use.
type Claude struct {
	client         anthropic.Client
	model          anthropic.Model
	maxTokens      int64
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewClaude creates a Claude explainer with the given API key.
func NewClaude(apiKey string) *Claude {
	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:          anthropic.ModelClaudeSonnet4_5_20250929,
		maxTokens:      1024,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
	}
}

// Explain generates an explanation for the classification of claim.
func (c *Claude) Explain(ctx context.Context, claim string, classification entity.Classification, citations []entity.Citation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	start := time.Now()
	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doExplain(ctx, claim, classification, citations)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		metrics.RecordExternalCall("claude", "error", time.Since(start))
		return "", fmt.Errorf("claude explain failed after retries: %w", retryErr)
	}

	metrics.RecordExternalCall("claude", "success", time.Since(start))
	return result, nil
}

// doExplain performs the actual API call without retry or circuit breaker.
func (c *Claude) doExplain(ctx context.Context, claim string, classification entity.Classification, citations []entity.Citation) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildExplainPrompt(claim, classification, citations)),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	return strings.TrimSpace(textBlock.Text), nil
}
