package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
	"medverify/internal/resilience/circuitbreaker"
	"medverify/internal/resilience/retry"
)

const classifyPrompt = `You are a medical fact-checking expert. Classify the following health claim as exactly one of: true, misleading, needs review.

Respond with only the verdict and your confidence (0-100) separated by a pipe character, for example: misleading|78

Claim: %s`

// OpenAI classifies claims with a chat completion model. It serves as
// the second classification tier when the zero-shot provider fails.
//
// Thread safety: OpenAI is safe for concurrent use.
type OpenAI struct {
	client         *openai.Client
	model          string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewOpenAI creates an LLM classifier with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client:         openai.NewClient(apiKey),
		model:          openai.GPT4,
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
	}
}

// Classify asks the model for a verdict and confidence on the claim.
func (o *OpenAI) Classify(ctx context.Context, claim string) (entity.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	start := time.Now()
	var result entity.Classification

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doClassify(ctx, claim)
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

		result = cbResult.(entity.Classification)
		return nil
	})

	if retryErr != nil {
		metrics.RecordExternalCall("openai", "error", time.Since(start))
		return entity.Classification{}, fmt.Errorf("llm classification failed after retries: %w", retryErr)
	}

	metrics.RecordExternalCall("openai", "success", time.Since(start))
	return result, nil
}

// doClassify performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doClassify(ctx context.Context, claim string) (entity.Classification, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(classifyPrompt, claim),
		}},
		MaxTokens:   20,
		Temperature: 0,
	})
	if err != nil {
		return entity.Classification{}, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return entity.Classification{}, fmt.Errorf("openai api returned empty response")
	}

	return parseVerdictResponse(resp.Choices[0].Message.Content), nil
}

// parseVerdictResponse parses "verdict|confidence" model output. Malformed
// output degrades to needs review at 50 rather than failing, since by
// this point both classification tiers have been spent.
func parseVerdictResponse(content string) entity.Classification {
	content = strings.TrimSpace(strings.ToLower(content))

	verdictPart := content
	confidence := 50

	if idx := strings.Index(content, "|"); idx >= 0 {
		verdictPart = strings.TrimSpace(content[:idx])
		confPart := strings.TrimSpace(content[idx+1:])
		if parsed, err := strconv.Atoi(confPart); err == nil {
			confidence = parsed
		}
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return entity.Classification{
		Verdict:    entity.ParseVerdict(verdictPart),
		Confidence: confidence,
	}
}
