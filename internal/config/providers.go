package config

import (
	"os"
)

// ProvidersConfig holds credentials for the external services the
// verification pipeline calls. Every field is optional: an empty key
// means the corresponding step uses its fallback.
type ProvidersConfig struct {
	// HuggingFaceAPIKey enables the zero-shot classification tier.
	HuggingFaceAPIKey string

	// OpenAIAPIKey enables the LLM classification fallback tier and the
	// primary explanation generator.
	OpenAIAPIKey string

	// AnthropicAPIKey enables the Claude explanation generator, used as
	// an alternative to OpenAI when configured.
	AnthropicAPIKey string

	// FactCheckAPIKey enables Google Fact Check Tools lookups.
	FactCheckAPIKey string

	// TranslateAPIKey enables Google Translate for non-English claims.
	TranslateAPIKey string
}

// LoadProvidersFromEnv loads provider credentials from environment variables.
func LoadProvidersFromEnv() ProvidersConfig {
	return ProvidersConfig{
		HuggingFaceAPIKey: os.Getenv("HUGGINGFACE_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		FactCheckAPIKey:   os.Getenv("GOOGLE_FACTCHECK_API_KEY"),
		TranslateAPIKey:   os.Getenv("GOOGLE_TRANSLATE_API_KEY"),
	}
}

// HasClassifier reports whether the zero-shot classification tier is configured.
func (c ProvidersConfig) HasClassifier() bool { return c.HuggingFaceAPIKey != "" }

// HasOpenAI reports whether the OpenAI tier is configured.
func (c ProvidersConfig) HasOpenAI() bool { return c.OpenAIAPIKey != "" }

// HasClaude reports whether the Claude explainer is configured.
func (c ProvidersConfig) HasClaude() bool { return c.AnthropicAPIKey != "" }

// HasFactCheck reports whether fact-check lookups are configured.
func (c ProvidersConfig) HasFactCheck() bool { return c.FactCheckAPIKey != "" }

// HasTranslate reports whether translation is configured.
func (c ProvidersConfig) HasTranslate() bool { return c.TranslateAPIKey != "" }
