package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigFromEnv_Defaults(t *testing.T) {
	cfg := LoadServerConfigFromEnv()

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "dev", cfg.Version)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEBUG", "true")
	t.Setenv("APP_VERSION", "1.4.0")
	t.Setenv("REQUEST_TIMEOUT", "30s")

	cfg := LoadServerConfigFromEnv()

	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "1.4.0", cfg.Version)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{"valid defaults", func(c *ServerConfig) {}, false},
		{"port zero", func(c *ServerConfig) { c.Port = 0 }, true},
		{"port too large", func(c *ServerConfig) { c.Port = 70000 }, true},
		{"zero timeout", func(c *ServerConfig) { c.RequestTimeout = 0 }, true},
		{"zero rate limit", func(c *ServerConfig) { c.RateLimitPerMinute = 0 }, true},
		{"negative warm interval", func(c *ServerConfig) { c.NewsWarmInterval = -time.Minute }, true},
		{"zero warm interval allowed", func(c *ServerConfig) { c.NewsWarmInterval = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadServerConfigFromEnv()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadProvidersFromEnv(t *testing.T) {
	t.Setenv("HUGGINGFACE_API_KEY", "hf_test")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := LoadProvidersFromEnv()

	assert.True(t, cfg.HasClassifier())
	assert.False(t, cfg.HasOpenAI())
	assert.False(t, cfg.HasClaude())
}

func TestLoadFeedsConfig_Defaults(t *testing.T) {
	cfg, err := LoadFeedsConfig()
	require.NoError(t, err)

	assert.Contains(t, cfg.WHOFeedURL, "who.int")
	assert.Contains(t, cfg.CDCFeedURL, "cdc.gov")
	assert.Contains(t, cfg.PubMedBaseURL, "ncbi.nlm.nih.gov")
}

func TestLoadFeedsConfig_YAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := "who_feed_url: https://mirror.example/who.xml\npubmed_base_url: https://mirror.example/eutils/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("NEWS_FEEDS_FILE", path)

	cfg, err := LoadFeedsConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example/who.xml", cfg.WHOFeedURL)
	assert.Equal(t, "https://mirror.example/eutils", cfg.PubMedBaseURL)
	assert.Contains(t, cfg.CDCFeedURL, "cdc.gov", "unset fields keep defaults")
}

func TestLoadFeedsConfig_MissingFile(t *testing.T) {
	t.Setenv("NEWS_FEEDS_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadFeedsConfig()
	assert.Error(t, err)
}
