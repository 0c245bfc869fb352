package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default upstream endpoints for the news sources.
const (
	defaultWHOFeedURL    = "https://www.who.int/rss-feeds/news-english.xml"
	defaultCDCFeedURL    = "https://tools.cdc.gov/api/v2/resources/media/132608.rss"
	defaultPubMedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
)

// FeedsConfig holds the upstream endpoints for the news sources. All
// fields have production defaults; a YAML file can override them for
// staging or testing against mirrored feeds.
type FeedsConfig struct {
	WHOFeedURL    string `yaml:"who_feed_url"`
	CDCFeedURL    string `yaml:"cdc_feed_url"`
	PubMedBaseURL string `yaml:"pubmed_base_url"`
}

// DefaultFeedsConfig returns the production feed endpoints.
func DefaultFeedsConfig() FeedsConfig {
	return FeedsConfig{
		WHOFeedURL:    defaultWHOFeedURL,
		CDCFeedURL:    defaultCDCFeedURL,
		PubMedBaseURL: defaultPubMedBaseURL,
	}
}

// LoadFeedsConfig returns the feed endpoints, applying overrides from
// the YAML file named by NEWS_FEEDS_FILE when set. Empty fields in the
// file keep their defaults.
func LoadFeedsConfig() (FeedsConfig, error) {
	cfg := DefaultFeedsConfig()

	path := os.Getenv("NEWS_FEEDS_FILE")
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read feeds file %s: %w", path, err)
	}

	var overrides FeedsConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return cfg, fmt.Errorf("parse feeds file %s: %w", path, err)
	}

	if overrides.WHOFeedURL != "" {
		cfg.WHOFeedURL = overrides.WHOFeedURL
	}
	if overrides.CDCFeedURL != "" {
		cfg.CDCFeedURL = overrides.CDCFeedURL
	}
	if overrides.PubMedBaseURL != "" {
		cfg.PubMedBaseURL = strings.TrimSuffix(overrides.PubMedBaseURL, "/")
	}

	return cfg, nil
}
