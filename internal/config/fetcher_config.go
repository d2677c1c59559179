package config

// StrategyConfig describes one relay endpoint used to retrieve a homepage
type StrategyConfig struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	URLTemplate string `json:"url_template" yaml:"url_template" validate:"required,urltemplate"`
}

// FetcherConfig controls the resilient homepage fetcher
type FetcherConfig struct {
	Strategies       []StrategyConfig `json:"strategies,omitempty" yaml:"strategies,omitempty" validate:"required,min=1,dive"`
	MinContentLength int              `json:"min_content_length,omitempty" yaml:"min_content_length,omitempty" validate:"min=0"`
	MaxBodyBytes     int64            `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty" validate:"min=0"`
}

// NewDefaultFetcherConfig creates a FetcherConfig with default values.
func NewDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Strategies:       DefaultRelayStrategies(),
		MinContentLength: DefaultMinContentLength,
		MaxBodyBytes:     DefaultMaxBodyBytes,
	}
}
