package config

// HTTPClientConfig holds the outbound HTTP settings shared by relay and direct fetches
type HTTPClientConfig struct {
	RequestTimeoutSecs int               `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"min=0"`
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
}

// NewDefaultHTTPClientConfig creates an HTTPClientConfig with default values.
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		RequestTimeoutSecs: DefaultRequestTimeoutSecs,
		UserAgent:          DefaultUserAgent,
		InsecureSkipVerify: DefaultInsecureSkipVerify,
		EnableHTTP2:        DefaultEnableHTTP2,
	}
}
