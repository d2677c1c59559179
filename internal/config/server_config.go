package config

// ServerConfig controls the optional HTTP API
type ServerConfig struct {
	ListenAddress      string `json:"listen_address,omitempty" yaml:"listen_address,omitempty" validate:"omitempty,hostport"`
	RequestTimeoutSecs int    `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"min=0"`
}

// NewDefaultServerConfig creates a ServerConfig with default values.
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddress:      DefaultServerListenAddress,
		RequestTimeoutSecs: DefaultServerRequestTimeoutSecs,
	}
}
