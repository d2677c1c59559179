package config

const (
	// Crawler Defaults
	DefaultScreenshotURLTemplate   = "https://r.screenshotapi.net/api/v1/screenshot?url={url}&token=demo"
	DefaultFetchTechnicalFiles     = true
	DefaultIncludeMachineHostname  = false
	DefaultTechnicalFilesParallel  = true
	DefaultCrawlerConfigPathEnvVar = "ASSETSCOUT_CONFIG_PATH"

	// Fetcher Defaults
	DefaultMinContentLength = 50
	DefaultMaxBodyBytes     = 10 * 1024 * 1024

	// HTTP Client Defaults
	DefaultUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultRequestTimeoutSecs = 0 // no client-side timeout; callers bound latency through context
	DefaultInsecureSkipVerify = false
	DefaultEnableHTTP2        = true

	// Server Defaults
	DefaultServerListenAddress      = "127.0.0.1:8080"
	DefaultServerRequestTimeoutSecs = 60

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// DefaultSelfHosts are always treated as the crawler's own origin
var DefaultSelfHosts = []string{"localhost", "127.0.0.1", "::1"}

// DefaultRelayStrategies is the ordered relay list tried for every homepage fetch
func DefaultRelayStrategies() []StrategyConfig {
	return []StrategyConfig{
		{Name: "allorigins", URLTemplate: "https://api.allorigins.win/raw?url={url}"},
		{Name: "jina", URLTemplate: "https://r.jina.ai/http://{host_path}"},
	}
}
