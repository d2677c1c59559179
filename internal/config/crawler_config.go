package config

// CrawlerConfig controls asset assembly
type CrawlerConfig struct {
	// SelfHosts are hostnames the crawler itself is served from; assets pointing at them are dropped.
	SelfHosts              []string `json:"self_hosts,omitempty" yaml:"self_hosts,omitempty" validate:"dive,required"`
	IncludeMachineHostname bool     `json:"include_machine_hostname" yaml:"include_machine_hostname"`
	ScreenshotURLTemplate  string   `json:"screenshot_url_template,omitempty" yaml:"screenshot_url_template,omitempty" validate:"required,urltemplate"`
	FetchTechnicalFiles    bool     `json:"fetch_technical_files" yaml:"fetch_technical_files"`
	TechnicalFilesParallel bool     `json:"technical_files_parallel" yaml:"technical_files_parallel"`
}

// NewDefaultCrawlerConfig creates a CrawlerConfig with default values.
func NewDefaultCrawlerConfig() CrawlerConfig {
	selfHosts := make([]string, len(DefaultSelfHosts))
	copy(selfHosts, DefaultSelfHosts)

	return CrawlerConfig{
		SelfHosts:              selfHosts,
		IncludeMachineHostname: DefaultIncludeMachineHostname,
		ScreenshotURLTemplate:  DefaultScreenshotURLTemplate,
		FetchTechnicalFiles:    DefaultFetchTechnicalFiles,
		TechnicalFilesParallel: DefaultTechnicalFilesParallel,
	}
}
