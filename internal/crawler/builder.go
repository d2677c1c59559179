package crawler

import (
	"os"
	"time"

	"github.com/aleister1102/assetscout/internal/common"
	"github.com/aleister1102/assetscout/internal/config"
	"github.com/aleister1102/assetscout/internal/extractor"
	"github.com/aleister1102/assetscout/internal/fetcher"
	"github.com/aleister1102/assetscout/internal/httpclient"
	"github.com/aleister1102/assetscout/internal/metrics"
	"github.com/aleister1102/assetscout/internal/technical"
	"github.com/aleister1102/assetscout/internal/urlhandler"
	"github.com/rs/zerolog"
)

// Redirect cap for the direct client used by technical-file fetches
const technicalMaxRedirects = 5

// CrawlerBuilder provides a fluent interface for creating Crawler instances
type CrawlerBuilder struct {
	config     *config.GlobalConfig
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	fetcher    PageFetcher
	technical  TechnicalCollector
	extractors []extractor.Extractor
	extraHosts []string
	hostname   func() (string, error)
	now        func() time.Time
}

// NewCrawlerBuilder creates a new CrawlerBuilder instance
func NewCrawlerBuilder(logger zerolog.Logger) *CrawlerBuilder {
	return &CrawlerBuilder{
		logger:   logger.With().Str("module", "Crawler").Logger(),
		hostname: os.Hostname,
		now:      time.Now,
	}
}

// WithConfig sets the application configuration
func (cb *CrawlerBuilder) WithConfig(cfg *config.GlobalConfig) *CrawlerBuilder {
	cb.config = cfg
	return cb
}

// WithMetrics attaches Prometheus metrics to the crawler and the components it builds
func (cb *CrawlerBuilder) WithMetrics(m *metrics.Metrics) *CrawlerBuilder {
	cb.metrics = m
	return cb
}

// WithFetcher replaces the relay fetcher built from config
func (cb *CrawlerBuilder) WithFetcher(f PageFetcher) *CrawlerBuilder {
	cb.fetcher = f
	return cb
}

// WithTechnical replaces the technical-file checker built from config
func (cb *CrawlerBuilder) WithTechnical(t TechnicalCollector) *CrawlerBuilder {
	cb.technical = t
	return cb
}

// WithExtractors replaces extractor.Default()
func (cb *CrawlerBuilder) WithExtractors(extractors []extractor.Extractor) *CrawlerBuilder {
	cb.extractors = extractors
	return cb
}

// WithSelfHosts adds hosts to the configured self-host list
func (cb *CrawlerBuilder) WithSelfHosts(hosts ...string) *CrawlerBuilder {
	cb.extraHosts = append(cb.extraHosts, hosts...)
	return cb
}

// WithClock overrides the time source used for asset timestamps
func (cb *CrawlerBuilder) WithClock(now func() time.Time) *CrawlerBuilder {
	cb.now = now
	return cb
}

// Build creates a new Crawler instance with the configured settings
func (cb *CrawlerBuilder) Build() (*Crawler, error) {
	if cb.config == nil {
		return nil, common.NewValidationError("config", nil, "global config cannot be nil")
	}
	cfg := cb.config.CrawlerConfig

	if err := urlhandler.ValidateTemplate(cfg.ScreenshotURLTemplate); err != nil {
		return nil, common.NewConfigurationError("crawler_config", "screenshot_url_template", err.Error())
	}

	pageFetcher := cb.fetcher
	if pageFetcher == nil {
		f, err := cb.buildFetcher()
		if err != nil {
			return nil, common.WrapError(err, "failed to build fetcher")
		}
		pageFetcher = f
	}

	collector := cb.technical
	if collector == nil && cfg.FetchTechnicalFiles {
		t, err := cb.buildTechnical()
		if err != nil {
			return nil, common.WrapError(err, "failed to build technical checker")
		}
		collector = t
	}

	extractors := cb.extractors
	if extractors == nil {
		extractors = extractor.Default()
	}

	c := &Crawler{
		fetcher:            pageFetcher,
		technical:          collector,
		extractors:         extractors,
		selfHosts:          cb.buildSelfHosts(),
		screenshotTemplate: cfg.ScreenshotURLTemplate,
		logger:             cb.logger,
		metrics:            cb.metrics,
		now:                cb.now,
	}

	cb.logger.Debug().
		Strs("self_hosts", c.selfHosts.Hosts()).
		Int("extractors", len(extractors)).
		Bool("technical_files", collector != nil).
		Msg("Crawler built")

	return c, nil
}

func (cb *CrawlerBuilder) buildFetcher() (*fetcher.ResilientFetcher, error) {
	client, err := httpclient.NewHTTPClientBuilder(cb.logger).
		WithAppConfig(cb.config.HTTPClientConfig).
		WithFollowRedirects(false).
		WithMaxContentSize(cb.config.FetcherConfig.MaxBodyBytes).
		Build()
	if err != nil {
		return nil, err
	}

	f, err := fetcher.NewFromConfig(client, cb.config.FetcherConfig, cb.logger)
	if err != nil {
		return nil, err
	}
	return f.WithMetrics(cb.metrics), nil
}

func (cb *CrawlerBuilder) buildTechnical() (*technical.Checker, error) {
	client, err := httpclient.NewHTTPClientBuilder(cb.logger).
		WithAppConfig(cb.config.HTTPClientConfig).
		WithFollowRedirects(true).
		WithMaxRedirects(technicalMaxRedirects).
		WithMaxContentSize(cb.config.FetcherConfig.MaxBodyBytes).
		Build()
	if err != nil {
		return nil, err
	}

	return technical.NewChecker(client, cb.logger).
		WithMetrics(cb.metrics).
		WithParallel(cb.config.CrawlerConfig.TechnicalFilesParallel), nil
}

func (cb *CrawlerBuilder) buildSelfHosts() urlhandler.HostSet {
	hosts := urlhandler.NewHostSet(cb.config.CrawlerConfig.SelfHosts...)
	for _, h := range cb.extraHosts {
		hosts = hosts.With(h)
	}

	if cb.config.CrawlerConfig.IncludeMachineHostname {
		name, err := cb.hostname()
		if err != nil {
			cb.logger.Warn().Err(err).Msg("Could not determine machine hostname, not adding it to self hosts")
		} else {
			hosts = hosts.With(name)
		}
	}
	return hosts
}
