// Package crawler assembles the asset list of a domain: it fetches the homepage,
// runs every extractor against it, adds the technical files and a preview asset,
// and drops anything pointing back at the crawler itself.
package crawler

import (
	"context"
	"net/url"
	"time"

	"github.com/aleister1102/assetscout/internal/extractor"
	"github.com/aleister1102/assetscout/internal/metrics"
	"github.com/aleister1102/assetscout/internal/models"
	"github.com/aleister1102/assetscout/internal/urlhandler"
	"github.com/rs/zerolog"
)

// PageFetcher retrieves homepage markup; *fetcher.ResilientFetcher implements it
type PageFetcher interface {
	Fetch(ctx context.Context, target string) (string, error)
}

// TechnicalCollector gathers robots.txt and sitemap.xml; *technical.Checker implements it
type TechnicalCollector interface {
	Collect(ctx context.Context, domain string, baseURL *url.URL, now time.Time) []models.Asset
}

// Crawler holds no per-crawl state; Assemble may be called concurrently.
type Crawler struct {
	fetcher            PageFetcher
	technical          TechnicalCollector
	extractors         []extractor.Extractor
	selfHosts          urlhandler.HostSet
	screenshotTemplate string
	logger             zerolog.Logger
	metrics            *metrics.Metrics
	now                func() time.Time
}

// SelfHosts returns the hostnames filtered out of every result
func (c *Crawler) SelfHosts() urlhandler.HostSet {
	return c.selfHosts
}

// WithSelfHost returns a shallow copy of c that also filters host.
// Used by the API server to add its own listen address.
func (c *Crawler) WithSelfHost(host string) *Crawler {
	clone := *c
	clone.selfHosts = c.selfHosts.With(host)
	return &clone
}
