// Package technical fetches robots.txt and sitemap.xml from a site root.
// Both files are optional: any failure is logged and the file is skipped.
package technical

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aleister1102/assetscout/internal/httpclient"
	"github.com/aleister1102/assetscout/internal/metrics"
	"github.com/aleister1102/assetscout/internal/models"
	"github.com/antchfx/xmlquery"
	"github.com/rs/zerolog"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/errgroup"
)

// File names as used in metric labels and asset IDs
const (
	FileRobots  = "robots"
	FileSitemap = "sitemap"
)

var (
	// ErrHTMLBody marks a robots.txt answered by an HTML page (soft 404)
	ErrHTMLBody = errors.New("body is an HTML document")
	// ErrNotSitemap marks an XML document whose root is neither urlset nor sitemapindex
	ErrNotSitemap = errors.New("document is not a sitemap")
)

// ContentFetcher is satisfied by *httpclient.HTTPClient
type ContentFetcher interface {
	FetchContent(input httpclient.FetchContentInput) (*httpclient.FetchContentResult, error)
}

// Checker collects the technical files of a site
type Checker struct {
	client   ContentFetcher
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	parallel bool
}

// NewChecker creates a Checker. The client should follow redirects.
func NewChecker(client ContentFetcher, logger zerolog.Logger) *Checker {
	return &Checker{
		client:   client,
		logger:   logger.With().Str("component", "TechnicalChecker").Logger(),
		parallel: true,
	}
}

// WithMetrics attaches side-fetch counters
func (c *Checker) WithMetrics(m *metrics.Metrics) *Checker {
	c.metrics = m
	return c
}

// WithParallel toggles concurrent fetching of the two files
func (c *Checker) WithParallel(parallel bool) *Checker {
	c.parallel = parallel
	return c
}

type fileCheck struct {
	name     string
	path     string
	title    string
	accept   string
	validate func(body []byte) error
	inspect  func(logger zerolog.Logger, body []byte)
}

var checks = []fileCheck{
	{
		name:     FileRobots,
		path:     "/robots.txt",
		title:    "robots.txt",
		accept:   "text/plain,*/*;q=0.8",
		validate: validateRobots,
		inspect:  inspectRobots,
	},
	{
		name:     FileSitemap,
		path:     "/sitemap.xml",
		title:    "sitemap.xml",
		accept:   "application/xml,text/xml;q=0.9,*/*;q=0.8",
		validate: validateSitemap,
		inspect:  inspectSitemap,
	},
}

// Collect returns a robots asset then a sitemap asset, each only when the
// file was retrieved and looks like what it claims to be.
func (c *Checker) Collect(ctx context.Context, domain string, baseURL *url.URL, now time.Time) []models.Asset {
	results := make([]*models.Asset, len(checks))

	if c.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, check := range checks {
			g.Go(func() error {
				results[i] = c.check(gctx, check, domain, baseURL, now)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, check := range checks {
			results[i] = c.check(ctx, check, domain, baseURL, now)
		}
	}

	var assets []models.Asset
	for _, a := range results {
		if a != nil {
			assets = append(assets, *a)
		}
	}
	return assets
}

func (c *Checker) check(ctx context.Context, check fileCheck, domain string, baseURL *url.URL, now time.Time) *models.Asset {
	fileURL := baseURL.ResolveReference(&url.URL{Path: check.path}).String()

	result, err := c.client.FetchContent(httpclient.FetchContentInput{
		URL:     fileURL,
		Accept:  check.accept,
		Context: ctx,
	})
	if err == nil {
		err = check.validate(result.Content)
	}
	if err != nil {
		outcome := metrics.OutcomeFailure
		if ctx.Err() != nil {
			outcome = metrics.OutcomeCanceled
		} else if errors.Is(err, ErrHTMLBody) || errors.Is(err, ErrNotSitemap) {
			outcome = metrics.OutcomeInvalid
		}
		c.metrics.IncSideFetch(check.name, outcome)
		c.logger.Warn().Err(err).Str("url", fileURL).Str("file", check.name).Msg("Technical file skipped")
		return nil
	}

	c.metrics.IncSideFetch(check.name, metrics.OutcomeSuccess)
	c.logger.Debug().Str("url", fileURL).Int("size", len(result.Content)).Msg("Technical file fetched")
	if check.inspect != nil {
		check.inspect(c.logger.With().Str("url", fileURL).Logger(), result.Content)
	}

	return &models.Asset{
		ID:           check.name,
		Type:         models.AssetType(check.name),
		Title:        check.title,
		Description:  string(result.Content),
		URL:          fileURL,
		SourceDomain: domain,
		CreatedAt:    now,
	}
}

// validateRobots rejects HTML pages served in place of a missing robots.txt.
// Syntax quirks are tolerated since crawlers apply robots.txt leniently.
func validateRobots(body []byte) error {
	head := strings.ToLower(strings.TrimSpace(string(firstBytes(body, 512))))
	if strings.HasPrefix(head, "<") || strings.Contains(head, "<html") {
		return ErrHTMLBody
	}
	return nil
}

func inspectRobots(logger zerolog.Logger, body []byte) {
	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		logger.Debug().Err(err).Msg("robots.txt has syntax errors")
		return
	}
	logger.Debug().
		Strs("sitemaps", robots.Sitemaps).
		Bool("root_allowed", robots.TestAgent("/", "*")).
		Msg("Parsed robots.txt")
}

func validateSitemap(body []byte) error {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse sitemap: %w", err)
	}
	root := rootElement(doc)
	if root == nil {
		return ErrNotSitemap
	}
	switch root.Data {
	case "urlset", "sitemapindex":
		return nil
	default:
		return fmt.Errorf("%w: root element <%s>", ErrNotSitemap, root.Data)
	}
}

func inspectSitemap(logger zerolog.Logger, body []byte) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return
	}
	locs := xmlquery.Find(doc, "//*[local-name()='loc']")
	logger.Debug().Int("locations", len(locs)).Msg("Parsed sitemap")
}

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

func firstBytes(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
