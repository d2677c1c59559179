package crawler

import (
	"context"
	"errors"
	"time"

	"github.com/aleister1102/assetscout/internal/common"
	"github.com/aleister1102/assetscout/internal/extractor"
	"github.com/aleister1102/assetscout/internal/fetcher"
	"github.com/aleister1102/assetscout/internal/metrics"
	"github.com/aleister1102/assetscout/internal/models"
	"github.com/aleister1102/assetscout/internal/parser"
	"github.com/aleister1102/assetscout/internal/urlhandler"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FallbackAssetID identifies the preview asset seeded into every successful crawl
const FallbackAssetID = "fallback-shot"

// Assemble crawls domain and returns its assets in extractor order, preceded by
// the preview asset. An invalid domain yields a *common.ValidationError, an
// unreachable homepage a *models.UnfetchableError. Extraction and side-fetch
// problems never fail the crawl.
func (c *Crawler) Assemble(ctx context.Context, domain string) ([]models.Asset, error) {
	start := time.Now()
	crawlLogger := c.logger.With().Str("crawl_id", uuid.NewString()).Logger()

	assets, err := c.assemble(ctx, domain, crawlLogger)

	outcome := outcomeOf(err)
	c.metrics.ObserveAssemble(outcome, time.Since(start))
	if err != nil {
		crawlLogger.Warn().Err(err).Str("domain", domain).Str("outcome", outcome).Msg("Crawl failed")
		return nil, err
	}

	for assetType, n := range models.CountByType(assets) {
		c.metrics.AddAssets(string(assetType), n)
	}
	crawlLogger.Info().
		Str("domain", domain).
		Int("assets", len(assets)).
		Dur("elapsed", time.Since(start)).
		Msg("Crawl completed")
	return assets, nil
}

func (c *Crawler) assemble(ctx context.Context, rawDomain string, logger zerolog.Logger) ([]models.Asset, error) {
	domain, err := urlhandler.NormalizeDomain(rawDomain)
	if err != nil {
		return nil, common.NewValidationError("domain", rawDomain, err.Error())
	}
	baseURL, err := urlhandler.BaseURL(domain)
	if err != nil {
		return nil, common.NewValidationError("domain", rawDomain, err.Error())
	}
	target := baseURL.String()
	logger = logger.With().Str("domain", domain).Logger()

	text, err := c.fetcher.Fetch(ctx, target)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var attempts *fetcher.AttemptsError
		if errors.As(err, &attempts) {
			return nil, models.NewUnfetchableError(domain, target, attempts.Errors())
		}
		return nil, models.NewUnfetchableError(domain, target, []error{err})
	}

	now := c.now()
	page := extractor.Page{
		BaseURL:   baseURL,
		Domain:    domain,
		Now:       now,
		SelfHosts: c.selfHosts,
	}

	preview, err := c.previewAsset(page)
	if err != nil {
		return nil, err
	}
	assets := []models.Asset{preview}

	doc, err := parser.Parse(text)
	if err != nil {
		// Unparseable markup still yields the preview and technical files.
		logger.Warn().Err(err).Msg("Markup could not be parsed, skipping extractors")
	}

	var partial common.ErrorCollector
	for _, e := range c.extractors {
		found, err := extractor.SafeRun(e, doc, page)
		if err != nil {
			c.metrics.IncExtractorPanic(e.Name)
			partial.AddWithContext(err, e.Name)
			continue
		}
		assets = append(assets, found...)
	}
	if partial.HasErrors() {
		logger.Warn().Err(partial.Error()).Int("failed_extractors", len(partial.Errors())).Msg("Extraction partially failed")
	}

	if c.technical != nil {
		assets = append(assets, c.technical.Collect(ctx, domain, baseURL, now)...)
	}

	return c.dropSelfReferences(assets, logger), nil
}

// previewAsset builds the screenshot asset pointing at the rendering endpoint
func (c *Crawler) previewAsset(page extractor.Page) (models.Asset, error) {
	shotURL, err := urlhandler.ExpandTemplate(c.screenshotTemplate, page.URL())
	if err != nil {
		return models.Asset{}, common.WrapError(err, "failed to build preview URL")
	}
	return models.Asset{
		ID:           FallbackAssetID,
		Type:         models.AssetTypeScreenshot,
		Title:        "Site preview",
		URL:          shotURL,
		SourceDomain: page.Domain,
		CreatedAt:    page.Now,
	}, nil
}

// dropSelfReferences removes assets whose URL host is one of the crawler's own
// hosts. The target domain itself is never filtered.
func (c *Crawler) dropSelfReferences(assets []models.Asset, logger zerolog.Logger) []models.Asset {
	kept := assets[:0]
	dropped := 0
	for _, a := range assets {
		if c.selfHosts.ContainsURL(a.URL) {
			dropped++
			continue
		}
		kept = append(kept, a)
	}
	if dropped > 0 {
		logger.Debug().Int("dropped", dropped).Msg("Dropped self-referential assets")
	}
	return kept
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case models.IsUnfetchable(err):
		return metrics.OutcomeUnfetchable
	case errors.Is(err, common.ErrInvalidInput):
		return metrics.OutcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailure
	}
}
