// Package fetcher retrieves homepage markup through an ordered list of relay strategies.
package fetcher

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aleister1102/assetscout/internal/config"
	"github.com/aleister1102/assetscout/internal/httpclient"
	"github.com/aleister1102/assetscout/internal/metrics"
	"github.com/aleister1102/assetscout/internal/parser"
	"github.com/aleister1102/assetscout/internal/urlhandler"
	"github.com/rs/zerolog"
)

// ResilientFetcher tries each strategy in order and returns the first usable page.
// It is safe for concurrent use.
type ResilientFetcher struct {
	client           *httpclient.HTTPClient
	strategies       []Strategy
	minContentLength int
	logger           zerolog.Logger
	metrics          *metrics.Metrics
}

// NewResilientFetcher creates a fetcher. The client must not follow redirects on its own.
func NewResilientFetcher(client *httpclient.HTTPClient, strategies []Strategy, minContentLength int, logger zerolog.Logger) *ResilientFetcher {
	return &ResilientFetcher{
		client:           client,
		strategies:       strategies,
		minContentLength: minContentLength,
		logger:           logger.With().Str("component", "ResilientFetcher").Logger(),
	}
}

// NewFromConfig builds a fetcher from the fetcher_config section
func NewFromConfig(client *httpclient.HTTPClient, cfg config.FetcherConfig, logger zerolog.Logger) (*ResilientFetcher, error) {
	strategies, err := StrategiesFromConfig(cfg.Strategies)
	if err != nil {
		return nil, err
	}
	if len(strategies) == 0 {
		return nil, ErrNoStrategies
	}
	return NewResilientFetcher(client, strategies, cfg.MinContentLength, logger), nil
}

// WithMetrics attaches attempt counters
func (f *ResilientFetcher) WithMetrics(m *metrics.Metrics) *ResilientFetcher {
	f.metrics = m
	return f
}

// Strategies returns the strategy names in attempt order
func (f *ResilientFetcher) Strategies() []string {
	names := make([]string, 0, len(f.strategies))
	for _, s := range f.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Fetch returns the page text from the first strategy that succeeds.
// When all fail it returns an *AttemptsError matching ErrNoUsableContent.
// A canceled ctx stops the pass and its error is returned as-is.
func (f *ResilientFetcher) Fetch(ctx context.Context, target string) (string, error) {
	if len(f.strategies) == 0 {
		return "", ErrNoStrategies
	}

	attempts := &AttemptsError{Target: target}
	for _, strategy := range f.strategies {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := f.attempt(ctx, strategy, target)
		if err == nil {
			f.metrics.IncFetchAttempt(strategy.Name(), metrics.OutcomeSuccess)
			f.logger.Debug().
				Str("strategy", strategy.Name()).
				Str("target", target).
				Int("length", len(text)).
				Msg("Strategy succeeded")
			return text, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			f.metrics.IncFetchAttempt(strategy.Name(), metrics.OutcomeCanceled)
			return "", ctxErr
		}

		f.metrics.IncFetchAttempt(strategy.Name(), metrics.OutcomeFailure)
		f.logger.Debug().
			Err(err).
			Str("strategy", strategy.Name()).
			Str("target", target).
			Msg("Strategy failed, trying next")
		attempts.Attempts = append(attempts.Attempts, &StrategyError{Strategy: strategy.Name(), Err: err})
	}

	return "", attempts
}

func (f *ResilientFetcher) attempt(ctx context.Context, strategy Strategy, target string) (string, error) {
	requestURL, err := strategy.BuildURL(target)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Get(ctx, requestURL)
	if err != nil {
		return "", err
	}

	// One extra hop for consent walls; a second redirect is a failure.
	if isRedirect(resp.StatusCode) {
		if location := resp.Header("Location"); location != "" {
			next, err := resolveLocation(requestURL, location)
			if err != nil {
				return "", err
			}
			f.logger.Debug().Str("strategy", strategy.Name()).Str("location", next).Msg("Following redirect")
			requestURL = next
			resp, err = f.client.Get(ctx, requestURL)
			if err != nil {
				return "", err
			}
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{StatusCode: resp.StatusCode, URL: requestURL}
	}

	text := parser.DecodeBody(resp.Body, resp.Header("Content-Type"))
	if utf8.RuneCountInString(strings.TrimSpace(text)) < f.minContentLength {
		return "", ErrContentTooShort
	}
	return text, nil
}

func isRedirect(status int) bool {
	return status >= http.StatusMultipleChoices && status < http.StatusBadRequest
}

func resolveLocation(requestURL, location string) (string, error) {
	base, err := url.Parse(requestURL)
	if err != nil {
		return "", err
	}
	return urlhandler.ResolveURL(location, base)
}
