package logger

import (
	"github.com/aleister1102/assetscout/internal/config"
	"github.com/rs/zerolog"
)

// Logger wraps a configured zerolog instance
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// Config returns the effective configuration the logger was built with
func (l *Logger) Config() LoggerConfig {
	return l.config
}

// New creates a logger from the log section of the application config
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}

// NewWithCrawlID creates a logger whose file output is grouped under the crawl ID
func NewWithCrawlID(cfg config.LogConfig, crawlID string) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().
		WithConfig(cfg).
		WithCrawlID(crawlID).
		Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
