package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/assetscout/internal/api"
	"github.com/aleister1102/assetscout/internal/config"
	"github.com/aleister1102/assetscout/internal/crawler"
	"github.com/aleister1102/assetscout/internal/logger"
	"github.com/aleister1102/assetscout/internal/metrics"
	"github.com/aleister1102/assetscout/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Exit codes
const (
	exitOK          = 0
	exitError       = 1
	exitUnfetchable = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags, err := ParseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "[FATAL] %v\n", err)
		return exitError
	}

	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile, bootLogger)
	if err != nil {
		bootLogger.Error().Err(err).Str("path", flags.ConfigFile).Msg("Could not load configuration")
		return exitError
	}
	if flags.Serve != "" {
		gCfg.ServerConfig.ListenAddress = flags.Serve
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		bootLogger.Error().Err(err).Msg("Configuration validation failed")
		return exitError
	}

	// One-shot runs keep their file log under crawls/<run id>/ next to log_file.
	var zLogger zerolog.Logger
	if flags.Serve != "" {
		zLogger, err = logger.New(gCfg.LogConfig)
	} else {
		runID := uuid.NewString()
		zLogger, err = logger.NewWithCrawlID(gCfg.LogConfig, runID)
		zLogger = zLogger.With().Str("run_id", runID).Logger()
	}
	if err != nil {
		bootLogger.Error().Err(err).Msg("Could not initialize logger")
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.Serve != "" {
		return serve(ctx, gCfg, zLogger)
	}
	return crawlOnce(ctx, flags, gCfg, zLogger, stdout)
}

func crawlOnce(ctx context.Context, flags AppFlags, gCfg *config.GlobalConfig, zLogger zerolog.Logger, stdout io.Writer) int {
	types, err := api.ParseTypeFilter(flags.Types)
	if err != nil {
		zLogger.Error().Err(err).Msg("Invalid -type filter")
		return exitError
	}

	c, err := crawler.NewCrawlerBuilder(zLogger).WithConfig(gCfg).Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to build crawler")
		return exitError
	}

	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}

	assets, err := c.Assemble(ctx, flags.Domain)
	if err != nil {
		zLogger.Error().Err(err).Str("domain", flags.Domain).Msg("Crawl failed")
		if models.IsUnfetchable(err) {
			return exitUnfetchable
		}
		return exitError
	}

	assets = models.FilterByType(assets, types...)
	if assets == nil {
		assets = []models.Asset{}
	}
	result := api.AssetsResponse{Domain: flags.Domain, Count: len(assets), Assets: assets}
	if err := writeResult(result, flags.OutputFile, stdout); err != nil {
		zLogger.Error().Err(err).Msg("Failed to write result")
		return exitError
	}
	if flags.OutputFile != "" {
		zLogger.Info().Str("path", flags.OutputFile).Int("assets", len(assets)).Msg("Result written")
	}
	return exitOK
}

func serve(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) int {
	gin.SetMode(gin.ReleaseMode)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	builder := crawler.NewCrawlerBuilder(zLogger).WithConfig(gCfg).WithMetrics(m)
	if host := api.ListenHost(gCfg.ServerConfig.ListenAddress); host != "" {
		builder = builder.WithSelfHosts(host)
	}
	c, err := builder.Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to build crawler")
		return exitError
	}

	server := api.NewServer(gCfg.ServerConfig, c, reg, zLogger)
	if err := server.Run(ctx); err != nil {
		zLogger.Error().Err(err).Msg("HTTP server failed")
		return exitError
	}
	return exitOK
}

func writeResult(result api.AssetsResponse, path string, stdout io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
