package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/assetscout/internal/common"
	"github.com/aleister1102/assetscout/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	_, err := New(config.NewDefaultLogConfig())
	require.NoError(t, err)
}

func TestLoggerBuilder_JSONToConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "debug"

	l, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithConfig(cfg).Build()
	require.NoError(t, err)

	l.GetZerolog().Debug().Str("domain", "example.com").Msg("hello")

	assert.Contains(t, buf.String(), `"domain":"example.com"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Equal(t, zerolog.DebugLevel, l.Config().Level)
}

func TestLoggerBuilder_FileWithCrawlID(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(dir, "assetscout.log")
	cfg.LogFormat = "json"

	var console bytes.Buffer
	l, err := NewLoggerBuilder().
		WithConsoleOutput(&console).
		WithConfig(cfg).
		WithCrawlID("abc123").
		Build()
	require.NoError(t, err)

	l.GetZerolog().Info().Msg("to file")

	data, err := os.ReadFile(filepath.Join(dir, "crawls", "abc123", "assetscout.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLoggerBuilder_InvalidConfig(t *testing.T) {
	b := NewLoggerBuilder()
	b.config.EnableFile = true
	b.config.FilePath = ""

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLoggerBuilder_NoWriters(t *testing.T) {
	b := NewLoggerBuilder()
	b.config.EnableConsole = false

	_, err := b.Build()
	assert.Error(t, err)
}

func TestLogLevelParser(t *testing.T) {
	p := NewLogLevelParser()

	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"", zerolog.InfoLevel, false},
		{"loud", zerolog.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := p.ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogFormatParser(t *testing.T) {
	p := NewLogFormatParser()
	assert.Equal(t, FormatJSON, p.ParseFormat("JSON"))
	assert.Equal(t, FormatText, p.ParseFormat("text"))
	assert.Equal(t, FormatConsole, p.ParseFormat("console"))
	assert.Equal(t, FormatConsole, p.ParseFormat("unknown"))
	assert.Equal(t, "json", FormatJSON.String())
}

func TestConfigConverter_Defaults(t *testing.T) {
	lc, err := NewConfigConverter().ConvertConfig(config.LogConfig{LogLevel: "nope"})

	assert.Error(t, err)
	assert.Equal(t, zerolog.InfoLevel, lc.Level)
	assert.Equal(t, config.DefaultMaxLogSizeMB, lc.MaxSizeMB)
	assert.Equal(t, config.DefaultMaxLogBackups, lc.MaxBackups)
	assert.False(t, lc.EnableFile)
}
