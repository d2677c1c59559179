package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/assetscout/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	flags, err := ParseFlags([]string{"-d", "example.com", "-c", "cfg.yaml", "-o", "out.json", "-t", "15s", "-type", "image"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, AppFlags{
		Domain:     "example.com",
		ConfigFile: "cfg.yaml",
		OutputFile: "out.json",
		Timeout:    15 * time.Second,
		Types:      "image",
	}, flags)

	flags, err = ParseFlags([]string{"-domain", "long.example", "-d", "short.example"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "long.example", flags.Domain)

	flags, err = ParseFlags([]string{"positional.example"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "positional.example", flags.Domain)

	flags, err = ParseFlags([]string{"-s", "127.0.0.1:9090"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", flags.Serve)
}

func TestParseFlags_Errors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-d", "example.com", "-s", ":8080"},
		{"-d", "example.com", "-t", "-5s"},
		{"-unknown"},
	} {
		_, err := ParseFlags(args, io.Discard)
		assert.Error(t, err, "args %v", args)
	}
}

func writeConfig(t *testing.T, relayURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`crawler_config:
  fetch_technical_files: false
fetcher_config:
  strategies:
    - name: local
      url_template: "%s/raw?url={url}"
log_config:
  log_level: error
`, relayURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_CrawlToStdout(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Example</title></head><body><h1>Hello</h1><img src="/a.png" alt="A"></body></html>`))
	}))
	defer relay.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-d", "example.com", "-c", writeConfig(t, relay.URL), "-type", "title,image"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var result api.AssetsResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, "example.com", result.Domain)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "title", result.Assets[0].ID)
	assert.Equal(t, "https://example.com/a.png", result.Assets[1].URL)
}

func TestRun_CrawlToFile(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Example page with enough text to pass</title></head></html>`))
	}))
	defer relay.Close()

	out := filepath.Join(t.TempDir(), "assets.json")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-d", "example.com", "-c", writeConfig(t, relay.URL), "-o", out}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result api.AssetsResponse
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "fallback-shot", result.Assets[0].ID)
}

func TestRun_Unfetchable(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "relay down", http.StatusBadGateway)
	}))
	defer relay.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-d", "example.com", "-c", writeConfig(t, relay.URL)}, &stdout, &stderr)
	assert.Equal(t, exitUnfetchable, code)
	assert.Empty(t, stdout.String())
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitError, run([]string{}, &stdout, &stderr))
	assert.Equal(t, exitError, run([]string{"-d", "example.com", "-c", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr))

	relay := httptest.NewServer(http.NotFoundHandler())
	defer relay.Close()
	assert.Equal(t, exitError, run([]string{"-d", "example.com", "-c", writeConfig(t, relay.URL), "-type", "gif"}, &stdout, &stderr))
	assert.Equal(t, exitError, run([]string{"-d", "   ", "-c", writeConfig(t, relay.URL)}, &stdout, &stderr))
}
