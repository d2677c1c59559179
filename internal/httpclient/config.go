package httpclient

import (
	"context"
	"io"
	"time"

	"github.com/aleister1102/assetscout/internal/config"
)

// HTTPClientConfig holds transport level settings
type HTTPClientConfig struct {
	Timeout               time.Duration
	InsecureSkipVerify    bool
	FollowRedirects       bool
	MaxRedirects          int
	UserAgent             string
	Proxy                 string
	MaxContentSize        int64
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	MaxConnsPerHost       int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration
	DialTimeout           time.Duration
	KeepAlive             time.Duration
	EnableHTTP2           bool
	CustomHeaders         map[string]string
}

// DefaultHTTPClientConfig returns the browser-like defaults. Redirects are not
// followed; callers that need a hop handle Location themselves.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               0,
		InsecureSkipVerify:    false,
		FollowRedirects:       false,
		MaxRedirects:          10,
		UserAgent:             config.DefaultUserAgent,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       0, // 0 means no limit
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		EnableHTTP2:           true,
		CustomHeaders: map[string]string{
			"Accept":          "*/*",
			"Accept-Language": "en-US,en;q=0.9",
			"Accept-Encoding": "gzip, br",
		},
	}
}

// ApplyAppConfig overlays the http_client_config section onto c
func (c HTTPClientConfig) ApplyAppConfig(app config.HTTPClientConfig) HTTPClientConfig {
	c.Timeout = time.Duration(app.RequestTimeoutSecs) * time.Second
	c.InsecureSkipVerify = app.InsecureSkipVerify
	c.EnableHTTP2 = app.EnableHTTP2
	c.Proxy = app.Proxy
	if app.UserAgent != "" {
		c.UserAgent = app.UserAgent
	}
	if len(app.CustomHeaders) > 0 {
		headers := make(map[string]string, len(c.CustomHeaders)+len(app.CustomHeaders))
		for k, v := range c.CustomHeaders {
			headers[k] = v
		}
		for k, v := range app.CustomHeaders {
			headers[k] = v
		}
		c.CustomHeaders = headers
	}
	return c
}

// HTTPRequest represents an outbound request
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    io.Reader
	Context context.Context
}

// HTTPResponse is a fully read, content-decoded response
type HTTPResponse struct {
	StatusCode int
	// Headers keeps the first value of every response header.
	Headers map[string]string
	Body    []byte
}

// Header returns a response header using canonical key lookup
func (r *HTTPResponse) Header(key string) string {
	if r == nil || r.Headers == nil {
		return ""
	}
	return r.Headers[canonicalHeaderKey(key)]
}
