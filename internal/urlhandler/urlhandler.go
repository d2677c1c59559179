package urlhandler

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// DefaultScheme is used to build a page URL from a bare domain
const DefaultScheme = "https"

// NormalizeDomain reduces user input such as "https://Example.com/path" to "example.com".
// A port is kept when present.
func NormalizeDomain(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("domain is empty or only whitespace")
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = DefaultScheme + "://" + strings.TrimPrefix(trimmed, "//")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("could not parse domain '%s': %w", raw, err)
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", fmt.Errorf("domain '%s' lacks a valid hostname", raw)
	}
	if strings.ContainsAny(host, " \t") {
		return "", fmt.Errorf("domain '%s' contains whitespace", raw)
	}

	if port := parsed.Port(); port != "" {
		return net.JoinHostPort(host, port), nil
	}
	if strings.Contains(host, ":") {
		// bare IPv6 literal
		return "[" + host + "]", nil
	}
	return host, nil
}

// BaseURL builds the page URL of a normalized domain
func BaseURL(domain string) (*url.URL, error) {
	base, err := url.Parse(DefaultScheme + "://" + domain)
	if err != nil {
		return nil, fmt.Errorf("could not build base URL for '%s': %w", domain, err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base URL for '%s' has no host", domain)
	}
	return base, nil
}

// ResolveURL resolves a (possibly relative) URL string against a base URL.
// Already absolute input is returned unchanged, so resolving twice is a no-op.
func ResolveURL(href string, base *url.URL) (string, error) {
	trimmedHref := strings.TrimSpace(href)
	if trimmedHref == "" {
		return "", fmt.Errorf("href is empty")
	}

	parsedHref, err := url.Parse(trimmedHref)
	if err != nil {
		return "", fmt.Errorf("error parsing href '%s': %w", trimmedHref, err)
	}
	if parsedHref.IsAbs() {
		return trimmedHref, nil
	}

	if base == nil {
		return "", fmt.Errorf("cannot process relative URL '%s' without a base URL", trimmedHref)
	}
	return base.ResolveReference(parsedHref).String(), nil
}

// IsAbsoluteURL reports whether raw parses as a URL with a scheme
func IsAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && parsed.IsAbs()
}

// Hostname returns the lowercased hostname of rawURL, or "" when it has none
func Hostname(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// ValidateURLFormat validates URL format using net/url parsing (for config validation)
func ValidateURLFormat(rawURL string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return fmt.Errorf("URL is empty")
	}

	parsed, err := url.ParseRequestURI(trimmedURL)
	if err != nil {
		return fmt.Errorf("invalid URL format '%s': %w", trimmedURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme '%s' in '%s'", parsed.Scheme, trimmedURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL '%s' has no host", trimmedURL)
	}

	return nil
}
