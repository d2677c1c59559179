package urlhandler

import (
	"fmt"
	"net/url"
	"strings"
)

// Placeholders understood by ExpandTemplate
const (
	PlaceholderURL      = "{url}"       // query-escaped target URL
	PlaceholderRawURL   = "{raw_url}"   // target URL verbatim
	PlaceholderHostPath = "{host_path}" // target URL without its scheme
)

var placeholders = []string{PlaceholderURL, PlaceholderRawURL, PlaceholderHostPath}

// HasPlaceholder reports whether template references the target URL
func HasPlaceholder(template string) bool {
	for _, p := range placeholders {
		if strings.Contains(template, p) {
			return true
		}
	}
	return false
}

// ExpandTemplate substitutes the target URL into an endpoint template such as
// "https://api.allorigins.win/raw?url={url}".
func ExpandTemplate(template, target string) (string, error) {
	if !HasPlaceholder(template) {
		return "", fmt.Errorf("template '%s' has no target placeholder", template)
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target URL '%s': %w", target, err)
	}
	if !parsed.IsAbs() {
		return "", fmt.Errorf("target URL '%s' is not absolute", target)
	}

	hostPath := strings.TrimPrefix(target, parsed.Scheme+"://")
	replacer := strings.NewReplacer(
		PlaceholderURL, url.QueryEscape(target),
		PlaceholderRawURL, target,
		PlaceholderHostPath, hostPath,
	)
	return replacer.Replace(template), nil
}

// ValidateTemplate checks that template expands into a valid http(s) URL
func ValidateTemplate(template string) error {
	expanded, err := ExpandTemplate(template, "https://example.com")
	if err != nil {
		return err
	}
	return ValidateURLFormat(expanded)
}
