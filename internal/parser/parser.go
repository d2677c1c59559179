// Package parser turns fetched markup into a queryable document.
package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/assetscout/internal/common"
	"golang.org/x/net/html/charset"
)

// Parse builds a document tree from raw HTML. The HTML5 tokenizer recovers from
// malformed markup, so errors only come from reading the input.
func Parse(text string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, common.WrapError(err, "failed to parse markup")
	}
	return doc, nil
}

// DecodeBody converts a response body to UTF-8 text. The charset comes from the
// Content-Type header when present, then from <meta> sniffing.
// Undecodable input is returned as-is.
func DecodeBody(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}

	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
