// Package extractor holds the per-category rules that turn a parsed homepage into assets.
// Every extractor is independent; a missing signal yields zero assets.
package extractor

import (
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/assetscout/internal/models"
	"github.com/aleister1102/assetscout/internal/urlhandler"
)

// Caps on elements considered, counted in document order
const (
	MaxParagraphs = 5
	MaxLinks      = 20
	MaxImages     = 10
	maxLinkTitle  = 50
)

// Page is the context shared by all extractors for one crawl
type Page struct {
	BaseURL   *url.URL
	Domain    string
	Now       time.Time
	SelfHosts urlhandler.HostSet
}

// URL is the back-reference used by text-only assets
func (p Page) URL() string {
	return p.BaseURL.String()
}

// Resolve turns an attribute value into an absolute URL against the page base
func (p Page) Resolve(raw string) (string, error) {
	return urlhandler.ResolveURL(raw, p.BaseURL)
}

func (p Page) newAsset(id string, assetType models.AssetType, assetURL string) models.Asset {
	return models.Asset{
		ID:           id,
		Type:         assetType,
		URL:          assetURL,
		SourceDomain: p.Domain,
		CreatedAt:    p.Now,
	}
}

// Func extracts one category of assets
type Func func(doc *goquery.Document, page Page) []models.Asset

// Extractor is a named Func
type Extractor struct {
	Name    string
	Extract Func
}

// Default returns the extractors in invocation order
func Default() []Extractor {
	return []Extractor{
		{Name: "title", Extract: Title},
		{Name: "meta", Extract: Meta},
		{Name: "canonical", Extract: Canonical},
		{Name: "heading", Extract: Headings},
		{Name: "paragraph", Extract: Paragraphs},
		{Name: "link", Extract: Links},
		{Name: "schema", Extract: Schema},
		{Name: "social", Extract: Social},
		{Name: "embedded-video", Extract: EmbeddedVideo},
		{Name: "image", Extract: Images},
		{Name: "video", Extract: Videos},
		{Name: "iframe-video", Extract: IframeVideos},
	}
}

// PanicError is returned by SafeRun when an extractor panics
type PanicError struct {
	Extractor string
	Value     interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("extractor %s panicked: %v", e.Extractor, e.Value)
}

// SafeRun runs e and converts a panic into an error with no assets
func SafeRun(e Extractor, doc *goquery.Document, page Page) (assets []models.Asset, err error) {
	defer func() {
		if r := recover(); r != nil {
			assets = nil
			err = &PanicError{Extractor: e.Name, Value: r}
		}
	}()
	if doc == nil {
		return nil, nil
	}
	return e.Extract(doc, page), nil
}
