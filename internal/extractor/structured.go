package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/assetscout/internal/models"
	"github.com/tidwall/gjson"
)

// Schema emits JSON-LD blocks verbatim
func Schema(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		raw := s.Text()
		if raw == "" {
			return
		}
		body := strings.TrimSpace(raw)

		a := page.newAsset(fmt.Sprintf("schema-%d", i), models.AssetTypeSchema, page.URL())
		a.Title = "JSON-LD"
		if schemaType := jsonLDType(body); schemaType != "" {
			a.Title = fmt.Sprintf("JSON-LD (%s)", schemaType)
		}
		a.Description = body
		assets = append(assets, a)
	})
	return assets
}

// jsonLDType finds the top-level @type of a JSON-LD block, looking inside
// @graph and top-level arrays. Invalid JSON yields "".
func jsonLDType(body string) string {
	if !gjson.Valid(body) {
		return ""
	}
	for _, path := range []string{`\@type`, `\@graph.0.\@type`, `0.\@type`} {
		result := gjson.Get(body, path)
		if !result.Exists() {
			continue
		}
		if result.IsArray() {
			result = result.Get("0")
		}
		if t := strings.TrimSpace(result.String()); t != "" {
			return t
		}
	}
	return ""
}

// Social emits Open Graph and Twitter card properties
func Social(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	doc.Find(`meta[property^="og:"], meta[name^="twitter:"]`).Each(func(i int, s *goquery.Selection) {
		name := firstNonEmpty(s.AttrOr("property", ""), s.AttrOr("name", ""))
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}

		assetType := models.AssetTypeTwitter
		if strings.HasPrefix(name, "og:") {
			assetType = models.AssetTypeOG
		}

		a := page.newAsset(fmt.Sprintf("social-%s-%d", name, i), assetType, page.URL())
		a.Title = name
		a.Description = content
		assets = append(assets, a)
	})
	return assets
}
