package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/assetscout/internal/models"
)

// Canonical emits canonical and alternate (hreflang) link relations
func Canonical(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	doc.Find(`link[rel="canonical"], link[rel="alternate"]`).Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		resolved, err := page.Resolve(href)
		if err != nil {
			return
		}

		a := page.newAsset(fmt.Sprintf("link-rel-%d", i), models.AssetTypeCanonical, resolved)
		a.Title = fmt.Sprintf(`Link rel="%s"`, s.AttrOr("rel", ""))
		assets = append(assets, a)
	})
	return assets
}

// Links emits the first MaxLinks anchors. Anchors pointing at one of the
// crawler's own hosts are dropped but still use up their slot.
func Links(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	firstN(doc.Find("a[href]"), MaxLinks).Each(func(i int, s *goquery.Selection) {
		href, err := page.Resolve(s.AttrOr("href", ""))
		if err != nil {
			return
		}
		if page.SelfHosts.ContainsURL(href) {
			return
		}

		label := s.Text()
		if label == "" {
			label = href
		}

		a := page.newAsset(fmt.Sprintf("link-%d", i), models.AssetTypeLink, href)
		a.Title = truncateRunes(strings.TrimSpace(label), maxLinkTitle)
		assets = append(assets, a)
	})
	return assets
}
