package extractor

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/assetscout/internal/models"
)

// EmbeddedVideo emits og:video and twitter:player targets as video assets
func EmbeddedVideo(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	doc.Find(`meta[property="og:video"], meta[property="og:video:url"], meta[name="twitter:player"]`).Each(func(i int, s *goquery.Selection) {
		content := s.AttrOr("content", "")
		if content == "" {
			return
		}
		resolved, err := page.Resolve(content)
		if err != nil {
			return
		}

		a := page.newAsset(fmt.Sprintf("ogvid-%d", i), models.AssetTypeVideo, resolved)
		a.Title = "Embedded video"
		assets = append(assets, a)
	})
	return assets
}

// Images emits the first MaxImages images; alt text is the label when present
func Images(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	firstN(doc.Find("img[src]"), MaxImages).Each(func(i int, s *goquery.Selection) {
		resolved, err := page.Resolve(s.AttrOr("src", ""))
		if err != nil {
			return
		}

		a := page.newAsset(fmt.Sprintf("img-%d", i), models.AssetTypeImage, resolved)
		a.Title = s.AttrOr("alt", "")
		if a.Title == "" {
			a.Title = fmt.Sprintf("Image %d", i+1)
		}
		assets = append(assets, a)
	})
	return assets
}

// Videos emits <video> elements using src or, failing that, the first <source src>
func Videos(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	doc.Find("video").Each(func(i int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if src == "" {
			src = s.Find("source[src]").First().AttrOr("src", "")
		}
		if src == "" {
			return
		}
		resolved, err := page.Resolve(src)
		if err != nil {
			return
		}

		a := page.newAsset(fmt.Sprintf("video-%d", i), models.AssetTypeVideo, resolved)
		a.Title = fmt.Sprintf("Video %d", i+1)
		assets = append(assets, a)
	})
	return assets
}

// IframeVideos emits YouTube and Vimeo embeds
func IframeVideos(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	doc.Find(`iframe[src*="youtube"], iframe[src*="vimeo"]`).Each(func(i int, s *goquery.Selection) {
		resolved, err := page.Resolve(s.AttrOr("src", ""))
		if err != nil {
			return
		}

		a := page.newAsset(fmt.Sprintf("embed-%d", i), models.AssetTypeVideo, resolved)
		a.Title = fmt.Sprintf("Embed Video %d", i+1)
		assets = append(assets, a)
	})
	return assets
}
