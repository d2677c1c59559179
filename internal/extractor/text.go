package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/assetscout/internal/models"
)

// Title emits the document title with whitespace collapsed
func Title(doc *goquery.Document, page Page) []models.Asset {
	text := collapseSpace(doc.Find("title").First().Text())
	if text == "" {
		return nil
	}

	a := page.newAsset("title", models.AssetTypeTitle, page.URL())
	a.Title = "Title Tag"
	a.Description = text
	return []models.Asset{a}
}

// Meta emits one asset per named meta tag with content
func Meta(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	doc.Find("meta[name], meta[http-equiv], meta[property]").Each(func(i int, s *goquery.Selection) {
		name := firstNonEmpty(s.AttrOr("name", ""), s.AttrOr("property", ""), s.AttrOr("http-equiv", ""))
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if name == "" || content == "" {
			return
		}

		a := page.newAsset(fmt.Sprintf("meta-%s-%d", name, i), models.AssetTypeMeta, page.URL())
		a.Title = "Meta " + name
		a.Description = content
		assets = append(assets, a)
	})
	return assets
}

// Headings emits h1 through h6 labeled with their tag
func Headings(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(i int, s *goquery.Selection) {
		tag := strings.ToUpper(goquery.NodeName(s))
		a := page.newAsset(fmt.Sprintf("heading-%d", i), models.AssetTypeHeading, page.URL())
		a.Title = fmt.Sprintf("%s: %s", tag, strings.TrimSpace(s.Text()))
		assets = append(assets, a)
	})
	return assets
}

// Paragraphs emits the first MaxParagraphs paragraphs
func Paragraphs(doc *goquery.Document, page Page) []models.Asset {
	var assets []models.Asset
	firstN(doc.Find("p"), MaxParagraphs).Each(func(i int, s *goquery.Selection) {
		a := page.newAsset(fmt.Sprintf("para-%d", i), models.AssetTypeParagraph, page.URL())
		a.Description = strings.TrimSpace(s.Text())
		assets = append(assets, a)
	})
	return assets
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstN keeps the first n nodes of sel in document order
func firstN(sel *goquery.Selection, n int) *goquery.Selection {
	if sel.Length() <= n {
		return sel
	}
	return sel.Slice(0, n)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
