package extractor

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/assetscout/internal/models"
	"github.com/aleister1102/assetscout/internal/urlhandler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testPage(t *testing.T) Page {
	t.Helper()
	base, err := url.Parse("https://example.com")
	require.NoError(t, err)
	return Page{
		BaseURL:   base,
		Domain:    "example.com",
		Now:       testNow,
		SelfHosts: urlhandler.NewHostSet("localhost", "127.0.0.1", "::1"),
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func ids(assets []models.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.ID)
	}
	return out
}

func TestTitle(t *testing.T) {
	page := testPage(t)

	assets := Title(mustDoc(t, "<title>\n  Example   Domain \n</title>"), page)
	require.Len(t, assets, 1)
	assert.Equal(t, "title", assets[0].ID)
	assert.Equal(t, models.AssetTypeTitle, assets[0].Type)
	assert.Equal(t, "Example Domain", assets[0].Description)
	assert.Equal(t, "https://example.com", assets[0].URL)
	assert.Equal(t, "example.com", assets[0].SourceDomain)
	assert.Equal(t, testNow, assets[0].CreatedAt)

	assert.Empty(t, Title(mustDoc(t, "<title>   </title>"), page))
	assert.Empty(t, Title(mustDoc(t, "<p>no title</p>"), page))
}

func TestMeta(t *testing.T) {
	html := `<head>
		<meta charset="utf-8">
		<meta name="description" content=" A site ">
		<meta name="keywords" content="">
		<meta http-equiv="refresh" content="30">
		<meta property="og:title" content="OG">
	</head>`

	assets := Meta(mustDoc(t, html), testPage(t))

	assert.Equal(t, []string{"meta-description-0", "meta-refresh-2", "meta-og:title-3"}, ids(assets))
	assert.Equal(t, "Meta description", assets[0].Title)
	assert.Equal(t, "A site", assets[0].Description)
	for _, a := range assets {
		assert.Equal(t, models.AssetTypeMeta, a.Type)
	}
}

func TestCanonical(t *testing.T) {
	html := `<head>
		<link rel="canonical" href="/home">
		<link rel="stylesheet" href="/style.css">
		<link rel="alternate" hreflang="de" href="https://example.de/">
		<link rel="alternate">
	</head>`

	assets := Canonical(mustDoc(t, html), testPage(t))

	require.Len(t, assets, 2)
	assert.Equal(t, "link-rel-0", assets[0].ID)
	assert.Equal(t, "https://example.com/home", assets[0].URL)
	assert.Equal(t, `Link rel="canonical"`, assets[0].Title)
	assert.Equal(t, "link-rel-1", assets[1].ID)
	assert.Equal(t, "https://example.de/", assets[1].URL)
}

func TestHeadings(t *testing.T) {
	page := testPage(t)

	assets := Headings(mustDoc(t, "<h1> Hello </h1><div><h3>Sub</h3></div><h2>Two</h2>"), page)
	require.Len(t, assets, 3)
	assert.Equal(t, "H1: Hello", assets[0].Title)
	assert.Equal(t, "H3: Sub", assets[1].Title)
	assert.Equal(t, "H2: Two", assets[2].Title)
	assert.Equal(t, "heading-2", assets[2].ID)
	assert.Equal(t, page.URL(), assets[0].URL)

	assert.Empty(t, Headings(mustDoc(t, "<p>no headings</p>"), page))
}

func TestParagraphs_CapsAtFive(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "<p>paragraph %d</p>", i)
	}

	assets := Paragraphs(mustDoc(t, b.String()), testPage(t))

	require.Len(t, assets, MaxParagraphs)
	for i, a := range assets {
		assert.Equal(t, fmt.Sprintf("para-%d", i), a.ID)
		assert.Equal(t, fmt.Sprintf("paragraph %d", i), a.Description)
	}
}

func TestLinks(t *testing.T) {
	html := `<body>
		<a href="/about">About us</a>
		<a href="https://other.org/x">   </a>
		<a href="http://localhost:3000/dashboard">Back to app</a>
		<a href="https://example.com/pricing"></a>
		<a href="mailto:hello@example.com">Mail</a>
		<a>no href</a>
		<a href="/long">` + strings.Repeat("x", 80) + `</a>
	</body>`

	assets := Links(mustDoc(t, html), testPage(t))

	assert.Equal(t, []string{"link-0", "link-1", "link-3", "link-4", "link-5"}, ids(assets))
	assert.Equal(t, "https://example.com/about", assets[0].URL)
	assert.Equal(t, "About us", assets[0].Title)
	// whitespace-only text is kept and trims to empty
	assert.Equal(t, "", assets[1].Title)
	assert.Equal(t, "https://example.com/pricing", assets[2].Title)
	assert.Equal(t, "mailto:hello@example.com", assets[3].URL)
	assert.Len(t, []rune(assets[4].Title), 50)
}

func TestLinks_CapsAtTwenty(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 35; i++ {
		fmt.Fprintf(&b, `<a href="/p%d">p%d</a>`, i, i)
	}

	assets := Links(mustDoc(t, b.String()), testPage(t))

	require.Len(t, assets, MaxLinks)
	assert.Equal(t, "https://example.com/p19", assets[19].URL)
}

func TestLinks_SelfHostsUseSlots(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<a href="http://127.0.0.1/self">self</a>`)
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<a href="/p%d">p%d</a>`, i, i)
	}

	assets := Links(mustDoc(t, b.String()), testPage(t))

	assert.Len(t, assets, MaxLinks-1)
	assert.Equal(t, "link-1", assets[0].ID)
}

func TestLinks_TargetDomainIsKept(t *testing.T) {
	assets := Links(mustDoc(t, `<a href="https://example.com/">Home</a>`), testPage(t))
	require.Len(t, assets, 1)
	assert.Equal(t, "https://example.com/", assets[0].URL)
}

func TestSchema(t *testing.T) {
	html := `<head>
		<script type="application/ld+json"> {"@context":"https://schema.org","@type":"Organization","name":"Ex"} </script>
		<script type="application/ld+json"></script>
		<script type="application/ld+json">{"@graph":[{"@type":["WebSite","Thing"]}]}</script>
		<script type="application/ld+json">{not json</script>
		<script>var x = 1;</script>
	</head>`

	assets := Schema(mustDoc(t, html), testPage(t))

	assert.Equal(t, []string{"schema-0", "schema-2", "schema-3"}, ids(assets))
	assert.Equal(t, "JSON-LD (Organization)", assets[0].Title)
	assert.Equal(t, `{"@context":"https://schema.org","@type":"Organization","name":"Ex"}`, assets[0].Description)
	assert.Equal(t, "JSON-LD (WebSite)", assets[1].Title)
	assert.Equal(t, "JSON-LD", assets[2].Title)
	assert.Equal(t, "{not json", assets[2].Description)
}

func TestSocial(t *testing.T) {
	html := `<head>
		<meta property="og:image" content="https://example.com/og.png">
		<meta name="twitter:card" content="summary">
		<meta property="og:empty" content="">
		<meta name="description" content="ignored">
	</head>`

	assets := Social(mustDoc(t, html), testPage(t))

	require.Len(t, assets, 2)
	assert.Equal(t, "social-og:image-0", assets[0].ID)
	assert.Equal(t, models.AssetTypeOG, assets[0].Type)
	assert.Equal(t, "og:image", assets[0].Title)
	assert.Equal(t, "social-twitter:card-1", assets[1].ID)
	assert.Equal(t, models.AssetTypeTwitter, assets[1].Type)
	assert.Equal(t, "summary", assets[1].Description)
}

func TestEmbeddedVideo(t *testing.T) {
	html := `<head>
		<meta property="og:video" content="/media/intro.mp4">
		<meta property="og:video:url" content="https://cdn.example.com/v.mp4">
		<meta name="twitter:player" content="">
	</head>`

	assets := EmbeddedVideo(mustDoc(t, html), testPage(t))

	require.Len(t, assets, 2)
	assert.Equal(t, "ogvid-0", assets[0].ID)
	assert.Equal(t, "https://example.com/media/intro.mp4", assets[0].URL)
	assert.Equal(t, models.AssetTypeVideo, assets[0].Type)
	assert.Equal(t, "Embedded video", assets[0].Title)
}

func TestImages(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<img src="/logo.png" alt="Logo"><img alt="no src">`)
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, `<img src="https://cdn.example.com/%d.jpg">`, i)
	}

	assets := Images(mustDoc(t, b.String()), testPage(t))

	require.Len(t, assets, MaxImages)
	assert.Equal(t, "https://example.com/logo.png", assets[0].URL)
	assert.Equal(t, "Logo", assets[0].Title)
	assert.Equal(t, "Image 2", assets[1].Title)
	assert.Equal(t, "img-9", assets[9].ID)
}

func TestVideos(t *testing.T) {
	html := `<video src="/a.mp4"></video>
		<video><source src="b.webm" type="video/webm"></video>
		<video></video>`

	assets := Videos(mustDoc(t, html), testPage(t))

	require.Len(t, assets, 2)
	assert.Equal(t, "https://example.com/a.mp4", assets[0].URL)
	assert.Equal(t, "Video 1", assets[0].Title)
	assert.Equal(t, "video-1", assets[1].ID)
	assert.Equal(t, "https://example.com/b.webm", assets[1].URL)
}

func TestIframeVideos(t *testing.T) {
	html := `<iframe src="https://www.youtube.com/embed/abc"></iframe>
		<iframe src="https://maps.google.com/"></iframe>
		<iframe src="//player.vimeo.com/video/1"></iframe>`

	assets := IframeVideos(mustDoc(t, html), testPage(t))

	require.Len(t, assets, 2)
	assert.Equal(t, "embed-0", assets[0].ID)
	assert.Equal(t, "Embed Video 1", assets[0].Title)
	assert.Equal(t, "https://player.vimeo.com/video/1", assets[1].URL)
}

func TestExtractedURLsAreAbsolute(t *testing.T) {
	html := `<head><link rel="canonical" href="x"><meta property="og:video" content="v.mp4"></head>
		<body><a href="../up">up</a><img src="i.png"><video src="v.mp4"></video></body>`
	doc := mustDoc(t, html)
	page := testPage(t)

	for _, e := range Default() {
		for _, a := range e.Extract(doc, page) {
			assert.True(t, urlhandler.IsAbsoluteURL(a.URL), "%s produced %q", e.Name, a.URL)
			again, err := page.Resolve(a.URL)
			require.NoError(t, err)
			assert.Equal(t, a.URL, again)
		}
	}
}

func TestSafeRun_RecoversPanic(t *testing.T) {
	boom := Extractor{Name: "boom", Extract: func(*goquery.Document, Page) []models.Asset {
		panic("bad selector")
	}}

	assets, err := SafeRun(boom, mustDoc(t, "<p>x</p>"), testPage(t))

	assert.Nil(t, assets)
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "boom", panicErr.Extractor)
}

func TestDefault_Order(t *testing.T) {
	names := make([]string, 0)
	for _, e := range Default() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"title", "meta", "canonical", "heading", "paragraph", "link",
		"schema", "social", "embedded-video", "image", "video", "iframe-video",
	}, names)
}
