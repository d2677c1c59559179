package models

import "time"

// AssetType is the category of a discovered asset
type AssetType string

const (
	AssetTypeTitle      AssetType = "title"
	AssetTypeMeta       AssetType = "meta"
	AssetTypeCanonical  AssetType = "canonical"
	AssetTypeHeading    AssetType = "heading"
	AssetTypeParagraph  AssetType = "paragraph"
	AssetTypeLink       AssetType = "link"
	AssetTypeImage      AssetType = "image"
	AssetTypeVideo      AssetType = "video"
	AssetTypeSchema     AssetType = "schema"
	AssetTypeOG         AssetType = "og"
	AssetTypeTwitter    AssetType = "twitter"
	AssetTypeRobots     AssetType = "robots"
	AssetTypeSitemap    AssetType = "sitemap"
	AssetTypeScreenshot AssetType = "screenshot"
)

var allAssetTypes = []AssetType{
	AssetTypeTitle,
	AssetTypeMeta,
	AssetTypeCanonical,
	AssetTypeHeading,
	AssetTypeParagraph,
	AssetTypeLink,
	AssetTypeImage,
	AssetTypeVideo,
	AssetTypeSchema,
	AssetTypeOG,
	AssetTypeTwitter,
	AssetTypeRobots,
	AssetTypeSitemap,
	AssetTypeScreenshot,
}

// AllAssetTypes returns the closed set of asset types in display order
func AllAssetTypes() []AssetType {
	out := make([]AssetType, len(allAssetTypes))
	copy(out, allAssetTypes)
	return out
}

// IsValid reports whether the type belongs to the closed set
func (t AssetType) IsValid() bool {
	for _, known := range allAssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseAssetType converts a string into a known AssetType
func ParseAssetType(s string) (AssetType, bool) {
	t := AssetType(s)
	return t, t.IsValid()
}

// Asset is one discovered unit of on-page information normalized into a common record.
// For text-only assets (headings, paragraphs) URL is the page URL itself.
type Asset struct {
	ID           string    `json:"id"`
	Type         AssetType `json:"type"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url"`
	SourceDomain string    `json:"source_domain"`
	CreatedAt    time.Time `json:"created_at"`
}

// FilterByType keeps the assets whose type is in types, preserving order.
// An empty types list returns the input unchanged.
func FilterByType(assets []Asset, types ...AssetType) []Asset {
	if len(types) == 0 {
		return assets
	}

	wanted := make(map[AssetType]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}

	filtered := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if _, ok := wanted[a.Type]; ok {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// CountByType tallies assets per type
func CountByType(assets []Asset) map[AssetType]int {
	counts := make(map[AssetType]int)
	for _, a := range assets {
		counts[a.Type]++
	}
	return counts
}
