// internal/domain/models/section.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectionType identifies the kind of homepage section and drives how
// its Content is rendered.
type SectionType string

const (
	SectionTypeHero             SectionType = "hero"
	SectionTypeBanner           SectionType = "banner"
	SectionTypeProductCarousel  SectionType = "productCarousel"
	SectionTypeCategoryList     SectionType = "categoryList"
	SectionTypePromotionalBlock SectionType = "promotionalBlock"
	SectionTypeCustomHTML       SectionType = "customHtml"
	SectionTypeFeaturedProducts SectionType = "featuredProducts"
)

// AllSectionTypes returns every section type an admin can create.
func AllSectionTypes() []SectionType {
	return []SectionType{
		SectionTypeHero,
		SectionTypeBanner,
		SectionTypeProductCarousel,
		SectionTypeCategoryList,
		SectionTypePromotionalBlock,
		SectionTypeCustomHTML,
		SectionTypeFeaturedProducts,
	}
}

// IsValidSectionType checks if a type is one of the known section types.
func IsValidSectionType(t SectionType) bool {
	for _, s := range AllSectionTypes() {
		if s == t {
			return true
		}
	}
	return false
}

// HomepageSection is one content block on the storefront homepage.
// Sections render in ascending Order; invisible sections stay in the
// admin store but are excluded from storefront reads.
type HomepageSection struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Type      SectionType        `bson:"type" json:"type"`
	Order     int                `bson:"order" json:"order"`
	IsVisible bool               `bson:"is_visible" json:"is_visible"`
	Content   SectionContent     `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SectionContent holds the union of fields used across section types.
// The store persists it as-is regardless of the section's Type; the
// renderer reads only the fields its type uses and tolerates anything
// missing.
type SectionContent struct {
	Title      string        `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle   string        `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Text       string        `bson:"text,omitempty" json:"text,omitempty"`
	ImageURL   string        `bson:"image_url,omitempty" json:"image_url,omitempty"`
	VideoURL   string        `bson:"video_url,omitempty" json:"video_url,omitempty"`
	ButtonText string        `bson:"button_text,omitempty" json:"button_text,omitempty"`
	ButtonLink string        `bson:"button_link,omitempty" json:"button_link,omitempty"`
	Items      []SectionItem `bson:"items,omitempty" json:"items,omitempty"`

	// customHtml sections only.
	HTMLContent string `bson:"html_content,omitempty" json:"html_content,omitempty"`
}

// Item types used by list-style sections.
const (
	ItemTypeProduct  = "Product"
	ItemTypeCategory = "Category"
)

// SectionItem references a product or category inside a list-style
// section. Item-level fields override the referenced entity's values.
type SectionItem struct {
	ItemID   primitive.ObjectID `bson:"item_id,omitempty" json:"item_id,omitempty"`
	ItemType string             `bson:"item_type,omitempty" json:"item_type,omitempty"`

	// Optional per-item overrides.
	Title    string `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Link     string `bson:"link,omitempty" json:"link,omitempty"`

	// Populated by the caller before rendering; never persisted.
	// The renderer tolerates bare (unpopulated) references.
	Product  *Product  `bson:"-" json:"product,omitempty"`
	Category *Category `bson:"-" json:"category,omitempty"`
}
