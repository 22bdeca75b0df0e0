// internal/domain/models/layout.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductPageLayoutConfig is the singleton document describing which
// named slots the product detail page renders and in what order.
// Slots are a product-page concern distinct from homepage sections.
type ProductPageLayoutConfig struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Sections []LayoutSlot       `bson:"sections" json:"sections"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// LayoutSlot is one named region of the product detail page.
// SectionID is unique within the config.
type LayoutSlot struct {
	SectionID string `bson:"section_id" json:"section_id"`
	Name      string `bson:"name" json:"name"`
	IsVisible bool   `bson:"is_visible" json:"is_visible"`
	Order     int    `bson:"order" json:"order"`
}

// Built-in product page slot identifiers.
const (
	SlotImages          = "images"
	SlotTitlePrice      = "titlePrice"
	SlotDescription     = "description"
	SlotAttributes      = "attributes"
	SlotActions         = "actions"
	SlotReviews         = "reviews"
	SlotRelatedProducts = "relatedProducts"
)

// DefaultLayoutSlots returns the built-in product page layout used
// when no configuration has been saved yet.
func DefaultLayoutSlots() []LayoutSlot {
	return []LayoutSlot{
		{SectionID: SlotImages, Name: "Images", IsVisible: true, Order: 0},
		{SectionID: SlotTitlePrice, Name: "Title & Price", IsVisible: true, Order: 1},
		{SectionID: SlotDescription, Name: "Description", IsVisible: true, Order: 2},
		{SectionID: SlotAttributes, Name: "Attributes", IsVisible: true, Order: 3},
		{SectionID: SlotActions, Name: "Actions", IsVisible: true, Order: 4},
		{SectionID: SlotReviews, Name: "Reviews", IsVisible: true, Order: 5},
		{SectionID: SlotRelatedProducts, Name: "Related Products", IsVisible: true, Order: 6},
	}
}
