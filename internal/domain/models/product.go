// internal/domain/models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses.
const (
	ProductStatusActive   = "active"
	ProductStatusDraft    = "draft"
	ProductStatusArchived = "archived"
)

// Product is a catalog product. Products that vary by attributes
// (e.g. Color, Size) set HasVariants and carry the attribute
// definitions plus one Variant per sellable combination.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Status      string             `bson:"status" json:"status"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`

	CategoryID primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	BrandID    primitive.ObjectID `bson:"brand_id,omitempty" json:"brand_id,omitempty"`

	HasVariants          bool                  `bson:"has_variants" json:"has_variants"`
	AttributeDefinitions []AttributeDefinition `bson:"attribute_definitions,omitempty" json:"attribute_definitions,omitempty"`
	Variants             []Variant             `bson:"variants,omitempty" json:"variants,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AttributeDefinition is one axis of variation for a product: the
// attribute name and the ordered set of values a buyer can pick.
type AttributeDefinition struct {
	Name   string   `bson:"name" json:"name"`
	Values []string `bson:"values" json:"values"`
}

// Variant is one concrete attribute combination of a product with its
// own SKU, price, and stock. A nil Price means the variant sells at
// the product's base price.
type Variant struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	// AttributeCombination maps every defined attribute name to the
	// value this variant carries for it.
	AttributeCombination map[string]string `bson:"attribute_combination" json:"attribute_combination"`

	SKU           string   `bson:"sku,omitempty" json:"sku,omitempty"`
	Price         *float64 `bson:"price,omitempty" json:"price,omitempty"`
	StockQuantity int      `bson:"stock_quantity" json:"stock_quantity"`
	IsActive      bool     `bson:"is_active" json:"is_active"`
}

// EffectivePrice returns the variant's own price if set, else the
// product's base price.
func (v *Variant) EffectivePrice(basePrice float64) float64 {
	if v.Price != nil {
		return *v.Price
	}
	return basePrice
}

// IsAvailable reports whether the variant can currently be sold.
func (v *Variant) IsAvailable() bool {
	return v.IsActive && v.StockQuantity > 0
}

// FirstImage returns the product's primary image, or "" if it has none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
