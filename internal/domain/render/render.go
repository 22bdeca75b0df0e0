// internal/domain/render/render.go

// Package render transforms homepage sections into display-ready view
// models. Render is a pure function over one section snapshot: no I/O,
// no store access. Entity references inside list sections are used as
// handed in; the caller decides whether to populate them first, and
// bare references degrade to placeholder display fields instead of
// failing.
package render

import (
	"fmt"

	"github.com/dalemusser/vitrine/internal/domain/models"
)

// Sentinels used when a section item has nothing better to offer.
const (
	// PlaceholderImageURL stands in when neither the item nor its
	// entity provides an image.
	PlaceholderImageURL = "/static/img/placeholder.png"
	// NullLink stands in when no link target can be built.
	NullLink = "#"
)

// Model is the display representation of one homepage section.
type Model struct {
	ID   string             `json:"id"`
	Name string             `json:"name"`
	Type models.SectionType `json:"type"`

	// Supported is false for unknown section types; the storefront
	// shows a placeholder for those instead of dropping the page.
	Supported bool `json:"supported"`

	Title      string `json:"title,omitempty"`
	Subtitle   string `json:"subtitle,omitempty"`
	Text       string `json:"text,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	ButtonText string `json:"button_text,omitempty"`
	ButtonLink string `json:"button_link,omitempty"`

	// HTML is the raw markup of a customHtml section. Callers are
	// responsible for sanitizing before it reaches a browser.
	HTML string `json:"html,omitempty"`

	Items []Item `json:"items,omitempty"`
}

// Item is one rendered entry of a list-style section.
type Item struct {
	// Key is stable for the render loop: the entity id when one is
	// resolvable, otherwise a synthetic index-based key. Duplicate
	// entity references get an index suffix so keys never collide.
	Key string `json:"key"`

	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	ImageURL string   `json:"image_url"`
	Link     string   `json:"link"`
	Price    *float64 `json:"price,omitempty"`
}

// Render maps a section to its display model. Unknown types yield a
// placeholder model with Supported=false; a single bad section must
// never take down the homepage.
func Render(s models.HomepageSection) Model {
	m := Model{
		ID:        s.ID.Hex(),
		Name:      s.Name,
		Type:      s.Type,
		Supported: true,
	}

	switch s.Type {
	case models.SectionTypeHero, models.SectionTypeBanner, models.SectionTypePromotionalBlock:
		m.Title = s.Content.Title
		m.Subtitle = s.Content.Subtitle
		m.Text = s.Content.Text
		m.ImageURL = s.Content.ImageURL
		m.VideoURL = s.Content.VideoURL
		m.ButtonText = s.Content.ButtonText
		m.ButtonLink = s.Content.ButtonLink

	case models.SectionTypeProductCarousel, models.SectionTypeFeaturedProducts:
		m.Title = s.Content.Title
		m.Items = renderItems(s.Content.Items, productItem)

	case models.SectionTypeCategoryList:
		m.Title = s.Content.Title
		m.Items = renderItems(s.Content.Items, categoryItem)

	case models.SectionTypeCustomHTML:
		m.HTML = s.Content.HTMLContent

	default:
		m.Supported = false
	}

	return m
}

// renderItems resolves each item through the type-specific entity
// reader and assigns collision-free keys.
func renderItems(items []models.SectionItem, entity func(models.SectionItem) entityFields) []Item {
	out := make([]Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		e := entity(it)
		r := Item{
			Title:    firstNonEmpty(it.Title, e.name),
			Subtitle: it.Subtitle,
			ImageURL: firstNonEmpty(it.ImageURL, e.image, PlaceholderImageURL),
			Link:     itemLink(it, e),
			Price:    e.price,
		}
		r.Key = itemKey(it, i, seen)
		out = append(out, r)
	}
	return out
}

// entityFields are the display fields read off a populated entity.
// A bare (unpopulated) reference leaves them all empty.
type entityFields struct {
	name  string
	image string
	slug  string
	path  string // canonical path prefix, e.g. "/products"
	price *float64
}

func productItem(it models.SectionItem) entityFields {
	e := entityFields{path: "/products"}
	if it.Product != nil {
		e.name = it.Product.Name
		e.image = it.Product.FirstImage()
		e.slug = it.Product.Slug
		p := it.Product.Price
		e.price = &p
	}
	return e
}

func categoryItem(it models.SectionItem) entityFields {
	e := entityFields{path: "/categories"}
	if it.Category != nil {
		e.name = it.Category.Name
		e.image = it.Category.ImageURL
		e.slug = it.Category.Slug
	}
	return e
}

// itemLink builds the link target: item override, then canonical path
// from the entity slug, then from the reference id, then NullLink.
func itemLink(it models.SectionItem, e entityFields) string {
	if it.Link != "" {
		return it.Link
	}
	if e.slug != "" {
		return e.path + "/" + e.slug
	}
	if !it.ItemID.IsZero() {
		return e.path + "/" + it.ItemID.Hex()
	}
	return NullLink
}

// itemKey keys an item by its entity id when one exists, falling back
// to the list index. Repeated references to the same entity get an
// index suffix so the render loop never sees duplicate keys.
func itemKey(it models.SectionItem, idx int, seen map[string]bool) string {
	key := fmt.Sprintf("item-%d", idx)
	if !it.ItemID.IsZero() {
		key = it.ItemID.Hex()
	}
	if seen[key] {
		key = fmt.Sprintf("%s-%d", key, idx)
	}
	seen[key] = true
	return key
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
