// internal/app/store/layoutstore/layoutstore.go
package layoutstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dalemusser/vitrine/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateSlot is returned by Save when two slots share a
// section id.
var ErrDuplicateSlot = errors.New("duplicate section id in layout")

// Store provides access to the product_page_layout collection.
// Vitrine keeps a singleton layout document (only one per site),
// created on first read with the built-in default slot list.
type Store struct {
	c *mongo.Collection
}

// New creates a new layout store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("product_page_layout")}
}

// EnsureIndexes creates the unique singleton index. The unique key
// backs the insert-if-absent guarantee in GetOrCreate: two racing
// first reads cannot each insert a config.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "singleton", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// GetOrCreate returns the singleton layout config, atomically
// inserting the built-in default on first read. Concurrent first
// reads resolve to the same single document via the upsert.
func (s *Store) GetOrCreate(ctx context.Context) (*models.ProductPageLayoutConfig, error) {
	filter := bson.M{"singleton": true}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"singleton": true,
			"sections":  models.DefaultLayoutSlots(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cfg models.ProductPageLayoutConfig
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cfg); err != nil {
		return nil, err
	}

	// A previously saved config with an emptied slot list counts as
	// absent; restore the default.
	if len(cfg.Sections) == 0 {
		if err := s.Save(ctx, models.DefaultLayoutSlots()); err != nil {
			return nil, err
		}
		cfg.Sections = models.DefaultLayoutSlots()
	}
	return &cfg, nil
}

// SlotRef is the view of a layout slot exposed past the resolver
// boundary: order and visibility are internal.
type SlotRef struct {
	SectionID string `json:"section_id"`
	Name      string `json:"name"`
}

// GetLayout returns the ordered, visible-only slot list for the
// product detail page, creating the default config if none exists.
func (s *Store) GetLayout(ctx context.Context) ([]SlotRef, error) {
	cfg, err := s.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]models.LayoutSlot, 0, len(cfg.Sections))
	for _, slot := range cfg.Sections {
		if slot.IsVisible {
			slots = append(slots, slot)
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Order < slots[j].Order
	})

	refs := make([]SlotRef, 0, len(slots))
	for _, slot := range slots {
		refs = append(refs, SlotRef{SectionID: slot.SectionID, Name: slot.Name})
	}
	return refs, nil
}

// Save replaces the slot list. Rejects a list where two slots share a
// section id. Uses the singleton upsert so it works whether the
// config exists yet or not.
func (s *Store) Save(ctx context.Context, slots []models.LayoutSlot) error {
	seen := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if seen[slot.SectionID] {
			return ErrDuplicateSlot
		}
		seen[slot.SectionID] = true
	}

	now := time.Now().UTC()
	filter := bson.M{"singleton": true}
	update := bson.M{
		"$set": bson.M{
			"singleton":  true,
			"sections":   slots,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// Count returns the number of layout documents. Used by tests to
// verify the singleton invariant.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"singleton": true})
}
