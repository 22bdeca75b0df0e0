// internal/app/store/sectionstore/sectionstore.go
package sectionstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/vitrine/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store errors, checked with errors.Is.
var (
	// ErrNotFound is returned when an operation targets a section id
	// that does not exist.
	ErrNotFound = errors.New("section not found")
	// ErrInvalidSectionType is returned by Create for a type outside
	// the known section taxonomy.
	ErrInvalidSectionType = errors.New("invalid section type")
	// ErrEmptyName is returned when a section name is blank.
	ErrEmptyName = errors.New("section name must not be empty")
)

// Store provides access to the homepage_sections collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new section store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("homepage_sections")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "is_visible", Value: 1}, {Key: "order", Value: 1}},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// sectionSort orders sections by ascending order with creation time
// and id as tie-breaks, so sections sharing an order value keep a
// stable insertion-order position.
func sectionSort() bson.D {
	return bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	}
}

// List returns every section, visible or not, sorted by order
// ascending. Used by the administrative view.
func (s *Store) List(ctx context.Context) ([]models.HomepageSection, error) {
	return s.list(ctx, bson.M{})
}

// ListVisible returns only visible sections sorted by order ascending.
// Used by the storefront read path.
func (s *Store) ListVisible(ctx context.Context) ([]models.HomepageSection, error) {
	return s.list(ctx, bson.M{"is_visible": true})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.HomepageSection, error) {
	cursor, err := s.c.Find(ctx, filter, options.Find().SetSort(sectionSort()))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sections []models.HomepageSection
	if err := cursor.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// GetByID retrieves a single section.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.HomepageSection, error) {
	var sec models.HomepageSection
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// CreateInput contains the input for creating a section. IsVisible
// defaults to true and Order to 0 when left nil.
type CreateInput struct {
	Name      string
	Type      models.SectionType
	Content   models.SectionContent
	IsVisible *bool
	Order     *int
}

// Create validates the type and name, persists a new section, and
// returns it with its assigned id.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.HomepageSection, error) {
	if !models.IsValidSectionType(input.Type) {
		return nil, ErrInvalidSectionType
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}

	now := time.Now().UTC()
	sec := models.HomepageSection{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Type:      input.Type,
		Content:   input.Content,
		IsVisible: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.IsVisible != nil {
		sec.IsVisible = *input.IsVisible
	}
	if input.Order != nil {
		sec.Order = *input.Order
	}

	if _, err := s.c.InsertOne(ctx, sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// UpdateInput contains the partial patch for a section. Type is
// intentionally absent: changing it would orphan the content shape.
type UpdateInput struct {
	Name      *string
	Content   *models.SectionContent
	IsVisible *bool
	Order     *int
}

// Update applies a partial patch and returns the updated section.
// Returns ErrNotFound if the id does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) (*models.HomepageSection, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrEmptyName
		}
		set["name"] = *input.Name
	}
	if input.Content != nil {
		set["content"] = *input.Content
	}
	if input.IsVisible != nil {
		set["is_visible"] = *input.IsVisible
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sec models.HomepageSection
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&sec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// SetVisibility toggles a section's storefront visibility.
func (s *Store) SetVisibility(ctx context.Context, id primitive.ObjectID, visible bool) (*models.HomepageSection, error) {
	return s.Update(ctx, id, UpdateInput{IsVisible: &visible})
}

// Delete removes a section permanently. Returns ErrNotFound if the id
// does not exist. Deleting a section has no effect on other sections.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderEntry assigns a new order value to one section.
type ReorderEntry struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// BulkReorder applies order values to the listed sections. The
// operation is best-effort: malformed ids and ids that match nothing
// are skipped, never failed, so a payload containing one bad entry
// still applies the good ones. Callers should compare the returned
// applied count against the payload size to detect partial
// application.
func (s *Store) BulkReorder(ctx context.Context, entries []ReorderEntry) (applied int, err error) {
	now := time.Now().UTC()
	for _, e := range entries {
		id, err := primitive.ObjectIDFromHex(e.ID)
		if err != nil {
			continue
		}
		res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
			"$set": bson.M{
				"order":      e.Order,
				"updated_at": now,
			},
		})
		if err != nil {
			// Infrastructure failure, not a bad entry.
			return applied, err
		}
		if res.MatchedCount > 0 {
			applied++
		}
	}
	return applied, nil
}
