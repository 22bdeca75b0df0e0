// internal/app/store/categorystore/categorystore.go
package categorystore

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

var (
	ErrNotFound  = errors.New("category not found")
	ErrEmptyName = errors.New("category name must not be empty")
)

// Store provides access to the categories collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new category store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "parent_id", Value: 1}}},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateInput contains the input for creating a category.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
	ParentID    *primitive.ObjectID
	IsVisible   bool
}

// Create persists a new category and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}

	now := time.Now().UTC()
	cat := models.Category{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		ParentID:    input.ParentID,
		IsVisible:   input.IsVisible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetByID retrieves a category by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var cat models.Category
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetByIDs retrieves the categories for the given ids, keyed by id.
// Missing ids are absent from the result.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Category, error) {
	out := make(map[primitive.ObjectID]*models.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cats []models.Category
	if err := cursor.All(ctx, &cats); err != nil {
		return nil, err
	}
	for i := range cats {
		out[cats[i].ID] = &cats[i]
	}
	return out, nil
}

// List returns all categories sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cats []models.Category
	if err := cursor.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// UpdateInput contains the partial patch for a category.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	ParentID    *primitive.ObjectID
	IsVisible   *bool
}

// Update applies a partial patch and returns the updated category.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) (*models.Category, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrEmptyName
		}
		set["name"] = *input.Name
	}
	if input.Slug != nil {
		set["slug"] = *input.Slug
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.ImageURL != nil {
		set["image_url"] = *input.ImageURL
	}
	if input.ParentID != nil {
		set["parent_id"] = *input.ParentID
	}
	if input.IsVisible != nil {
		set["is_visible"] = *input.IsVisible
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cat models.Category
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete removes a category permanently.
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
