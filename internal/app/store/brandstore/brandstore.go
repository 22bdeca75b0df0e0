// internal/app/store/brandstore/brandstore.go
package brandstore

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
	ErrNotFound  = errors.New("brand not found")
	ErrEmptyName = errors.New("brand name must not be empty")
)

// Store provides access to the brands collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new brand store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("brands")}
}

// EnsureIndexes creates the unique slug index for brands.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_brand_slug"),
	})
	return err
}

// CreateInput contains the input for creating a brand.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
	LogoURL     string
	IsVisible   bool
}

// Create persists a new brand and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Brand, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}

	now := time.Now().UTC()
	b := models.Brand{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		IsVisible:   input.IsVisible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID retrieves a brand by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	var b models.Brand
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all brands sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Brand, error) {
	cursor, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var brands []models.Brand
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// UpdateInput contains the partial patch for a brand.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	LogoURL     *string
	IsVisible   *bool
}

// Update applies a partial patch and returns the updated brand.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) (*models.Brand, error) {
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
	if input.LogoURL != nil {
		set["logo_url"] = *input.LogoURL
	}
	if input.IsVisible != nil {
		set["is_visible"] = *input.IsVisible
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Brand
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete removes a brand permanently.
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
