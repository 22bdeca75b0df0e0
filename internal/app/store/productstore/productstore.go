// internal/app/store/productstore/productstore.go
package productstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/vitrine/internal/app/store/storeutil"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store errors, checked with errors.Is.
var (
	ErrNotFound      = errors.New("product not found")
	ErrEmptyName     = errors.New("product name must not be empty")
	ErrDuplicateSlug = errors.New("product slug already in use")
)

// Store provides access to the products collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new product store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("products")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "category_id", Value: 1}},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateInput contains the input for creating a product.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
	Price       float64
	Stock       int
	Status      string
	Images      []string
	CategoryID  primitive.ObjectID
	BrandID     primitive.ObjectID

	HasVariants          bool
	AttributeDefinitions []models.AttributeDefinition
	Variants             []models.Variant
}

// Create persists a new product and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}

	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = models.ProductStatusDraft
	}

	p := models.Product{
		ID:                   primitive.NewObjectID(),
		Name:                 input.Name,
		Slug:                 input.Slug,
		Description:          input.Description,
		Price:                input.Price,
		Stock:                input.Stock,
		Status:               status,
		Images:               input.Images,
		CategoryID:           input.CategoryID,
		BrandID:              input.BrandID,
		HasVariants:          input.HasVariants,
		AttributeDefinitions: input.AttributeDefinitions,
		Variants:             stampVariantIDs(input.Variants),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return &p, nil
}

// stampVariantIDs assigns ids to authored variants that lack one.
func stampVariantIDs(vars []models.Variant) []models.Variant {
	for i := range vars {
		if vars[i].ID.IsZero() {
			vars[i].ID = primitive.NewObjectID()
		}
	}
	return vars
}

// GetByID retrieves a product by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug retrieves a product by its slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs retrieves the products for the given ids, keyed by id.
// Missing ids are simply absent from the result; callers rendering
// section items treat them as unresolved references.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error) {
	out := make(map[primitive.ObjectID]*models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	Status     string
	CategoryID primitive.ObjectID
}

// List returns a page of products, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter, limit, page int64) ([]models.Product, error) {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if !filter.CategoryID.IsZero() {
		q["category_id"] = filter.CategoryID
	}

	opts := storeutil.Paginate(limit, page).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateInput contains the partial patch for a product.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	Price       *float64
	Stock       *int
	Status      *string
	Images      *[]string
	CategoryID  *primitive.ObjectID
	BrandID     *primitive.ObjectID

	HasVariants          *bool
	AttributeDefinitions *[]models.AttributeDefinition
	Variants             *[]models.Variant
}

// Update applies a partial patch and returns the updated product.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) (*models.Product, error) {
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
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Stock != nil {
		set["stock"] = *input.Stock
	}
	if input.Status != nil {
		set["status"] = *input.Status
	}
	if input.Images != nil {
		set["images"] = *input.Images
	}
	if input.CategoryID != nil {
		set["category_id"] = *input.CategoryID
	}
	if input.BrandID != nil {
		set["brand_id"] = *input.BrandID
	}
	if input.HasVariants != nil {
		set["has_variants"] = *input.HasVariants
	}
	if input.AttributeDefinitions != nil {
		set["attribute_definitions"] = *input.AttributeDefinitions
	}
	if input.Variants != nil {
		set["variants"] = stampVariantIDs(*input.Variants)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Product
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a product permanently.
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
