// internal/app/store/orderstore/orderstore.go
package orderstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/vitrine/internal/app/store/storeutil"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Store provides access to the orders collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new order store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("orders")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateInput contains the input for recording an order.
type CreateInput struct {
	CustomerName  string
	CustomerEmail string
	Items         []models.OrderItem
	Total         float64
}

// Create records a new order in pending status and returns it with an
// assigned number.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	now := time.Now().UTC()
	id := primitive.NewObjectID()
	o := models.Order{
		ID:            id,
		Number:        orderNumber(id, now),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Status:        models.OrderStatusPending,
		Items:         input.Items,
		Total:         input.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return nil, err
	}
	return &o, nil
}

// orderNumber derives a human-readable order number. The id suffix
// keeps it unique without a counter document.
func orderNumber(id primitive.ObjectID, t time.Time) string {
	hex := id.Hex()
	return fmt.Sprintf("VIT-%s-%s", t.Format("20060102"), hex[len(hex)-6:])
}

// GetByID retrieves an order by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns a page of orders, newest first, optionally filtered by
// status.
func (s *Store) List(ctx context.Context, status models.OrderStatus, limit, page int64) ([]models.Order, error) {
	q := bson.M{}
	if status != "" {
		q["status"] = status
	}

	opts := storeutil.Paginate(limit, page).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetStatus transitions an order to a new status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o models.Order
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	}, opts).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
