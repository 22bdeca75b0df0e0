package orderstore_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/vitrine/internal/app/store/orderstore"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"github.com/dalemusser/vitrine/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleInput(name string) orderstore.CreateInput {
	return orderstore.CreateInput{
		CustomerName:  name,
		CustomerEmail: strings.ToLower(name) + "@example.com",
		Items: []models.OrderItem{
			{
				ProductID:   primitive.NewObjectID(),
				ProductName: "Canvas Tote",
				Quantity:    2,
				UnitPrice:   39.5,
			},
		},
		Total: 79.0,
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	o, err := store.Create(ctx, sampleInput("Ada"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if o.Status != models.OrderStatusPending {
		t.Errorf("Status = %q, want pending", o.Status)
	}
	if !strings.HasPrefix(o.Number, "VIT-") {
		t.Errorf("Number = %q, want VIT- prefix", o.Number)
	}
	if len(o.Items) != 1 || o.Total != 79.0 {
		t.Errorf("order body = %+v, want items and total preserved", o)
	}

	got, err := store.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Number != o.Number {
		t.Errorf("Number round-trip = %q, want %q", got.Number, o.Number)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, orderstore.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_List_StatusFilterAndPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var paid primitive.ObjectID
	for i := 0; i < 5; i++ {
		o, err := store.Create(ctx, sampleInput("Customer"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if i == 0 {
			paid = o.ID
		}
	}
	if _, err := store.SetStatus(ctx, paid, models.OrderStatusPaid); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	pending, err := store.List(ctx, models.OrderStatusPending, 10, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(pending) != 4 {
		t.Errorf("List(pending) = %d orders, want 4", len(pending))
	}

	all, err := store.List(ctx, "", 3, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	rest, err := store.List(ctx, "", 3, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 || len(rest) != 2 {
		t.Errorf("pagination = %d + %d orders, want 3 + 2", len(all), len(rest))
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	o, err := store.Create(ctx, sampleInput("Grace"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.SetStatus(ctx, o.ID, models.OrderStatusShipped)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if got.Status != models.OrderStatusShipped {
		t.Errorf("Status = %q, want shipped", got.Status)
	}

	if _, err := store.SetStatus(ctx, o.ID, "notAStatus"); !errors.Is(err, orderstore.ErrInvalidStatus) {
		t.Errorf("SetStatus(bad) error = %v, want ErrInvalidStatus", err)
	}
	if _, err := store.SetStatus(ctx, primitive.NewObjectID(), models.OrderStatusPaid); !errors.Is(err, orderstore.ErrNotFound) {
		t.Errorf("SetStatus(missing) error = %v, want ErrNotFound", err)
	}
}
