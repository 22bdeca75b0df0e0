package productstore_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/vitrine/internal/app/store/productstore"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"github.com/dalemusser/vitrine/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, productstore.CreateInput{
		Name:   "Linen Shirt",
		Slug:   "linen-shirt",
		Price:  49.0,
		Stock:  12,
		Status: models.ProductStatusActive,
		Images: []string{"/img/shirt-1.jpg", "/img/shirt-2.jpg"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID.IsZero() {
		t.Error("created product id should not be zero")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Linen Shirt" {
		t.Errorf("Name = %q, want %q", got.Name, "Linen Shirt")
	}
	if got.FirstImage() != "/img/shirt-1.jpg" {
		t.Errorf("FirstImage() = %q, want first image", got.FirstImage())
	}
}

func TestStore_Create_EmptyNameRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, productstore.CreateInput{Name: "   ", Slug: "x"})
	if !errors.Is(err, productstore.ErrEmptyName) {
		t.Errorf("Create() error = %v, want ErrEmptyName", err)
	}
}

func TestStore_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, productstore.CreateInput{Name: "One", Slug: "same-slug"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := store.Create(ctx, productstore.CreateInput{Name: "Two", Slug: "same-slug"})
	if !errors.Is(err, productstore.ErrDuplicateSlug) {
		t.Errorf("Create() error = %v, want ErrDuplicateSlug", err)
	}
}

func TestStore_Create_StampsVariantIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, productstore.CreateInput{
		Name:        "Variant Shirt",
		Slug:        "variant-shirt",
		HasVariants: true,
		Variants: []models.Variant{
			{AttributeCombination: map[string]string{"Size": "S"}, StockQuantity: 1, IsActive: true},
			{AttributeCombination: map[string]string{"Size": "M"}, StockQuantity: 2, IsActive: true},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for i, v := range p.Variants {
		if v.ID.IsZero() {
			t.Errorf("variant %d id should be stamped", i)
		}
	}
}

func TestStore_GetBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, productstore.CreateInput{Name: "Sneaker", Slug: "sneaker"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.GetBySlug(ctx, "sneaker")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if got.Name != "Sneaker" {
		t.Errorf("Name = %q, want %q", got.Name, "Sneaker")
	}

	if _, err := store.GetBySlug(ctx, "missing"); !errors.Is(err, productstore.ErrNotFound) {
		t.Errorf("GetBySlug(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_GetByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, productstore.CreateInput{Name: "A", Slug: "a"})
	b, _ := store.Create(ctx, productstore.CreateInput{Name: "B", Slug: "b"})

	missing := primitive.NewObjectID()
	got, err := store.GetByIDs(ctx, []primitive.ObjectID{a.ID, b.ID, missing})
	if err != nil {
		t.Fatalf("GetByIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByIDs() returned %d products, want 2", len(got))
	}
	if got[a.ID] == nil || got[a.ID].Name != "A" {
		t.Errorf("product A missing or wrong: %+v", got[a.ID])
	}
	if got[missing] != nil {
		t.Error("missing id should not be in the result map")
	}
}

func TestStore_List_FilterAndPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	catID := primitive.NewObjectID()
	for i := 0; i < 5; i++ {
		in := productstore.CreateInput{
			Name:   "Active",
			Slug:   "active-" + primitive.NewObjectID().Hex(),
			Status: models.ProductStatusActive,
		}
		if i < 2 {
			in.CategoryID = catID
		}
		if _, err := store.Create(ctx, in); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := store.Create(ctx, productstore.CreateInput{
		Name: "Draft", Slug: "draft-one", Status: models.ProductStatusDraft,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	active, err := store.List(ctx, productstore.ListFilter{Status: models.ProductStatusActive}, 10, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(active) != 5 {
		t.Errorf("List(active) = %d products, want 5", len(active))
	}

	inCat, err := store.List(ctx, productstore.ListFilter{CategoryID: catID}, 10, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(inCat) != 2 {
		t.Errorf("List(category) = %d products, want 2", len(inCat))
	}

	page1, err := store.List(ctx, productstore.ListFilter{}, 4, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	page2, err := store.List(ctx, productstore.ListFilter{}, 4, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page1) != 4 || len(page2) != 2 {
		t.Errorf("pagination = %d + %d products, want 4 + 2", len(page1), len(page2))
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, productstore.CreateInput{Name: "Old", Slug: "old", Price: 10})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	name := "New"
	price := 12.5
	status := models.ProductStatusActive
	got, err := store.Update(ctx, p.ID, productstore.UpdateInput{Name: &name, Price: &price, Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Name != "New" || got.Price != 12.5 || got.Status != models.ProductStatusActive {
		t.Errorf("Update() = %+v, want patched fields", got)
	}
	// Untouched fields survive a partial patch.
	if got.Slug != "old" {
		t.Errorf("Slug = %q, want unchanged", got.Slug)
	}

	_, err = store.Update(ctx, primitive.NewObjectID(), productstore.UpdateInput{Name: &name})
	if !errors.Is(err, productstore.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, productstore.CreateInput{Name: "Gone", Slug: "gone"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, p.ID); !errors.Is(err, productstore.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
