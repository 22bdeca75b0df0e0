package layoutstore_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/dalemusser/vitrine/internal/app/store/layoutstore"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"github.com/dalemusser/vitrine/internal/testutil"
)

func TestStore_GetLayout_CreatesDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := layoutstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	refs, err := store.GetLayout(ctx)
	if err != nil {
		t.Fatalf("GetLayout() error = %v", err)
	}

	want := []string{
		models.SlotImages, models.SlotTitlePrice, models.SlotDescription,
		models.SlotAttributes, models.SlotActions, models.SlotReviews,
		models.SlotRelatedProducts,
	}
	if len(refs) != len(want) {
		t.Fatalf("len = %d, want %d", len(refs), len(want))
	}
	for i, id := range want {
		if refs[i].SectionID != id {
			t.Errorf("refs[%d] = %q, want %q", i, refs[i].SectionID, id)
		}
	}
}

func TestStore_GetLayout_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := layoutstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.GetLayout(ctx)
	if err != nil {
		t.Fatalf("GetLayout() error = %v", err)
	}
	second, err := store.GetLayout(ctx)
	if err != nil {
		t.Fatalf("second GetLayout() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("refs[%d] differ: %+v vs %+v", i, first[i], second[i])
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 singleton document", count)
	}
}

func TestStore_GetLayout_ConcurrentFirstReads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := layoutstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.GetLayout(ctx)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: GetLayout() error = %v", i, err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want exactly one config after racing first reads", count)
	}
}

func TestStore_GetLayout_FiltersHiddenAndSorts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := layoutstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	slots := []models.LayoutSlot{
		{SectionID: models.SlotReviews, Name: "Reviews", IsVisible: false, Order: 0},
		{SectionID: models.SlotDescription, Name: "Description", IsVisible: true, Order: 2},
		{SectionID: models.SlotImages, Name: "Images", IsVisible: true, Order: 1},
	}
	if err := store.Save(ctx, slots); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	refs, err := store.GetLayout(ctx)
	if err != nil {
		t.Fatalf("GetLayout() error = %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("len = %d, want 2 (hidden slot excluded)", len(refs))
	}
	if refs[0].SectionID != models.SlotImages || refs[1].SectionID != models.SlotDescription {
		t.Errorf("order = [%s, %s], want [images, description]",
			refs[0].SectionID, refs[1].SectionID)
	}
}

func TestStore_Save_RejectsDuplicateSlotIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := layoutstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	slots := []models.LayoutSlot{
		{SectionID: models.SlotImages, Name: "Images", IsVisible: true, Order: 0},
		{SectionID: models.SlotImages, Name: "Images Again", IsVisible: true, Order: 1},
	}
	if err := store.Save(ctx, slots); !errors.Is(err, layoutstore.ErrDuplicateSlot) {
		t.Fatalf("Save() error = %v, want ErrDuplicateSlot", err)
	}
}

func TestStore_GetOrCreate_RestoresEmptiedSlotList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := layoutstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, []models.LayoutSlot{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg, err := store.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if len(cfg.Sections) != len(models.DefaultLayoutSlots()) {
		t.Errorf("len = %d, want default slot list restored", len(cfg.Sections))
	}
}
